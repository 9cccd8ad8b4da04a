package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/camly/cli/constants"
	"github.com/camly/cli/lib/api"
	"github.com/camly/cli/lib/console"
	"github.com/camly/cli/lib/httpw"
	"github.com/camly/cli/models"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/slices"
)

// Upload a file as sequential fixed-size parts.
//
// Parts are transferred one at a time in increasing part number order. Each
// part gets its own presigned URL and is retried on transient failure; the
// completion call is only made once every part has confirmed.
func uploadMultipart(file *os.File, size int64, fileName string, contentType string, onProgress ProgressFunc) (*models.UploadResult, error) {
	// Initiate multipart session
	bodyJson, _ := json.Marshal(models.InitiateMultipartRequest{
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	})
	res, err := httpw.Post(api.BuildURL("storage/multipart/initiate"), bytes.NewBuffer(bodyJson))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	// Parse response
	var session models.InitiateMultipartResponse
	err = json.NewDecoder(res.Body).Decode(&session)
	if err != nil {
		return nil, console.Error(constants.ErrMsgInternal)
	}

	totalParts := partCount(size, chunkSize)
	console.Verbose("Uploading %s (%d bytes) as %d parts...", session.FileName, size, totalParts)

	uploadedParts := make([]models.MultipartUploadPart, 0, totalParts)

	for partNumber := int32(1); partNumber <= int32(totalParts); partNumber++ {
		offset, length := partRange(size, chunkSize, partNumber)

		// Request presigned URL for this part. A rejection here is terminal;
		// only the part transfer itself is retried.
		partReqJson, _ := json.Marshal(models.PartURLRequest{
			FileName:   session.FileName,
			UploadID:   session.UploadID,
			PartNumber: partNumber,
		})
		partRes, err := httpw.Post(api.BuildURL("storage/multipart/part"), bytes.NewBuffer(partReqJson))
		if err != nil {
			return nil, err
		}

		var partURL models.PartURLResponse
		err = json.NewDecoder(partRes.Body).Decode(&partURL)
		partRes.Body.Close()
		if err != nil {
			return nil, console.Error(constants.ErrMsgInternal)
		}

		etag, err := putPart(file, offset, length, size, partURL.PresignedURL, contentType, partNumber, onProgress)
		if err != nil {
			return nil, err
		}

		uploadedParts = append(uploadedParts, models.MultipartUploadPart{
			PartNumber: partNumber,
			ETag:       etag,
		})

		emit(onProgress, Progress{
			Loaded:     offset + length,
			Total:      size,
			Percentage: percentage(offset+length, size),
			Stage:      fmt.Sprintf("Uploaded part %d/%d", partNumber, totalParts),
		})
	}

	// The completion manifest must be ordered by part number
	slices.SortFunc(uploadedParts, func(a, b models.MultipartUploadPart) bool {
		return a.PartNumber < b.PartNumber
	})

	// Complete multipart session. No automatic retry here.
	completeJson, _ := json.Marshal(models.CompleteMultipartRequest{
		FileName: session.FileName,
		UploadID: session.UploadID,
		Parts:    uploadedParts,
	})
	completeRes, err := httpw.Post(api.BuildURL("storage/multipart/complete"), bytes.NewBuffer(completeJson))
	if err != nil {
		return nil, err
	}
	defer completeRes.Body.Close()

	emit(onProgress, Progress{Loaded: size, Total: size, Percentage: 100, Stage: "complete"})

	return &models.UploadResult{
		PublicURL: session.PublicURL,
		FileName:  session.FileName,
	}, nil
}

// Upload a single part, retrying on transient failure with a linearly
// increasing backoff. Exhausting all attempts aborts the whole upload.
func putPart(file *os.File, offset int64, length int64, totalSize int64, presignedURL string, contentType string, partNumber int32, onProgress ProgressFunc) (string, error) {
	for attempt := 1; attempt <= constants.PartMaxAttempts; attempt++ {
		if attempt > 1 {
			backoff := partRetryBackoff * time.Duration(attempt-1)
			console.Verbose("Retrying part %d in %s (attempt %d/%d)...", partNumber, backoff, attempt, constants.PartMaxAttempts)
			time.Sleep(backoff)
		}

		etag, err := putPartOnce(file, offset, length, totalSize, presignedURL, contentType, partNumber, onProgress)
		if err == nil {
			return etag, nil
		}

		console.ErrorPrintV("Failed to upload part %d (attempt %d/%d): %v", partNumber, attempt, constants.PartMaxAttempts, err)
	}

	return "", console.Error("Upload failed while transferring part %d. Please try again.", partNumber)
}

func putPartOnce(file *os.File, offset int64, length int64, totalSize int64, presignedURL string, contentType string, partNumber int32, onProgress ProgressFunc) (string, error) {
	waitForRateLimit()

	section := io.NewSectionReader(file, offset, length)
	req, err := http.NewRequest("PUT", presignedURL, &progressReader{
		r:     section,
		base:  offset,
		total: totalSize,
		stage: fmt.Sprintf("Uploading part %d", partNumber),
		fn:    onProgress,
	})
	if err != nil {
		return "", err
	}
	req.ContentLength = length
	req.Header.Set("Content-Type", contentType)

	httpClient := http.Client{Timeout: constants.PartUploadTimeout}
	res, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("storage returned status %d", res.StatusCode)
	}

	// The ETag response header is the part's content fingerprint required by
	// the completion call
	etag := strings.Trim(res.Header.Get("ETag"), "\"")
	if etag == "" {
		// Some storage providers strip the ETag header on presigned PUT
		// responses. Fall back to a client-side content hash so the part is
		// still unambiguously identified in the completion manifest.
		return hashPart(file, offset, length)
	}

	return etag, nil
}

// Content hash of a part's byte range, used in place of a missing ETag.
func hashPart(file *os.File, offset int64, length int64) (string, error) {
	hash := xxhash.New()
	if _, err := io.Copy(hash, io.NewSectionReader(file, offset, length)); err != nil {
		return "", err
	}

	return fmt.Sprintf("%016x", hash.Sum64()), nil
}
