package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/camly/cli/config"
	"github.com/camly/cli/constants"
	"github.com/camly/cli/lib/api"
	"github.com/camly/cli/lib/console"
	"github.com/camly/cli/lib/httpw"
	"github.com/camly/cli/models"
)

// Upload a file as a single PUT to a presigned URL.
//
// There is no internal retry here; retrying a failed simple upload is the
// caller's responsibility.
func uploadSimple(file *os.File, size int64, fileName string, contentType string, onProgress ProgressFunc) (*models.UploadResult, error) {
	// Request presigned URL
	bodyJson, _ := json.Marshal(models.PresignRequest{
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
	})
	res, err := httpw.Post(api.BuildURL("storage/presign"), bytes.NewBuffer(bodyJson))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	// Parse response
	var presign models.PresignResponse
	err = json.NewDecoder(res.Body).Decode(&presign)
	if err != nil {
		return nil, console.Error(constants.ErrMsgInternal)
	}

	console.Verbose("Uploading %s (%d bytes) via simple upload...", presign.FileName, size)

	// Upload file to presigned URL
	waitForRateLimit()
	req, err := http.NewRequest("PUT", presign.PresignedURL, &progressReader{
		r:     file,
		total: size,
		stage: "Uploading",
		fn:    onProgress,
	})
	if err != nil {
		return nil, err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	httpClient := http.Client{Timeout: constants.SimpleUploadTimeout}
	putRes, err := httpClient.Do(req)
	if err != nil {
		console.ErrorPrintV("Failed to upload file \"%s\": %v", presign.FileName, err)
		return nil, console.Error(constants.ErrMsgUploadFailed)
	}
	defer putRes.Body.Close()
	io.Copy(io.Discard, putRes.Body)

	// Success is exclusively a 2xx response
	if putRes.StatusCode < 200 || putRes.StatusCode >= 300 {
		console.ErrorPrintV("Storage returned status %d for file \"%s\"", putRes.StatusCode, presign.FileName)
		return nil, console.Error(constants.ErrMsgUploadFailed)
	}

	emit(onProgress, Progress{Loaded: size, Total: size, Percentage: 100, Stage: "complete"})

	return &models.UploadResult{
		PublicURL: presign.PublicURL,
		FileName:  presign.FileName,
	}, nil
}

// Reader that reports cumulative upload progress as it is consumed.
type progressReader struct {
	r io.Reader
	// Bytes confirmed before this reader's section started.
	base  int64
	read  int64
	total int64
	stage string
	fn    ProgressFunc
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.read += int64(n)
		loaded := pr.base + pr.read
		emit(pr.fn, Progress{
			Loaded:     loaded,
			Total:      pr.total,
			Percentage: percentage(loaded, pr.total),
			Stage:      pr.stage,
		})
	}

	return n, err
}

// Wait for the storage rate limiter, if one is configured.
func waitForRateLimit() {
	if config.I.RateLimiter != nil {
		config.I.RateLimiter.Wait(context.Background())
	}
}
