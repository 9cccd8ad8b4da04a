package storage

import (
	"mime"
	"os"
	"path/filepath"

	"github.com/camly/cli/constants"
	"github.com/camly/cli/lib/console"
	"github.com/camly/cli/models"
)

// Progress reported throughout an upload.
type Progress struct {
	// Bytes transferred so far.
	Loaded int64
	// Total bytes to transfer.
	Total int64
	// Loaded as a percentage of Total, 0-100.
	Percentage int
	// Human-readable label for the current stage.
	Stage string
}

// Callback invoked with upload progress. Called at upload start, at least once
// per chunk, and at completion.
type ProgressFunc func(Progress)

// Overridable in tests.
var (
	chunkSize          = constants.ChunkSize
	multipartThreshold = constants.MultipartThreshold
	partRetryBackoff   = constants.PartRetryBackoff
)

// Upload a local file to storage.
//
// Files larger than the multipart threshold are transferred as sequential
// fixed-size parts; anything else is a single PUT. Either way the bytes go
// directly to storage via presigned URLs issued by the Camly API, which
// namespaces the destination key under the authenticated user's ID.
//
// @param localPath - Path to the file to upload
//
// @param customName - Destination file name; defaults to the local base name
//
// @param onProgress - Progress callback; may be nil
//
// Returns the public URL and final file name of the uploaded object.
func Upload(localPath string, customName string, onProgress ProgressFunc) (*models.UploadResult, error) {
	// Open file
	file, err := os.Open(localPath)
	if err != nil {
		return nil, console.Error("Failed to open file \"%s\": %v", localPath, err)
	}
	defer file.Close()

	// Get file size
	fileInfo, err := file.Stat()
	if err != nil {
		return nil, console.Error("Failed to stat file \"%s\": %v", localPath, err)
	}
	size := fileInfo.Size()

	// Reject oversized files before any network call
	if err = checkSize(size); err != nil {
		return nil, err
	}

	fileName := customName
	if fileName == "" {
		fileName = filepath.Base(localPath)
	}

	contentType := mime.TypeByExtension(filepath.Ext(fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	emit(onProgress, Progress{Loaded: 0, Total: size, Percentage: 0, Stage: "Preparing upload"})

	if useMultipart(size) {
		return uploadMultipart(file, size, fileName, contentType, onProgress)
	}

	return uploadSimple(file, size, fileName, contentType, onProgress)
}

// Returns true if a file of the given size must be uploaded as multiple parts.
func useMultipart(size int64) bool {
	return size > multipartThreshold
}

// Validate file size against the documented maximum.
func checkSize(size int64) error {
	if size > constants.MaxFileSize {
		return console.Error(constants.ErrMsgFileTooLarge)
	}

	return nil
}

// Amount of parts needed to upload a file of the given size.
func partCount(size int64, chunk int64) int {
	return int((size + chunk - 1) / chunk)
}

// Byte range of the given part. The last part may be smaller than the chunk
// size.
func partRange(size int64, chunk int64, partNumber int32) (offset int64, length int64) {
	offset = int64(partNumber-1) * chunk
	length = chunk
	if offset+length > size {
		length = size - offset
	}

	return offset, length
}

func percentage(loaded int64, total int64) int {
	if total <= 0 {
		return 100
	}

	return int(loaded * 100 / total)
}

func emit(fn ProgressFunc, p Progress) {
	if fn != nil {
		fn(p)
	}
}
