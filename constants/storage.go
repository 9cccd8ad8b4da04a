package constants

import "time"

// Storage
//
// Chunk size, threshold, and retry behavior are part of the backend contract.
// Do not change them without a matching server release.
const (
	// Multipart upload chunk size.
	ChunkSize int64 = 100 * 1024 * 1024 // 100 MiB
	// File size above which uploads switch to multipart.
	MultipartThreshold int64 = 100 * 1024 * 1024 // 100 MiB
	// Max file size accepted for upload.
	MaxFileSize int64 = 10 * 1024 * 1024 * 1024 // 10 GiB
	// Max attempts for a single multipart part upload.
	PartMaxAttempts = 3
	// Backoff between part upload attempts, multiplied by the attempt number.
	PartRetryBackoff = 2 * time.Second
	// Timeout for a simple (single PUT) upload.
	SimpleUploadTimeout = 30 * time.Minute
	// Timeout for a single multipart part PUT.
	PartUploadTimeout = 10 * time.Minute
	// Max attempts for the whole upload operation in the upload command.
	UploadCmdMaxAttempts = 3
)

// Error messages
const ErrMsgFileTooLarge = "File is too large. The maximum supported file size is 10 GB."
const ErrMsgUploadFailed = "Upload failed. Please try again."
