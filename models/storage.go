package models

// Request body for the `storage/presign` route.
type PresignRequest struct {
	// Destination file name, relative to the authenticated user's namespace.
	// The server prefixes it with the user ID; the client never chooses the
	// final key.
	FileName string `json:"file_name"`
	// File MIME type.
	ContentType string `json:"content_type"`
	// File size in bytes.
	Size int64 `json:"size"`
}

// Response body for the `storage/presign` route.
type PresignResponse struct {
	PresignedURL string `json:"presigned_url"`
	PublicURL    string `json:"public_url"`
	FileName     string `json:"file_name"`
}

// Request body for the `storage/multipart/initiate` route.
type InitiateMultipartRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// Response body for the `storage/multipart/initiate` route.
type InitiateMultipartResponse struct {
	UploadID  string `json:"upload_id"`
	PublicURL string `json:"public_url"`
	FileName  string `json:"file_name"`
}

// Request body for the `storage/multipart/part` route.
type PartURLRequest struct {
	FileName   string `json:"file_name"`
	UploadID   string `json:"upload_id"`
	PartNumber int32  `json:"part_number"`
}

// Response body for the `storage/multipart/part` route.
type PartURLResponse struct {
	PresignedURL string `json:"presigned_url"`
}

type MultipartUploadPart struct {
	PartNumber int32  `json:"part_number"`
	ETag       string `json:"etag"`
}

// Request body for the `storage/multipart/complete` route.
// Parts must be ordered by part number.
type CompleteMultipartRequest struct {
	FileName string                `json:"file_name"`
	UploadID string                `json:"upload_id"`
	Parts    []MultipartUploadPart `json:"parts"`
}

// Result of a successful upload.
type UploadResult struct {
	PublicURL string `json:"public_url"`
	FileName  string `json:"file_name"`
}
