package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/camly/cli/config"
	"github.com/camly/cli/constants"
	"github.com/camly/cli/models"
	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fake Camly API + storage provider behind a single test server.
type testBackend struct {
	mu sync.Mutex

	srv *httptest.Server

	// Routes called on the API side
	presignCalls  int
	initiateCalls int
	partCalls     []int32
	completeReq   *models.CompleteMultipartRequest

	// PUTs received on the storage side, keyed by part number (0 = simple)
	putBodies  map[int32][][]byte
	failPart   int32
	failures   int
	omitETag   bool
	failSimple bool
}

func newTestBackend(t *testing.T) *testBackend {
	t.Helper()

	b := &testBackend{putBodies: make(map[int32][][]byte)}
	b.srv = httptest.NewServer(http.HandlerFunc(b.handle))
	t.Cleanup(b.srv.Close)

	old := config.I
	config.I = config.Config{
		API:  config.APIConfig{Host: b.srv.URL},
		Auth: config.AuthConfig{SessionToken: "test-session", UserID: "user_1"},
	}
	t.Cleanup(func() { config.I = old })

	return b
}

func (b *testBackend) handle(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case r.URL.Path == "/storage/presign":
		b.presignCalls++
		var req models.PresignRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(models.PresignResponse{
			PresignedURL: b.srv.URL + "/put/0",
			PublicURL:    "https://cdn.camly.app/user_1/" + req.FileName,
			FileName:     "user_1/" + req.FileName,
		})
	case r.URL.Path == "/storage/multipart/initiate":
		b.initiateCalls++
		var req models.InitiateMultipartRequest
		json.NewDecoder(r.Body).Decode(&req)
		json.NewEncoder(w).Encode(models.InitiateMultipartResponse{
			UploadID:  "upl_123",
			PublicURL: "https://cdn.camly.app/user_1/" + req.FileName,
			FileName:  "user_1/" + req.FileName,
		})
	case r.URL.Path == "/storage/multipart/part":
		var req models.PartURLRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.partCalls = append(b.partCalls, req.PartNumber)
		json.NewEncoder(w).Encode(models.PartURLResponse{
			PresignedURL: fmt.Sprintf("%s/put/%d", b.srv.URL, req.PartNumber),
		})
	case r.URL.Path == "/storage/multipart/complete":
		var req models.CompleteMultipartRequest
		json.NewDecoder(r.Body).Decode(&req)
		b.completeReq = &req
	case strings.HasPrefix(r.URL.Path, "/put/"):
		b.handlePut(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *testBackend) handlePut(w http.ResponseWriter, r *http.Request) {
	var partNumber int32
	fmt.Sscanf(r.URL.Path, "/put/%d", &partNumber)

	body, _ := io.ReadAll(r.Body)

	if partNumber == 0 && b.failSimple {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if partNumber != 0 && partNumber == b.failPart && b.failures != 0 {
		b.failures--
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	b.putBodies[partNumber] = append(b.putBodies[partNumber], body)
	if !b.omitETag {
		w.Header().Set("ETag", fmt.Sprintf("\"etag-%d\"", partNumber))
	}
	w.WriteHeader(http.StatusOK)
}

func (b *testBackend) putAttempts(partNumber int32) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.putBodies[partNumber])
}

func writeTestFile(t *testing.T, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "video.mp4")
	require.NoError(t, os.WriteFile(path, content, 0644))
	return path
}

func setChunking(t *testing.T, chunk int64, threshold int64) {
	t.Helper()

	oldChunk, oldThreshold, oldBackoff := chunkSize, multipartThreshold, partRetryBackoff
	chunkSize = chunk
	multipartThreshold = threshold
	partRetryBackoff = 0
	t.Cleanup(func() {
		chunkSize, multipartThreshold, partRetryBackoff = oldChunk, oldThreshold, oldBackoff
	})
}

func TestUseMultipart(t *testing.T) {
	assert.False(t, useMultipart(1))
	assert.False(t, useMultipart(constants.MultipartThreshold))
	assert.True(t, useMultipart(constants.MultipartThreshold+1))
}

func TestCheckSize(t *testing.T) {
	assert.NoError(t, checkSize(0))
	assert.NoError(t, checkSize(constants.MaxFileSize))
	assert.Error(t, checkSize(constants.MaxFileSize+1))
}

func TestPartMath(t *testing.T) {
	mib := int64(1024 * 1024)

	// A 250 MiB file makes exactly 3 parts: 100, 100, 50
	size := 250 * mib
	require.Equal(t, 3, partCount(size, constants.ChunkSize))

	offset, length := partRange(size, constants.ChunkSize, 1)
	assert.Equal(t, int64(0), offset)
	assert.Equal(t, 100*mib, length)

	offset, length = partRange(size, constants.ChunkSize, 2)
	assert.Equal(t, 100*mib, offset)
	assert.Equal(t, 100*mib, length)

	offset, length = partRange(size, constants.ChunkSize, 3)
	assert.Equal(t, 200*mib, offset)
	assert.Equal(t, 50*mib, length)

	// Exact multiples don't produce an empty trailing part
	assert.Equal(t, 1, partCount(constants.ChunkSize, constants.ChunkSize))
	assert.Equal(t, 2, partCount(constants.ChunkSize+1, constants.ChunkSize))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 25, percentage(50, 200))
	assert.Equal(t, 100, percentage(10, 10))
	assert.Equal(t, 100, percentage(0, 0))
}

func TestUploadSimple(t *testing.T) {
	backend := newTestBackend(t)
	content := []byte(strings.Repeat("a", 1024))
	path := writeTestFile(t, content)

	var progress []Progress
	result, err := Upload(path, "", func(p Progress) {
		progress = append(progress, p)
	})
	require.NoError(t, err)

	assert.Equal(t, "user_1/video.mp4", result.FileName)
	assert.Equal(t, "https://cdn.camly.app/user_1/video.mp4", result.PublicURL)

	// Small files never touch the multipart routes
	assert.Equal(t, 1, backend.presignCalls)
	assert.Equal(t, 0, backend.initiateCalls)
	assert.Nil(t, backend.completeReq)

	// The whole body arrives in one PUT
	require.Equal(t, 1, backend.putAttempts(0))
	assert.Equal(t, content, backend.putBodies[0][0])

	// Progress starts at the preparing stage and ends complete
	require.NotEmpty(t, progress)
	assert.Equal(t, "Preparing upload", progress[0].Stage)
	last := progress[len(progress)-1]
	assert.Equal(t, 100, last.Percentage)
	assert.Equal(t, "complete", last.Stage)
	assert.Equal(t, int64(len(content)), last.Loaded)
}

func TestUploadSimpleStorageFailure(t *testing.T) {
	backend := newTestBackend(t)
	backend.failSimple = true
	path := writeTestFile(t, []byte("abc"))

	_, err := Upload(path, "", nil)
	require.Error(t, err)

	// No retry at this layer
	assert.Equal(t, 1, backend.presignCalls)
}

func TestUploadMultipartOrdered(t *testing.T) {
	backend := newTestBackend(t)
	setChunking(t, 4, 4)
	content := []byte("0123456789")
	path := writeTestFile(t, content)

	var progress []Progress
	result, err := Upload(path, "clip.mp4", func(p Progress) {
		progress = append(progress, p)
	})
	require.NoError(t, err)

	assert.Equal(t, "user_1/clip.mp4", result.FileName)
	assert.Equal(t, 1, backend.initiateCalls)
	assert.Equal(t, 0, backend.presignCalls)

	// Parts are presigned and uploaded in increasing order
	assert.Equal(t, []int32{1, 2, 3}, backend.partCalls)
	assert.Equal(t, []byte("0123"), backend.putBodies[1][0])
	assert.Equal(t, []byte("4567"), backend.putBodies[2][0])
	assert.Equal(t, []byte("89"), backend.putBodies[3][0])

	// Completion manifest has contiguous part numbers with the server ETags
	require.NotNil(t, backend.completeReq)
	assert.Equal(t, "upl_123", backend.completeReq.UploadID)
	require.Len(t, backend.completeReq.Parts, 3)
	for i, part := range backend.completeReq.Parts {
		assert.Equal(t, int32(i+1), part.PartNumber)
		assert.Equal(t, fmt.Sprintf("etag-%d", i+1), part.ETag)
	}

	last := progress[len(progress)-1]
	assert.Equal(t, 100, last.Percentage)
	assert.Equal(t, "complete", last.Stage)
}

func TestUploadMultipartRetriesTransientFailure(t *testing.T) {
	backend := newTestBackend(t)
	setChunking(t, 4, 4)
	backend.failPart = 2
	backend.failures = 2
	path := writeTestFile(t, []byte("0123456789"))

	_, err := Upload(path, "", nil)
	require.NoError(t, err)

	// Part 2 succeeded on its third attempt
	assert.Equal(t, 1, backend.putAttempts(1))
	assert.Equal(t, 1, backend.putAttempts(2))
	assert.Equal(t, 1, backend.putAttempts(3))
	require.NotNil(t, backend.completeReq)
	assert.Len(t, backend.completeReq.Parts, 3)
}

func TestUploadMultipartAbortsAfterRetriesExhausted(t *testing.T) {
	backend := newTestBackend(t)
	setChunking(t, 4, 4)
	backend.failPart = 2
	backend.failures = -1 // fail forever
	path := writeTestFile(t, []byte("0123456789"))

	_, err := Upload(path, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "part 2")

	// The upload aborted before part 3 and never completed
	assert.Equal(t, []int32{1, 2}, backend.partCalls)
	require.Nil(t, backend.completeReq)
}

func TestUploadMultipartETagFallback(t *testing.T) {
	backend := newTestBackend(t)
	setChunking(t, 4, 4)
	backend.omitETag = true
	content := []byte("0123456789")
	path := writeTestFile(t, content)

	_, err := Upload(path, "", nil)
	require.NoError(t, err)

	// With the ETag header stripped, parts are fingerprinted by content hash
	require.NotNil(t, backend.completeReq)
	expected := []string{
		fmt.Sprintf("%016x", xxhash.Sum64([]byte("0123"))),
		fmt.Sprintf("%016x", xxhash.Sum64([]byte("4567"))),
		fmt.Sprintf("%016x", xxhash.Sum64([]byte("89"))),
	}
	for i, part := range backend.completeReq.Parts {
		assert.Equal(t, expected[i], part.ETag)
	}
}

func TestUploadRejectsMissingFile(t *testing.T) {
	newTestBackend(t)

	_, err := Upload(filepath.Join(t.TempDir(), "missing.mp4"), "", nil)
	require.Error(t, err)
}
