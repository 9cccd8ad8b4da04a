package httpvalidation

import (
	"encoding/json"
	"net/http"

	"github.com/camly/cli/constants"
	"github.com/camly/cli/lib/console"
)

// Error payload returned by the Camly API.
type errorResponse struct {
	Message string `json:"message"`
}

// Validate HTTP response.
//
// @param res - HTTP response
//
// Returns any error that occurred.
//
func ValidateResponse(res *http.Response) error {
	// Check response status
	switch res.StatusCode {
	case http.StatusUnauthorized:
		return console.Error("Unauthorized")
	case http.StatusNotFound:
		return console.Error("Resource not found")
	case http.StatusRequestTimeout:
		return console.Error("HTTP request timed out")
	case http.StatusConflict:
		return console.Error("Resource already exists")
	case http.StatusBadRequest:
		return console.Error("Bad request")
	}

	// Handle all other bad response status codes, surfacing the server message
	// when one is present
	if res.StatusCode >= 300 {
		var errRes errorResponse
		if err := json.NewDecoder(res.Body).Decode(&errRes); err == nil && errRes.Message != "" {
			return console.Error(errRes.Message)
		}
		return console.Error(constants.ErrMsgInternal)
	}

	return nil
}
