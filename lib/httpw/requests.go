package httpw

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/camly/cli/config"
	"github.com/camly/cli/constants"
	"github.com/camly/cli/lib/httpvalidation"
)

// Send an HTTP request to the specified URL, authenticated with the current
// session token.
//
// @param method - HTTP method
//
// @param url - URL to send the request to
//
// @param body - Request body
//
// Returns the response object and any error that occurred.
func SendRequest(method string, url string, body *bytes.Buffer) (*http.Response, error) {
	// Check if POST request, and if so run custom logic
	if strings.ToUpper(method) == "POST" {
		return Post(url, body)
	}

	// Build request
	httpClient := &http.Client{}
	req, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set(constants.SessionTokenHeader, config.I.Auth.SessionToken)

	// Send request
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	// Validate response
	if err = httpvalidation.ValidateResponse(res); err != nil {
		return nil, err
	}

	return res, nil
}

// Send a GET request to the specified URL.
//
// @param url - URL to send the request to
//
// Returns the response object and any error that occurred.
func Get(url string) (*http.Response, error) {
	return SendRequest("GET", url, nil)
}

// Send a DELETE request to the specified URL.
//
// @param url - URL to send the request to
//
// Returns the response object and any error that occurred.
func Delete(url string) (*http.Response, error) {
	return SendRequest("DELETE", url, nil)
}

// Send a POST request to the specified URL.
//
// @param url - URL to send the request to
//
// @param body - Request body
//
// Returns the response object and any error that occurred.
func Post(url string, body *bytes.Buffer) (*http.Response, error) {
	// Build request
	httpClient := &http.Client{}
	req, err := http.NewRequest("POST", url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Set(constants.SessionTokenHeader, config.I.Auth.SessionToken)

	// Send request
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	// Validate response
	if err = httpvalidation.ValidateResponse(res); err != nil {
		return nil, err
	}

	return res, nil
}

// Send a PUT request with a JSON body to the specified URL.
//
// @param url - URL to send the request to
//
// @param body - Request body
//
// Returns the response object and any error that occurred.
func Put(url string, body *bytes.Buffer) (*http.Response, error) {
	// Build request
	httpClient := &http.Client{}
	req, err := http.NewRequest("PUT", url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Set(constants.SessionTokenHeader, config.I.Auth.SessionToken)

	// Send request
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	// Validate response
	if err = httpvalidation.ValidateResponse(res); err != nil {
		return nil, err
	}

	return res, nil
}
