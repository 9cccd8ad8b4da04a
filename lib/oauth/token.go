package oauth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/camly/cli/models"
)

// Parse access token response from the Auth0 Authentication API.
func ParseAccessTokenResponse(res *http.Response) (models.OAuthTokenResponse, error) {
	// Parse response
	var tokenData models.OAuthTokenResponse
	err := json.NewDecoder(res.Body).Decode(&tokenData)
	if err != nil {
		return models.OAuthTokenResponse{}, err
	}

	// Validate response
	// NOTE: Does not check if refresh token was returned, since it's not returned with all
	// grant types.
	if tokenData.AccessToken == "" {
		return models.OAuthTokenResponse{}, errors.New("\"access_token\" not found in response")
	}

	if tokenData.IDToken == "" {
		return models.OAuthTokenResponse{}, errors.New("\"id_token\" not found in response")
	}

	if tokenData.ExpiresIn == 0 {
		return models.OAuthTokenResponse{}, errors.New("\"expires_in\" not found in response")
	}

	// Add additional data
	tokenData.AuthenticatedAt = time.Now().Unix()
	return tokenData, nil
}
