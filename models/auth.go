package models

// Request body for the `auth/authenticate` route.
type AuthenticateRequest struct {
	Token     string `json:"token" validate:"required"`
	TokenType string `json:"token_type" validate:"required"`
}

// Response body for the `auth/authenticate` route.
type AuthenticateResponse struct {
	SessionToken string `json:"session_token"`
	UserID       string `json:"user_id"`
}

// Response body from the Auth0 `oauth/token` route.
type OAuthTokenResponse struct {
	AccessToken     string `json:"access_token"`
	RefreshToken    string `json:"refresh_token"`
	IDToken         string `json:"id_token"`
	ExpiresIn       int64  `json:"expires_in"`
	AuthenticatedAt int64  `json:"authenticated_at"`
}
