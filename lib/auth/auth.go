package auth

import (
	"github.com/camly/cli/config"
	"github.com/camly/cli/constants"
	"github.com/camly/cli/lib/console"
)

// Ensure the user has an active session, exiting otherwise.
func HasToken() {
	if config.I.Auth.SessionToken == "" {
		console.Fatal(constants.ErrMsgNotAuthenticated)
	}
}

// Returns the authenticated user's ID, exiting if there is no active session.
func UserID() string {
	HasToken()

	if config.I.Auth.UserID == "" {
		console.Fatal(constants.ErrMsgNotAuthenticated)
	}

	return config.I.Auth.UserID
}
