package cmd

import (
	"github.com/camly/cli/config"
	"github.com/camly/cli/lib/console"
	"github.com/urfave/cli/v2"
)

// Print current authentication state.
func PrintAuthState(c *cli.Context) error {
	if config.I.Auth.SessionToken == "" {
		console.Info("Not logged in")
		return nil
	}

	console.Info("Logged in as user %s", config.I.Auth.UserID)
	return nil
}
