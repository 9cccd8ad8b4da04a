package cmd

import (
	"github.com/camly/cli/lib/oauth"
	"github.com/urfave/cli/v2"
)

// Log in to Camly.
func LogIn(c *cli.Context) error {
	return oauth.LogIn(c)
}
