package cmd

import (
	"github.com/camly/cli/config"
	"github.com/camly/cli/lib/console"
	"github.com/urfave/cli/v2"
)

// Log out of Camly, clearing the stored session.
func LogOut(c *cli.Context) error {
	config.I.Auth = config.AuthConfig{}
	if err := config.Save(config.I); err != nil {
		return err
	}

	console.Success("Logged out")
	return nil
}
