package cmd

import (
	"github.com/camly/cli/lib/auth"
	"github.com/camly/cli/lib/console"
	"github.com/camly/cli/lib/storage"
	"github.com/urfave/cli/v2"
)

// Delete an uploaded file.
func Delete(c *cli.Context) error {
	auth.HasToken()

	fileName := c.Args().Get(0)
	if fileName == "" {
		return console.Error("Please provide the file name to delete")
	}

	if err := storage.Delete(fileName); err != nil {
		return err
	}

	console.Success("Deleted %s", fileName)
	return nil
}
