package cmd

import (
	"os"
	"time"

	"github.com/camly/cli/constants"
	"github.com/camly/cli/lib/auth"
	"github.com/camly/cli/lib/console"
	"github.com/camly/cli/lib/storage"
	"github.com/camly/cli/lib/util"
	"github.com/camly/cli/models"
	"github.com/urfave/cli/v2"
	"github.com/vbauerster/mpb/v7"
)

// Upload a video file to Camly storage.
func Upload(c *cli.Context) error {
	auth.HasToken()

	// Extract args
	localPath := c.Args().Get(0)
	if localPath == "" {
		return console.Error("Please provide a file to upload")
	}
	customName := c.String("name")

	// Stat file for the progress bar total
	fileInfo, err := os.Stat(localPath)
	if err != nil {
		return console.Error("Failed to open file \"%s\": %v", localPath, err)
	}

	console.Verbose("Uploading %s (%s)...", localPath, util.FormatBytesSize(fileInfo.Size()))

	// Retry the whole upload a bounded number of times; the coordinator
	// itself only retries individual multipart parts
	var result *models.UploadResult
	for attempt := 1; attempt <= constants.UploadCmdMaxAttempts; attempt++ {
		if attempt > 1 {
			console.Warning("Upload failed, retrying (attempt %d/%d)...", attempt, constants.UploadCmdMaxAttempts)
			time.Sleep(time.Second)
		}

		p := mpb.New(mpb.WithWidth(60))
		bar := util.NewByteProgressBar(p, fileInfo.Size(), "Uploading")

		result, err = storage.Upload(localPath, customName, func(progress storage.Progress) {
			bar.SetCurrent(progress.Loaded)
		})
		if err == nil {
			bar.SetCurrent(fileInfo.Size())
			p.Wait()
			break
		}

		// Reset progress so the retry starts from scratch
		bar.Abort(true)
		p.Wait()
	}
	if err != nil {
		return err
	}

	console.Success("Uploaded %s", result.FileName)
	console.Info("Public URL: %s", result.PublicURL)
	return nil
}
