package cmd

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/camly/cli/constants"
	"github.com/camly/cli/lib/console"
	"github.com/urfave/cli/v2"
)

// DEBUG
// Abort stale multipart upload sessions directly against storage.
//
// Failed multipart uploads leave orphaned parts behind that the regular flow
// never cleans up. This is an operator tool: it requires storage credentials
// in the environment and is not part of the user-facing upload path.
func DebugPurgeMultipart(c *cli.Context) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bucket := c.String("bucket")
	if bucket == "" {
		return console.Error("Please provide a bucket with --bucket")
	}
	endpoint := c.String("endpoint")
	prefix := c.String("prefix")

	// Initialize S3 client
	customResolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		if service == s3.ServiceID && endpoint != "" {
			return aws.Endpoint{
				PartitionID:   "aws",
				URL:           endpoint,
				SigningRegion: "us-east-1",
			}, nil
		}
		// returning EndpointNotFoundError will allow the service to fallback to it's default resolution
		return aws.Endpoint{}, &aws.EndpointNotFoundError{}
	})

	awscfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithEndpointResolverWithOptions(customResolver))
	if err != nil {
		console.ErrorPrintV("Failed to load AWS SDK config: %v", err)
		return console.Error(constants.ErrMsgInternal)
	}

	client := s3.NewFromConfig(awscfg)

	// List in-progress multipart uploads
	out, err := client.ListMultipartUploads(ctx, &s3.ListMultipartUploadsInput{
		Bucket: &bucket,
		Prefix: &prefix,
	})
	if err != nil {
		return err
	}

	if len(out.Uploads) == 0 {
		console.Info("No stale multipart uploads found")
		return nil
	}

	// Abort each session, releasing its orphaned parts
	aborted := 0
	for _, upload := range out.Uploads {
		console.Verbose("Aborting upload %s (key %s)...", *upload.UploadId, *upload.Key)

		_, err := client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
			Bucket:   &bucket,
			Key:      upload.Key,
			UploadId: upload.UploadId,
		})
		if err != nil {
			console.ErrorPrint("Failed to abort upload %s: %v", *upload.UploadId, err)
			continue
		}

		aborted++
	}

	console.Success("Aborted %d stale multipart uploads", aborted)
	return nil
}
