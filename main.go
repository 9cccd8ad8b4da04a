package main

import (
	"log"
	"os"

	"github.com/camly/cli/cmd"
	"github.com/camly/cli/config"
	"github.com/urfave/cli/v2"
)

func main() {
	// Initialize config
	config.InitConfig()

	// Initialize CLI app
	app := &cli.App{
		Name:    "camly",
		Usage:   "Camly CLI",
		Version: "0.0.1",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authenticate with Camly (required to use other commands)",
				Action: cmd.LogIn,
			},
			{
				Name:   "logout",
				Usage:  "Log out of Camly",
				Action: cmd.LogOut,
			},
			{
				Name:   "auth",
				Usage:  "Print current authentication state",
				Action: cmd.PrintAuthState,
			},
			{
				Name:    "upload",
				Usage:   "Upload a video file",
				Aliases: []string{"u"},
				Action:  cmd.Upload,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "name",
						Aliases: []string{"n"},
						Usage:   "Destination file name (defaults to the local file name)",
					},
				},
			},
			{
				Name:   "delete",
				Usage:  "Delete an uploaded file",
				Action: cmd.Delete,
			},
			{
				Name:   "view",
				Usage:  "Record a video view and earn CAMLY",
				Action: cmd.View,
			},
			{
				Name:   "like",
				Usage:  "Like a video and earn CAMLY",
				Action: cmd.Like,
			},
			{
				Name:   "comment",
				Usage:  "Comment on a video and earn CAMLY",
				Action: cmd.Comment,
			},
			{
				Name:   "share",
				Usage:  "Share a video and earn CAMLY",
				Action: cmd.Share,
			},
			{
				Name:    "rewards",
				Usage:   "Print CAMLY balance and milestone progress",
				Aliases: []string{"r"},
				Action:  cmd.Rewards,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "history",
						Usage: "Include transaction history",
					},
				},
			},
			{
				Name:   "wallet",
				Usage:  "Print connected wallet addresses and balances",
				Action: cmd.Wallet,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "chain",
						Usage: "Switch the wallet bridge to this chain first",
					},
				},
			},
			{
				Name:   "debug",
				Usage:  "Operator tools",
				Hidden: true,
				Subcommands: []*cli.Command{
					{
						Name:   "purge-multipart",
						Usage:  "Abort stale multipart upload sessions",
						Action: cmd.DebugPurgeMultipart,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "bucket",
								Usage:    "Storage bucket",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "endpoint",
								Usage: "S3-compatible endpoint URL",
							},
							&cli.StringFlag{
								Name:  "prefix",
								Usage: "Only purge uploads under this key prefix",
							},
						},
					},
				},
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
