package cmd

import (
	"github.com/camly/cli/constants"
	"github.com/camly/cli/lib/auth"
	"github.com/camly/cli/lib/console"
	"github.com/camly/cli/lib/rewards"
	"github.com/camly/cli/models"
	"github.com/urfave/cli/v2"
)

// One reward ledger per process. Views are deduped for its lifetime.
var ledger = rewards.NewLedger()

// Record a video view and credit the view reward.
// Repeat views of the same video in one session are not credited again.
func View(c *cli.Context) error {
	userID := auth.UserID()

	videoID := c.Args().Get(0)
	if videoID == "" {
		return console.Error("Please provide a video ID")
	}

	result, err := ledger.AwardView(userID, videoID, constants.RewardAmountView)
	if err != nil {
		return console.Error(constants.ErrMsgInternal)
	}

	// A zero result with no error means the view was already rewarded
	if result == (rewards.AwardResult{}) {
		console.Verbose("View already counted for this session")
		return nil
	}

	printAwardResult(constants.RewardAmountView, result)
	return nil
}

// Like a video and credit the like reward.
func Like(c *cli.Context) error {
	return engage(c, models.RewardTypeLike, constants.RewardAmountLike)
}

// Comment on a video and credit the comment reward.
func Comment(c *cli.Context) error {
	return engage(c, models.RewardTypeComment, constants.RewardAmountComment)
}

// Share a video and credit the share reward.
func Share(c *cli.Context) error {
	return engage(c, models.RewardTypeShare, constants.RewardAmountShare)
}

func engage(c *cli.Context, rewardType models.RewardType, amount float64) error {
	userID := auth.UserID()

	videoID := c.Args().Get(0)
	if videoID == "" {
		return console.Error("Please provide a video ID")
	}

	result, err := ledger.Award(userID, amount, rewardType, videoID)
	if err != nil {
		return console.Error(constants.ErrMsgInternal)
	}

	printAwardResult(amount, result)
	return nil
}

func printAwardResult(amount float64, result rewards.AwardResult) {
	console.Success("+%g CAMLY (total: %g)", amount, result.NewTotal)
	if result.MilestoneCrossed > 0 {
		console.Success("🎉 Milestone reached: %g CAMLY!", result.MilestoneCrossed)
	}
}
