package cmd

import (
	"time"

	"github.com/camly/cli/constants"
	"github.com/camly/cli/lib/auth"
	"github.com/camly/cli/lib/console"
	"github.com/camly/cli/lib/rewards"
	"github.com/camly/cli/models"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
)

// Print the user's CAMLY balance, progress toward the next milestone, and
// recent transaction history.
func Rewards(c *cli.Context) error {
	userID := auth.UserID()

	total, err := rewards.GetTotal(userID)
	if err != nil {
		return err
	}

	console.Info("Balance: %g CAMLY", total)

	// Next milestone
	next, found := lo.Find(constants.RewardMilestones, func(m float64) bool {
		return total < m
	})
	if found {
		console.Info("Next milestone: %g CAMLY (%g to go)", next, next-total)
	}

	if !c.Bool("history") {
		return nil
	}

	// Transaction history
	txs, err := rewards.GetTransactions(userID)
	if err != nil {
		return err
	}

	if len(txs) == 0 {
		console.Info("No reward transactions yet")
		return nil
	}

	byType := lo.GroupBy(txs, func(tx models.RewardTransaction) models.RewardType {
		return rewards.TypeOf(tx)
	})
	for rewardType, group := range byType {
		earned := lo.SumBy(group, func(tx models.RewardTransaction) float64 {
			return tx.Amount
		})
		console.Info("%s: %d transactions, %g CAMLY", rewardType, len(group), earned)
	}

	console.Info("")
	for _, tx := range txs {
		created := time.UnixMilli(tx.CreatedAt).Format(constants.TimeFormat)
		console.Verbose("%s  +%g  %s  %s", created, tx.Amount, rewards.TypeOf(tx), tx.VideoID)
	}

	return nil
}
