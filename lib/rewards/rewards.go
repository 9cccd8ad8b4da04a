package rewards

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/camly/cli/config"
	"github.com/camly/cli/constants"
	"github.com/camly/cli/lib/api"
	"github.com/camly/cli/lib/console"
	"github.com/camly/cli/lib/httpvalidation"
	"github.com/camly/cli/lib/httpw"
	"github.com/camly/cli/models"
	"github.com/lucsky/cuid"
)

// Result of crediting a reward.
type AwardResult struct {
	// Lowest milestone newly crossed by this credit, or 0 if none was crossed.
	MilestoneCrossed float64
	// The user's running total after the credit.
	NewTotal float64
}

// Ledger credits CAMLY engagement rewards against the user's running total
// and remembers which views it has already rewarded.
//
// The view dedupe set lives for the lifetime of this Ledger only; a fresh
// process credits the same (user, video) pair again.
type Ledger struct {
	rewardedViews map[string]bool
}

func NewLedger() *Ledger {
	return &Ledger{
		rewardedViews: make(map[string]bool),
	}
}

// Credit a reward to the user's running total, record an immutable ledger
// transaction, and detect milestone crossings.
//
// On a backend failure the returned result is zeroed and must be treated as
// "unknown outcome", not "zero reward": the total write may have landed even
// though a later step failed. There is no compensating transaction.
//
// @param userID - User to credit
//
// @param amount - CAMLY amount, positive
//
// @param rewardType - Action being rewarded
//
// @param videoID - Video the action applies to; may be empty
func (l *Ledger) Award(userID string, amount float64, rewardType models.RewardType, videoID string) (AwardResult, error) {
	current, err := GetTotal(userID)
	if err != nil {
		console.ErrorPrintV("Failed to read reward total for user %s: %v", userID, err)
		return AwardResult{}, err
	}

	newTotal := current + amount

	if err = setTotal(userID, newTotal); err != nil {
		console.ErrorPrintV("Failed to write reward total for user %s: %v", userID, err)
		return AwardResult{}, err
	}

	if err = insertTransaction(userID, amount, rewardType, videoID); err != nil {
		// The new total is already written at this point, so the outcome of
		// this credit is unknown to the caller
		console.ErrorPrintV("Failed to record %s reward transaction for user %s: %v", rewardType, userID, err)
		return AwardResult{}, err
	}

	return AwardResult{
		MilestoneCrossed: crossedMilestone(current, newTotal),
		NewTotal:         newTotal,
	}, nil
}

// Credit a view reward at most once per (user, video) pair within this
// process. Repeat calls for the same pair are silent no-ops.
func (l *Ledger) AwardView(userID string, videoID string, amount float64) (AwardResult, error) {
	key := userID + "/" + videoID
	if l.rewardedViews[key] {
		console.Verbose("View reward already credited for video %s, skipping", videoID)
		return AwardResult{}, nil
	}
	l.rewardedViews[key] = true

	return l.Award(userID, amount, models.RewardTypeView, videoID)
}

// Get the user's current reward total. Users without a reward record yet read
// as zero.
func GetTotal(userID string) (float64, error) {
	httpClient := http.Client{}
	req, err := http.NewRequest("GET", api.BuildURLf("rewards/users/%s/total", userID), nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set(constants.SessionTokenHeader, config.I.Auth.SessionToken)

	res, err := httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	// No record yet
	if res.StatusCode == http.StatusNotFound {
		return 0, nil
	}

	if err = httpvalidation.ValidateResponse(res); err != nil {
		return 0, err
	}

	var total models.UserRewardTotal
	err = json.NewDecoder(res.Body).Decode(&total)
	if err != nil {
		return 0, err
	}

	return total.TotalRewards, nil
}

// List the user's reward transactions, newest first.
func GetTransactions(userID string) ([]models.RewardTransaction, error) {
	res, err := httpw.Get(api.BuildURLf("rewards/users/%s/transactions", userID))
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var txRes models.RewardTransactionsResponse
	err = json.NewDecoder(res.Body).Decode(&txRes)
	if err != nil {
		return nil, err
	}

	return txRes.Transactions, nil
}

// Returns the reward type encoded in a transaction's synthetic ID.
// The ledger read path has no first-class type column, so history rows are
// classified by their ID prefix.
func TypeOf(tx models.RewardTransaction) models.RewardType {
	prefix, _, found := strings.Cut(tx.ID, "_")
	if !found {
		return ""
	}

	return models.RewardType(strings.ToUpper(prefix))
}

func setTotal(userID string, total float64) error {
	bodyJson, _ := json.Marshal(models.UserRewardTotal{
		UserID:       userID,
		TotalRewards: total,
	})
	res, err := httpw.Put(api.BuildURLf("rewards/users/%s/total", userID), bytes.NewBuffer(bodyJson))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	return nil
}

func insertTransaction(userID string, amount float64, rewardType models.RewardType, videoID string) error {
	bodyJson, _ := json.Marshal(models.RewardTransaction{
		ID:      transactionID(rewardType),
		UserID:  userID,
		Amount:  amount,
		VideoID: videoID,
		Status:  "completed",
	})
	res, err := httpw.Post(api.BuildURL("rewards/transactions"), bytes.NewBuffer(bodyJson))
	if err != nil {
		return err
	}
	defer res.Body.Close()

	return nil
}

// Synthetic transaction ID carrying the reward type and a millisecond
// timestamp, with a cuid suffix for uniqueness.
func transactionID(rewardType models.RewardType) string {
	return fmt.Sprintf("%s_%d_%s", strings.ToLower(string(rewardType)), time.Now().UnixMilli(), cuid.New())
}

// Returns the lowest milestone crossed when moving from oldTotal to newTotal,
// or 0 when none was crossed. Only the nearest milestone is reported even if
// a single credit crosses several.
func crossedMilestone(oldTotal float64, newTotal float64) float64 {
	for _, m := range constants.RewardMilestones {
		if oldTotal < m && newTotal >= m {
			return m
		}
	}

	return 0
}
