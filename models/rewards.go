package models

// Engagement action credited with CAMLY rewards.
type RewardType string

const (
	RewardTypeView    RewardType = "VIEW"
	RewardTypeLike    RewardType = "LIKE"
	RewardTypeComment RewardType = "COMMENT"
	RewardTypeShare   RewardType = "SHARE"
)

// A single CAMLY credit in the ledger. Immutable once written.
type RewardTransaction struct {
	// Synthetic ID encoding the reward type and a millisecond timestamp,
	// e.g. "like_1718000000000_cl9ebqhxk00003b600tymydho".
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Amount    float64 `json:"amount"`
	VideoID   string  `json:"video_id,omitempty"`
	Status    string  `json:"status"`
	CreatedAt int64   `json:"created_at,omitempty"`
}

// Response body for the `rewards/users/{id}/total` route.
type UserRewardTotal struct {
	UserID       string  `json:"user_id"`
	TotalRewards float64 `json:"total_rewards"`
}

// Response body for the `rewards/users/{id}/transactions` route.
type RewardTransactionsResponse struct {
	Transactions []RewardTransaction `json:"transactions"`
}
