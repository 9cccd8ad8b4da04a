package constants

// Rewards
//
// Milestones are cumulative CAMLY totals that trigger a one-time celebration
// when first reached. Must stay in ascending order.
var RewardMilestones = []float64{10, 100, 1000, 10000}

// CAMLY credited per engagement action.
const (
	RewardAmountView    = 0.1
	RewardAmountLike    = 0.5
	RewardAmountComment = 1.0
	RewardAmountShare   = 2.0
)
