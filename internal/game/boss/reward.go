package boss

// Experience multipliers per boss level tier.
const (
	EarlyXPMultiplier = 1300
	MidXPMultiplier   = 1400
	LateXPMultiplier  = 1500
)

// CurrencyMultiplier scales the party level into the currency reward.
const CurrencyMultiplier = 100

// Reward is the party's payout for defeating a boss or a boss group.
type Reward struct {
	Experience int    `json:"experience" yaml:"experience"`
	Currency   int    `json:"currency" yaml:"currency"`
	Items      string `json:"items" yaml:"items"`
}

// ComputeExperience returns the experience reward for a boss of the given level.
func ComputeExperience(bossLevel int) int {
	return bossLevel * stepByLevel(bossLevel, EarlyXPMultiplier, MidXPMultiplier, LateXPMultiplier)
}

// ComputeReward derives the reward for defeating a boss of bossLevel at difficulty d.
//
// Postcondition: Items is looked up from the tier table, never computed.
func ComputeReward(bossLevel, partyLevel int, d Difficulty) Reward {
	r := RatesFor(d)
	return Reward{
		Experience: ComputeExperience(bossLevel),
		Currency:   (partyLevel + r.Coin) * CurrencyMultiplier,
		Items:      r.Items,
	}
}
