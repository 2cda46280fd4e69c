package boss

// Level tier boundaries shared by the HP and experience step functions.
const (
	earlyLevelCap = 30
	midLevelCap   = 60
)

// HP multipliers per boss level tier.
const (
	EarlyHPMultiplier = 700
	MidHPMultiplier   = 850
	LateHPMultiplier  = 1000
)

// GroupHPDivisor spreads a single boss's HP across a group fight. Tunable.
const GroupHPDivisor = 3

// stepByLevel picks early, mid or late by boss level: <=30, <=60, else.
func stepByLevel(level, early, mid, late int) int {
	switch {
	case level <= earlyLevelCap:
		return early
	case level <= midLevelCap:
		return mid
	default:
		return late
	}
}

// ComputeHP returns the HP of a single boss.
//
// Postcondition: Returns (partyLevel + hpRate) * players * multiplier, where
// multiplier is 700, 850 or 1000 by the boss level tier.
func ComputeHP(bossLevel, partyLevel, hpRate, players int) int {
	mult := stepByLevel(bossLevel, EarlyHPMultiplier, MidHPMultiplier, LateHPMultiplier)
	return (partyLevel + hpRate) * players * mult
}

// GroupHP returns the per-member HP of a group fight given the single boss HP.
//
// Postcondition: Returns singleHP / GroupHPDivisor truncated toward zero.
func GroupHP(singleHP int) int {
	return singleHP / GroupHPDivisor
}
