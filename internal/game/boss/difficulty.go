// Package boss computes boss encounter statistics: level, hit points, combat
// stat allocation and rewards, for a single boss or a cooperative group.
package boss

// Difficulty is a named tier adjusting boss level, HP, currency and item rewards.
type Difficulty string

// Difficulty tiers in their fixed ascending order.
const (
	Noob     Difficulty = "noob"
	Easy     Difficulty = "easy"
	Normal   Difficulty = "normal"
	Hard     Difficulty = "hard"
	Hardcore Difficulty = "hardcore"
)

// DefaultDifficulty is substituted when a request does not name a tier.
const DefaultDifficulty = Normal

// Rates holds the adjustments a Difficulty applies.
type Rates struct {
	Level int    // added to party level to get boss level
	HP    int    // added to party level in the HP formula
	Coin  int    // added to party level in the currency formula
	Items string // item reward descriptor; a label, not a count
}

// tiers is the fixed declaration order used when searching for a viable tier.
var tiers = []Difficulty{Noob, Easy, Normal, Hard, Hardcore}

var rates = map[Difficulty]Rates{
	Noob:     {Level: -5, HP: -2, Coin: -5, Items: "0"},
	Easy:     {Level: -3, HP: -1, Coin: -1, Items: "1"},
	Normal:   {Level: 0, HP: 0, Coin: 0, Items: "1 or 2"},
	Hard:     {Level: 3, HP: 3, Coin: 3, Items: "2"},
	Hardcore: {Level: 6, HP: 8, Coin: 6, Items: "3"},
}

// unknownRates applies to any tag outside the tier table.
var unknownRates = Rates{Items: "0"}

// Tiers returns every known Difficulty in ascending order.
//
// Postcondition: Returns a fresh slice; callers may modify it.
func Tiers() []Difficulty {
	out := make([]Difficulty, len(tiers))
	copy(out, tiers)
	return out
}

// Known reports whether d is one of the declared tiers.
func (d Difficulty) Known() bool {
	_, ok := rates[d]
	return ok
}

// String returns the tier tag.
func (d Difficulty) String() string { return string(d) }

// RatesFor returns the adjustment rates for d.
//
// Postcondition: Unknown tags yield zero level/HP/coin deltas and item
// descriptor "0"; this is a silent fallback, never an error.
func RatesFor(d Difficulty) Rates {
	if r, ok := rates[d]; ok {
		return r
	}
	return unknownRates
}

// Resolution is the outcome of resolving a difficulty for a party.
type Resolution struct {
	Difficulty Difficulty
	HPRate     int
	Level      int
}

// Resolve computes the boss level for partyLevel at difficulty d.
//
// Postcondition: On success Level == partyLevel + RatesFor(d).Level and Level > 0.
// Returns an *InvalidDifficultyError (matching ErrInvalidDifficulty) when the
// boss level would be <= 0.
func Resolve(partyLevel int, d Difficulty) (Resolution, error) {
	r := RatesFor(d)
	level := partyLevel + r.Level
	if level <= 0 {
		minimum, viable := MinimumViable(partyLevel)
		return Resolution{}, &InvalidDifficultyError{
			PartyLevel: partyLevel,
			Requested:  d,
			Minimum:    minimum,
			Viable:     viable,
		}
	}
	return Resolution{Difficulty: d, HPRate: r.HP, Level: level}, nil
}

// MinimumViable returns the first tier, in ascending order, that yields a
// positive boss level for partyLevel.
//
// Postcondition: ok is false and d is empty when no tier suffices.
func MinimumViable(partyLevel int) (d Difficulty, ok bool) {
	for _, t := range tiers {
		if partyLevel+rates[t].Level > 0 {
			return t, true
		}
	}
	return "", false
}
