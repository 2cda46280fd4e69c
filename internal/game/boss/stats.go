package boss

import "github.com/cory-johannsen/bossgen/internal/game/dice"

// Stat identifies one of the four combat stat categories.
type Stat int

// Stat categories, in the order their die faces map to them.
const (
	PhysicalAttack Stat = iota
	MagicAttack
	PhysicalDefense
	MagicDefense
)

// statCount is the number of equally weighted categories a roll picks from.
const statCount = 4

// Roll budget constants; the low-level branch keeps the total stat budget
// comparable across the level 10 boundary.
const (
	highLevelThreshold = 10
	highLevelUnit      = 100
	lowLevelUnit       = 20
	lowLevelRollFactor = 5
)

// Stats holds a boss's combat stats.
//
// Invariant: defense values are stored at double their in-combat value;
// halving is a display concern (see EffectivePhysicalDefense).
type Stats struct {
	PhysicalAttack  int `json:"physical_attack" yaml:"physical_attack"`
	MagicAttack     int `json:"magic_attack" yaml:"magic_attack"`
	PhysicalDefense int `json:"physical_defense" yaml:"physical_defense"`
	MagicDefense    int `json:"magic_defense" yaml:"magic_defense"`
}

// Roller rolls batches of dice. *dice.Roller satisfies it.
type Roller interface {
	Roll(count, sides int) dice.RollResult
}

// Total returns the sum of the four stored stats.
func (s Stats) Total() int {
	total := 0
	for stat := Stat(0); stat < statCount; stat++ {
		total += s.Get(stat)
	}
	return total
}

// Get returns the stored value of one stat.
func (s Stats) Get(stat Stat) int {
	switch stat {
	case PhysicalAttack:
		return s.PhysicalAttack
	case MagicAttack:
		return s.MagicAttack
	case PhysicalDefense:
		return s.PhysicalDefense
	case MagicDefense:
		return s.MagicDefense
	}
	return 0
}

func (s *Stats) add(stat Stat, amount int) {
	switch stat {
	case PhysicalAttack:
		s.PhysicalAttack += amount
	case MagicAttack:
		s.MagicAttack += amount
	case PhysicalDefense:
		s.PhysicalDefense += amount
	case MagicDefense:
		s.MagicDefense += amount
	}
}

// Map returns a copy of s with fn applied to every stat.
func (s Stats) Map(fn func(int) int) Stats {
	return Stats{
		PhysicalAttack:  fn(s.PhysicalAttack),
		MagicAttack:     fn(s.MagicAttack),
		PhysicalDefense: fn(s.PhysicalDefense),
		MagicDefense:    fn(s.MagicDefense),
	}
}

// EffectivePhysicalDefense returns the in-combat physical defense: half the stored value.
func (s Stats) EffectivePhysicalDefense() int { return s.PhysicalDefense / 2 }

// EffectiveMagicDefense returns the in-combat magic defense: half the stored value.
func (s Stats) EffectiveMagicDefense() int { return s.MagicDefense / 2 }

// RollBudget returns how many stat rolls a boss of the given level gets and
// how much each roll is worth.
//
// Postcondition: level >= 10 yields (level, 100); otherwise (level*5, 20).
// A non-positive level yields a zero count.
func RollBudget(level int) (count, unit int) {
	if level >= highLevelThreshold {
		return level, highLevelUnit
	}
	count = level * lowLevelRollFactor
	if count < 0 {
		count = 0
	}
	return count, lowLevelUnit
}

// Allocate distributes a boss's roll budget across the four stats. Each roll
// picks a category uniformly (a d4) and adds one unit to it.
//
// Precondition: roller must be non-nil.
// Postcondition: Total() == count*unit for (count, unit) = RollBudget(level);
// every stat is a non-negative multiple of unit.
func Allocate(level int, roller Roller) Stats {
	count, unit := RollBudget(level)
	tally := roller.Roll(count, statCount).Tally()

	var s Stats
	for face, n := range tally {
		s.add(Stat(face), n*unit)
	}
	return s
}
