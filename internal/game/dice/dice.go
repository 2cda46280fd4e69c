// Package dice provides the randomness abstraction and roll-result types
// used by the boss stat allocator.
package dice

// RollResult holds the audit trail for a batch of identical dice.
//
// Postcondition: len(Dice) == Count and every entry is in [1, Sides].
type RollResult struct {
	Count int   // number of dice rolled
	Sides int   // faces per die
	Dice  []int // individual die results in roll order
}

// Total returns the sum of all die results.
//
// Postcondition: return value == sum(r.Dice).
func (r RollResult) Total() int {
	total := 0
	for _, d := range r.Dice {
		total += d
	}
	return total
}

// Tally counts how often each face came up.
//
// Postcondition: len(result) == r.Sides; result[f-1] is the number of dice
// showing face f; sum(result) == len(r.Dice).
func (r RollResult) Tally() []int {
	counts := make([]int, r.Sides)
	for _, d := range r.Dice {
		counts[d-1]++
	}
	return counts
}

// Source is the randomness provider for dice rolls.
type Source interface {
	// Intn returns a non-negative random int in [0, n).
	//
	// Precondition: n > 0.
	Intn(n int) int
}
