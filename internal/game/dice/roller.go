package dice

// Roll rolls count dice with the given number of sides using src.
//
// Precondition: count >= 0; sides >= 2; src must be non-nil.
// Postcondition: len(result.Dice) == count; every die is in [1, sides].
func Roll(count, sides int, src Source) RollResult {
	rolled := make([]int, count)
	for i := range rolled {
		rolled[i] = src.Intn(sides) + 1
	}
	return RollResult{Count: count, Sides: sides, Dice: rolled}
}
