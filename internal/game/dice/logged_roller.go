package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// Each batch is logged at debug level with its size and per-face tally.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each batch to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll rolls count dice of the given sides and logs the tally.
//
// Precondition: count >= 0; sides >= 2.
// Postcondition: result logged; len(result.Dice) == count.
func (r *Roller) Roll(count, sides int) RollResult {
	result := Roll(count, sides, r.src)
	r.logger.Debug("dice roll",
		zap.Int("count", result.Count),
		zap.Int("sides", result.Sides),
		zap.Ints("tally", result.Tally()),
		zap.Int("total", result.Total()),
	)
	return result
}
