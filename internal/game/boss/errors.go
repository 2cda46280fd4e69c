package boss

import (
	"errors"
	"fmt"
)

// ErrInvalidDifficulty is matched by every *InvalidDifficultyError.
var ErrInvalidDifficulty = errors.New("boss: difficulty too low")

// ErrInvalidRequest reports a request that violates a caller precondition
// such as a non-positive player count or group size.
var ErrInvalidRequest = errors.New("boss: invalid request")

// InvalidDifficultyError reports that a difficulty drives the boss level to
// zero or below for a party.
type InvalidDifficultyError struct {
	PartyLevel int
	Requested  Difficulty
	// Minimum is the lowest tier yielding a positive level; empty when !Viable.
	Minimum Difficulty
	// Viable is false when even the highest tier cannot produce a positive level.
	Viable bool
}

func (e *InvalidDifficultyError) Error() string {
	if !e.Viable {
		return fmt.Sprintf("boss: difficulty %q too low for level %d party: no viable difficulty", e.Requested, e.PartyLevel)
	}
	return fmt.Sprintf("boss: difficulty %q too low for level %d party: minimum is %q", e.Requested, e.PartyLevel, e.Minimum)
}

// Is makes errors.Is(err, ErrInvalidDifficulty) succeed.
func (e *InvalidDifficultyError) Is(target error) bool {
	return target == ErrInvalidDifficulty
}
