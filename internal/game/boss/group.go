package boss

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GroupStatPercent is the group fight reduction (0.8) applied to every
// member's stats, as a percentage. Tunable.
const GroupStatPercent = 80

// GroupRequest describes a cooperative multi-boss encounter.
type GroupRequest struct {
	Request
	// Size is the number of bosses; no upper bound is enforced.
	Size int
}

// Group is a multi-boss encounter. All members share HP and Reward.
type Group struct {
	ID                  string     `json:"id" yaml:"id"`
	Difficulty          Difficulty `json:"difficulty" yaml:"difficulty"`
	DifficultySpecified bool       `json:"difficulty_specified" yaml:"difficulty_specified"`
	HP                  int        `json:"hp" yaml:"hp"`
	Reward              Reward     `json:"reward" yaml:"reward"`
	Members             []Boss     `json:"members" yaml:"members"`
}

// ScaleGroupStat applies the group fight reduction to one stat and rounds
// half away from zero to the nearest multiple of 10.
//
// Postcondition: For v >= 0, returns floor(v*0.8/10 + 0.5) * 10.
func ScaleGroupStat(v int) int {
	mag := v
	if mag < 0 {
		mag = -mag
	}
	// mag*80/100 in tens, plus half a ten, truncated.
	scaled := (mag*GroupStatPercent + 500) / 1000 * 10
	if v < 0 {
		return -scaled
	}
	return scaled
}

// CreateGroup generates req.Size bosses sharing one reward and one reduced HP pool.
//
// Postcondition: len(Members) == req.Size; every member has HP ==
// GroupHP(single boss HP) and stats scaled by ScaleGroupStat. Returns an
// *InvalidDifficultyError under the same conditions as CreateBoss and
// ErrInvalidRequest when validation is enabled and Size or Players is < 1.
func (f *Factory) CreateGroup(req GroupRequest) (Group, error) {
	if f.validate {
		if req.Players < 1 {
			return Group{}, fmt.Errorf("%w: player count must be >= 1, got %d", ErrInvalidRequest, req.Players)
		}
		if req.Size < 1 {
			return Group{}, fmt.Errorf("%w: group size must be >= 1, got %d", ErrInvalidRequest, req.Size)
		}
	}

	f.warnUnknown(req.Request)
	d, specified := req.difficulty()
	res, err := Resolve(req.PartyLevel, d)
	if err != nil {
		f.logger.Info("difficulty rejected",
			zap.Int("party_level", req.PartyLevel),
			zap.String("difficulty", d.String()),
			zap.Error(err),
		)
		return Group{}, err
	}

	g := Group{
		ID:                  uuid.New().String(),
		Difficulty:          d,
		DifficultySpecified: specified,
		HP:                  GroupHP(ComputeHP(res.Level, req.PartyLevel, res.HPRate, req.Players)),
		Reward:              ComputeReward(res.Level, req.PartyLevel, d),
	}

	size := req.Size
	if size < 0 {
		size = 0
	}
	g.Members = make([]Boss, 0, size)
	for i := 0; i < size; i++ {
		b, _, err := f.build(req.Request)
		if err != nil {
			return Group{}, err
		}
		b.HP = g.HP
		b.Stats = b.Stats.Map(ScaleGroupStat)
		g.Members = append(g.Members, b)
	}

	f.logger.Debug("boss group generated",
		zap.String("difficulty", d.String()),
		zap.Int("level", res.Level),
		zap.Int("size", len(g.Members)),
		zap.Int("hp", g.HP),
	)
	return g, nil
}
