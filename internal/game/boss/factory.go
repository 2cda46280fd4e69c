package boss

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/bossgen/internal/game/dice"
)

// Boss is a generated boss record. It is not mutated after construction.
type Boss struct {
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
	// DifficultySpecified is false when DefaultDifficulty was substituted.
	DifficultySpecified bool  `json:"difficulty_specified" yaml:"difficulty_specified"`
	Level               int   `json:"level" yaml:"level"`
	HP                  int   `json:"hp" yaml:"hp"`
	Stats               Stats `json:"stats" yaml:"stats"`
}

// Encounter is a single generated boss together with its reward.
type Encounter struct {
	ID     string `json:"id" yaml:"id"`
	Boss   Boss   `json:"boss" yaml:"boss"`
	Reward Reward `json:"reward" yaml:"reward"`
}

// Request describes a single boss to generate.
type Request struct {
	PartyLevel int
	Players    int
	// Difficulty may be empty, in which case DefaultDifficulty applies.
	Difficulty Difficulty
}

// difficulty returns the effective tier and whether the caller named one.
func (r Request) difficulty() (Difficulty, bool) {
	if r.Difficulty == "" {
		return DefaultDifficulty, false
	}
	return r.Difficulty, true
}

// Factory builds bosses and boss groups.
//
// A Factory owns its random source; build one per request when the source
// is not safe for concurrent use.
type Factory struct {
	roller   Roller
	logger   *zap.Logger
	validate bool
}

// Option configures a Factory.
type Option func(*Factory)

// WithInputValidation enables or disables rejection of non-positive player
// counts and group sizes. Enabled by default.
func WithInputValidation(on bool) Option {
	return func(f *Factory) { f.validate = on }
}

// WithRoller replaces the logged roller built from the source.
func WithRoller(r Roller) Option {
	return func(f *Factory) { f.roller = r }
}

// NewFactory creates a Factory rolling stats with src.
//
// Precondition: src and logger must be non-nil.
func NewFactory(src dice.Source, logger *zap.Logger, opts ...Option) *Factory {
	f := &Factory{
		roller:   dice.NewLoggedRoller(src, logger),
		logger:   logger,
		validate: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateBoss generates one boss for the party described by req.
//
// Postcondition: On success Boss.Level == req.PartyLevel + RatesFor(d).Level.
// Returns an *InvalidDifficultyError when that level would be <= 0, before
// any HP, reward or stat computation; returns ErrInvalidRequest when input
// validation is enabled and req.Players < 1.
func (f *Factory) CreateBoss(req Request) (Encounter, error) {
	if f.validate && req.Players < 1 {
		return Encounter{}, fmt.Errorf("%w: player count must be >= 1, got %d", ErrInvalidRequest, req.Players)
	}
	f.warnUnknown(req)
	b, reward, err := f.build(req)
	if err != nil {
		return Encounter{}, err
	}
	f.logger.Debug("boss generated",
		zap.String("difficulty", b.Difficulty.String()),
		zap.Int("level", b.Level),
		zap.Int("hp", b.HP),
		zap.Int("stat_total", b.Stats.Total()),
	)
	return Encounter{ID: uuid.New().String(), Boss: b, Reward: reward}, nil
}

// warnUnknown logs tags outside the declared tiers. They still generate,
// with zero adjustments and no items.
func (f *Factory) warnUnknown(req Request) {
	if d, _ := req.difficulty(); !d.Known() {
		f.logger.Warn("unknown difficulty, using zero adjustments",
			zap.String("difficulty", d.String()),
			zap.Stringers("known", tiers),
		)
	}
}

// build resolves, sizes and rolls a single boss.
func (f *Factory) build(req Request) (Boss, Reward, error) {
	d, specified := req.difficulty()
	res, err := Resolve(req.PartyLevel, d)
	if err != nil {
		f.logger.Info("difficulty rejected",
			zap.Int("party_level", req.PartyLevel),
			zap.String("difficulty", d.String()),
			zap.Error(err),
		)
		return Boss{}, Reward{}, err
	}

	b := Boss{
		Difficulty:          d,
		DifficultySpecified: specified,
		Level:               res.Level,
		HP:                  ComputeHP(res.Level, req.PartyLevel, res.HPRate, req.Players),
		Stats:               Allocate(res.Level, f.roller),
	}
	return b, ComputeReward(res.Level, req.PartyLevel, d), nil
}
