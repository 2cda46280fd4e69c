package boss_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/bossgen/internal/game/boss"
	"github.com/cory-johannsen/bossgen/internal/game/dice"
)

func newFactory(t testing.TB, seed int64, opts ...boss.Option) *boss.Factory {
	return boss.NewFactory(dice.NewSeededSource(seed), zaptest.NewLogger(t), opts...)
}

func TestCreateBoss_NormalScenario(t *testing.T) {
	f := newFactory(t, 1)
	enc, err := f.CreateBoss(boss.Request{PartyLevel: 20, Players: 4, Difficulty: boss.Normal})
	require.NoError(t, err)

	assert.NotEmpty(t, enc.ID)
	assert.Equal(t, 20, enc.Boss.Level)
	assert.Equal(t, 56000, enc.Boss.HP)
	assert.Equal(t, boss.Reward{Experience: 26000, Currency: 2000, Items: "1 or 2"}, enc.Reward)
	assert.Equal(t, 2000, enc.Boss.Stats.Total())
	assert.True(t, enc.Boss.DifficultySpecified)
}

func TestCreateBoss_DefaultsToNormal(t *testing.T) {
	f := newFactory(t, 1)
	enc, err := f.CreateBoss(boss.Request{PartyLevel: 20, Players: 4})
	require.NoError(t, err)
	assert.Equal(t, boss.Normal, enc.Boss.Difficulty)
	assert.False(t, enc.Boss.DifficultySpecified)
	assert.Equal(t, 56000, enc.Boss.HP)
}

// stubRoller records whether it was used.
type stubRoller struct{ called bool }

func (s *stubRoller) Roll(count, sides int) dice.RollResult {
	s.called = true
	return dice.RollResult{Count: 0, Sides: sides}
}

func TestCreateBoss_InvalidDifficultyStopsEarly(t *testing.T) {
	r := &stubRoller{}
	f := newFactory(t, 1, boss.WithRoller(r))
	_, err := f.CreateBoss(boss.Request{PartyLevel: 3, Players: 4, Difficulty: boss.Noob})
	require.ErrorIs(t, err, boss.ErrInvalidDifficulty)
	assert.False(t, r.called, "stats must not be rolled for an invalid difficulty")

	var ide *boss.InvalidDifficultyError
	require.ErrorAs(t, err, &ide)
	assert.Equal(t, boss.Normal, ide.Minimum)
}

func TestCreateBoss_RejectsNoPlayers(t *testing.T) {
	f := newFactory(t, 1)
	_, err := f.CreateBoss(boss.Request{PartyLevel: 20, Players: 0})
	assert.ErrorIs(t, err, boss.ErrInvalidRequest)
}

func TestCreateBoss_ValidationDisabled(t *testing.T) {
	f := newFactory(t, 1, boss.WithInputValidation(false))
	enc, err := f.CreateBoss(boss.Request{PartyLevel: 20, Players: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, enc.Boss.HP)
}

func TestProperty_CreateBoss_Level(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		party := rapid.IntRange(-10, 120).Draw(rt, "party")
		players := rapid.IntRange(1, 8).Draw(rt, "players")
		d := rapid.SampledFrom(boss.Tiers()).Draw(rt, "difficulty")
		f := boss.NewFactory(dice.NewSeededSource(rapid.Int64().Draw(rt, "seed")), zap.NewNop())

		enc, err := f.CreateBoss(boss.Request{PartyLevel: party, Players: players, Difficulty: d})
		want := party + boss.RatesFor(d).Level
		if want <= 0 {
			assert.ErrorIs(rt, err, boss.ErrInvalidDifficulty)
			return
		}
		require.NoError(rt, err)
		assert.Equal(rt, want, enc.Boss.Level)
		assert.Equal(rt, boss.ComputeHP(want, party, boss.RatesFor(d).HP, players), enc.Boss.HP)
		assert.Equal(rt, boss.ComputeReward(want, party, d), enc.Reward)
	})
}

func TestScaleGroupStat(t *testing.T) {
	cases := map[int]int{
		0:    0,
		20:   20, // 16 -> 20
		40:   30, // 32 -> 30
		60:   50, // 48 -> 50
		100:  80,
		140:  110, // 112 -> 110
		1300: 1040,
		-60:  -50,
	}
	for in, want := range cases {
		assert.Equal(t, want, boss.ScaleGroupStat(in), "input %d", in)
	}
}

func TestProperty_ScaleGroupStat_MatchesRoundHalfUp(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.IntRange(0, 100000).Draw(rt, "v")
		want := int(math.Floor(float64(v)*0.8/10+0.5)) * 10
		assert.Equal(rt, want, boss.ScaleGroupStat(v))
	})
}

func TestCreateGroup_SharedHPAndReward(t *testing.T) {
	f := newFactory(t, 5)
	g, err := f.CreateGroup(boss.GroupRequest{
		Request: boss.Request{PartyLevel: 20, Players: 4, Difficulty: boss.Normal},
		Size:    3,
	})
	require.NoError(t, err)

	require.Len(t, g.Members, 3)
	assert.Equal(t, 18666, g.HP)
	assert.Equal(t, boss.Reward{Experience: 26000, Currency: 2000, Items: "1 or 2"}, g.Reward)
	for _, m := range g.Members {
		assert.Equal(t, 18666, m.HP)
		assert.Equal(t, 20, m.Level)
		assert.Equal(t, boss.Normal, m.Difficulty)
	}
}

func TestCreateGroup_InvalidDifficulty(t *testing.T) {
	f := newFactory(t, 5)
	_, err := f.CreateGroup(boss.GroupRequest{
		Request: boss.Request{PartyLevel: 2, Players: 4, Difficulty: boss.Easy},
		Size:    2,
	})
	assert.ErrorIs(t, err, boss.ErrInvalidDifficulty)
}

func TestCreateGroup_RejectsEmptyGroup(t *testing.T) {
	f := newFactory(t, 5)
	_, err := f.CreateGroup(boss.GroupRequest{
		Request: boss.Request{PartyLevel: 20, Players: 4},
		Size:    0,
	})
	assert.ErrorIs(t, err, boss.ErrInvalidRequest)
}

// A group built from seed s contains the same rolls as consecutive single
// bosses built from seed s, scaled by the group reduction.
func TestProperty_CreateGroup_ScalesSingleBossRolls(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		party := rapid.IntRange(1, 90).Draw(rt, "party")
		size := rapid.IntRange(1, 5).Draw(rt, "size")
		req := boss.Request{PartyLevel: party, Players: 4, Difficulty: boss.Normal}

		single := boss.NewFactory(dice.NewSeededSource(seed), zap.NewNop())
		group := boss.NewFactory(dice.NewSeededSource(seed), zap.NewNop())

		g, err := group.CreateGroup(boss.GroupRequest{Request: req, Size: size})
		require.NoError(rt, err)
		require.Len(rt, g.Members, size)

		for i := 0; i < size; i++ {
			enc, err := single.CreateBoss(req)
			require.NoError(rt, err)
			assert.Equal(rt, enc.Boss.Stats.Map(boss.ScaleGroupStat), g.Members[i].Stats)
			assert.Equal(rt, enc.Reward, g.Reward, "group reward equals the single boss reward")
			assert.Equal(rt, boss.GroupHP(enc.Boss.HP), g.Members[i].HP)
		}
	})
}

func TestInvalidDifficultyError_Is(t *testing.T) {
	err := error(&boss.InvalidDifficultyError{PartyLevel: 1, Requested: boss.Noob, Minimum: boss.Normal, Viable: true})
	assert.True(t, errors.Is(err, boss.ErrInvalidDifficulty))
	assert.False(t, errors.Is(err, boss.ErrInvalidRequest))
}

func TestCreateBoss_UnknownDifficultyWarns(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	f := boss.NewFactory(dice.NewSeededSource(1), zap.New(core))

	enc, err := f.CreateBoss(boss.Request{PartyLevel: 20, Players: 4, Difficulty: "legendary"})
	require.NoError(t, err)
	assert.Equal(t, 20, enc.Boss.Level)
	assert.Equal(t, "0", enc.Reward.Items)

	entries := logs.FilterMessage("unknown difficulty, using zero adjustments").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "legendary", entries[0].ContextMap()["difficulty"])
}

func TestCreateGroup_UnknownDifficultyWarnsOnce(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	f := boss.NewFactory(dice.NewSeededSource(1), zap.New(core))

	_, err := f.CreateGroup(boss.GroupRequest{
		Request: boss.Request{PartyLevel: 20, Players: 4, Difficulty: "legendary"},
		Size:    3,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("unknown difficulty, using zero adjustments").Len())
}

func TestCreateBoss_KnownDifficultyDoesNotWarn(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	f := boss.NewFactory(dice.NewSeededSource(1), zap.New(core))

	_, err := f.CreateBoss(boss.Request{PartyLevel: 20, Players: 4})
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}
