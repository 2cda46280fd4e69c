package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.uber.org/zap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/bossgen/internal/game/boss"
	"github.com/cory-johannsen/bossgen/internal/game/dice"
)

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_GenerateBossText(t *testing.T) {
	code, out, _ := runCLI("-seed", "4", "generate-boss", "20", "4", "normal")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "BOSS - LV. 20")
	assert.Contains(t, out, "NORMAL DIFFICULTY")
	assert.Contains(t, out, "HP: 56000")
	assert.Contains(t, out, "26000 XP")
	assert.Contains(t, out, "2000 (C)")
	assert.Contains(t, out, "1 or 2 Item(s)")
}

func TestRun_DefaultDifficultyNotShown(t *testing.T) {
	code, out, _ := runCLI("-seed", "4", "generate-boss", "20", "4")
	require.Equal(t, exitOK, code)
	assert.NotContains(t, out, "DIFFICULTY")
	assert.Contains(t, out, "HP: 56000")
}

func TestRun_GenerateBossJSONIsReproducible(t *testing.T) {
	code, first, _ := runCLI("-seed", "77", "-format", "json", "generate-boss", "42", "5", "hard")
	require.Equal(t, exitOK, code)
	_, second, _ := runCLI("-seed", "77", "-format", "json", "generate-boss", "42", "5", "hard")

	var a, b boss.Encounter
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))
	assert.Equal(t, 45, a.Boss.Level)
	assert.Equal(t, a.Boss.Stats, b.Boss.Stats)
	assert.Equal(t, 4500, a.Boss.Stats.Total())
}

func TestRun_GenerateGroupYAML(t *testing.T) {
	code, out, _ := runCLI("-seed", "9", "-format", "yaml", "generate-boss-group", "20", "4", "2", "normal")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "hp: 18666")
	assert.Contains(t, out, "members:")
}

func TestRun_GenerateGroupText(t *testing.T) {
	code, out, _ := runCLI("-seed", "9", "generate-boss-group", "20", "4", "3")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "MULTI-BOSS FIGHT")
	assert.Contains(t, out, "Boss #3 Stats:")
}

func TestRun_InvalidDifficulty(t *testing.T) {
	code, out, _ := runCLI("generate-boss", "3", "4", "noob")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, out, "Too low difficulty!")
	assert.Contains(t, out, "must be at least on Normal.")
}

func TestRun_InvalidDifficultyMachineFormat(t *testing.T) {
	code, out, errOut := runCLI("-format", "json", "generate-boss", "3", "4", "noob")
	assert.Equal(t, exitFailure, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Too low difficulty!")
}

func TestRun_UsageErrors(t *testing.T) {
	cases := [][]string{
		{},
		{"summon-dragon"},
		{"generate-boss", "20"},
		{"generate-boss", "x", "4"},
		{"generate-boss-group", "20", "4"},
		{"generate-boss-group", "20", "4", "many"},
		{"-format", "xml", "generate-boss", "20", "4"},
		{"generate-boss", "20", "0"},
	}
	for _, args := range cases {
		code, _, _ := runCLI(args...)
		assert.Equal(t, exitUsage, code, "args %v", args)
	}
}

func TestRun_FlagOverridesInvalidEnvironment(t *testing.T) {
	t.Setenv("BOSSGEN_OUTPUT_FORMAT", "bogus")

	code, out, errOut := runCLI("-seed", "4", "-format", "json", "generate-boss", "20", "4")
	require.Equal(t, exitOK, code, errOut)
	var enc boss.Encounter
	require.NoError(t, json.Unmarshal([]byte(out), &enc))
	assert.Equal(t, 20, enc.Boss.Level)
}

func TestRun_InvalidEnvironmentWithoutOverride(t *testing.T) {
	t.Setenv("BOSSGEN_OUTPUT_FORMAT", "bogus")

	code, _, errOut := runCLI("generate-boss", "20", "4")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "output.format")
}

func TestRun_UnseededUsesCryptoSource(t *testing.T) {
	code, out, _ := runCLI("-format", "json", "generate-boss", "20", "4")
	require.Equal(t, exitOK, code)
	var enc boss.Encounter
	require.NoError(t, json.Unmarshal([]byte(out), &enc))
	assert.Equal(t, 2000, enc.Boss.Stats.Total())
}

func TestRandomSource(t *testing.T) {
	assert.Equal(t, dice.NewCryptoSource(), randomSource(0, zap.NewNop()))

	a, b := randomSource(21, zap.NewNop()), dice.NewSeededSource(21)
	for i := 0; i < 20; i++ {
		assert.Equal(t, b.Intn(4), a.Intn(4))
	}
}

func TestRun_MachineFormatErrorIsUncolored(t *testing.T) {
	code, _, errOut := runCLI("-format", "yaml", "-color", "generate-boss", "3", "4", "noob")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, errOut, "Too low difficulty!")
	assert.NotContains(t, errOut, "\033[")
}
