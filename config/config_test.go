package config_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/plus3/nightfall/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 16*time.Millisecond, cfg.Tick)
	assert.Equal(t, 960.0, cfg.Map.PixelWidth())
	assert.Equal(t, 60*time.Second, cfg.DayNight.DayLength)

	pistol, ok := cfg.Weapon("pistol")
	require.True(t, ok)
	assert.Equal(t, 25.0, pistol.Damage)

	tank, ok := cfg.Variant("tank")
	require.True(t, ok)
	assert.Equal(t, 25, tank.Reward)
	assert.Equal(t, 5, tank.UnlockAfterDay)
}

func TestParseOverlaysDefaults(t *testing.T) {
	src := `
tick: 10ms
map:
  width: 40
  generator: noise
day_night:
  day_length: 2m
  count_every_flip: true
`
	cfg, err := config.Parse(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 10*time.Millisecond, cfg.Tick)
	assert.Equal(t, 40, cfg.Map.Width)
	assert.Equal(t, 30, cfg.Map.Height, "unset keys keep their default")
	assert.Equal(t, config.GeneratorNoise, cfg.Map.Generator)
	assert.Equal(t, 2*time.Minute, cfg.DayNight.DayLength)
	assert.True(t, cfg.DayNight.CountEveryFlip)
	assert.Len(t, cfg.Weapons, 3)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := config.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := config.Parse(strings.NewReader("map:\n  widht: 10\n"))
	assert.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := config.Default()
	cfg.Map.Width = 0
	cfg.Map.WallProbability = 1.5
	cfg.Player.StartingWeapon = "bazooka"
	cfg.Recipes[0].Requirements[0].Item = "unobtainium"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalid)

	msg := err.Error()
	assert.Contains(t, msg, "map size")
	assert.Contains(t, msg, "wall_probability")
	assert.Contains(t, msg, "bazooka")
	assert.Contains(t, msg, "unobtainium")
}

func TestValidateRejectsRepeatedRequirement(t *testing.T) {
	cfg := config.Default()
	require.NotEmpty(t, cfg.Recipes[0].Requirements)
	first := cfg.Recipes[0].Requirements[0]
	cfg.Recipes[0].Requirements = append(cfg.Recipes[0].Requirements, first)

	err := cfg.Validate()
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, err.Error(), fmt.Sprintf("recipe %q lists %q twice", cfg.Recipes[0].ID, first.Item))
}

func TestValidateStartingBuilding(t *testing.T) {
	cfg := config.Default()
	cfg.StartingBuilding = "bunker"
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)

	cfg.StartingBuilding = ""
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nightfall.yaml")
	require.NoError(t, os.WriteFile(path, []byte("player:\n  speed: 6\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6.0, cfg.Player.Speed)

	_, err = config.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zombies:\n  base_speed: 2\n"), 0o644))

	t.Setenv(config.EnvPath, path)
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Zombies.BaseSpeed)

	t.Setenv(config.EnvPath, "")
	cfg, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, config.Default().Encode(&buf))
	assert.Contains(t, buf.String(), "day_length: 1m0s")

	cfg, err := config.Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
