package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var errTooSmall = errors.New("step too small")

type sampleConfig struct {
	Name string `yaml:"name"`
	Step int    `yaml:"step"`
}

func (c *sampleConfig) Validate() error {
	if c.Step < 1 {
		return errTooSmall
	}

	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("KF_TEST_NAME", "walk")
	path := writeFile(t, "name: ${KF_TEST_NAME}\nstep: 33\n")

	var cfg sampleConfig
	require.NoError(t, Load(path, &cfg))
	require.Equal(t, "walk", cfg.Name)
	require.Equal(t, 33, cfg.Step)
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeFile(t, "name: walk\nstep: 0\n")

	var cfg sampleConfig
	err := Load(path, &cfg)
	require.ErrorIs(t, err, errTooSmall)
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg sampleConfig
	err := Load(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_InvalidYAML(t *testing.T) {
	var cfg sampleConfig
	require.Error(t, Decode([]byte("step: [1, 2"), &cfg))
}

func TestLoadOrDefault(t *testing.T) {
	cfg := sampleConfig{Name: "default", Step: 10}
	require.NoError(t, LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"), &cfg))
	require.Equal(t, "default", cfg.Name)

	require.NoError(t, LoadOrDefault("", &cfg))

	path := writeFile(t, "step: 5\n")
	require.NoError(t, LoadOrDefault(path, &cfg))
	require.Equal(t, 5, cfg.Step)
	require.Equal(t, "default", cfg.Name)

	bad := sampleConfig{}
	require.ErrorIs(t, LoadOrDefault("", &bad), errTooSmall)
}
