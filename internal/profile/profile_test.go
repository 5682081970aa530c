package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestGetKnownProfiles(t *testing.T) {
	for _, name := range Names() {
		p := Get(name)
		assert.Equal(t, name, p.Name)
		assert.Equal(t, 1, p.Window%2, "window of %s must be odd", name)
		assert.Positive(t, p.BlockSize)
	}
	assert.Equal(t, 5, Get("default").Window)
	assert.Equal(t, 16, Get("coarse").BlockSize)
}

func TestGetUnknownFallsBackKeepingName(t *testing.T) {
	p := Get("studio")
	assert.Equal(t, "studio", p.Name)
	assert.Equal(t, Get("default").Window, p.Window)
	assert.Equal(t, Get("default").LabWindow, p.LabWindow)
}

func TestApplyEnvOverrides(t *testing.T) {
	p, err := ApplyEnv(Get("default"), env(map[string]string{
		EnvWindow:  "7",
		EnvAlpha:   "2.5",
		EnvWorkers: " 3 ",
	}))
	require.NoError(t, err)
	assert.Equal(t, 7, p.Window)
	assert.Equal(t, 2.5, p.Alpha)
	assert.Equal(t, 3, p.Workers)
	assert.Equal(t, 8, p.BlockSize)
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	_, err := ApplyEnv(Get("default"), env(map[string]string{EnvBlockSize: "eight"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvBlockSize)

	_, err = ApplyEnv(Get("default"), env(map[string]string{EnvAlpha: "x"}))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	p, err := FromEnv("default", env(map[string]string{EnvProfile: "fine", EnvLabWindow: "13"}))
	require.NoError(t, err)
	assert.Equal(t, "fine", p.Name)
	assert.Equal(t, 3, p.Window)
	assert.Equal(t, 13, p.LabWindow)

	p, err = FromEnv("coarse", env(nil))
	require.NoError(t, err)
	assert.Equal(t, "coarse", p.Name)
}

func TestScoreParams(t *testing.T) {
	sp := Get("fine").ScoreParams()
	assert.Equal(t, 3, sp.Window)
	assert.Equal(t, 4, sp.Wavelet.BlockSize)
	assert.Equal(t, 1.0, sp.Wavelet.Alpha)
	require.NoError(t, sp.Wavelet.Validate())
}
