package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinshuoliu/Finance/internal/recurring"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Display.Currency = "EUR"
	cfg.Candidates.MinMonths = 4
	cfg.Git.AutoCommit = true

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "EUR", got.Display.Currency)
	assert.Equal(t, 4, got.Candidates.MinMonths)
	assert.Equal(t, cfg.Candidates.MaxResults, got.Candidates.MaxResults)
	assert.True(t, got.Git.AutoCommit)
	assert.Equal(t, cfg.Git.AuthorName, got.Git.AuthorName)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "CAD", cfg.Display.Currency)
	assert.Equal(t, recurring.DefaultMinMonths, cfg.Candidates.MinMonths)
	assert.Equal(t, recurring.MaxCandidates, cfg.Candidates.MaxResults)
	assert.False(t, cfg.Git.AutoCommit)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default()
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "currency: CAD")
	assert.Contains(t, contents, "min_months: 3")
	assert.Contains(t, contents, "auto_commit: false")
}

func TestResolveDataDir(t *testing.T) {
	assert.Equal(t, "/explicit", ResolveDataDir("/explicit"))

	t.Setenv(EnvDataDir, "/from-env")
	assert.Equal(t, "/from-env", ResolveDataDir(""))

	t.Setenv(EnvDataDir, "")
	assert.Equal(t, ".", ResolveDataDir(""))
}
