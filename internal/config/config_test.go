package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.hcl")
	body := `
store        = "/data/hier.db"
visit_budget = 50000

mount {
  dir  = "/mnt/hier"
  nfs  = true
  port = 20490
}
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/hier.db", cfg.Store)
	assert.Equal(t, 50000, cfg.VisitBudget)
	require.NotNil(t, cfg.Mount)
	assert.Equal(t, "/mnt/hier", cfg.Mount.Dir)
	assert.True(t, cfg.Mount.NFS)
	assert.Equal(t, 20490, cfg.Mount.Port)
}

func TestLoadPartialConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`store = "x.db"`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "x.db", cfg.Store)
	assert.Zero(t, cfg.VisitBudget)
	assert.Nil(t, cfg.Mount)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	assert.Error(t, err)
}

func TestLoadBadSyntax(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`store = = "x"`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
