package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Generic", cfg.Technology)
	assert.Equal(t, "180nm", cfg.ProcessNode)
	assert.True(t, cfg.RunOptions)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse([]byte(`
technology = "FinFET"
process_node = "7nm"
run_options = false
log_level = "debug"
catalog_path = "/var/lib/rulekit/runs.db"
`))
	require.NoError(t, err)
	assert.Equal(t, "FinFET", cfg.Technology)
	assert.Equal(t, "7nm", cfg.ProcessNode)
	assert.False(t, cfg.RunOptions)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/var/lib/rulekit/runs.db", cfg.CatalogPath)
}

func TestParse_PartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`process_node = "28nm"`))
	require.NoError(t, err)
	assert.Equal(t, "Generic", cfg.Technology)
	assert.Equal(t, "28nm", cfg.ProcessNode)
	assert.True(t, cfg.RunOptions)
}

func TestParse_BadLogLevel(t *testing.T) {
	_, err := Parse([]byte(`log_level = "loud"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestParse_BadTOML(t *testing.T) {
	_, err := Parse([]byte(`technology = [unclosed`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("does-not-exist.toml")
	require.Error(t, err)
}
