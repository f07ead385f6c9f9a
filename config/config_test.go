package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filecabinet/record"
	"filecabinet/validation"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, StorageMemory, cfg.Storage.Kind)
	assert.Contains(t, cfg.Validation.Rules, validation.PolicyCustom)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  kind: file
  path: people.db
validation:
  policy: strict
  rules:
    strict:
      firstName: {min: 4, max: 10}
      lastName: {min: 4, max: 10}
      dateOfBirth: {from: "2000-01-01"}
      sex: {forbidden: "X"}
      weight: {min: 1}
      height: {min: 1}
log:
  level: debug
  format: json
http:
  addr: ":9090"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, StorageConfig{Kind: StorageFile, Path: "people.db"}, cfg.Storage)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.True(t, cfg.Metrics.Enabled, "untouched sections keep their defaults")
	assert.Contains(t, cfg.Validation.Rules, validation.PolicyDefault)

	v, err := cfg.Validator()
	require.NoError(t, err)
	err = v.Validate(record.Fields{FirstName: "Ann", LastName: "Leeson"})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, record.FieldFirstName, verr.Field)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "storage:\n  kind: memory\n  colour: blue\n",
		"unknown kind":   "storage:\n  kind: cloud\n",
		"missing path":   "storage:\n  kind: file\n  path: \"\"\n",
		"unknown policy": "validation:\n  policy: lenient\n",
		"bad format":     "log:\n  format: xml\n",
		"bad yaml":       "storage: [\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Named("store").Info("visible")
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "store", entry["logger"])

	_, err = NewLogger(LogConfig{Level: "loud", Format: "json"}, &buf)
	assert.Error(t, err)
	_, err = NewLogger(LogConfig{Level: "info", Format: "xml"}, &buf)
	assert.Error(t, err)
}
