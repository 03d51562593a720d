package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.NotZero(t, cfg.Global.ReportStorageEpochDuration)
}

func TestLoadParsesDurationsAndDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	content := `
logging:
  level: debug

global:
  report_storage_epoch_duration: 336h
  max_batch_duration: 24h
  supported_hpke_kems: [32]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format, "unset fields still get defaults")
	assert.EqualValues(t, 336*3600, cfg.Global.ReportStorageEpochDuration)
	assert.EqualValues(t, 24*3600, cfg.Global.MaxBatchDuration)
	require.Len(t, cfg.Global.SupportedHpkeKems, 1)
	assert.EqualValues(t, 32, cfg.Global.SupportedHpkeKems[0])
}

func TestLoadRejectsTooManyHpkeKems(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")

	kems := make([]string, 0, 257)
	for i := 0; i < 257; i++ {
		kems = append(kems, "1")
	}
	content := "global:\n  max_batch_duration: 1h\n  report_storage_epoch_duration: 1h\n  supported_hpke_kems: [" +
		joinInts(kems) + "]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func joinInts(vals []string) string {
	out := ""
	for i, v := range vals {
		if i > 0 {
			out += ","
		}
		out += v
	}
	return out
}

func TestSaveConfigRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sub", "config.yaml")

	cfg := defaultConfig()
	cfg.Logging.Level = "WARN"

	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "WARN", loaded.Logging.Level)
}
