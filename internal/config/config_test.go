package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		check func(t *testing.T, cfg *Config)
	}{
		{
			name: "dev defaults",
			env:  map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8080", cfg.Port)
				assert.Equal(t, "dev", cfg.Environment)
				assert.Equal(t, "dev_", cfg.TablePrefix)
				assert.True(t, cfg.Debug)
				assert.True(t, cfg.AutoMigrate)
				assert.Equal(t, DefaultInitialSprintDays, cfg.InitialSprintDays)
				assert.Equal(t, 10, cfg.LogMaxFiles)
			},
		},
		{
			name: "prod turns off debug and migrations",
			env:  map[string]string{"ENVIRONMENT": "prod"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "prod_", cfg.TablePrefix)
				assert.False(t, cfg.Debug)
				assert.False(t, cfg.AutoMigrate)
			},
		},
		{
			name: "explicit overrides",
			env: map[string]string{
				"ENVIRONMENT":         "test",
				"TABLE_PREFIX":        "ci_",
				"INITIAL_SPRINT_DAYS": "7",
				"AUTO_MIGRATE":        "false",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "ci_", cfg.TablePrefix)
				assert.Equal(t, 7, cfg.InitialSprintDays)
				assert.False(t, cfg.AutoMigrate)
			},
		},
		{
			name: "bad integers fall back to defaults",
			env:  map[string]string{"INITIAL_SPRINT_DAYS": "-3", "LOG_MAX_FILES": "lots"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultInitialSprintDays, cfg.InitialSprintDays)
				assert.Equal(t, 10, cfg.LogMaxFiles)
			},
		},
	}

	keys := []string{"ENVIRONMENT", "PORT", "TABLE_PREFIX", "INITIAL_SPRINT_DAYS", "LOG_MAX_FILES", "AUTO_MIGRATE", "DEBUG"}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range keys {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			tt.check(t, Load())
		})
	}
}

func TestSetupLogFile_RotatesOldFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"2020-01-01T00-00-00", "2020-01-02T00-00-00", "2020-01-03T00-00-00"} {
		path := filepath.Join(dir, logFilePrefix+name+".log")
		require.NoError(t, os.WriteFile(path, nil, 0644))
	}

	f, err := SetupLogFile(dir, 2)
	require.NoError(t, err)
	defer f.Close()

	files, err := filepath.Glob(filepath.Join(dir, logFilePrefix+"*.log"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, f.Name())
}
