package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VolumeProfile/internal/calculator"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 100.0, cfg.Profile.Bins)
	assert.Equal(t, 255.0, cfg.Profile.Window)
	assert.Equal(t, "range", cfg.Profile.Layout)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, int32(4), cfg.Output.Precision)
	assert.Equal(t, 1, cfg.Output.Tail)
	assert.Equal(t, "info", cfg.Log.Level)

	// input.path has no default
	assert.Error(t, cfg.Validate())
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
profile:
  bins: 20
  window: 50
  layout: origin
input:
  path: data/es.csv
output:
  format: json
schedule:
  cron: "0 */5 * * * *"
`)
	t.Setenv("VOLPROFILE_PROFILE_WINDOW", "60")
	t.Setenv("VOLPROFILE_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 20.0, cfg.Profile.Bins)
	assert.Equal(t, 60.0, cfg.Profile.Window)
	assert.Equal(t, "data/es.csv", cfg.Input.Path)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "0 */5 * * * *", cfg.Schedule.Cron)
	assert.Equal(t, "debug", cfg.Log.Level)

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, calculator.Params{Bins: 20, Window: 60, Layout: calculator.LayoutOrigin}, p)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
profile:
  window: 30
output:
  format: json
`))
	require.NoError(t, err)

	assert.Equal(t, 100.0, cfg.Profile.Bins)
	assert.Equal(t, 30.0, cfg.Profile.Window)
	assert.Equal(t, "range", cfg.Profile.Layout)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, int32(4), cfg.Output.Precision)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ExplicitZeroIsRejected(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		env   map[string]string
		want  error
		field string
	}{
		{
			name:  "bins zero in file",
			body:  "profile:\n  bins: 0\ninput:\n  path: s.csv\n",
			want:  calculator.ErrInvalidBins,
			field: "bins",
		},
		{
			name:  "window zero in file",
			body:  "profile:\n  window: 0\ninput:\n  path: s.csv\n",
			want:  calculator.ErrInvalidWindow,
			field: "window",
		},
		{
			name:  "bins zero in env",
			body:  "input:\n  path: s.csv\n",
			env:   map[string]string{"VOLPROFILE_PROFILE_BINS": "0"},
			want:  calculator.ErrInvalidBins,
			field: "bins",
		},
		{
			name:  "env zero overrides file",
			body:  "profile:\n  bins: 20\ninput:\n  path: s.csv\n",
			env:   map[string]string{"VOLPROFILE_PROFILE_BINS": "0"},
			want:  calculator.ErrInvalidBins,
			field: "bins",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(writeConfig(t, tt.body))
			require.NoError(t, err)

			err = cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			var verr *calculator.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 0.0, verr.Value)
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "profile: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"fractional bins", func(c *Config) { c.Profile.Bins = 2.5 }, calculator.ErrInvalidBins},
		{"negative window", func(c *Config) { c.Profile.Window = -1 }, calculator.ErrInvalidWindow},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }, nil},
		{"unknown layout", func(c *Config) { c.Profile.Layout = "log" }, nil},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, nil},
		{"negative tail", func(c *Config) { c.Output.Tail = -1 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			require.NoError(t, err)
			cfg.Input.Path = "series.csv"
			require.NoError(t, cfg.Validate())

			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
