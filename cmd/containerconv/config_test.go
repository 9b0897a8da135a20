package main

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/valuecontainer/container"
	"github.com/arloliu/valuecontainer/format"
)

func TestLoadConfig_DefaultsAndOverrides(t *testing.T) {
	path := writeFile(t, "config.toml", `
target = "cpp"
pretty = true
max_values = 250
log_level = "DEBUG"
`)

	cfg := defaultConfig()
	require.NoError(t, loadConfig(path, &cfg))
	require.Equal(t, format.FormatCppJSON, cfg.Target)
	require.True(t, cfg.Pretty)
	require.False(t, cfg.Lenient)
	require.Equal(t, 250, cfg.MaxValues)
	require.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
}

func TestLoadConfig_UndefinedKeysKeepDefaults(t *testing.T) {
	path := writeFile(t, "config.toml", `lenient = true`)

	cfg := defaultConfig()
	require.NoError(t, loadConfig(path, &cfg))
	require.True(t, cfg.Lenient)
	require.Equal(t, format.FormatJSONV2, cfg.Target)
	require.Equal(t, container.DefaultMaxValues, cfg.MaxValues)
	require.Equal(t, zerolog.WarnLevel, cfg.LogLevel)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad target", `target = "xml"`, "unsupported target format"},
		{"bad log level", `log_level = "loud"`, "invalid log level"},
		{"unknown key", `colour = "red"`, "unknown key"},
		{"malformed TOML", `target = `, "load config"},
		{"wrong type", `pretty = "yes"`, "load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			err := loadConfig(writeFile(t, "config.toml", tt.content), &cfg)
			require.ErrorContains(t, err, tt.want)
		})
	}

	cfg := defaultConfig()
	require.Error(t, loadConfig("/nonexistent/containerconv.toml", &cfg))
}
