package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/arloliu/valuecontainer/container"
	"github.com/arloliu/valuecontainer/format"
)

// config holds the resolved converter settings.
type config struct {
	Target    format.SerializationFormat
	Pretty    bool
	Lenient   bool
	MaxValues int
	LogLevel  zerolog.Level
}

func defaultConfig() config {
	return config{
		Target:    format.FormatJSONV2,
		MaxValues: container.DefaultMaxValues,
		LogLevel:  zerolog.WarnLevel,
	}
}

// containerconv config.toml keys.
type fileConfig struct {
	Target    string `toml:"target"`
	Pretty    bool   `toml:"pretty"`
	Lenient   bool   `toml:"lenient"`
	MaxValues int    `toml:"max_values"`
	LogLevel  string `toml:"log_level"`
}

// loadConfig overlays the keys defined in the TOML file at path onto cfg.
func loadConfig(path string, cfg *config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("target") {
		if err := cfg.setTarget(raw.Target); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	if meta.IsDefined("pretty") {
		cfg.Pretty = raw.Pretty
	}
	if meta.IsDefined("lenient") {
		cfg.Lenient = raw.Lenient
	}
	if meta.IsDefined("max_values") {
		cfg.MaxValues = raw.MaxValues
	}
	if meta.IsDefined("log_level") {
		if err := cfg.setLogLevel(raw.LogLevel); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	return nil
}

func (c *config) setTarget(name string) error {
	f, ok := format.ParseSerializationFormat(name)
	if !ok {
		return fmt.Errorf("unsupported target format %q (expected v2, cpp, python or wire)", strings.TrimSpace(name))
	}
	c.Target = f

	return nil
}

func (c *config) setLogLevel(name string) error {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	c.LogLevel = level

	return nil
}
