// internal/config/config.go
// Package config resolves CLI configuration from defaults, an optional YAML
// file, PRIMERSCORE_* environment variables and flags (in increasing
// precedence) and validates it into a Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"primerscore/core/params"
	"primerscore/core/score"
	"primerscore/core/thermo"
)

// Defaults shared by flags and viper.
const (
	FileName       = ".primerscore"
	EnvPrefix      = "PRIMERSCORE"
	DefaultParams  = "legacy"
	DefaultOligo   = "250nM"
	DefaultNa      = "50mM"
	DefaultMg      = "0mM"
	DefaultDNTP    = "0mM"
	DefaultOutput  = FormatTable
	DefaultColor   = "auto"
	DefaultWorkers = 0 // runtime.NumCPU()
)

// Format selects the renderer.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
)

// ColorMode controls ANSI coloring of table output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// RawInput holds the unvalidated values viper resolved.
type RawInput struct {
	Params      string  `mapstructure:"params"`
	Oligo       string  `mapstructure:"oligo"`
	Na          string  `mapstructure:"na"`
	Mg          string  `mapstructure:"mg"`
	DNTP        string  `mapstructure:"dntp"`
	Temp        float64 `mapstructure:"temp"`
	Preset      string  `mapstructure:"preset"`
	PresetsFile string  `mapstructure:"presets-file"`
	Output      string  `mapstructure:"output"`
	Color       string  `mapstructure:"color"`
	Workers     int     `mapstructure:"workers"`
	CacheSize   int     `mapstructure:"cache-size"`
	CacheStats  bool    `mapstructure:"cache-stats"`
	LogLevel    string  `mapstructure:"log-level"`
	LogFile     string  `mapstructure:"log-file"`
	Quiet       bool    `mapstructure:"quiet"`
}

// Config is the validated configuration every command runs with.
type Config struct {
	Params     *params.Set
	Conditions thermo.Conditions
	PresetName string
	Weights    score.Weights
	Presets    map[string]score.Weights // loaded from PresetsFile, may be empty
	Output     Format
	Color      ColorMode
	Workers    int
	CacheSize  int // 0: unbounded
	CacheStats bool
	LogLevel   string
	LogFile    string
	Quiet      bool
	File       string // config file used, if any
}

// Init points v at the config file and environment. An explicit path wins
// over the search in "." and $HOME.
func Init(v *viper.Viper, configFile string) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
}

// SetDefaults registers every key so that env overrides reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("params", DefaultParams)
	v.SetDefault("oligo", DefaultOligo)
	v.SetDefault("na", DefaultNa)
	v.SetDefault("mg", DefaultMg)
	v.SetDefault("dntp", DefaultDNTP)
	v.SetDefault("temp", thermo.DefaultTempC)
	v.SetDefault("preset", score.DefaultPreset)
	v.SetDefault("presets-file", "")
	v.SetDefault("output", string(DefaultOutput))
	v.SetDefault("color", DefaultColor)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("cache-size", 0)
	v.SetDefault("cache-stats", false)
	v.SetDefault("log-level", "")
	v.SetDefault("log-file", "")
	v.SetDefault("quiet", false)
}

// Load reads the config file (a missing one is fine), unmarshals every
// resolved value and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	var in RawInput
	if err := v.Unmarshal(&in); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	cfg, err := ProcessAndValidate(in)
	if err != nil {
		return nil, err
	}
	cfg.File = v.ConfigFileUsed()
	return cfg, nil
}

// ProcessAndValidate parses and range-checks raw input. Every failure wraps
// params.ErrInvalidConfiguration.
func ProcessAndValidate(in RawInput) (*Config, error) {
	bad := func(format string, a ...any) error {
		return fmt.Errorf("%w: %s", params.ErrInvalidConfiguration, fmt.Sprintf(format, a...))
	}
	cfg := &Config{
		CacheStats: in.CacheStats,
		LogLevel:   in.LogLevel,
		LogFile:    in.LogFile,
		Quiet:      in.Quiet,
	}

	set, err := params.ByName(strings.ToLower(strings.TrimSpace(in.Params)))
	if err != nil {
		return nil, err
	}
	cfg.Params = set

	cond := thermo.Conditions{TempC: in.Temp}
	for _, c := range []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"oligo", in.Oligo, &cond.OligoM},
		{"na", in.Na, &cond.NaM},
		{"mg", in.Mg, &cond.MgM},
		{"dntp", in.DNTP, &cond.DNTPM},
	} {
		v, err := thermo.ParseConc(c.raw)
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", c.name, err)
		}
		*c.dst = v
	}
	if err := cond.ValidateFor(set); err != nil {
		return nil, err
	}
	cfg.Conditions = cond

	if in.PresetsFile != "" {
		f, err := os.Open(in.PresetsFile)
		if err != nil {
			return nil, bad("presets file: %v", err)
		}
		cfg.Presets, err = score.LoadPresets(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.PresetsFile, err)
		}
	}
	cfg.PresetName = in.Preset
	if cfg.PresetName == "" {
		cfg.PresetName = score.DefaultPreset
	}
	if w, ok := cfg.Presets[cfg.PresetName]; ok {
		cfg.Weights = w
	} else if cfg.Weights, err = score.Preset(cfg.PresetName); err != nil {
		return nil, err
	}

	switch f := Format(strings.ToLower(in.Output)); f {
	case FormatTable, FormatJSON, FormatJSONL:
		cfg.Output = f
	default:
		return nil, bad("unknown output format %q (table|json|jsonl)", in.Output)
	}

	if cfg.Color, err = parseColor(in.Color); err != nil {
		return nil, err
	}

	switch {
	case in.Workers < 0:
		return nil, bad("workers must be >= 0, got %d", in.Workers)
	case in.Workers == 0:
		cfg.Workers = runtime.NumCPU()
	default:
		cfg.Workers = in.Workers
	}
	if in.CacheSize < 0 {
		return nil, bad("cache-size must be >= 0, got %d", in.CacheSize)
	}
	cfg.CacheSize = in.CacheSize
	return cfg, nil
}

// parseColor accepts auto plus the usual boolean spellings.
func parseColor(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always", "yes", "on":
		return ColorAlways, nil
	case "never", "no", "off":
		return ColorNever, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return "", fmt.Errorf("%w: invalid color %q (auto|yes|no)", params.ErrInvalidConfiguration, s)
	}
	if b {
		return ColorAlways, nil
	}
	return ColorNever, nil
}
