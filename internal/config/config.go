package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsvensson/chromakit/internal/color"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. CHROMAKIT_MIX_WEIGHT.
const EnvPrefix = "CHROMAKIT"

// Setting keys. Nested keys map to sections in the config file and to
// underscore-joined environment variables.
const (
	KeyMixWeight = "mix.weight"
	KeyMixModel  = "mix.model"
	KeyPalette   = "generate.palette"
	KeyTemplates = "generate.templates"
	KeyOut       = "generate.out"
	KeyCSSPrefix = "generate.css_prefix"
	KeyVerbosity = "log.verbosity"
	KeyLogFile   = "log.file"
)

// Settings holds the CLI defaults after merging flags, environment and config file.
type Settings struct {
	MixWeight float64
	MixModel  color.Model
	Palette   string
	Templates string
	Out       string
	CSSPrefix string
	Verbosity int
	LogFile   string
}

// New returns a viper instance with defaults and environment binding in place.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyMixWeight, 0.5)
	v.SetDefault(KeyMixModel, string(color.ModelRGB))
	v.SetDefault(KeyPalette, "palette.hcl")
	v.SetDefault(KeyTemplates, "templates")
	v.SetDefault(KeyOut, "output")
	v.SetDefault(KeyCSSPrefix, "")
	v.SetDefault(KeyVerbosity, 0)
	v.SetDefault(KeyLogFile, "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v. With an empty path it looks for
// chromakit.{yaml,toml,json} in the working directory and tolerates its absence;
// an explicit path must exist.
func Load(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("chromakit")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// FromViper extracts and validates Settings.
func FromViper(v *viper.Viper) (Settings, error) {
	s := Settings{
		MixWeight: v.GetFloat64(KeyMixWeight),
		MixModel:  color.Model(strings.ToLower(v.GetString(KeyMixModel))),
		Palette:   v.GetString(KeyPalette),
		Templates: v.GetString(KeyTemplates),
		Out:       v.GetString(KeyOut),
		CSSPrefix: v.GetString(KeyCSSPrefix),
		Verbosity: v.GetInt(KeyVerbosity),
		LogFile:   v.GetString(KeyLogFile),
	}

	if s.MixModel != color.ModelRGB && s.MixModel != color.ModelHSL {
		return Settings{}, fmt.Errorf("%s: unknown model %q (valid: rgb, hsl)", KeyMixModel, s.MixModel)
	}
	if s.MixWeight < 0 || s.MixWeight > 1 {
		return Settings{}, fmt.Errorf("%s: %v is outside [0, 1]", KeyMixWeight, s.MixWeight)
	}
	return s, nil
}

// MixOptions turns the mix defaults into engine options.
func (s Settings) MixOptions() []color.MixOption {
	return []color.MixOption{
		color.WithWeight(s.MixWeight),
		color.WithModel(s.MixModel),
	}
}

// LogPath returns the log file for commonlog.Configure, or nil for stderr.
func (s Settings) LogPath() *string {
	if s.LogFile == "" {
		return nil
	}
	return &s.LogFile
}
