// Package config loads runtime settings for the server and CLI from an
// optional taxfill.yaml plus TAXFILL_* environment overrides.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/csg33k/f1040-filler/internal/errors"
)

// Config holds the settings shared by the server and the taxfill CLI.
type Config struct {
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	Forms    Forms    `mapstructure:"forms"`
	Logging  Logging  `mapstructure:"logging"`
}

type Server struct {
	Addr string `mapstructure:"addr"`
}

type Database struct {
	Path string `mapstructure:"path"`
}

type Forms struct {
	// TemplateDir holds the blank IRS PDF templates, one per form
	// (f1040.pdf and friends).
	TemplateDir string `mapstructure:"template_dir"`
	// WorkDir receives one subdirectory per processing run with the
	// uploaded configuration and the filled output.
	WorkDir string `mapstructure:"work_dir"`
}

type Logging struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Load reads taxfill.yaml from the working directory or ~/.config/taxfill
// and applies environment overrides. A missing config file is fine, the
// defaults cover every key.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.path", "f1040.db")
	v.SetDefault("forms.template_dir", "templates")
	v.SetDefault("forms.work_dir", "work")
	v.SetDefault("logging.json", false)
	v.SetDefault("logging.debug", false)

	v.SetConfigName("taxfill")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/taxfill")

	v.SetEnvPrefix("TAXFILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	return &cfg, nil
}
