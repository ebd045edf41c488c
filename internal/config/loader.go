package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "QUIZ"

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"bank":      "bank.path",
	"format":    "bank.format",
	"tier":      "bank.tier",
	"max":       "bank.max_questions",
	"questions": "session.size",
	"seed":      "session.seed",
	"log-level": "logging.level",
	"no-color":  "no_color",
}

// Loader handles configuration loading
type Loader struct {
	configPath string
	flags      *pflag.FlagSet
}

// NewLoader creates a new config loader. Both arguments are optional.
func NewLoader(configPath string, flags *pflag.FlagSet) *Loader {
	return &Loader{
		configPath: configPath,
		flags:      flags,
	}
}

// Load resolves the configuration. Precedence, highest first: changed
// flags, environment, config file, defaults.
func (l *Loader) Load() (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if l.configPath != "" {
		v.SetConfigFile(l.configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if l.flags != nil {
		for name, key := range flagKeys {
			flag := l.flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("bank.path", cfg.Bank.Path)
	v.SetDefault("bank.format", cfg.Bank.Format)
	v.SetDefault("bank.tier", cfg.Bank.Tier)
	v.SetDefault("bank.max_questions", cfg.Bank.MaxQuestions)
	v.SetDefault("session.size", cfg.Session.Size)
	v.SetDefault("session.seed", cfg.Session.Seed)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.pretty", cfg.Logging.Pretty)
	v.SetDefault("no_color", cfg.NoColor)
}
