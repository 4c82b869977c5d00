package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/zephyrtronium/calculate/decimal"
)

// config holds settings that can come from a file or from flags.
type config struct {
	// Precision is the number of extra digits computed for inexact quotients.
	Precision int `yaml:"precision"`
	// MaxDigits bounds the mantissa of every number. Zero means no limit.
	MaxDigits int `yaml:"max_digits"`
	// Format is "exact", "sci", or a fmt verb for *big.Float such as "%g".
	Format string `yaml:"format"`
	// HistoryFile is a file that each result is appended to.
	HistoryFile string `yaml:"history_file"`
}

func defaultConfig() config {
	return config{
		Precision: decimal.DefaultContext.Prec,
		MaxDigits: decimal.DefaultContext.MaxDigits,
		Format:    "exact",
	}
}

// loadConfig reads a YAML config file over the defaults. Unknown keys are
// errors.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (cfg config) validate() error {
	if cfg.Precision < 0 {
		return errors.Errorf("precision (%d) must not be negative", cfg.Precision)
	}
	if cfg.MaxDigits < 0 {
		return errors.Errorf("max digits (%d) must not be negative", cfg.MaxDigits)
	}
	if cfg.Format == "" {
		return errors.New("format must not be empty")
	}
	return nil
}
