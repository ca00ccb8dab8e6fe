package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/etnz/fmstats"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config is the user configuration of a report.
type Config struct {
	Threshold float64            `mapstructure:"threshold"`
	Lenient   bool               `mapstructure:"lenient"`
	Reference string             `mapstructure:"reference"`
	Rates     map[string]float64 `mapstructure:"rates"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix("FMSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// rates has no default: viper would merge it key by key with the file's table.
	v.SetDefault("threshold", fmstats.DefaultThreshold.InexactFloat64())
	v.SetDefault("lenient", false)
	v.SetDefault("reference", fmstats.DefaultRates().Reference)
	return v
}

// LoadConfig reads the configuration file 'name'. A missing file is not an error,
// defaults and environment variables apply.
func LoadConfig(name string) (*Config, error) {
	v := newViper()
	if name != "" {
		v.SetConfigFile(name)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %q: %w", name, err)
			}
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &c, nil
}

// Options converts the configuration into processing options.
func (c *Config) Options() (fmstats.Options, error) {
	// fmstats.Options reads a zero threshold as the default one.
	if c.Threshold <= 0 {
		return fmstats.Options{}, fmt.Errorf("invalid threshold %v, must be greater than zero", c.Threshold)
	}
	rates := fmstats.DefaultRates()
	rates.Reference = strings.ToUpper(c.Reference)
	if len(c.Rates) > 0 {
		rates.Weights = make(map[string]decimal.Decimal, len(c.Rates))
		for cur, w := range c.Rates {
			rates.Weights[strings.ToUpper(cur)] = decimal.NewFromFloat(w)
		}
	}
	if err := rates.Validate(); err != nil {
		return fmstats.Options{}, err
	}
	return fmstats.Options{
		Threshold: decimal.NewFromFloat(c.Threshold),
		Rates:     rates,
		Lenient:   c.Lenient,
	}, nil
}
