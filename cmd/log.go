package cmd

import (
	"fmt"
	"os"

	"github.com/etnz/fmstats"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a logger writing on stderr, at debug level in verbose mode.
func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if *verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

// loadOptions reads the configuration file and returns the processing options.
func loadOptions(lenient bool) (fmstats.Options, error) {
	config, err := LoadConfig(*configFile)
	if err != nil {
		return fmstats.Options{}, err
	}
	config.Lenient = config.Lenient || lenient
	opts, err := config.Options()
	if err != nil {
		return fmstats.Options{}, err
	}
	opts.Logger = newLogger()
	return opts, nil
}
