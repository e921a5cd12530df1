package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration keys shared by flags, environment and config file.
const (
	keyWidth    = "width"
	keyHeight   = "height"
	keyStrategy = "strategy"
	keyAddr     = "addr"
	keyLogLevel = "log-level"

	envPrefix = "GRIDPATH"
)

// config is the resolved process configuration.
type config struct {
	Width    int
	Height   int
	Strategy string
	Addr     string
	LogLevel string
}

// setDefaults registers the fallback for every key.
func setDefaults(v *viper.Viper) {
	v.SetDefault(keyWidth, 10)
	v.SetDefault(keyHeight, 10)
	v.SetDefault(keyStrategy, "astar")
	v.SetDefault(keyAddr, ":8080")
	v.SetDefault(keyLogLevel, "info")
}

// loadConfig wires the environment and the optional config file into v.
// A missing dotenv file is not an error; a missing --config file is.
func loadConfig(v *viper.Viper, dotenv, file string) error {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return nil
}

// readConfig snapshots the resolved values.
func readConfig(v *viper.Viper) config {
	return config{
		Width:    v.GetInt(keyWidth),
		Height:   v.GetInt(keyHeight),
		Strategy: v.GetString(keyStrategy),
		Addr:     v.GetString(keyAddr),
		LogLevel: v.GetString(keyLogLevel),
	}
}

// newLogger builds a text logger writing to w at the named level
// (debug, info, warn or error).
func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
