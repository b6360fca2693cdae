package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the defaults shared by every command. Values come from the
// environment, optionally seeded from a .env file, and are overridden by
// flags.
type Config struct {
	Width   int
	Height  int
	Kind    string
	Sheet   string
	Verbose bool
}

const envPrefix = "CHARTKIT_"

// LoadConfig reads the given env files (".env" when none are named) and the
// CHARTKIT_* variables. Missing env files are not an error.
func LoadConfig(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed loading env file: %w", err)
	}
	var cfg Config
	var err error
	if cfg.Width, err = envInt("WIDTH"); err != nil {
		return Config{}, err
	}
	if cfg.Height, err = envInt("HEIGHT"); err != nil {
		return Config{}, err
	}
	cfg.Kind = os.Getenv(envPrefix + "KIND")
	cfg.Sheet = os.Getenv(envPrefix + "SHEET")
	if v := os.Getenv(envPrefix + "VERBOSE"); v != "" {
		if cfg.Verbose, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("invalid %sVERBOSE: %w", envPrefix, err)
		}
	}
	return cfg, nil
}

func envInt(name string) (int, error) {
	v := os.Getenv(envPrefix + name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s%s %q", envPrefix, name, v)
	}
	return n, nil
}
