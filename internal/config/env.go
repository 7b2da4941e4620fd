package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const envPrefix = "TUIDLE_"

// LoadDotEnv loads a .env file from the working directory when present.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	return godotenv.Load()
}

// ApplyEnv overlays TUIDLE_* environment variables onto cfg.
// Values already set by the file are replaced; CLI flags still win later.
func ApplyEnv(cfg *FileConfig) {
	if v, ok := lookup("WORDS"); ok {
		cfg.Game.Words = &v
	}
	if v, ok := lookup("SCHEME"); ok {
		cfg.Game.Scheme = &v
	}
	if v, ok := lookup("EPOCH"); ok {
		cfg.Game.Epoch = &v
	}
	if v, ok := lookup("STRICT"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Game.Strict = &b
		}
	}
	if v, ok := lookup("DB"); ok {
		cfg.Game.DB = &v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		cfg.Log.Level = &v
	}
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(envPrefix + name)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}
