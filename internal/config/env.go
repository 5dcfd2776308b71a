package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv applies environment overrides on top of cfg and returns it.
// Unset or malformed variables leave the configured value alone.
func FromEnv(cfg *Config) *Config {
	if cfg == nil {
		cfg = Default()
	}

	switch strings.ToLower(strings.TrimSpace(os.Getenv("SOLITAIRE_DIFFICULTY"))) {
	case "easy":
		cfg.Rules.Difficulty = "easy"
	case "hard":
		cfg.Rules.Difficulty = "hard"
	}
	if val := getEnvInt("SOLITAIRE_ANIMATION_TICK_MS"); val > 0 {
		cfg.Animation.TickMS = val
	}
	if val := getEnvInt("SOLITAIRE_MAX_WASTES"); val > 0 {
		cfg.Layout.MaxWastes = val
	}

	return cfg
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
