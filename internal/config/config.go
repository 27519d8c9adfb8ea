package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode           string        `mapstructure:"mode"`
	Port           int           `mapstructure:"port"`
	LogLevel       string        `mapstructure:"log_level"`
	ReadLimit      int64         `mapstructure:"read_limit"`
	ICEServersJSON string        `mapstructure:"ice_servers_json"`
	PruneInterval  time.Duration `mapstructure:"prune_interval"`
	StaleAfter     time.Duration `mapstructure:"stale_after"`

	// ICEServers is derived from ICEServersJSON, kept opaque so the entries
	// are forwarded verbatim in id_assigned.
	ICEServers []json.RawMessage `mapstructure:"-"`
}

func defaults() *Config {
	return &Config{
		Mode:          "release",
		Port:          8080,
		LogLevel:      "info",
		ReadLimit:     32768,
		PruneInterval: 60 * time.Second,
		StaleAfter:    60 * time.Second,
		ICEServers:    DefaultICEServers,
	}
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ice_servers_json", "")
	v.SetDefault("prune_interval", "60s")
	v.SetDefault("stale_after", "60s")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Info().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Malformed configuration never aborts startup.
		return defaults(), fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ICEServers = ParseICEServers(cfg.ICEServersJSON)

	log.Info().Str("module", "config").
		Str("mode", cfg.Mode).
		Int("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Int("ice_servers", len(cfg.ICEServers)).
		Msg("configuration ready")
	return &cfg, nil
}
