package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the server settings. The session token is the authorized
// session handle produced by whatever auth flow the operator uses; this
// server only consumes it.
type Config struct {
	InstanceURL  string `mapstructure:"instance_url"`
	SessionToken string `mapstructure:"session_token"`
	APIVersion   string `mapstructure:"api_version"`
	ListenAddr   string `mapstructure:"listen_addr"`
}

// Load reads settings from the environment (SF_ prefix) and, when given,
// a config file. Environment values win over file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SF")
	v.AutomaticEnv()

	for _, key := range []string{"instance_url", "session_token", "api_version", "listen_addr"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	v.SetDefault("api_version", "59.0")
	v.SetDefault("listen_addr", ":3002")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.InstanceURL == "" {
		return nil, fmt.Errorf("instance URL is required (set SF_INSTANCE_URL)")
	}
	return &cfg, nil
}
