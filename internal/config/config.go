package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIBaseURL string `mapstructure:"API_BASE_URL"`
	SocketURL  string `mapstructure:"SOCKET_URL"`
	Env        string `mapstructure:"ENV"`

	SessionDBPath string `mapstructure:"SESSION_DB_PATH"`
	StatusPort    string `mapstructure:"STATUS_PORT"`

	HTTPTimeout  time.Duration `mapstructure:"HTTP_TIMEOUT"`
	RetryMax     int           `mapstructure:"RETRY_MAX"`
	RetryBackoff time.Duration `mapstructure:"RETRY_BACKOFF"`

	LocationInterval  time.Duration `mapstructure:"LOCATION_INTERVAL"`
	LocationDistanceM float64       `mapstructure:"LOCATION_DISTANCE_M"`
}

func Load() (Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("API_BASE_URL", "http://localhost:3001/api")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SESSION_DB_PATH", "khaaonow.db")
	viper.SetDefault("STATUS_PORT", "8081")
	viper.SetDefault("HTTP_TIMEOUT", 30*time.Second)
	viper.SetDefault("RETRY_MAX", 2)
	viper.SetDefault("RETRY_BACKOFF", time.Second)
	viper.SetDefault("LOCATION_INTERVAL", 30*time.Second)
	viper.SetDefault("LOCATION_DISTANCE_M", 50.0)

	// A missing .env file is fine; environment variables still apply.
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.SocketURL == "" {
		cfg.SocketURL = deriveSocketURL(cfg.APIBaseURL)
	}
	return cfg, nil
}

// deriveSocketURL maps the REST base URL onto the realtime endpoint: same
// host, ws scheme, no /api suffix.
func deriveSocketURL(apiURL string) string {
	u := strings.TrimSuffix(apiURL, "/api")
	u = strings.Replace(u, "https://", "wss://", 1)
	u = strings.Replace(u, "http://", "ws://", 1)
	return u + "/ws"
}
