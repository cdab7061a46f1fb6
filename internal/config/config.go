package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Default upstream endpoints.
const (
	DefaultPoolsURL      = "https://api01.waxonedge.app/pools/"
	DefaultAlcorPoolsURL = "https://wax.alcor.exchange/api/v2/swap/pools"
	DefaultMarketsURL    = "https://api01.waxonedge.app/markets/"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	PGDSN          string
	PoolsURL       string
	AlcorPoolsURL  string
	MarketsURL     string
	AlcorPrecision int
	HTTPTimeout    time.Duration
	Out            string
	Listen         string
	LogLevel       string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("WAXSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("pools-url", DefaultPoolsURL)
	v.SetDefault("alcor-pools-url", DefaultAlcorPoolsURL)
	v.SetDefault("markets-url", DefaultMarketsURL)
	v.SetDefault("alcor-default-precision", 8)
	v.SetDefault("http-timeout", 15*time.Second)
	v.SetDefault("listen", ":8080")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		PGDSN:          v.GetString("pg-dsn"),
		PoolsURL:       v.GetString("pools-url"),
		AlcorPoolsURL:  v.GetString("alcor-pools-url"),
		MarketsURL:     v.GetString("markets-url"),
		AlcorPrecision: v.GetInt("alcor-default-precision"),
		HTTPTimeout:    v.GetDuration("http-timeout"),
		Out:            v.GetString("out"),
		Listen:         v.GetString("listen"),
		LogLevel:       v.GetString("log-level"),
	}

	return cfg, nil
}
