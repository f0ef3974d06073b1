package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const configName = "rampage.cfg"

// RunConfig holds settings for the headless runner.
type RunConfig struct {
	LogLevel    string  `json:"logLevel" mapstructure:"logLevel"`
	Level       string  `json:"level" mapstructure:"level"`
	Seed        int64   `json:"seed" mapstructure:"seed"`
	Ticks       int     `json:"ticks" mapstructure:"ticks"`
	Dt          float64 `json:"dt" mapstructure:"dt"`
	Pedestrians int     `json:"pedestrians" mapstructure:"pedestrians"`
	Hostiles    int     `json:"hostiles" mapstructure:"hostiles"`
	PrintEvery  int     `json:"printEvery" mapstructure:"printEvery"`
	Watch       bool    `json:"watch" mapstructure:"watch"`
	PrefabDir   string  `json:"prefabDir" mapstructure:"prefabDir"`
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("level", "city.json")
	viper.SetDefault("seed", 1)
	viper.SetDefault("ticks", 3600)
	viper.SetDefault("dt", 1.0/60)
	viper.SetDefault("pedestrians", 60)
	viper.SetDefault("hostiles", 8)
	viper.SetDefault("printEvery", 60)
	viper.SetDefault("watch", false)
	viper.SetDefault("prefabDir", "prefabs")
}

// Load sets defaults and reads rampage.cfg.json from configDir when present.
// Environment variables prefixed RAMPAGE_ override both.
func Load(configDir string) error {
	setDefaults()

	viper.SetEnvPrefix("rampage")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(configName)
	viper.SetConfigType("json")
	if configDir != "" {
		viper.AddConfigPath(configDir)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// Run decodes the loaded settings.
func Run() (RunConfig, error) {
	var cfg RunConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: decode: %w", err)
	}
	if cfg.Dt <= 0 {
		return cfg, fmt.Errorf("config: dt must be positive, got %v", cfg.Dt)
	}
	if cfg.Ticks < 0 || cfg.Pedestrians < 0 || cfg.Hostiles < 0 {
		return cfg, errors.New("config: ticks and crowd sizes must not be negative")
	}
	return cfg, nil
}

// LogLevel maps the logLevel setting onto zerolog, defaulting to info.
func LogLevel() zerolog.Level {
	switch strings.ToUpper(viper.GetString("logLevel")) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
