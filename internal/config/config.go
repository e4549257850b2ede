package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"seka-server/internal/util"
)

// Config provides configuration for the Seka server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Game           struct {
		// PlatformFeePercent is the percentage of each pot kept by the house
		PlatformFeePercent int `yaml:"platformFeePercent" envconfig:"platform_fee_percent"`
		DefaultAnte        int `yaml:"defaultAnte" envconfig:"default_ante"`
		MaxBettingRounds   int `yaml:"maxBettingRounds" envconfig:"max_betting_rounds"`
	}
	Log struct {
		Level string `yaml:"level"`
	}
}

var config Config

// DefaultConfig returns a configuration with the default values
func DefaultConfig() Config {
	c := Config{}
	c.PGDSN = "host=localhost port=5432 user=postgres sslmode=disable"
	c.MigrationsPath = "./sql"
	c.Game.PlatformFeePercent = 5
	c.Game.DefaultAnte = 100
	c.Game.MaxBettingRounds = 3
	c.Log.Level = "info"
	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("SEKA_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("seka", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
