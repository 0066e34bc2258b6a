package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// Config is the full client configuration. Store identifiers are fixed
// deployment constants, not negotiated at runtime.
type Config struct {
	Store StoreConfig `mapstructure:"store"`
	Log   LogConfig   `mapstructure:"log"`
}

type StoreConfig struct {
	Endpoint    string            `mapstructure:"endpoint" envconfig:"STORE_ENDPOINT"`
	ProjectID   string            `mapstructure:"project_id" envconfig:"STORE_PROJECT_ID"`
	DatabaseID  string            `mapstructure:"database_id" envconfig:"STORE_DATABASE_ID"`
	Collections CollectionsConfig `mapstructure:"collections"`
	Buckets     BucketsConfig     `mapstructure:"buckets"`
	Timeout     time.Duration     `mapstructure:"timeout" envconfig:"STORE_TIMEOUT"`
}

// CollectionsConfig holds one collection ID per resource type.
type CollectionsConfig struct {
	Users        string `mapstructure:"users" envconfig:"STORE_USERS_COLLECTION"`
	UserProfiles string `mapstructure:"user_profiles" envconfig:"STORE_USER_PROFILES_COLLECTION"`
	Appointments string `mapstructure:"appointments" envconfig:"STORE_APPOINTMENTS_COLLECTION"`
	Medications  string `mapstructure:"medications" envconfig:"STORE_MEDICATIONS_COLLECTION"`
	Reminders    string `mapstructure:"reminders" envconfig:"STORE_REMINDERS_COLLECTION"`
}

// BucketsConfig holds one file-bucket ID per binary-asset category.
type BucketsConfig struct {
	Storage string `mapstructure:"storage" envconfig:"STORE_STORAGE_BUCKET"`
	Avatars string `mapstructure:"avatars" envconfig:"STORE_AVATARS_BUCKET"`
	Sounds  string `mapstructure:"sounds" envconfig:"STORE_SOUNDS_BUCKET"`
}

type LogConfig struct {
	Level string `mapstructure:"level" envconfig:"LOG_LEVEL"`
}

// LoadConfig reads config.yaml (working directory or ./config), then
// overlays HEALTHMASTER_* environment variables. Env wins over file.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := envconfig.Process("healthmaster", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment overrides: %w", err)
	}

	if cfg.Store.Timeout <= 0 {
		cfg.Store.Timeout = 30 * time.Second
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every fixed store identifier is present.
func (c *Config) Validate() error {
	switch {
	case c.Store.Endpoint == "":
		return fmt.Errorf("store.endpoint is required")
	case c.Store.ProjectID == "":
		return fmt.Errorf("store.project_id is required")
	case c.Store.DatabaseID == "":
		return fmt.Errorf("store.database_id is required")
	case c.Store.Collections.Users == "":
		return fmt.Errorf("store.collections.users is required")
	case c.Store.Collections.Appointments == "":
		return fmt.Errorf("store.collections.appointments is required")
	case c.Store.Collections.Medications == "":
		return fmt.Errorf("store.collections.medications is required")
	case c.Store.Collections.Reminders == "":
		return fmt.Errorf("store.collections.reminders is required")
	case c.Store.Collections.UserProfiles == "":
		return fmt.Errorf("store.collections.user_profiles is required")
	}
	return nil
}
