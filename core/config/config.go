package config

import (
	"reflect"
	"strings"

	"prunderground/core/cache"
	"prunderground/core/database"
	"prunderground/core/fio"
	"prunderground/core/logger"
	"prunderground/core/server"
	"prunderground/core/storage"
	"prunderground/feature/catalog"
	"prunderground/feature/exchange"
	"prunderground/feature/inventory"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the ops HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the snapshot archive (MinIO/S3).
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the database connection.
	Database database.Config `mapstructure:"database"`
	// FIO holds configuration for the upstream gateway.
	FIO fio.Config `mapstructure:"fio"`
	// Cache holds configuration for the shared TTL cache.
	Cache cache.Config `mapstructure:"cache"`
	// Sync holds configuration for per-user inventory sync.
	Sync inventory.Config `mapstructure:"sync"`
	// Exchange holds configuration for the CX price job.
	Exchange exchange.Config `mapstructure:"exchange"`
	// Catalog holds configuration for planet and material sync.
	Catalog catalog.Config `mapstructure:"catalog"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Missing .env is fine outside development
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// SYNC_TTL -> sync.ttl
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set the default, even when empty, so AutomaticEnv sees the key
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
