package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App    AppConfig
	Store  StoreConfig
	Redis  RedisConfig
	Logger LoggerConfig
}

// AppConfig holds configuration for the HTTP server and API behavior
type AppConfig struct {
	Host string `mapstructure:"HTTP_HOST" validate:"required"`
	Port string `mapstructure:"HTTP_PORT" validate:"required,numeric"`

	// StrictStatusCodes switches the user-miss response from the
	// compatibility 200 envelope to a real 404.
	StrictStatusCodes bool `mapstructure:"STRICT_STATUS_CODES"`

	// SwaggerEnabled mounts the Swagger UI under /swagger/.
	SwaggerEnabled bool `mapstructure:"SWAGGER_ENABLED"`

	ShutdownTimeoutSeconds int `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" validate:"min=1"`
}

// StoreConfig selects and configures the user store backend
type StoreConfig struct {
	Backend   string `mapstructure:"STORE_BACKEND" validate:"oneof=memory sqlite"`
	SQLiteDSN string `mapstructure:"SQLITE_DSN" validate:"required_if=Backend sqlite"`
}

// RedisConfig holds configuration for the optional user cache
type RedisConfig struct {
	CacheEnabled    bool   `mapstructure:"CACHE_ENABLED"`
	Host            string `mapstructure:"REDIS_HOST"`
	Port            string `mapstructure:"REDIS_PORT"`
	Password        string `mapstructure:"REDIS_PASSWORD"`
	DB              int    `mapstructure:"REDIS_DB"`
	PoolSize        int    `mapstructure:"REDIS_POOL_SIZE"`
	CacheTTLSeconds int    `mapstructure:"REDIS_CACHE_TTL_SECONDS" validate:"min=0"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string  `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error fatal"`
	Format           string  `mapstructure:"LOG_FORMAT" validate:"oneof=json console"`
	OutputPath       string  `mapstructure:"LOG_OUTPUT_PATH"`
	SlowQuerySeconds float64 `mapstructure:"LOG_SLOW_QUERY_SECONDS"`
	EnableSampling   bool    `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName      string  `mapstructure:"SERVICE_NAME"`
	ServiceVersion   string  `mapstructure:"SERVICE_VERSION"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	// Set defaults first
	setDefaults()

	viper.AddConfigPath(path)
	viper.SetConfigName("app") // Look for app.env
	viper.SetConfigType("env")

	viper.AutomaticEnv() // Read from environment variables

	// Try to read config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	var config Config

	// Manually populate config from viper
	config.App.Host = viper.GetString("HTTP_HOST")
	config.App.Port = viper.GetString("HTTP_PORT")
	config.App.StrictStatusCodes = viper.GetBool("STRICT_STATUS_CODES")
	config.App.SwaggerEnabled = viper.GetBool("SWAGGER_ENABLED")
	config.App.ShutdownTimeoutSeconds = viper.GetInt("SHUTDOWN_TIMEOUT_SECONDS")

	config.Store.Backend = viper.GetString("STORE_BACKEND")
	config.Store.SQLiteDSN = viper.GetString("SQLITE_DSN")

	config.Redis.CacheEnabled = viper.GetBool("CACHE_ENABLED")
	config.Redis.Host = viper.GetString("REDIS_HOST")
	config.Redis.Port = viper.GetString("REDIS_PORT")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")
	config.Redis.PoolSize = viper.GetInt("REDIS_POOL_SIZE")
	config.Redis.CacheTTLSeconds = viper.GetInt("REDIS_CACHE_TTL_SECONDS")

	config.Logger.Level = viper.GetString("LOG_LEVEL")
	config.Logger.Format = viper.GetString("LOG_FORMAT")
	config.Logger.OutputPath = viper.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowQuerySeconds = viper.GetFloat64("LOG_SLOW_QUERY_SECONDS")
	config.Logger.EnableSampling = viper.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = viper.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = viper.GetString("SERVICE_VERSION")

	return &config, nil
}

// Validate checks the loaded configuration for invalid values.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c.App); err != nil {
		return fmt.Errorf("invalid app config: %w", err)
	}
	if err := validate.Struct(c.Store); err != nil {
		return fmt.Errorf("invalid store config: %w", err)
	}
	if err := validate.Struct(c.Redis); err != nil {
		return fmt.Errorf("invalid redis config: %w", err)
	}
	if err := validate.Struct(c.Logger); err != nil {
		return fmt.Errorf("invalid logger config: %w", err)
	}

	return nil
}

// Addr returns the listen address for the HTTP server
func (c *AppConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func setDefaults() {
	viper.SetDefault("HTTP_HOST", "127.0.0.1")
	viper.SetDefault("HTTP_PORT", "8080")
	viper.SetDefault("STRICT_STATUS_CODES", false)
	viper.SetDefault("SWAGGER_ENABLED", false)
	viper.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	viper.SetDefault("STORE_BACKEND", "memory")
	viper.SetDefault("SQLITE_DSN", "file::memory:?cache=shared")

	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_POOL_SIZE", 10)
	viper.SetDefault("REDIS_CACHE_TTL_SECONDS", 300)

	// Logger defaults
	env := viper.GetString("APP_ENV")
	if env == "production" {
		viper.SetDefault("LOG_LEVEL", "info")
		viper.SetDefault("LOG_FORMAT", "json")
		viper.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		viper.SetDefault("LOG_LEVEL", "debug")
		viper.SetDefault("LOG_FORMAT", "console")
		viper.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	viper.SetDefault("LOG_OUTPUT_PATH", "stdout")
	viper.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
	viper.SetDefault("SERVICE_NAME", "user-rest-service")
	viper.SetDefault("SERVICE_VERSION", "1.0.0")
}
