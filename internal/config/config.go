package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application, read from a file in
// the given path or from environment variables.
type Config struct {
	Environment   string `mapstructure:"ENVIRONMENT"`
	DBSource      string `mapstructure:"DB_SOURCE"`
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	RedisAddress  string `mapstructure:"REDIS_ADDRESS"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
}

// LoadConfig reads configuration from app.env in path, letting environment
// variables override file values.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
