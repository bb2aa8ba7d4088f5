package config

import "github.com/spf13/viper"

type APIConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (config APIConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("api.port", "PORT")
}
