package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Dialect          string `mapstructure:"dialect"`
	ConnectionString string `mapstructure:"connection_string"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	if config.Dialect != "postgres" && config.Dialect != "sqlite" {
		return fmt.Errorf("unsupported db dialect: %s", config.Dialect)
	}
	return nil
}

func (config DBConfig) bindEnvironmentVariables() error {
	if err := viper.BindEnv("db.dialect", "DB_DIALECT"); err != nil {
		return err
	}
	return viper.BindEnv("db.connection_string", "DB_CONNECTION_STRING")
}
