package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// SearchConfig describes the optional external hosted search service. The
// mirror is considered enabled only when all three identifiers are present;
// otherwise the relational index is the sole search backend.
type SearchConfig struct {
	AppID                string  `mapstructure:"app_id"`
	APIKey               string  `mapstructure:"api_key"`
	IndexName            string  `mapstructure:"index_name"`
	BaseURL              string  `mapstructure:"base_url"`
	MaxRequestsPerSecond float32 `mapstructure:"max_requests_per_second"`
	ResyncCron           string  `mapstructure:"resync_cron"`
}

func (config SearchConfig) Enabled() bool {
	return config.AppID != "" && config.APIKey != "" && config.IndexName != ""
}

func (config SearchConfig) validate() error {
	if !config.Enabled() {
		if config.AppID != "" || config.APIKey != "" || config.IndexName != "" {
			return errors.New("external search is partially configured: app_id, api_key and index_name must all be set")
		}
		return nil
	}
	if config.BaseURL == "" {
		return fmt.Errorf("missing variable: search base_url")
	}
	return nil
}

func (config SearchConfig) bindEnvironmentVariables() error {
	var errs []error

	if err := viper.BindEnv("search.app_id", "SEARCH_APP_ID"); err != nil {
		errs = append(errs, err)
	}
	if err := viper.BindEnv("search.api_key", "SEARCH_API_KEY"); err != nil {
		errs = append(errs, err)
	}
	if err := viper.BindEnv("search.index_name", "SEARCH_INDEX_NAME"); err != nil {
		errs = append(errs, err)
	}
	if err := viper.BindEnv("search.base_url", "SEARCH_BASE_URL"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
