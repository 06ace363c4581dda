package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix             = "TUBEVAULT"
	defaultHTTPAddress    = "0.0.0.0:8080"
	defaultDatabasePath   = "store.db"
	defaultLogLevel       = "info"
	defaultDumpDir        = "dumps"
	defaultDumpHrefPrefix = "/downloads"
)

// AppConfig captures runtime configuration for the archive API server.
type AppConfig struct {
	HTTPAddress    string
	DatabasePath   string
	DumpDir        string
	DumpHrefPrefix string
	LogLevel       string
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("http.address", defaultHTTPAddress)
	configViper.SetDefault("database.path", defaultDatabasePath)
	configViper.SetDefault("log.level", defaultLogLevel)
	configViper.SetDefault("dumps.dir", defaultDumpDir)
	configViper.SetDefault("dumps.href_prefix", defaultDumpHrefPrefix)
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddress:    configViper.GetString("http.address"),
		DatabasePath:   configViper.GetString("database.path"),
		DumpDir:        configViper.GetString("dumps.dir"),
		DumpHrefPrefix: configViper.GetString("dumps.href_prefix"),
		LogLevel:       configViper.GetString("log.level"),
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	if strings.TrimSpace(c.DatabasePath) == "" {
		return fmt.Errorf("database.path is required")
	}
	if strings.TrimSpace(c.HTTPAddress) == "" {
		return fmt.Errorf("http.address is required")
	}
	return nil
}
