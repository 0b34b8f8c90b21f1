package store

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// DefaultAPIURL matches the development server the web client pointed at.
	DefaultAPIURL = "http://localhost:3000"
	defaultPath   = "~/.syncvault"
)

type Config interface {
	// BasePath is the directory holding persisted client state.
	BasePath() string
	// APIURL is the SyncVault server base endpoint.
	APIURL() string
	LogLevel() string
}

// LoadConfig resolves configuration from .env, the environment and an
// optional .syncvault.yaml, in increasing order of precedence for the
// environment.
func LoadConfig() (Config, error) {
	// A missing .env is normal, a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("log_level", "warn")
	v.SetConfigName(".syncvault") // .yaml is implicit
	v.SetEnvPrefix("SYNCVAULT")
	v.AutomaticEnv()

	if override := os.Getenv("SYNCVAULT_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	apiURL := v.GetString("api_url")
	// The browser client was configured through VITE_API_BASE_URL; honour it
	// when nothing more specific was set.
	if os.Getenv("SYNCVAULT_API_URL") == "" && !v.InConfig("api_url") {
		if legacy := os.Getenv("VITE_API_BASE_URL"); legacy != "" {
			apiURL = legacy
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path:  path,
		URL:   strings.TrimRight(apiURL, "/"),
		Level: v.GetString("log_level"),
	}, nil
}

// StaticConfig builds a Config from fixed values.
func StaticConfig(path, apiURL string) Config {
	return &fileConfig{Path: path, URL: strings.TrimRight(apiURL, "/"), Level: "warn"}
}

type fileConfig struct {
	Path  string `json:"path"`
	URL   string `json:"apiUrl"`
	Level string `json:"logLevel"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) APIURL() string {
	return f.URL
}

func (f *fileConfig) LogLevel() string {
	return f.Level
}
