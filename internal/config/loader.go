package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"e2mcheck/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/e2mcheck"
	configFileName = "config.yaml"
)

// Environment variables that override file configuration.
const (
	EnvStoreHost  = "E2MCHECK_REDIS_HOST"
	EnvStorePort  = "E2MCHECK_REDIS_PORT"
	EnvNamespace  = "E2MCHECK_NAMESPACE"
	EnvKubeconfig = "KUBECONFIG"
)

// osUserHomeDir is a variable to allow mocking in tests
var osUserHomeDir = os.UserHomeDir

// GetDefaultConfigPath returns ~/.config/e2mcheck.
func GetDefaultConfigPath() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir), nil
}

// LoadConfig loads configuration from config.yaml in the given directory.
// A missing file is not an error: defaults are returned.
func LoadConfig(configPath string) (E2MCheckConfig, error) {
	configFilePath := filepath.Join(configPath, configFileName)
	config := GetDefaultConfig()

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("Config", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return E2MCheckConfig{}, fmt.Errorf("error reading config from %s: %w", configFilePath, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return E2MCheckConfig{}, fmt.Errorf("error loading config from %s: %w", configFilePath, err)
	}
	logging.Info("Config", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// ApplyEnv overrides fields from environment variables. getenv is usually
// os.Getenv; tests pass a map lookup instead.
func ApplyEnv(config *E2MCheckConfig, getenv func(string) string) error {
	if v := getenv(EnvStoreHost); v != "" {
		config.Store.Host = v
	}
	if v := getenv(EnvStorePort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return ValidationError{Field: EnvStorePort, Value: v, Message: "must be an integer"}
		}
		config.Store.Port = port
	}
	if v := getenv(EnvNamespace); v != "" {
		config.Cluster.Namespace = v
	}
	if v := getenv(EnvKubeconfig); v != "" && config.Cluster.Kubeconfig == "" {
		config.Cluster.Kubeconfig = v
	}
	return nil
}
