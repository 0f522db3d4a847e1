package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "vector-ipscan"
	configFile = "config.yaml"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// GetConfigDir returns the OS-appropriate configuration directory for the application.
//   - Linux: $XDG_CONFIG_HOME/vector-ipscan or $HOME/.config/vector-ipscan
//   - macOS: $HOME/.config/vector-ipscan
//   - Windows: %LOCALAPPDATA%\vector-ipscan
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, appName), nil
		}
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(userProfile, "AppData", "Local", appName), nil

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// GetConfigPath returns the full path to the settings file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// DefaultRecordPath returns the default location of the device record.
func DefaultRecordPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, RecordFileName), nil
}

// DefaultSDKConfigPath returns the Vector SDK configuration file path
// (~/.anki_vector/sdk_config.ini).
func DefaultSDKConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".anki_vector", "sdk_config.ini"), nil
}

// Load reads the settings file from its default location.
func Load() (*Settings, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFile(configPath)
}

// LoadFile reads settings from path. A missing file returns DefaultSettings.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if settings.Version != 0 && settings.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d (expected 1)", settings.Version)
	}

	return settings.Normalize(), nil
}

// SaveFile writes settings to path atomically.
func (s *Settings) SaveFile(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# vector-ipscan settings\n# Location: " + path + "\n\n")
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}

// RecordPath returns the configured record path, or the default one.
func (s *Settings) RecordPath() (string, error) {
	if s.Paths != nil && s.Paths.Record != "" {
		return s.Paths.Record, nil
	}
	return DefaultRecordPath()
}

// SDKConfigPath returns the configured SDK config path, or the default one.
func (s *Settings) SDKConfigPath() (string, error) {
	if s.Paths != nil && s.Paths.SDKConfig != "" {
		return s.Paths.SDKConfig, nil
	}
	return DefaultSDKConfigPath()
}
