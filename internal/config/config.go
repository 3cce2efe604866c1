package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultConfigDir  = ".modelgate"
	DefaultPolicyFile = "policy.yaml"
	DefaultLogFile    = "audit.jsonl"

	// ExportURLEnv names the environment variable holding the optional
	// secondary audit export endpoint.
	ExportURLEnv = "MODELGATE_EXPORT_URL"
)

type Config struct {
	ConfigDir  string
	PolicyPath string
	LogPath    string
	ExportURL  string
	UserID     string
}

func Load(policyPath, logPath string) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configDir := filepath.Join(homeDir, DefaultConfigDir)

	if err := ensureDir(configDir); err != nil {
		return nil, err
	}

	cfg := &Config{
		ConfigDir: configDir,
		ExportURL: os.Getenv(ExportURLEnv),
		UserID:    currentUser(),
	}

	if policyPath != "" {
		cfg.PolicyPath = policyPath
	} else {
		cfg.PolicyPath = filepath.Join(configDir, DefaultPolicyFile)
	}

	if logPath != "" {
		cfg.LogPath = logPath
	} else {
		cfg.LogPath = filepath.Join(configDir, DefaultLogFile)
	}

	return cfg, nil
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if u := os.Getenv("USERNAME"); u != "" {
		return u
	}
	return "unknown"
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0700)
	}
	return nil
}
