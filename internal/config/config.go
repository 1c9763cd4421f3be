package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultFileName = ".aicommit.yml"

type FileConfig struct {
	API     string        `yaml:"api,omitempty"` // ollama, zhipu
	Timeout time.Duration `yaml:"timeout,omitempty"`

	Ollama OllamaConfig `yaml:"ollama,omitempty"`
	Zhipu  ZhipuConfig  `yaml:"zhipu,omitempty"`
}

type OllamaConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

type ZhipuConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	APIKey  string `yaml:"api_key,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

// DefaultPath is ~/.aicommit.yml, or "" when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultFileName)
}

// Load reads the config file at path. A missing file yields a zero config.
func Load(path string) (FileConfig, error) {
	var cfg FileConfig
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func ResolveString(flagVal, envVal, fileVal, defVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if envVal != "" {
		return envVal
	}
	if fileVal != "" {
		return fileVal
	}
	return defVal
}

func ResolveDuration(flagVal time.Duration, fileVal time.Duration, defVal time.Duration) time.Duration {
	if flagVal > 0 {
		return flagVal
	}
	if fileVal > 0 {
		return fileVal
	}
	return defVal
}
