package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		Root string `yaml:"root"`
	} `yaml:"project"`
	Analysis struct {
		// FactoryModules extends the built-in allow-list of module
		// specifiers recognized as factory providers.
		FactoryModules []string `yaml:"factory_modules"`
		// DeniedCalls extends the built-in deny-list of non-graph helper
		// call names.
		DeniedCalls []string `yaml:"denied_calls"`
	} `yaml:"analysis"`
	Storage struct {
		// Path of the SQLite snapshot database. Empty disables persistence.
		Database string `yaml:"database"`
	} `yaml:"storage"`
}

// LoadConfig reads the optional YAML config. A missing file yields the zero
// config; environment variables override file values.
func LoadConfig(path string) (*Config, error) {
	// Load .env if exists
	_ = godotenv.Load()

	var cfg Config
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if db := os.Getenv("FLOWMAP_DB"); db != "" {
		cfg.Storage.Database = db
	}
	if root := os.Getenv("FLOWMAP_PROJECT_ROOT"); root != "" {
		cfg.Project.Root = root
	}

	return &cfg, nil
}
