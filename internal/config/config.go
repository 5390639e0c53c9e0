package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings.
type Config struct {
	// Pack defaults for snapshot assembly.
	Pack PackConfig `yaml:"pack" mapstructure:"pack"`

	// GitHub settings for remote repository packing.
	GitHub GitHubConfig `yaml:"github" mapstructure:"github"`

	// Store settings for the local run history.
	Store StoreConfig `yaml:"store" mapstructure:"store"`
}

type PackConfig struct {
	CommitCount  int      `yaml:"commit_count" mapstructure:"commit_count"`
	IncludeStats bool     `yaml:"include_stats" mapstructure:"include_stats"`
	MaxFileSize  int64    `yaml:"max_file_size" mapstructure:"max_file_size"`
	Format       string   `yaml:"format" mapstructure:"format"`
	Exclude      []string `yaml:"exclude" mapstructure:"exclude"`
	// Workers bounds concurrent per-commit metadata queries; 1 keeps
	// them sequential.
	Workers int `yaml:"workers" mapstructure:"workers"`
}

type GitHubConfig struct {
	Token     string `yaml:"token" mapstructure:"token"`
	RateLimit int    `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per second
	// CloneDepth for shallow clones of remote repositories.
	CloneDepth int `yaml:"clone_depth" mapstructure:"clone_depth"`
}

type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// Default returns default configuration.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Pack: PackConfig{
			CommitCount:  10,
			IncludeStats: true,
			MaxFileSize:  1 << 20,
			Format:       "markdown",
			Exclude:      []string{"*.lock", "node_modules", "vendor"},
			Workers:      1,
		},
		GitHub: GitHubConfig{
			RateLimit:  10,
			CloneDepth: 50,
		},
		Store: StoreConfig{
			Path: filepath.Join(homeDir, ".repotext", "history.db"),
		},
	}
}

// Load loads configuration: defaults, then an optional YAML file, then
// environment overrides. A missing config file is not an error.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("pack", cfg.Pack)
	v.SetDefault("github", cfg.GitHub)
	v.SetDefault("store", cfg.Store)

	v.SetEnvPrefix("REPOTEXT")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".repotext")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".repotext"))
	}

	// Config file not found is fine, defaults apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence.
func loadEnvFiles() {
	for _, file := range []string{".env.local", ".env"} {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".repotext", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies environment variable overrides.
// Precedence for the GitHub token: env var, then keyring, then config
// file value.
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	} else if cfg.GitHub.Token == "" {
		km := NewKeyringManager()
		if km.IsAvailable() {
			if token, err := km.GetGitHubToken(); err == nil && token != "" {
				cfg.GitHub.Token = token
			}
		}
	}

	if rateLimit := os.Getenv("GITHUB_RATE_LIMIT"); rateLimit != "" {
		if rate, err := strconv.Atoi(rateLimit); err == nil {
			cfg.GitHub.RateLimit = rate
		}
	}

	if path := os.Getenv("REPOTEXT_STORE_PATH"); path != "" {
		cfg.Store.Path = expandPath(path)
	}

	if workers := os.Getenv("REPOTEXT_WORKERS"); workers != "" {
		if n, err := strconv.Atoi(workers); err == nil && n > 0 {
			cfg.Pack.Workers = n
		}
	}
}

// expandPath expands ~ to the home directory.
func expandPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, path[1:])
}

// Save writes the configuration to a YAML file at path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
