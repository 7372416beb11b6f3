// Package config loads foodstock settings from defaults, config.yaml, .env and
// FOODSTOCK_* environment variables, in increasing priority.
package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix      = "FOODSTOCK_"
	defaultEnvFile = ".env"
	configFile     = "config.yaml"

	DefaultDataFile = "food.csv"
)

type Config struct {
	Data    DataConfig `koanf:"data"`
	Log     LogConfig  `koanf:"log"`
	Verbose bool       `koanf:"verbose"`
}

type DataConfig struct {
	File string `koanf:"file"`
	// CreateIfMissing makes a missing data file load as an empty inventory.
	CreateIfMissing bool `koanf:"autocreate"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaults() map[string]any {
	return map[string]any{
		"data.file":       DefaultDataFile,
		"data.autocreate": true,
		"log.level":       "warn",
		"log.format":      "text",
		"verbose":         false,
	}
}

// Load reads the configuration from config.yaml, .env and the environment.
func Load() (*Config, error) {
	return LoadFrom(configFile, defaultEnvFile)
}

// LoadFrom is Load with explicit file locations. Missing files are skipped.
func LoadFrom(yamlFile, envFile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	// 2. Load configuration from yaml file
	if err := k.Load(file.Provider(yamlFile), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: error loading YAML config file '%s': %v", yamlFile, err)
		}
	}

	// 3. Load environment variables from .env file
	if envFileMap, err := godotenv.Read(envFile); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			envMap[keyTransformer(key)] = value
		}
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("WARN: error reading .env file: %v", err)
	}

	// 4. Load environment variables from the system, the highest priority
	if err := k.Load(env.Provider(envPrefix, ".", keyTransformer), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// keyTransformer maps FOODSTOCK_DATA_FILE to data.file.
func keyTransformer(key string) string {
	key = strings.ToLower(key)
	key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
	return strings.ReplaceAll(key, "_", ".")
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.Data.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}

func (c *DataConfig) Validate() error {
	if strings.TrimSpace(c.File) == "" {
		return fmt.Errorf("data file is not configured")
	}
	return nil
}

func (c *LogConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", c.Level)
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("invalid log format %q: must be 'text' or 'json'", c.Format)
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Data ---\n")
	b.WriteString(fmt.Sprintf("  data.file: %s\n", c.Data.File))
	b.WriteString(fmt.Sprintf("  data.autocreate: %t\n", c.Data.CreateIfMissing))

	b.WriteString("\n--- Logging ---\n")
	b.WriteString(fmt.Sprintf("  log.level: %s\n", c.Log.Level))
	b.WriteString(fmt.Sprintf("  log.format: %s\n", c.Log.Format))
	b.WriteString(fmt.Sprintf("  verbose: %t\n", c.Verbose))

	return b.String()
}
