package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// MinPort is the minimum valid port number
	MinPort = 1
	// MaxPort is the maximum valid port number
	MaxPort = 65535
)

// Environment variable overrides, matching the deployment's .env contract.
const (
	envMongoURL  = "MONGO_URL"
	envDBName    = "DB_NAME"
	envColName   = "COL_NAME"
	envLLMAPIKey = "LLM_API_KEY"
	envLLMModel  = "LLM_MODEL"
)

// Defaults applied when neither file nor environment provides a value.
const (
	DefaultDatabase   = "newsdatas"
	DefaultCollection = "articles"
	DefaultModel      = "gpt-5-mini"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	MongoDB MongoDBConfig `yaml:"mongodb"`
	LLM     LLMConfig     `yaml:"llm"`
	Worker  WorkerConfig  `yaml:"worker"`
	Logging LoggingConfig `yaml:"logging"`
	App     AppConfig     `yaml:"app"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// MongoDBConfig holds document store connection configuration
type MongoDBConfig struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	Collection     string        `yaml:"collection"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// LLMConfig holds the classification model API configuration
type LLMConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	APIKey         string        `yaml:"api_key"`
	Model          string        `yaml:"model"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// WorkerConfig holds review worker pool configuration
type WorkerConfig struct {
	Concurrency int `yaml:"concurrency"`
	QueueSize   int `yaml:"queue_size"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`
	Format       string `yaml:"format"`
	Output       string `yaml:"output"`
	EnableCaller bool   `yaml:"enable_caller"`
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
}

// Load reads the configuration file, then applies environment overrides and defaults
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnvOverrides()
	config.applyDefaults()

	return &config, nil
}

// applyEnvOverrides lets environment variables win over file values
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(envMongoURL); v != "" {
		c.MongoDB.URI = v
	}
	if v := os.Getenv(envDBName); v != "" {
		c.MongoDB.Database = v
	}
	if v := os.Getenv(envColName); v != "" {
		c.MongoDB.Collection = v
	}
	if v := os.Getenv(envLLMAPIKey); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(envLLMModel); v != "" {
		c.LLM.Model = v
	}
}

func (c *Config) applyDefaults() {
	if c.MongoDB.Database == "" {
		c.MongoDB.Database = DefaultDatabase
	}
	if c.MongoDB.Collection == "" {
		c.MongoDB.Collection = DefaultCollection
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port < MinPort || c.Server.Port > MaxPort {
		return fmt.Errorf("invalid server port: %d (must be between %d and %d)", c.Server.Port, MinPort, MaxPort)
	}

	if c.MongoDB.URI == "" {
		return fmt.Errorf("mongodb uri is required (set MONGO_URL)")
	}

	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm api key is required (set LLM_API_KEY)")
	}

	if c.Worker.Concurrency <= 0 {
		return fmt.Errorf("worker concurrency must be greater than 0")
	}

	return nil
}
