package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// neutralizeEnv blanks the override variables so ambient values in the test
// environment cannot leak into file-based cases.
func neutralizeEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MONGO_URL", "DB_NAME", "COL_NAME", "LLM_API_KEY", "LLM_MODEL"} {
		t.Setenv(key, "")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		filePath  string
		wantErr   bool
		errString string
	}{
		{
			name:     "valid config file",
			filePath: "testdata/valid_config.yaml",
			wantErr:  false,
		},
		{
			name:      "non-existent file",
			filePath:  "testdata/nonexistent.yaml",
			wantErr:   true,
			errString: "failed to read config file",
		},
		{
			name:      "malformed yaml",
			filePath:  "testdata/malformed.yaml",
			wantErr:   true,
			errString: "failed to parse config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			neutralizeEnv(t)

			cfg, err := Load(tt.filePath)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
				assert.Nil(t, cfg)
			} else {
				require.NoError(t, err)
				require.NotNil(t, cfg)

				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
				assert.Equal(t, "newsdatas", cfg.MongoDB.Database)
				assert.Equal(t, "articles", cfg.MongoDB.Collection)
				assert.Equal(t, "gpt-5-mini", cfg.LLM.Model)
				assert.Equal(t, 4, cfg.Worker.Concurrency)
				assert.Equal(t, "news-review-service", cfg.App.Name)
			}
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("MONGO_URL", "mongodb://override:27017")
	t.Setenv("DB_NAME", "otherdb")
	t.Setenv("COL_NAME", "othercol")
	t.Setenv("LLM_API_KEY", "env-key")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")

	cfg, err := Load("testdata/valid_config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "mongodb://override:27017", cfg.MongoDB.URI)
	assert.Equal(t, "otherdb", cfg.MongoDB.Database)
	assert.Equal(t, "othercol", cfg.MongoDB.Collection)
	assert.Equal(t, "env-key", cfg.LLM.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
}

func TestLoad_Defaults(t *testing.T) {
	neutralizeEnv(t)

	cfg, err := Load("testdata/missing_uri.yaml")
	require.NoError(t, err)

	// database is set in the file, collection and model fall back
	assert.Equal(t, "newsdatas", cfg.MongoDB.Database)
	assert.Equal(t, DefaultCollection, cfg.MongoDB.Collection)
	assert.Equal(t, DefaultModel, cfg.LLM.Model)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080},
			MongoDB: MongoDBConfig{URI: "mongodb://localhost:27017"},
			LLM:     LLMConfig{APIKey: "key", Model: DefaultModel},
			Worker:  WorkerConfig{Concurrency: 4},
		}
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantErr   bool
		errString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:      "invalid server port - too low",
			mutate:    func(c *Config) { c.Server.Port = 0 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "invalid server port - too high",
			mutate:    func(c *Config) { c.Server.Port = 70000 },
			wantErr:   true,
			errString: "invalid server port",
		},
		{
			name:      "missing mongodb uri",
			mutate:    func(c *Config) { c.MongoDB.URI = "" },
			wantErr:   true,
			errString: "mongodb uri is required",
		},
		{
			name:      "missing llm api key",
			mutate:    func(c *Config) { c.LLM.APIKey = "" },
			wantErr:   true,
			errString: "llm api key is required",
		},
		{
			name:      "zero worker concurrency",
			mutate:    func(c *Config) { c.Worker.Concurrency = 0 },
			wantErr:   true,
			errString: "worker concurrency",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errString)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestLoad_ValidateIntegration(t *testing.T) {
	t.Run("load and validate valid config", func(t *testing.T) {
		neutralizeEnv(t)

		cfg, err := Load("testdata/valid_config.yaml")
		require.NoError(t, err)

		require.NoError(t, cfg.Validate())
	})

	t.Run("load config with invalid port", func(t *testing.T) {
		neutralizeEnv(t)

		cfg, err := Load("testdata/invalid_port.yaml")
		require.NoError(t, err)

		err = cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid server port")
	})

	t.Run("load config with missing uri", func(t *testing.T) {
		neutralizeEnv(t)

		cfg, err := Load("testdata/missing_uri.yaml")
		require.NoError(t, err)

		err = cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mongodb uri is required")
	})
}
