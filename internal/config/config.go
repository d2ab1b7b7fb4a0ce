package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk application configuration.
type Config struct {
	LLM       LLM       `yaml:"llm"`
	Retrieval Retrieval `yaml:"retrieval"`
	Trainer   Trainer   `yaml:"trainer"`
	Log       Log       `yaml:"log"`
	DB        string    `yaml:"db"`
}

type LLM struct {
	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Timeout    string `yaml:"timeout"`
	MaxRetries int    `yaml:"max_retries"`
}

type Retrieval struct {
	// Backend is "qdrant" or "memory".
	Backend        string `yaml:"backend"`
	ChunksFile     string `yaml:"chunks_file"`
	QdrantURL      string `yaml:"qdrant_url"`
	QdrantAPIKey   string `yaml:"qdrant_api_key"`
	Collection     string `yaml:"collection"`
	VectorDim      int    `yaml:"vector_dim"`
	EmbeddingModel string `yaml:"embedding_model"`
	EmbeddingKey   string `yaml:"embedding_api_key"`
	EmbeddingURL   string `yaml:"embedding_base_url"`
	PrimarySource  string `yaml:"primary_source"`
	Timeout        string `yaml:"timeout"`
}

type Trainer struct {
	MaxAttempts   int    `yaml:"max_attempts"`
	QuestionCount int    `yaml:"question_count"`
	Language      string `yaml:"language"`
}

type Log struct {
	Mode string `yaml:"mode"`
	File string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLM: LLM{
			Timeout:    "60s",
			MaxRetries: 3,
		},
		Retrieval: Retrieval{
			Backend:        "memory",
			Collection:     "bs2_chunks",
			VectorDim:      1536,
			EmbeddingModel: "text-embedding-3-small",
			PrimarySource:  "Hauptskript",
			Timeout:        "10s",
		},
		Trainer: Trainer{
			MaxAttempts:   3,
			QuestionCount: 3,
			Language:      "de",
		},
		Log: Log{Mode: "dev"},
	}
}

// Load reads YAML config from path on top of the defaults and then applies
// BS2TUTOR_* environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setString(&cfg.LLM.Provider, "BS2TUTOR_LLM_PROVIDER")
	setString(&cfg.LLM.Model, "BS2TUTOR_LLM_MODEL")
	setString(&cfg.LLM.APIKey, "BS2TUTOR_LLM_API_KEY")
	setString(&cfg.LLM.BaseURL, "BS2TUTOR_LLM_BASE_URL")
	setString(&cfg.LLM.Timeout, "BS2TUTOR_LLM_TIMEOUT")
	setString(&cfg.Retrieval.Backend, "BS2TUTOR_RETRIEVAL_BACKEND")
	setString(&cfg.Retrieval.ChunksFile, "BS2TUTOR_CHUNKS_FILE")
	setString(&cfg.Retrieval.QdrantURL, "BS2TUTOR_QDRANT_URL")
	setString(&cfg.Retrieval.QdrantAPIKey, "BS2TUTOR_QDRANT_API_KEY")
	setString(&cfg.Retrieval.Collection, "BS2TUTOR_QDRANT_COLLECTION")
	setString(&cfg.Retrieval.EmbeddingKey, "BS2TUTOR_EMBEDDING_API_KEY")
	setString(&cfg.Trainer.Language, "BS2TUTOR_LANGUAGE")
	setString(&cfg.Log.Mode, "BS2TUTOR_LOG_MODE")
	setString(&cfg.Log.File, "BS2TUTOR_LOG_FILE")
	setString(&cfg.DB, "BS2TUTOR_DB")

	if v := os.Getenv("BS2TUTOR_QUESTION_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Trainer.QuestionCount = n
		}
	}
}

// Validate checks ranges and enum values.
func (c Config) Validate() error {
	switch c.Retrieval.Backend {
	case "memory":
		if c.Retrieval.ChunksFile == "" {
			return fmt.Errorf("retrieval.chunks_file is required for the memory backend")
		}
	case "qdrant":
		if c.Retrieval.QdrantURL == "" {
			return fmt.Errorf("retrieval.qdrant_url is required for the qdrant backend")
		}
		if c.Retrieval.VectorDim <= 0 {
			return fmt.Errorf("retrieval.vector_dim must be positive")
		}
	default:
		return fmt.Errorf("unknown retrieval backend: %q", c.Retrieval.Backend)
	}
	if c.Trainer.MaxAttempts < 1 {
		return fmt.Errorf("trainer.max_attempts must be at least 1")
	}
	if c.Trainer.QuestionCount < 1 || c.Trainer.QuestionCount > 5 {
		return fmt.Errorf("trainer.question_count must be between 1 and 5")
	}
	if c.Trainer.Language != "de" && c.Trainer.Language != "en" {
		return fmt.Errorf("trainer.language must be \"de\" or \"en\"")
	}
	return nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
