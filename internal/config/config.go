// Package config loads service configuration from the environment, with an
// optional YAML overlay for the structuring engine settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmaycock/structdoc/internal/chunker"
	"github.com/dmaycock/structdoc/internal/structure"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Document store
	DBPath string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Processing stats rolling window
	StatsWindow time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// Structuring engine settings, overridable via ENGINE_CONFIG_FILE.
	Engine structure.Config

	// Chunking defaults for the chunks endpoint.
	Chunk chunker.Config
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("STRUCTDOC_API_KEY"),

		DBPath: envOr("DB_PATH", "structdoc.db"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		Engine: loadEngine(),

		Chunk: chunker.Config{
			ChunkSize:    envInt("DEFAULT_CHUNK_SIZE", 1500),
			ChunkOverlap: envInt("DEFAULT_CHUNK_OVERLAP", 200),
			MinChunk:     100,
		},
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.Chunk.ChunkSize <= 0 {
		cfg.Chunk.ChunkSize = 1500
	}
	if cfg.Chunk.ChunkOverlap <= 0 {
		cfg.Chunk.ChunkOverlap = 200
	}

	return cfg
}

func loadEngine() structure.Config {
	eng := structure.DefaultConfig()
	eng.MainHeaderMinLength = envInt("MAIN_HEADER_MIN_LENGTH", eng.MainHeaderMinLength)
	eng.MinTextLength = envInt("MIN_TEXT_LENGTH", eng.MinTextLength)
	eng.DetectReferences = envBool("DETECT_REFERENCES", eng.DetectReferences)
	if v := os.Getenv("REFERENCE_KEYWORDS"); v != "" {
		var kws []string
		for _, kw := range strings.Split(v, ",") {
			if kw = strings.TrimSpace(kw); kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) > 0 {
			eng.ReferenceKeywords = kws
		}
	}
	return eng
}

// LoadEngineFile overlays engine settings from a YAML file onto cfg.Engine.
// An empty path is a no-op.
func (c *Config) LoadEngineFile(path string) error {
	eng, err := EngineOverlay(path, c.Engine)
	if err != nil {
		return err
	}
	c.Engine = eng
	return nil
}

// EngineOverlay reads a YAML file and overlays its settings onto eng. An
// empty path returns eng unchanged.
func EngineOverlay(path string, eng structure.Config) (structure.Config, error) {
	if path == "" {
		return eng, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return eng, fmt.Errorf("read engine config: %w", err)
	}
	if err := yaml.Unmarshal(data, &eng); err != nil {
		return eng, fmt.Errorf("parse engine config %s: %w", path, err)
	}
	return eng, eng.Validate()
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("STRUCTDOC_API_KEY is required")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH is required")
	}
	return c.Engine.Validate()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
