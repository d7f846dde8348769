package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                  string
	DBPath                string
	LogLevel              string
	NativeLang            string
	TargetLang            string
	ImportWorkerCount     int
	ImportQueueSize       int
	LearnBatchSize        int
	ReviewBatchSize       int
	ReadingLookbackDays   int
	ReadingCandidateLimit int
	ReadingBundleBases    int
	PassageMinWords       int
	PassageMaxWords       int
	IndexRefreshInterval  time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "file:wordflash.db"),
		LogLevel:              envOr("LOG_LEVEL", "INFO"),
		NativeLang:            strings.ToLower(envOr("DEFAULT_NATIVE_LANG", "ru")),
		TargetLang:            strings.ToLower(envOr("DEFAULT_TARGET_LANG", "en")),
		ImportWorkerCount:     envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:       envIntOr("IMPORT_QUEUE_SIZE", 32),
		LearnBatchSize:        envIntOr("LEARN_BATCH_SIZE", 5),
		ReviewBatchSize:       envIntOr("REVIEW_BATCH_SIZE", 10),
		ReadingLookbackDays:   envIntOr("READING_LOOKBACK_DAYS", 3),
		ReadingCandidateLimit: envIntOr("READING_CANDIDATE_LIMIT", 80),
		ReadingBundleBases:    envIntOr("READING_BUNDLE_BASES", 10),
		PassageMinWords:       envIntOr("PASSAGE_MIN_WORDS", 80),
		PassageMaxWords:       envIntOr("PASSAGE_MAX_WORDS", 140),
		IndexRefreshInterval:  envDurationOr("INDEX_REFRESH_INTERVAL", 15*time.Minute),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if c.NativeLang == "" || c.NativeLang == c.TargetLang {
		errs = append(errs, fmt.Errorf("DEFAULT_TARGET_LANG must differ from DEFAULT_NATIVE_LANG, got %q and %q", c.TargetLang, c.NativeLang))
	}
	positive := []struct {
		key   string
		value int
	}{
		{"IMPORT_WORKER_COUNT", c.ImportWorkerCount},
		{"IMPORT_QUEUE_SIZE", c.ImportQueueSize},
		{"LEARN_BATCH_SIZE", c.LearnBatchSize},
		{"REVIEW_BATCH_SIZE", c.ReviewBatchSize},
		{"READING_CANDIDATE_LIMIT", c.ReadingCandidateLimit},
		{"READING_BUNDLE_BASES", c.ReadingBundleBases},
		{"PASSAGE_MIN_WORDS", c.PassageMinWords},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", p.key, p.value))
		}
	}
	if c.ReadingLookbackDays < 1 || c.ReadingLookbackDays > 30 {
		errs = append(errs, fmt.Errorf("READING_LOOKBACK_DAYS must be between 1 and 30, got %d", c.ReadingLookbackDays))
	}
	if c.PassageMaxWords < c.PassageMinWords {
		errs = append(errs, fmt.Errorf("PASSAGE_MAX_WORDS (%d) must not be below PASSAGE_MIN_WORDS (%d)", c.PassageMaxWords, c.PassageMinWords))
	}
	if c.IndexRefreshInterval < 0 {
		errs = append(errs, fmt.Errorf("INDEX_REFRESH_INTERVAL cannot be negative, got %s", c.IndexRefreshInterval))
	}
	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
