package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Feed sources: HTTP URLs or local file paths to the three CSV feeds.
	ConsumptionFeed string
	NEFeed          string
	WorkloadFeed    string
	FeedTimeout     time.Duration

	// Settings store backend selection
	DataBackend string

	// Memory backend
	MemoryDataPath string

	// Database
	SQLiteDBPath string

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets mirror (worker)
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Settings write coalescing
	SettingsDebounce time.Duration
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		ConsumptionFeed: getEnv("CONSUMPTION_FEED", "./data/MonthlyConsumptionByAccount.csv"),
		NEFeed:          getEnv("NE_FEED", "./data/FY25NEOpen.csv"),
		WorkloadFeed:    getEnv("WORKLOAD_FEED", "./data/FY25ExistingCommitOpen.csv"),
		FeedTimeout:     getEnvDuration("FEED_TIMEOUT", 15*time.Second),

		DataBackend:    getEnv("DATA_BACKEND", "memory"),
		MemoryDataPath: getEnv("MEMORY_DATA_PATH", "./data/userData.json"),
		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/territory.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "territory"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "sync_settings"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Targets"),

		SettingsDebounce: getEnvDuration("SETTINGS_DEBOUNCE", 500*time.Millisecond),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.DataBackend == "memory" && c.MemoryDataPath == "" {
		errors = append(errors, "memory data path cannot be empty when using memory backend")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	for _, feed := range []struct{ name, value string }{
		{"CONSUMPTION_FEED", c.ConsumptionFeed},
		{"NE_FEED", c.NEFeed},
		{"WORKLOAD_FEED", c.WorkloadFeed},
	} {
		if feed.value == "" {
			errors = append(errors, fmt.Sprintf("%s cannot be empty", feed.name))
		}
	}

	if c.FeedTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid feed timeout %v: must be at least 1 second", c.FeedTimeout))
	} else if c.FeedTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid feed timeout %v: must be at most 5 minutes", c.FeedTimeout))
	}

	if c.SettingsDebounce < 0 {
		errors = append(errors, fmt.Sprintf("invalid settings debounce %v: must not be negative", c.SettingsDebounce))
	} else if c.SettingsDebounce > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid settings debounce %v: must be at most 1 minute", c.SettingsDebounce))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
