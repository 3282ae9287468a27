package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"payslip/internal/payroll"
)

type Config struct {
	// Calculation
	InputPolicy         string
	ShowTotalDeductions bool

	// Batch
	BatchWorkers int

	// Logging
	LogLevel string

	// History (empty path disables it)
	HistoryDBPath string

	// AMQP (empty URL disables events)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

func Load() *Config {
	cfg := &Config{
		InputPolicy:         getEnv("PAYSLIP_INPUT_POLICY", string(payroll.Permissive)),
		ShowTotalDeductions: getEnvBool("PAYSLIP_SHOW_TOTAL_DEDUCTIONS", false),

		BatchWorkers: getEnvInt("PAYSLIP_BATCH_WORKERS", 4),

		LogLevel: getEnv("PAYSLIP_LOG_LEVEL", "warn"),

		HistoryDBPath: getEnv("HISTORY_DB_PATH", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "payslip"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "payslip_computed"),
	}

	return cfg
}

// Policy returns the parsed input policy. Validate guarantees it succeeds.
func (c *Config) Policy() payroll.InputPolicy {
	p, err := payroll.ParsePolicy(c.InputPolicy)
	if err != nil {
		return payroll.Permissive
	}
	return p
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if _, err := payroll.ParsePolicy(c.InputPolicy); err != nil {
		errors = append(errors, fmt.Sprintf("invalid input policy '%s': must be 'permissive' or 'strict'", c.InputPolicy))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if c.BatchWorkers < 1 {
		errors = append(errors, fmt.Sprintf("invalid batch workers %d: must be at least 1", c.BatchWorkers))
	} else if c.BatchWorkers > 64 {
		errors = append(errors, fmt.Sprintf("invalid batch workers %d: must be at most 64", c.BatchWorkers))
	}

	// Opening the history creates missing directories; only reject a path
	// that cannot be a database file.
	if c.HistoryDBPath != "" {
		if info, err := os.Stat(c.HistoryDBPath); err == nil && info.IsDir() {
			errors = append(errors, fmt.Sprintf("invalid history database path '%s': is a directory", c.HistoryDBPath))
		}
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

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
