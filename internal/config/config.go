// Package config holds runtime configuration for gridsweep.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values. Environment variables provide the
// defaults; command line flags override them.
type Config struct {
	// Input and output files
	SBCIn  string
	SBSIn  string
	SBSOut string

	// Activity logs
	LogDirectory    string
	DeleteAfterDays int

	// Review output
	CSVDirectory    string
	CSVDelimiter    string
	CSVDecimalComma bool

	// Rule configuration
	RulesFile       string
	KeepPlayerNames []string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		SBCIn:  getEnv("GRIDSWEEP_SBC_IN", "Sandbox.sbc"),
		SBSIn:  getEnv("GRIDSWEEP_SBS_IN", "SANDBOX_0_0_0_.sbs"),
		SBSOut: getEnv("GRIDSWEEP_SBS_OUT", "SANDBOX_0_0_0_.cleanedup.sbs"),

		LogDirectory:    getEnv("GRIDSWEEP_LOG_DIRECTORY", "logs/"),
		DeleteAfterDays: getEnvInt("GRIDSWEEP_DELETE_AFTER_DAYS", 30),

		CSVDirectory:    getEnv("GRIDSWEEP_CSV_DIRECTORY", "."),
		CSVDelimiter:    getEnv("GRIDSWEEP_CSV_DELIMITER", ","),
		CSVDecimalComma: getEnv("GRIDSWEEP_CSV_DECIMAL_COMMA", "false") == "true",

		RulesFile: getEnv("GRIDSWEEP_RULES_FILE", ""),

		LogFile:  getEnv("GRIDSWEEP_LOG_FILE", "gridsweep.log"),
		LogLevel: parseLogLevel(getEnv("GRIDSWEEP_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
