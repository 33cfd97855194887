package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/balkashynov/timesheet/internal/logging"
)

// Config holds the runtime settings of the timesheet CLI.
type Config struct {
	DBPath      string `env:"TIMESHEET_DB_PATH"      envDefault:"~/.timesheet/timesheet.db"`
	LogLevel    string `env:"TIMESHEET_LOG_LEVEL"    envDefault:"warn"`
	ExportDir   string `env:"TIMESHEET_EXPORT_DIR"   envDefault:"."`
	RecentLimit int    `env:"TIMESHEET_RECENT_LIMIT" envDefault:"12"`
}

// Load reads an optional .env file from the working directory, then parses
// the environment. Values already set in the environment win over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	path, err := expandHome(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	cfg.DBPath = path
	return &cfg, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "database path cannot be empty")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}
	if c.ExportDir != "" {
		if info, err := os.Stat(c.ExportDir); err != nil {
			problems = append(problems, fmt.Sprintf("export directory '%s' is not accessible: %v", c.ExportDir, err))
		} else if !info.IsDir() {
			problems = append(problems, fmt.Sprintf("export directory '%s' is not a directory", c.ExportDir))
		}
	}
	if c.RecentLimit < 1 {
		problems = append(problems, fmt.Sprintf("invalid recent limit %d: must be at least 1", c.RecentLimit))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
