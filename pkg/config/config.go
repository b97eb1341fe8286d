package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rvasanth/distributor-console/pkg/models"
)

// Config holds the console's environment-driven settings.
type Config struct {
	LedgerBaseURL  string
	ConsoleRole    models.Role
	Port           string
	TokenPath      string
	RequestTimeout time.Duration
}

// Load reads configuration from the environment. LEDGER_API_BASE_URL and
// CONSOLE_ROLE are required; everything else has defaults.
func Load() (*Config, error) {
	baseURL := os.Getenv("LEDGER_API_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("LEDGER_API_BASE_URL environment variable is required")
	}

	role := models.Role(os.Getenv("CONSOLE_ROLE"))
	if role != models.RoleMaster && role != models.RoleDistributor {
		return nil, fmt.Errorf("CONSOLE_ROLE must be %q or %q", models.RoleMaster, models.RoleDistributor)
	}

	port := os.Getenv("CONSOLE_PORT")
	if port == "" {
		port = "8990"
	}

	tokenPath := os.Getenv("SESSION_TOKEN_PATH")
	if tokenPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			tokenPath = "session.json"
		} else {
			tokenPath = filepath.Join(home, ".distributor-console", "session.json")
		}
	}

	timeout := 15 * time.Second
	if raw := os.Getenv("LEDGER_TIMEOUT_SECONDS"); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("LEDGER_TIMEOUT_SECONDS must be a positive integer, got %q", raw)
		}
		timeout = time.Duration(seconds) * time.Second
	}

	return &Config{
		LedgerBaseURL:  baseURL,
		ConsoleRole:    role,
		Port:           port,
		TokenPath:      tokenPath,
		RequestTimeout: timeout,
	}, nil
}
