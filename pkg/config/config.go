// Package config reads the server settings from the environment, optionally
// seeded from a local .env file.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env         string
	Port        string
	DBDriver    string
	DBDSN       string
	AutoMigrate bool
	JWTKey      string
	JWTIssuer   string
	JWTAudience string
}

// IsDevelopment controls the relaxed cookie policy and text logging.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Load builds the Config from the environment. Missing required values are
// reported together.
func Load() (*Config, error) {
	cfg, errs := fromEnv()
	if cfg.JWTKey == "" {
		errs = append(errs, errors.New("JWT_KEY is not set"))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// LoadDatabase is Load for tools that only talk to the database; the JWT
// settings are not required.
func LoadDatabase() (*Config, error) {
	cfg, errs := fromEnv()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func fromEnv() (*Config, []error) {
	cfg := &Config{
		Env:         getEnv("ENV", EnvDevelopment),
		Port:        getEnv("PORT", "8081"),
		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
		DBDSN:       os.Getenv("DB_DSN"),
		AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		JWTKey:      os.Getenv("JWT_KEY"),
		JWTIssuer:   getEnv("JWT_ISSUER", "Flashcards.Api"),
		JWTAudience: getEnv("JWT_AUDIENCE", "Flashcards.Client"),
	}

	var errs []error
	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.DBDSN == "" {
			cfg.DBDSN = "flashcards.db"
		}
	case DriverPostgres:
		if cfg.DBDSN == "" {
			errs = append(errs, errors.New("DB_DSN is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver))
	}
	return cfg, errs
}

// LoadDotEnv loads key=value pairs from path into the environment without
// overwriting variables that are already set. Lines starting with # are ignored.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// split on first '='
		if eq := strings.IndexByte(line, '='); eq > 0 {
			key := strings.TrimSpace(line[:eq])
			val := strings.Trim(strings.TrimSpace(line[eq+1:]), `"`)
			if _, exists := os.LookupEnv(key); !exists {
				if err := os.Setenv(key, val); err != nil {
					return err
				}
			}
		}
	}
	return scanner.Err()
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "":
		return defaultVal
	case "false", "0", "no":
		return false
	default:
		return true
	}
}
