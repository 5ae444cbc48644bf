package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that every value the server cannot run without is set.
// Connection details have defaults in development; credentials never do.
func ValidateConfig(cfg *Config) error {
	var errors []string

	required := map[string]string{
		"server port": cfg.ServerPort,
		"server host": cfg.ServerHost,
		"db host":     cfg.DBHost,
		"db port":     cfg.DBPort,
		"db user":     cfg.DBUser,
		"db name":     cfg.DBName,
	}
	for field, value := range required {
		if value == "" {
			errors = append(errors, fmt.Sprintf("%s is required", field))
		}
	}

	if cfg.DBPassword == "" {
		errors = append(errors, "db password is required (DB_PASSWORD or db_password secret)")
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "jwt secret is required (JWT_SECRET or jwt_secret secret)")
	}
	if cfg.RedisHost == "" && cfg.RedisURL == "" {
		errors = append(errors, "redis host or redis url is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
