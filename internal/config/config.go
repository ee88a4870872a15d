// Package config
package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Address         string        `validate:"required"`
	Interval        time.Duration `validate:"gt=0"`
	CPUSampleWindow time.Duration `validate:"min=100ms,max=10s"`
	DiskPath        string        `validate:"required"`
	AllowedOrigins  []string
	LogLevel        string `validate:"oneof=debug info warn error"`
	LogFormat       string `validate:"oneof=text json"`
}

var validate = validator.New()

func Load() (*Config, error) {
	godotenv.Load()

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
	}

	interval := 2 * time.Second
	if raw := os.Getenv("SCRAPE_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid SCRAPE_INTERVAL %q: %w", raw, err)
		}
		interval = parsed
	}

	window := time.Second
	if raw := os.Getenv("CPU_SAMPLE_WINDOW"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid CPU_SAMPLE_WINDOW %q: %w", raw, err)
		}
		window = parsed
	}

	diskPath := os.Getenv("DISK_PATH")
	if diskPath == "" {
		diskPath = DefaultDiskPath()
	}

	var origins []string
	for o := range strings.SplitSeq(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	logLevel := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := strings.ToLower(os.Getenv("LOG_FORMAT"))
	if logFormat == "" {
		logFormat = "text"
	}

	cfg := &Config{
		Address:         addr,
		Interval:        interval,
		CPUSampleWindow: window,
		DiskPath:        diskPath,
		AllowedOrigins:  origins,
		LogLevel:        logLevel,
		LogFormat:       logFormat,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports the first invalid field with the env var it came from.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
		fe := errs[0]
		return fmt.Errorf("config: %s is invalid (%s %s)", envName(fe.Field()), fe.Tag(), fe.Param())
	}

	return fmt.Errorf("config: %w", err)
}

// DefaultDiskPath is the root volume of the running platform.
func DefaultDiskPath() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}

func envName(field string) string {
	switch field {
	case "Address":
		return "HTTP_ADDR"
	case "Interval":
		return "SCRAPE_INTERVAL"
	case "CPUSampleWindow":
		return "CPU_SAMPLE_WINDOW"
	case "DiskPath":
		return "DISK_PATH"
	case "LogLevel":
		return "LOG_LEVEL"
	case "LogFormat":
		return "LOG_FORMAT"
	}
	return field
}
