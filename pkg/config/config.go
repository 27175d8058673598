package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Config конфигурация сервиса: флаги поверх переменных окружения
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string
}

func defaults() Config {
	return Config{
		Port:      "8080",
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load порядок приоритета: флаг > переменная окружения > значение по умолчанию
func Load() (Config, error) {
	cfg := defaults()
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	port := flag.String("port", cfg.Port, "HTTP port")
	logLevel := flag.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flag.Parse()
	cfg.Port = *port
	cfg.LogLevel = *logLevel

	if err := validatePort(cfg.Port); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validatePort(port string) error {
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port %q: must be a number", port)
	}
	if n < 1 || n > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", n)
	}
	return nil
}
