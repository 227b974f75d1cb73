// Package config loads server configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds everything the server needs to start.
type Config struct {
	HTTPAddr     string
	DBPath       string
	AMQPURL      string // empty disables the broker and logs notifications instead
	JWTSecret    string
	ReminderHour int // local hour of day the reminder sweep fires
	CORSOrigins  []string
}

// MustLoad reads the configuration from the environment, exiting the
// process when a required variable is missing.
func MustLoad() Config {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	hour := 9
	if v := os.Getenv("REMINDER_HOUR"); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil || h < 0 || h > 23 {
			log.Fatalf("REMINDER_HOUR must be an hour between 0 and 23, got %q", v)
		}
		hour = h
	}

	origins := []string{"*"}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		origins = origins[:0]
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	return Config{
		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		DBPath:       getEnv("DB_PATH", "./data/expenses.db"),
		AMQPURL:      os.Getenv("AMQP_URL"),
		JWTSecret:    secret,
		ReminderHour: hour,
		CORSOrigins:  origins,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
