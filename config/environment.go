package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ENV                       = "ENV"
	PORT                      = "PORT"
	LOG_LEVEL                 = "LOG_LEVEL"
	MONGODB_URI               = "MONGODB_URI"
	DB_NAME                   = "DB_NAME"
	REDIS_URI                 = "REDIS_URI"
	API_KEY                   = "API_KEY"
	CORS_ALLOWED_ORIGINS      = "CORS_ALLOWED_ORIGINS"
	INSURANCE_RATE            = "INSURANCE_RATE"
	INSURANCE_MINIMUM_FEE     = "INSURANCE_MINIMUM_FEE"
	INSURANCE_OVERFLOW_POLICY = "INSURANCE_OVERFLOW_POLICY"
	SMTP_HOST                 = "SMTP_HOST"
	SMTP_PORT                 = "SMTP_PORT"
	SMTP_SENDER_EMAIL         = "SMTP_SENDER_EMAIL"
	SMTP_APP_PASSWORD         = "SMTP_APP_PASSWORD"
	SMTP_SENDER_NAME          = "SMTP_SENDER_NAME"
	FRONTEND_URL              = "FRONTEND_URL"
	NOTIFY_WORKERS            = "NOTIFY_WORKERS"
)

// applyEnv loads .env (if present, without overriding real variables) and
// copies every recognised variable onto cfg.
func applyEnv(cfg *Config) error {
	_ = godotenv.Load()

	setString(&cfg.Env, ENV)
	setString(&cfg.LogLevel, LOG_LEVEL)
	setString(&cfg.Mongo.URI, MONGODB_URI)
	setString(&cfg.Mongo.Database, DB_NAME)
	setString(&cfg.Redis.URI, REDIS_URI)
	setString(&cfg.Auth.APIKey, API_KEY)
	setString(&cfg.Insurance.OverflowPolicy, INSURANCE_OVERFLOW_POLICY)
	setString(&cfg.SMTP.Host, SMTP_HOST)
	setString(&cfg.SMTP.SenderEmail, SMTP_SENDER_EMAIL)
	setString(&cfg.SMTP.AppPassword, SMTP_APP_PASSWORD)
	setString(&cfg.SMTP.SenderName, SMTP_SENDER_NAME)
	setString(&cfg.Notify.FrontendURL, FRONTEND_URL)

	if v := os.Getenv(CORS_ALLOWED_ORIGINS); v != "" {
		origins := []string{}
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.Server.AllowedOrigins = origins
	}

	if err := setInt(&cfg.Server.Port, PORT); err != nil {
		return err
	}
	if err := setInt(&cfg.SMTP.Port, SMTP_PORT); err != nil {
		return err
	}
	if err := setInt(&cfg.Notify.Workers, NOTIFY_WORKERS); err != nil {
		return err
	}
	if err := setFloat(&cfg.Insurance.Rate, INSURANCE_RATE); err != nil {
		return err
	}
	if err := setFloat(&cfg.Insurance.MinimumFee, INSURANCE_MINIMUM_FEE); err != nil {
		return err
	}

	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setInt(dst *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = n
	return nil
}

func setFloat(dst *float64, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = f
	return nil
}
