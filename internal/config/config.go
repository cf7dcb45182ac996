package config

import (
	"os"
	"strconv"
)

// Config carries all runtime settings. Built once in main from env,
// passed by reference everywhere. No package-level state.
type Config struct {
	Port         string
	MaxBodyBytes int64

	// S3 credentials for s3:// source URLs. Optional: when Endpoint is
	// empty, s3 URLs are rejected at fetch time.
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Region    string

	// Telegram error notifier. Optional: disabled without a token.
	ErrorBotToken    string
	ErrorAdminChatID int64
}

func FromEnv() *Config {
	cfg := &Config{
		Port:         os.Getenv("PORT"),
		MaxBodyBytes: 50 << 20,
		S3Endpoint:   os.Getenv("S3_ENDPOINT"),
		S3AccessKey:  os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:  os.Getenv("S3_SECRET_KEY"),
		S3Region:     os.Getenv("S3_REGION"),

		ErrorBotToken: os.Getenv("ERROR_BOT_TOKEN"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxBodyBytes = n
		}
	}

	if v := os.Getenv("ERROR_ADMIN_CHAT_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.ErrorAdminChatID = n
		}
	}

	return cfg
}
