package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type AuthConfig struct {
	// пустой секрет = взять из JWT_SECRET, иначе сгенерировать при старте
	JWTSecret         string `yaml:"jwt_secret"`
	TokenTTLMinutes   int    `yaml:"token_ttl_minutes"`
	LockThreshold     int    `yaml:"lock_threshold"`
	LockMinutes       int    `yaml:"lock_minutes"`
	RateWindowMinutes int    `yaml:"rate_window_minutes"`
	RateMaxAttempts   int    `yaml:"rate_max_attempts"`
	BcryptCost        int    `yaml:"bcrypt_cost"`
}

type AlertsConfig struct {
	TelegramBotToken string `yaml:"telegram_bot_token"`
	TelegramChatID   int64  `yaml:"telegram_chat_id"`
}

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`
	Auth  AuthConfig `yaml:"auth"`
	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUser     string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
	} `yaml:"email"`
	Alerts AlertsConfig `yaml:"alerts"`
}

func LoadConfig() *Config {
	f, err := os.Open("config/config.yaml")
	if err != nil {
		panic("Failed to open config.yaml: " + err.Error())
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		panic("Failed to parse config.yaml: " + err.Error())
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.Auth.TokenTTLMinutes <= 0 {
		cfg.Auth.TokenTTLMinutes = 60
	}
	if cfg.Auth.LockThreshold <= 0 {
		cfg.Auth.LockThreshold = 5
	}
	if cfg.Auth.LockMinutes <= 0 {
		cfg.Auth.LockMinutes = 10
	}
	if cfg.Auth.RateWindowMinutes <= 0 {
		cfg.Auth.RateWindowMinutes = 10
	}
	if cfg.Auth.RateMaxAttempts <= 0 {
		cfg.Auth.RateMaxAttempts = 10
	}
	if cfg.Auth.BcryptCost <= 0 {
		cfg.Auth.BcryptCost = 14
	}
	return &cfg
}
