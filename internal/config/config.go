package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	JWTSecret   string
	StateSecret string
	FrontendURL string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	LLMAPIKey string
	LLMAPIURL string
	LLMModel  string

	CBRURL string

	// ManagedRuntime is set when a hosting platform owns the listener and
	// invokes the exported handler directly.
	ManagedRuntime bool

	SMTPHost             string
	SMTPPort             string
	SMTPUsername         string
	SMTPPassword         string
	SenderEmail          string
	GoalReminderSchedule string
	GoalReminderDays     int
}

// NewConfig loads configuration from environment variables and an optional
// config file named by CONFIG_FILE.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_URL", "host=localhost port=5432 user=finance password=finance dbname=finance sslmode=disable")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("GOOGLE_REDIRECT_URI", "http://localhost:8080/auth/google/callback")
	v.SetDefault("LLM_API_URL", "https://api.openai.com/v1/chat/completions")
	v.SetDefault("LLM_MODEL", "gpt-3.5-turbo")
	v.SetDefault("CBR_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("GOAL_REMINDER_SCHEDULE", "0 8 * * *")
	v.SetDefault("GOAL_REMINDER_DAYS", 7)

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Port:                 v.GetString("PORT"),
		DatabaseURL:          v.GetString("DATABASE_URL"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		StateSecret:          v.GetString("STATE_SECRET"),
		FrontendURL:          strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
		GoogleClientID:       v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:   v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:    v.GetString("GOOGLE_REDIRECT_URI"),
		LLMAPIKey:            v.GetString("OPENAI_API_KEY"),
		LLMAPIURL:            v.GetString("LLM_API_URL"),
		LLMModel:             v.GetString("LLM_MODEL"),
		CBRURL:               v.GetString("CBR_URL"),
		ManagedRuntime:       v.GetString("VERCEL") != "",
		SMTPHost:             v.GetString("SMTP_HOST"),
		SMTPPort:             v.GetString("SMTP_PORT"),
		SMTPUsername:         v.GetString("SMTP_USERNAME"),
		SMTPPassword:         v.GetString("SMTP_PASSWORD"),
		SenderEmail:          v.GetString("SENDER_EMAIL"),
		GoalReminderSchedule: v.GetString("GOAL_REMINDER_SCHEDULE"),
		GoalReminderDays:     v.GetInt("GOAL_REMINDER_DAYS"),
	}
	if cfg.StateSecret == "" {
		cfg.StateSecret = cfg.JWTSecret
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// MailEnabled reports whether SMTP settings are complete enough to send mail.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != ""
}

// GoogleEnabled reports whether Google sign-in is configured.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
