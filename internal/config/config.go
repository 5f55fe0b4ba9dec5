package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	TransportInProcess = "inprocess"
	TransportHTTP      = "http"
)

type Config struct {
	DatabaseURL string   `env:"DATABASE_URL,required,notEmpty"`
	HTTPPort    string   `env:"HTTP_PORT" envDefault:"8000"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"INFO"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost,http://127.0.0.1:5500,http://localhost:5500"`

	Reply    ReplyConfig
	Reminder ReminderConfig
	Audio    AudioConfig
}

type ReplyConfig struct {
	Provider     string  `env:"REPLY_PROVIDER" envDefault:"gemini"`
	GoogleAPIKey string  `env:"GOOGLE_API_KEY"`
	GeminiModel  string  `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	OpenAIAPIKey string  `env:"OPENAI_API_KEY"`
	OpenAIModel  string  `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	Temperature  float32 `env:"REPLY_TEMPERATURE" envDefault:"0.7"`
}

// APIKey returns the credential for the selected provider.
func (c ReplyConfig) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GoogleAPIKey
}

type ReminderConfig struct {
	Enabled     bool   `env:"REMINDER_ENABLED" envDefault:"true"`
	Hour        int    `env:"REMINDER_HOUR" envDefault:"20"`
	Minute      int    `env:"REMINDER_MINUTE" envDefault:"0"`
	DefaultUser string `env:"DEFAULT_USER" envDefault:"junior"`
	Transport   string `env:"REMINDER_TRANSPORT" envDefault:"inprocess"`
	APIBase     string `env:"API_BASE" envDefault:"http://localhost:8000"`
}

type AudioConfig struct {
	Dir         string `env:"AUDIO_DIR" envDefault:"audio"`
	TTSLanguage string `env:"TTS_LANGUAGE" envDefault:"en"`
	TTSBaseURL  string `env:"TTS_BASE_URL" envDefault:"https://translate.google.com"`

	S3Bucket          string `env:"AUDIO_S3_BUCKET"`
	PublicBaseURL     string `env:"AUDIO_PUBLIC_BASE_URL"`
	S3EndpointURL     string `env:"S3_ENDPOINT_URL"`
	S3AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
}

func (c AudioConfig) UseS3() bool {
	return c.S3Bucket != ""
}

// Load reads the given env files (".env" when none are given) and then the
// process environment. A missing env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Info("no .env file found, relying on environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Reply.Provider = strings.ToLower(strings.TrimSpace(c.Reply.Provider))
	if c.Reply.Provider != ProviderGemini && c.Reply.Provider != ProviderOpenAI {
		return fmt.Errorf("invalid REPLY_PROVIDER %q: must be %q or %q", c.Reply.Provider, ProviderGemini, ProviderOpenAI)
	}

	c.Reminder.Transport = strings.ToLower(strings.TrimSpace(c.Reminder.Transport))
	if c.Reminder.Transport != TransportInProcess && c.Reminder.Transport != TransportHTTP {
		return fmt.Errorf("invalid REMINDER_TRANSPORT %q: must be %q or %q", c.Reminder.Transport, TransportInProcess, TransportHTTP)
	}

	if c.Audio.UseS3() && c.Audio.PublicBaseURL == "" {
		return fmt.Errorf("AUDIO_PUBLIC_BASE_URL is required when AUDIO_S3_BUCKET is set")
	}

	for i, origin := range c.CORSOrigins {
		c.CORSOrigins[i] = strings.TrimSpace(origin)
	}
	return nil
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
