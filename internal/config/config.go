package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	LLM       LLMConfig       `yaml:"llm"`
	Speech    SpeechConfig    `yaml:"speech"`
	Notion    NotionConfig    `yaml:"notion"`
	Ingest    IngestConfig    `yaml:"ingest"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings for the webhook endpoint.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings for the primary store.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"2"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// TelegramConfig holds bot credentials and webhook settings.
type TelegramConfig struct {
	Token         string `yaml:"token"           env:"TELEGRAM_TOKEN" env-required:"true"`
	WebhookPath   string `yaml:"webhook_path"    env:"TELEGRAM_WEBHOOK_PATH" env-default:"/telegram/webhook"`
	MaxAudioBytes int64  `yaml:"max_audio_bytes" env:"TELEGRAM_MAX_AUDIO_BYTES" env-default:"20971520"`
}

// LLMConfig holds settings for the structuring and question collaborator.
type LLMConfig struct {
	APIKey    string `yaml:"api_key"    env:"ANTHROPIC_API_KEY" env-required:"true"`
	Model     string `yaml:"model"      env:"LLM_MODEL"      env-default:"claude-3-5-haiku-latest"`
	MaxTokens int64  `yaml:"max_tokens" env:"LLM_MAX_TOKENS" env-default:"2048"`
}

// SpeechConfig holds settings for the transcription collaborator.
type SpeechConfig struct {
	APIKey string `yaml:"api_key" env:"OPENAI_API_KEY" env-required:"true"`
	Model  string `yaml:"model"   env:"SPEECH_MODEL"   env-default:"whisper-1"`
}

// NotionConfig holds credentials for the secondary record store.
type NotionConfig struct {
	Token      string `yaml:"token"       env:"NOTION_TOKEN"       env-required:"true"`
	DatabaseID string `yaml:"database_id" env:"NOTION_DATABASE_ID" env-required:"true"`
}

// IngestConfig holds thresholds for classifying and guarding inbound text.
type IngestConfig struct {
	// DayPrefix marks a message as a day description regardless of length.
	DayPrefix string `yaml:"day_prefix" env:"INGEST_DAY_PREFIX" env-default:"Log day"`

	// DayTextThreshold: text longer than this is treated as a day
	// description even without the prefix.
	DayTextThreshold int `yaml:"day_text_threshold" env:"INGEST_DAY_TEXT_THRESHOLD" env-default:"120"`

	// MaxTextLen: inbound text above this is rejected before any
	// collaborator call.
	MaxTextLen int `yaml:"max_text_len" env:"INGEST_MAX_TEXT_LEN" env-default:"4000"`

	// MinTranscriptLen: transcripts shorter than this abort the audio flow.
	MinTranscriptLen int `yaml:"min_transcript_len" env:"INGEST_MIN_TRANSCRIPT_LEN" env-default:"5"`

	// PreviewLen caps the raw-text preview echoed back after ingestion.
	PreviewLen int `yaml:"preview_len" env:"INGEST_PREVIEW_LEN" env-default:"200"`
}

// RateLimitConfig holds per-chat throttle settings.
type RateLimitConfig struct {
	Interval time.Duration `yaml:"interval" env:"RATE_LIMIT_INTERVAL" env-default:"1s"`
	TTL      time.Duration `yaml:"ttl"      env:"RATE_LIMIT_TTL"      env-default:"1h"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
