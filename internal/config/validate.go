package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Telegram.WebhookPath, "/") {
		return fmt.Errorf("telegram.webhook_path must start with '/' (got %q)", c.Telegram.WebhookPath)
	}
	if c.Telegram.MaxAudioBytes <= 0 {
		return fmt.Errorf("telegram.max_audio_bytes must be > 0 (got %d)", c.Telegram.MaxAudioBytes)
	}

	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be > 0 (got %d)", c.LLM.MaxTokens)
	}

	if err := c.Ingest.validate(); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	if c.RateLimit.Interval <= 0 {
		return fmt.Errorf("rate_limit.interval must be > 0 (got %v)", c.RateLimit.Interval)
	}
	if c.RateLimit.TTL < c.RateLimit.Interval {
		return fmt.Errorf("rate_limit.ttl must be >= interval (got %v < %v)", c.RateLimit.TTL, c.RateLimit.Interval)
	}

	return nil
}

func (i *IngestConfig) validate() error {
	if strings.TrimSpace(i.DayPrefix) == "" {
		return fmt.Errorf("day_prefix must not be blank")
	}
	if i.DayTextThreshold <= 0 {
		return fmt.Errorf("day_text_threshold must be > 0 (got %d)", i.DayTextThreshold)
	}
	if i.MaxTextLen <= i.DayTextThreshold {
		return fmt.Errorf("max_text_len must exceed day_text_threshold (got %d <= %d)", i.MaxTextLen, i.DayTextThreshold)
	}
	if i.MinTranscriptLen < 1 {
		return fmt.Errorf("min_transcript_len must be >= 1 (got %d)", i.MinTranscriptLen)
	}
	if i.PreviewLen <= 0 {
		return fmt.Errorf("preview_len must be > 0 (got %d)", i.PreviewLen)
	}
	return nil
}
