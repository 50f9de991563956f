// Package llm talks to the language-analysis collaborator. It produces free
// text only; extracting structured records from that text is recordparse's
// job, so no output-shape guarantees are assumed here.
package llm

import (
	"context"
	"fmt"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"worklogbot/internal/config"
)

const (
	questionSystemPrompt = "You are a friendly assistant. Answer briefly."

	structuringSystemPrompt = "You are an assistant that turns a worker's " +
		"free-form description of a workday into structured work-site records."
)

// Client wraps the Anthropic API for the two collaborator roles the bot
// needs: structuring a day description and answering a free question.
type Client struct {
	api       anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

// New creates a Client from LLM configuration.
func New(cfg config.LLMConfig) *Client {
	return &Client{
		api:       anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     anthropic.Model(cfg.Model),
		maxTokens: cfg.MaxTokens,
	}
}

// StructureDay asks the model to describe the day as a JSON array of work
// records, each forced to carry the reference date and time. The raw model
// output is returned as-is.
func (c *Client) StructureDay(ctx context.Context, raw string, ref time.Time) (string, error) {
	return c.complete(ctx, structuringSystemPrompt, buildDayPrompt(raw, ref))
}

// Answer forwards a free-form question and returns the model's reply verbatim.
func (c *Client) Answer(ctx context.Context, question string) (string, error) {
	return c.complete(ctx, questionSystemPrompt, question)
}

func (c *Client) complete(ctx context.Context, system, prompt string) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm api call: %w", err)
	}

	if len(msg.Content) == 0 {
		return "", fmt.Errorf("llm api call: empty response")
	}

	return msg.Content[0].Text, nil
}

// buildDayPrompt creates the structuring prompt for one day description.
func buildDayPrompt(raw string, ref time.Time) string {
	ref = ref.UTC()
	return fmt.Sprintf(`Here is a description of a workday:
"%s"

Extract every work-site observation into a JSON array of objects with this exact schema:
[
  {
    "date": "%s",
    "time": "%s",
    "object_name": "<work-site or object name>",
    "location": "<where the work happened>",
    "work_done": "<what was done>",
    "workers": ["<name>", "..."],
    "income": <non-negative number, 0 if not mentioned>
  }
]

Rules:
- Every record must carry date %q and time %q exactly as given
- One record per distinct work site or activity
- Omit fields you cannot fill rather than inventing values
- Output ONLY the JSON array, no markdown, no explanations`,
		raw,
		ref.Format(time.DateOnly),
		ref.Format("15:04"),
		ref.Format(time.DateOnly),
		ref.Format("15:04"),
	)
}
