package extract

import (
	"context"
	"net/http"

	"github.com/anatolykoptev/go-kit/llm"

	"github.com/claude/gymlog/internal/config"
)

type completerFunc func(ctx context.Context, system, prompt string) (string, error)

func (f completerFunc) Complete(ctx context.Context, system, prompt string) (string, error) {
	return f(ctx, system, prompt)
}

// NewCompleter builds an OpenAI-compatible chat client from cfg. It returns
// nil when no API key is configured.
func NewCompleter(cfg config.LLMConfig) Completer {
	if cfg.APIKey == "" {
		return nil
	}
	client := llm.NewClient(cfg.APIBase, cfg.APIKey, cfg.Model,
		llm.WithFallbackKeys(cfg.FallbackKeys),
		llm.WithMaxTokens(cfg.MaxTokens),
		llm.WithTemperature(cfg.Temperature),
		llm.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	)
	return completerFunc(func(ctx context.Context, system, prompt string) (string, error) {
		return client.Complete(ctx, system, prompt)
	})
}
