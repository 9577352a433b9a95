package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

var (
	// ErrGeneration wraps every failed model call.
	ErrGeneration = errors.New("generation failed")
	// ErrEmptyResponse is returned when the model answers with nothing but whitespace.
	ErrEmptyResponse = errors.New("empty response from model")
)

// Options tune a single generation.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// DefaultOptions matches what the panels use unless told otherwise.
func DefaultOptions() Options {
	return Options{Temperature: 0.2, MaxTokens: 512}
}

// Generator is the one entry point the panels use to talk to a model: prompt
// in, trimmed text or an error out. It never retries.
type Generator struct {
	provider Provider
	timeout  time.Duration
	log      *slog.Logger
}

// NewGenerator wraps provider. A zero timeout leaves the deadline to ctx.
func NewGenerator(provider Provider, timeout time.Duration, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		provider: provider,
		timeout:  timeout,
		log:      log,
	}
}

// Provider returns the wrapped provider.
func (g *Generator) Provider() Provider {
	return g.provider
}

// Generate sends prompt as a single user turn. Provider failures, including
// panics, come back as errors wrapping ErrGeneration with the provider's
// message intact.
func (g *Generator) Generate(ctx context.Context, prompt string, opts Options) (text string, err error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	log := g.log.With("prompt_chars", len(prompt))
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %v", ErrGeneration, r)
			log.Error("provider panicked", "panic", r)
		}
	}()

	log = log.With("provider", g.provider.Name())

	resp, err := g.provider.Complete(ctx, NewRequest(prompt, opts))
	if err != nil {
		log.Error("generation failed", "error", err, "elapsed", time.Since(started))
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if resp == nil {
		log.Error("generation returned no response", "elapsed", time.Since(started))
		return "", fmt.Errorf("%w: %w", ErrGeneration, ErrEmptyResponse)
	}

	text = strings.TrimSpace(resp.Content)
	if text == "" {
		log.Warn("empty completion", "finish_reason", resp.FinishReason, "elapsed", time.Since(started))
		return "", fmt.Errorf("%w: %w", ErrGeneration, ErrEmptyResponse)
	}

	log.Info("generation complete",
		"model", resp.Model,
		"output_chars", len(text),
		"total_tokens", resp.Usage.TotalTokens,
		"elapsed", time.Since(started),
	)
	return text, nil
}
