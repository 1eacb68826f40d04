// Package summarize provides optional AI summarization of rendered reports.
//
// Summarization is always an additive post-processing step: every failure
// here is recoverable and callers keep the unsummarized report text.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnavailable is returned when no provider is configured and no local
// summarization tool is present.
var ErrUnavailable = errors.New("no summarization provider available")

// ProviderError wraps failures of a concrete provider (network, auth, quota).
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("summarization provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Provider is the strategy interface for report summarization backends.
type Provider interface {
	// Name identifies the provider in logs and settings payloads.
	Name() string
	// Summarize condenses a rendered report. instructions may be empty,
	// in which case a default style instruction is used.
	Summarize(ctx context.Context, report, instructions string) (string, error)
}

// Config selects and configures a provider. All fields are plain data
// supplied by the configuration layer.
type Config struct {
	Provider      string // "openai", "anthropic", "gemini", "custom", "local" or ""
	APIKey        string
	Model         string // provider-specific default when empty
	Endpoint      string // required for "custom"
	LocalToolPath string // defaults to "cline"
	Timeout       time.Duration
}

// DefaultTimeout bounds a summarization round-trip. Interactive callers
// wait on this, so it stays short.
const DefaultTimeout = 30 * time.Second

// New selects a provider from configuration.
//
// With an empty provider name the local tool is used when present on PATH;
// otherwise ErrUnavailable is returned and callers proceed without
// summarization.
func New(cfg Config) (Provider, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := &http.Client{Timeout: timeout}

	toolPath := cfg.LocalToolPath
	if toolPath == "" {
		toolPath = defaultLocalTool
	}

	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return newOpenAIProvider(cfg.APIKey, cfg.Model, client), nil
	case "anthropic":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic provider requires an API key")
		}
		return newAnthropicProvider(cfg.APIKey, cfg.Model, client), nil
	case "gemini":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return newGeminiProvider(cfg.APIKey, cfg.Model, client), nil
	case "custom":
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("custom provider requires an endpoint URL")
		}
		return newCustomProvider(cfg.Endpoint, cfg.APIKey, cfg.Model, client), nil
	case "local":
		return newLocalToolProvider(toolPath, timeout), nil
	case "":
		if LocalToolAvailable(toolPath) {
			return newLocalToolProvider(toolPath, timeout), nil
		}
		return nil, ErrUnavailable
	}
	return nil, fmt.Errorf("unknown summarization provider: %q", cfg.Provider)
}

// defaultInstructions is used when the caller supplies no custom instructions.
const defaultInstructions = "Summarize the following work report into a concise status update. " +
	"Keep the project grouping, stay factual, and do not invent work that is not listed."

// buildPrompt assembles the text sent to a provider.
func buildPrompt(report, instructions string) string {
	if instructions == "" {
		instructions = defaultInstructions
	}
	return instructions + "\n\n" + report
}
