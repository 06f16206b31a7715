package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/curricula/internal/logger"
	"github.com/abhisek/curricula/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped as
// caller → retry → logging → timeout → base. eventRepo and log may be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	bounded := WithTimeout(base, cfg.Timeout)
	logged := WithLogging(bounded, cfg.Provider, eventRepo, log)
	return WithRetry(logged, cfg.Retry), nil
}

// unconfiguredProvider fails every call with the construction error,
// without touching the network.
type unconfiguredProvider struct {
	err error
}

// Unconfigured returns a Provider whose every call fails with reason.
// reason is wrapped so errors.Is(err, ErrCredentialMissing) holds.
func Unconfigured(reason error) Provider {
	switch {
	case reason == nil:
		reason = ErrCredentialMissing
	case !errors.Is(reason, ErrCredentialMissing):
		reason = fmt.Errorf("%w: %v", ErrCredentialMissing, reason)
	}
	return &unconfiguredProvider{err: reason}
}

func (u *unconfiguredProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, u.err
}

func (u *unconfiguredProvider) ModelID() string { return "unconfigured" }

// Configured reports whether p can reach a real backend.
func Configured(p Provider) bool {
	_, none := p.(*unconfiguredProvider)
	return p != nil && !none
}
