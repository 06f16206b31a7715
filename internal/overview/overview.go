// Package overview writes a short encouraging summary of a learning goal.
package overview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/curricula/internal/llm"
	"github.com/abhisek/curricula/internal/logger"
)

// ErrEmptyGoal is returned for a blank goal.
var ErrEmptyGoal = errors.New("learning goal is required")

// Overview is the text shown before a plan is generated.
type Overview struct {
	Text        string `json:"overview"`
	AIGenerated bool   `json:"ai_generated"`
}

// Service generates overviews.
type Service struct {
	provider llm.Provider
	log      *logger.Logger
}

// NewService creates a Service. A nil provider behaves as unconfigured.
func NewService(provider llm.Provider, log *logger.Logger) *Service {
	return &Service{provider: provider, log: logger.OrNop(log)}
}

// Generate asks the model for an overview of goal. Model failures are
// not errors; they produce a canned overview with AIGenerated false.
func (s *Service) Generate(ctx context.Context, goal string) (Overview, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return Overview{}, ErrEmptyGoal
	}

	text, err := s.generate(ctx, goal)
	switch {
	case err == nil:
		return Overview{Text: text, AIGenerated: true}, nil
	case errors.Is(err, llm.ErrCredentialMissing):
		s.log.Info("no LLM configured, using canned overview", "goal", goal)
		return Overview{Text: unconfiguredText(goal)}, nil
	default:
		s.log.Warn("overview generation failed", "goal", goal, "error", err)
		return Overview{Text: fallbackText(goal)}, nil
	}
}

func (s *Service) generate(ctx context.Context, goal string) (string, error) {
	if s.provider == nil {
		return "", llm.ErrCredentialMissing
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "overview"), llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserPrompt(buildUserMessage(goal)),
		MaxTokens:   512,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("overview: %w", err)
	}

	text := strings.TrimSpace(string(resp.Content))
	if text == "" {
		return "", errors.New("overview: empty response")
	}
	return text, nil
}

func unconfiguredText(goal string) string {
	return fmt.Sprintf("Your goal '%s' sounds exciting! Unfortunately, the AI backend is not configured, so I'll generate a plan using default logic.", goal)
}

func fallbackText(goal string) string {
	return fmt.Sprintf("This goal sounds interesting! I'll create a focused learning plan to help you get started with %s.", goal)
}

const systemPrompt = `You are a friendly, professional learning mentor.`

func buildUserMessage(goal string) string {
	return fmt.Sprintf(`The learner has this goal: %q.

Write a short, encouraging overview of 4 to 6 sentences that:
- Summarizes briefly what the topic is about.
- Mentions that it involves core concepts and practical skills.
- Notes gently that the goal is ambitious if its timeframe seems short (for example "in 1 day" or "in a few hours").
- Ends with motivation such as "Still, I'll generate a focused plan to help you cover the essentials efficiently."

Respond with plain text only. No JSON and no markdown.`, goal)
}
