package overview

import (
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/curricula/internal/llm"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		provider llm.Provider
		wantText string
		wantAI   bool
	}{
		{
			name:     "model text",
			provider: llm.NewMockProvider(llm.MockText("  Go is a small language.\nStill, I'll help.  ")),
			wantText: "Go is a small language.\nStill, I'll help.",
			wantAI:   true,
		},
		{
			name:     "no provider",
			provider: nil,
			wantText: "Your goal 'Learn Go' sounds exciting! Unfortunately, the AI backend is not configured, so I'll generate a plan using default logic.",
		},
		{
			name:     "unconfigured",
			provider: llm.Unconfigured(nil),
			wantText: "Your goal 'Learn Go' sounds exciting! Unfortunately, the AI backend is not configured, so I'll generate a plan using default logic.",
		},
		{
			name:     "upstream failure",
			provider: llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("503")}}),
			wantText: "This goal sounds interesting! I'll create a focused learning plan to help you get started with Learn Go.",
		},
		{
			name:     "blank response",
			provider: llm.NewMockProvider(llm.MockText("   ")),
			wantText: "This goal sounds interesting! I'll create a focused learning plan to help you get started with Learn Go.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewService(tt.provider, nil).Generate(t.Context(), " Learn Go ")
			if err != nil {
				t.Fatalf("Generate: %v", err)
			}
			if got.Text != tt.wantText {
				t.Errorf("text = %q, want %q", got.Text, tt.wantText)
			}
			if got.AIGenerated != tt.wantAI {
				t.Errorf("ai_generated = %v, want %v", got.AIGenerated, tt.wantAI)
			}
		})
	}
}

func TestGenerate_EmptyGoal(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewService(mock, nil).Generate(t.Context(), " \t ")
	if !errors.Is(err, ErrEmptyGoal) {
		t.Fatalf("err = %v, want ErrEmptyGoal", err)
	}
	if mock.CallCount() != 0 {
		t.Fatal("empty goal must not reach the model")
	}
}

func TestGenerate_PlainTextRequest(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("ok"))
	if _, err := NewService(mock, nil).Generate(t.Context(), "Learn chess in 2 days"); err != nil {
		t.Fatal(err)
	}
	call := mock.Calls[0]
	if call.Schema != nil {
		t.Error("overview must not request structured output")
	}
	if !strings.Contains(call.Messages[0].Content, `"Learn chess in 2 days"`) {
		t.Errorf("prompt missing goal:\n%s", call.Messages[0].Content)
	}
}
