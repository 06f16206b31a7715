package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact purpose match when set
	After   int64  // sequence > After
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and reads LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// Artifact kinds.
const (
	KindSyllabus   = "syllabus"
	KindLessonPlan = "lesson_plan"
)

// ErrNoSession is returned when an artifact is saved without a session id.
var ErrNoSession = errors.New("artifact has no session id")

// Artifact is a generated document scoped to one session.
type Artifact struct {
	ID        string          `json:"id"`
	Sequence  int64           `json:"sequence"`
	SessionID string          `json:"session_id"`
	Kind      string          `json:"kind"`
	Goal      string          `json:"goal"`
	CreatedAt time.Time       `json:"created_at"`
	Body      json.RawMessage `json:"body"`
}

// ArtifactRepo stores per-session pipeline output for later download.
type ArtifactRepo interface {
	// Save stores a. ID and CreatedAt are filled in when empty.
	Save(ctx context.Context, a *Artifact) error

	// Latest returns the newest artifact of kind for session, or nil.
	Latest(ctx context.Context, sessionID, kind string) (*Artifact, error)
}
