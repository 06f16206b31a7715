// Package llmjson recovers JSON payloads from free-form model output.
//
// Models wrap structured answers in commentary or markdown fences even when
// told not to. Extract tries, in order: a fence tagged json, any fence, then
// the whole text. The first candidate that parses wins. JSON embedded in
// unfenced prose is rejected.
package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	jsonFence = regexp.MustCompile("(?is)```\\s*json[^\\n]*\\n(.*?)```")
	anyFence  = regexp.MustCompile("(?s)```[^\\n`]*\\n(.*?)```")
)

// ErrNoJSON is wrapped by MalformedResponseError when no candidate parsed.
var ErrNoJSON = errors.New("no JSON payload found")

// MalformedResponseError reports model output that could not be recovered
// as JSON. Raw carries the untouched text for diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Extract returns the first valid JSON document found in raw.
func Extract(raw string) (json.RawMessage, error) {
	var lastErr error
	for _, c := range candidates(raw) {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(c), &v); err != nil {
			lastErr = err
			continue
		}
		return json.RawMessage(c), nil
	}
	if lastErr == nil {
		lastErr = ErrNoJSON
	} else {
		lastErr = fmt.Errorf("%w: %w", ErrNoJSON, lastErr)
	}
	return nil, &MalformedResponseError{Raw: raw, Err: lastErr}
}

// Decode extracts JSON from raw and unmarshals it into v. Shape mismatches
// are reported as MalformedResponseError too.
func Decode(raw string, v any) error {
	payload, err := Extract(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return &MalformedResponseError{Raw: raw, Err: err}
	}
	return nil
}

func candidates(raw string) []string {
	var out []string
	if m := jsonFence.FindStringSubmatch(raw); m != nil {
		out = append(out, m[1])
	}
	if m := anyFence.FindStringSubmatch(raw); m != nil {
		out = append(out, m[1])
	}
	out = append(out, raw)

	// An opening fence with no closing fence, as produced by truncated output.
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		if nl := strings.IndexByte(trimmed, '\n'); nl >= 0 {
			out = append(out, strings.TrimSuffix(trimmed[nl+1:], "```"))
		}
	}

}
