package llmjson

import (
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"padded", "\n  {\"a\":1}  \n", `{"a":1}`},
		{"json fence", "Here you go:\n```json\n{\"a\":1}\n```\nEnjoy!", `{"a":1}`},
		{"upper case tag", "```JSON\n{\"a\":2}\n```", `{"a":2}`},
		{"untagged fence", "```\n{\"a\":3}\n```", `{"a":3}`},
		{"other tag", "```javascript\n[1,2]\n```", `[1,2]`},
		{"json fence wins", "```text\n{\"a\":1}\n```\n```json\n{\"b\":2}\n```", `{"b":2}`},
		{"unclosed fence", "```json\n{\"a\":4}", `{"a":4}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.raw)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExtractMalformed(t *testing.T) {
	raws := []string{
		"",
		"I cannot help with that.",
		"```json\n{not json}\n```",
		"{ broken",
		`Sure! Here is your syllabus: {"goal":"x","units":[]} Hope this helps.`,
		"Options: [1, 2] or [3]",
	}
	for _, raw := range raws {
		_, err := Extract(raw)
		var mal *MalformedResponseError
		if !errors.As(err, &mal) {
			t.Fatalf("Extract(%q): want MalformedResponseError, got %v", raw, err)
		}
		if mal.Raw != raw {
			t.Errorf("Raw = %q, want %q", mal.Raw, raw)
		}
		if !errors.Is(err, ErrNoJSON) {
			t.Errorf("expected ErrNoJSON in chain, got %v", err)
		}
	}
}

func TestDecodeShapeMismatch(t *testing.T) {
	var out struct {
		Units []string `json:"units"`
	}
	err := Decode(`{"units": "not a list"}`, &out)
	var mal *MalformedResponseError
	if !errors.As(err, &mal) {
		t.Fatalf("want MalformedResponseError, got %v", err)
	}
}

func TestDecode(t *testing.T) {
	var out struct {
		Goal string `json:"goal"`
	}
	if err := Decode("```json\n{\"goal\":\"Go\"}\n```", &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Goal != "Go" {
		t.Errorf("Goal = %q", out.Goal)
	}
}
