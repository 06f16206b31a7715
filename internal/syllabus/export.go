package syllabus

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Filename is the export file name for goal: spaces become underscores
// and the format extension is appended after "_syllabus".
func Filename(goal, format string) string {
	if format == "" {
		format = FormatJSON
	}
	return strings.ReplaceAll(goal, " ", "_") + "_syllabus." + format
}

// Export writes s to w in the given format.
func Export(w io.Writer, s *Syllabus, format string) error {
	switch format {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}
