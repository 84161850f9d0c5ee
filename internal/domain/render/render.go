package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avasilkov/capfetch/internal/domain/timecode"
	"github.com/avasilkov/capfetch/internal/types"
)

// Format names an output rendering of a transcript.
type Format string

const (
	FormatText       Format = "text"
	FormatTimestamps Format = "timestamps"
	FormatJSON       Format = "json"
)

// ParseFormat maps a user-facing format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatText:
		return FormatText, nil
	case FormatTimestamps:
		return FormatTimestamps, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, timestamps or json)", s)
	}
}

// Ext returns the file extension used when writing this format to disk.
func (f Format) Ext() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".txt"
}

// Render produces the transcript in the requested format.
func Render(t types.Transcript, f Format) (string, error) {
	switch f {
	case FormatText:
		return PlainText(t), nil
	case FormatTimestamps:
		return Timestamped(t), nil
	case FormatJSON:
		return JSON(t)
	default:
		return "", fmt.Errorf("unknown format %q", f)
	}
}

// PlainText joins all segment texts with single spaces.
func PlainText(t types.Transcript) string {
	parts := make([]string, 0, len(t.Segments))
	for _, s := range t.Segments {
		parts = append(parts, s.Text)
	}
	return strings.Join(parts, " ")
}

// Timestamped renders one "[M:SS] text" line per segment.
func Timestamped(t types.Transcript) string {
	var b strings.Builder
	for i, s := range t.Segments {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("[")
		b.WriteString(timecode.Clock(s.Start))
		b.WriteString("] ")
		b.WriteString(s.Text)
	}
	return b.String()
}

// JSON renders the whole transcript as indented JSON.
func JSON(t types.Transcript) (string, error) {
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal transcript: %w", err)
	}
	return string(b), nil
}
