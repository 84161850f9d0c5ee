package captions

import (
	"strings"

	"github.com/avasilkov/capfetch/internal/domain/timecode"
	"github.com/avasilkov/capfetch/internal/types"
)

// ParseSRT extracts subtitle records from an SRT payload. Records are
// blank-line-separated blocks of at least three lines: an index, a
// timestamp line containing " --> ", and one or more text lines that are
// joined with single spaces. Shorter blocks and blocks whose timestamp
// line fails to parse are skipped.
func ParseSRT(payload string) []types.Segment {
	var out []types.Segment
	blocks := strings.Split(strings.ReplaceAll(payload, "\r\n", "\n"), "\n\n")
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 3 {
			continue
		}
		start, dur, ok := srtTiming(lines[1])
		if !ok {
			continue
		}
		parts := make([]string, 0, len(lines)-2)
		for _, l := range lines[2:] {
			if t := strings.TrimSpace(stripTags(l)); t != "" {
				parts = append(parts, t)
			}
		}
		text := strings.Join(parts, " ")
		if text == "" {
			continue
		}
		out = append(out, types.Segment{Text: text, Start: start, Duration: dur})
	}
	return out
}

func srtTiming(line string) (start, dur float64, ok bool) {
	left, right, found := strings.Cut(strings.TrimSpace(line), arrow)
	if !found {
		return 0, 0, false
	}
	fields := strings.Fields(right)
	if len(fields) == 0 {
		return 0, 0, false
	}
	s, err := timecode.ParseSRTClock(left)
	if err != nil {
		return 0, 0, false
	}
	e, err := timecode.ParseSRTClock(fields[0])
	if err != nil || e < s {
		return 0, 0, false
	}
	return s, e - s, true
}
