package captions

import (
	"strings"

	"github.com/avasilkov/capfetch/internal/domain/timecode"
	"github.com/avasilkov/capfetch/internal/types"
)

const arrow = " --> "

// ParseVTT extracts cues from a WebVTT payload. A line containing " --> "
// opens a cue; the duration is end minus start. Header, NOTE, blank, and
// standalone cue-setting lines (align:/position:) are skipped, inline
// markup is stripped. Cues whose timestamps fail to parse are dropped and
// scanning continues with the next cue.
//
// joinCueLines picks how multi-line cues are read: false keeps only the
// first text line of each cue (the behavior downstream consumers of
// single-line auto captions were built against), true joins every text
// line of the cue with single spaces.
func ParseVTT(payload string, joinCueLines bool) []types.Segment {
	var (
		out   []types.Segment
		inCue bool
		start float64
		dur   float64
		texts []string
	)

	flush := func() {
		if inCue && len(texts) > 0 {
			out = append(out, types.Segment{
				Text:     strings.Join(texts, " "),
				Start:    start,
				Duration: dur,
			})
		}
		inCue = false
		texts = texts[:0]
	}

	for _, raw := range strings.Split(payload, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.Contains(line, arrow):
			flush()
			var ok bool
			start, dur, ok = vttTiming(line)
			inCue = ok
		case line == "":
			flush()
		case strings.HasPrefix(line, "WEBVTT"), strings.HasPrefix(line, "NOTE"):
			// header and comments
		case strings.Contains(line, "align:"), strings.Contains(line, "position:"):
			// standalone cue settings
		case inCue:
			text := strings.TrimSpace(stripTags(line))
			if text == "" {
				continue
			}
			if joinCueLines {
				texts = append(texts, text)
				continue
			}
			// Single-line mode: the first text line is the whole cue and the
			// rest of the block is discarded.
			out = append(out, types.Segment{Text: text, Start: start, Duration: dur})
			inCue = false
		}
	}
	flush()
	return out
}

func vttTiming(line string) (start, dur float64, ok bool) {
	left, right, found := strings.Cut(line, arrow)
	if !found {
		return 0, 0, false
	}
	// The end stamp may be followed by inline cue settings
	// ("00:00:01.000 --> 00:00:04.000 align:start position:0%").
	fields := strings.Fields(right)
	if len(fields) == 0 {
		return 0, 0, false
	}
	s, err := timecode.ParseVTTClock(left)
	if err != nil {
		return 0, 0, false
	}
	e, err := timecode.ParseVTTClock(fields[0])
	if err != nil || e < s {
		return 0, 0, false
	}
	return s, e - s, true
}
