package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseVTTClock converts a WebVTT timestamp ("HH:MM:SS.mmm") to seconds.
func ParseVTTClock(s string) (float64, error) {
	h, m, rest, err := splitClock(s)
	if err != nil {
		return 0, err
	}
	sec, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		return 0, fmt.Errorf("timestamp %q: seconds: %w", s, err)
	}
	if sec < 0 {
		return 0, fmt.Errorf("timestamp %q: negative seconds", s)
	}
	return float64(h)*3600 + float64(m)*60 + sec, nil
}

// ParseSRTClock converts an SRT timestamp ("HH:MM:SS,mmm") to seconds.
func ParseSRTClock(s string) (float64, error) {
	h, m, rest, err := splitClock(s)
	if err != nil {
		return 0, err
	}
	secPart, msPart, ok := strings.Cut(rest, ",")
	if !ok {
		return 0, fmt.Errorf("timestamp %q: missing millisecond separator", s)
	}
	sec, err := strconv.Atoi(secPart)
	if err != nil {
		return 0, fmt.Errorf("timestamp %q: seconds: %w", s, err)
	}
	ms, err := strconv.Atoi(msPart)
	if err != nil {
		return 0, fmt.Errorf("timestamp %q: milliseconds: %w", s, err)
	}
	if sec < 0 || ms < 0 {
		return 0, fmt.Errorf("timestamp %q: negative component", s)
	}
	return float64(h)*3600 + float64(m)*60 + float64(sec) + float64(ms)/1000, nil
}

// Clock renders seconds as "M:SS" for display. Truncates sub-second
// precision; not meant to round-trip back into segment timing.
func Clock(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func splitClock(s string) (h, m int, rest string, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, 0, "", fmt.Errorf("timestamp %q: want HH:MM:SS", s)
	}
	h, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, "", fmt.Errorf("timestamp %q: hours: %w", s, err)
	}
	m, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, "", fmt.Errorf("timestamp %q: minutes: %w", s, err)
	}
	if h < 0 || m < 0 {
		return 0, 0, "", fmt.Errorf("timestamp %q: negative component", s)
	}
	return h, m, parts[2], nil
}
