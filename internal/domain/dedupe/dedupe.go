package dedupe

import (
	"strings"

	"github.com/avasilkov/capfetch/internal/types"
)

const (
	// similarityThreshold is the Jaccard overlap above which two adjacent
	// segments count as the same content.
	similarityThreshold = 0.7
	// proximityWindowSec merges adjacent segments whose starts are closer
	// than this many seconds regardless of wording.
	proximityWindowSec = 2.0
)

// Collapse merges near-duplicate neighbors in one left-to-right pass, the
// shape auto-captions repeat rolling text in. Two neighbors merge when
// their lowercase token sets overlap by more than similarityThreshold or
// their starts are closer than proximityWindowSec. A merge keeps the
// segment with the longer text wholesale, timing included; ties keep the
// earlier one. Collapse applied to its own output changes nothing.
func Collapse(segs []types.Segment) []types.Segment {
	if len(segs) == 0 {
		return nil
	}
	out := make([]types.Segment, 0, len(segs))
	current := segs[0]
	for _, next := range segs[1:] {
		if !shouldMerge(current, next) {
			out = append(out, current)
			current = next
			continue
		}
		if len([]rune(next.Text)) > len([]rune(current.Text)) {
			current = next
		}
	}
	return append(out, current)
}

func shouldMerge(current, next types.Segment) bool {
	if abs(next.Start-current.Start) < proximityWindowSec {
		return true
	}
	return jaccard(tokens(current.Text), tokens(next.Text)) > similarityThreshold
}

func tokens(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, f := range strings.Fields(strings.ToLower(s)) {
		set[f] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
