package captions

import (
	"regexp"

	"github.com/avasilkov/capfetch/internal/types"
)

// tagRe matches inline markup left in cue text (<c>, <i>, <font>, karaoke
// timestamps like <00:00:01.319>).
var tagRe = regexp.MustCompile(`<[^>]*>`)

// Parse decodes a raw track with the parser its encoding names. Unknown
// encodings yield no segments. Parsers are total: malformed cues are
// dropped, unusable payloads decode to an empty result, never an error.
func Parse(track types.RawTrack, joinCueLines bool) []types.Segment {
	switch track.Encoding {
	case types.EncodingTimedText:
		return ParseTimedText(track.Payload)
	case types.EncodingVTT:
		return ParseVTT(track.Payload, joinCueLines)
	case types.EncodingSRT:
		return ParseSRT(track.Payload)
	default:
		return nil
	}
}

func stripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}
