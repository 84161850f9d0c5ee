package captions

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/avasilkov/capfetch/internal/types"
)

type timedTextDoc struct {
	XMLName xml.Name       `xml:"transcript"`
	Cues    []timedTextCue `xml:"text"`
}

type timedTextCue struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Body  string `xml:",innerxml"`
}

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// ParseTimedText extracts cues from a timedtext XML payload
// (<transcript><text start="..." dur="...">...</text></transcript>).
// Attribute order does not matter. Cues with a non-numeric or negative
// start/dur, or with no text left after markup and entity cleanup, are
// dropped. Cue order is preserved as-is.
func ParseTimedText(payload string) []types.Segment {
	dec := xml.NewDecoder(strings.NewReader(payload))
	dec.Strict = false

	var doc timedTextDoc
	if err := dec.Decode(&doc); err != nil {
		return nil
	}

	out := make([]types.Segment, 0, len(doc.Cues))
	for _, c := range doc.Cues {
		start, err := strconv.ParseFloat(strings.TrimSpace(c.Start), 64)
		if err != nil || start < 0 {
			continue
		}
		dur, err := strconv.ParseFloat(strings.TrimSpace(c.Dur), 64)
		if err != nil || dur < 0 {
			continue
		}
		text := strings.TrimSpace(decodeEntities(stripTags(c.Body)))
		if text == "" {
			continue
		}
		out = append(out, types.Segment{Text: text, Start: start, Duration: dur})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// decodeEntities resolves the five entities caption payloads use. Payloads
// are routinely double-encoded (&amp;#39; for an apostrophe), so decoding
// repeats while it keeps uncovering more, capped at two passes.
func decodeEntities(s string) string {
	for i := 0; i < 2; i++ {
		next := entityReplacer.Replace(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}
