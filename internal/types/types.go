package types

// Encoding identifies the wire format of a fetched caption track.
type Encoding string

const (
	EncodingTimedText Encoding = "xml-timedtext"
	EncodingVTT       Encoding = "vtt"
	EncodingSRT       Encoding = "srt"
)

// RawTrack is a fetched, still-encoded caption track. It is handed to the
// matching parser exactly once and not retained afterwards.
type RawTrack struct {
	Payload  string
	Encoding Encoding
	Language string
}

type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End returns the segment end in seconds.
func (s Segment) End() float64 { return s.Start + s.Duration }

type Transcript struct {
	VideoID   string    `json:"video_id"`
	SourceURL string    `json:"source_url,omitempty"`
	Method    string    `json:"method"`
	Language  string    `json:"language,omitempty"`
	Segments  []Segment `json:"segments"`
}
