package timedtext

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/avasilkov/capfetch/internal/types"
)

// Source names reported by the two endpoint variants.
const (
	SourceName    = "timedtext"
	SourceNameVTT = "timedtext-vtt"
)

const requestTimeout = 30 * time.Second

type Adapter struct {
	baseURL  string
	lang     string
	encoding types.Encoding
	client   *http.Client
}

// New returns a caption source reading the public timedtext endpoint in
// its native XML form.
func New(baseURL, lang string) *Adapter {
	return newAdapter(baseURL, lang, types.EncodingTimedText)
}

// NewVTT returns a caption source requesting the same endpoint with
// fmt=vtt.
func NewVTT(baseURL, lang string) *Adapter {
	return newAdapter(baseURL, lang, types.EncodingVTT)
}

func newAdapter(baseURL, lang string, enc types.Encoding) *Adapter {
	if lang == "" {
		lang = "en"
	}
	return &Adapter{
		baseURL:  normalizeBaseURL(baseURL),
		lang:     lang,
		encoding: enc,
		client:   &http.Client{Timeout: time.Minute},
	}
}

func (a *Adapter) Name() string {
	if a.encoding == types.EncodingVTT {
		return SourceNameVTT
	}
	return SourceName
}

func (a *Adapter) Fetch(ctx context.Context, videoID string) (types.RawTrack, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	trackURL := a.TrackURL(videoID)
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, trackURL, nil)
	if err != nil {
		return types.RawTrack{}, err
	}
	// The endpoint is unauthenticated but drops obvious non-browser
	// clients; send a plausible browser identity.
	req.Header.Set("User-Agent", gofakeit.UserAgent())
	req.Header.Set("Accept-Language", a.lang+",en;q=0.8")

	resp, err := a.client.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			return types.RawTrack{}, fmt.Errorf("timedtext timeout after %s", requestTimeout)
		}
		return types.RawTrack{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return types.RawTrack{}, fmt.Errorf("timedtext status %d and read body failed: %v", resp.StatusCode, readErr)
		}
		return types.RawTrack{}, fmt.Errorf("timedtext status %d: %s", resp.StatusCode, truncate(string(rb), 200))
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return types.RawTrack{}, fmt.Errorf("read timedtext body: %w", err)
	}
	// The endpoint answers 200 with an empty body when the video has no
	// track in the requested language.
	if strings.TrimSpace(string(b)) == "" {
		return types.RawTrack{}, fmt.Errorf("no %s track for %s", a.lang, videoID)
	}

	return types.RawTrack{
		Payload:  string(b),
		Encoding: a.encoding,
		Language: a.lang,
	}, nil
}

// TrackURL builds the endpoint URL for a video id.
func (a *Adapter) TrackURL(videoID string) string {
	q := url.Values{}
	q.Set("v", videoID)
	q.Set("lang", a.lang)
	if a.encoding == types.EncodingVTT {
		q.Set("fmt", "vtt")
	}
	return a.baseURL + "/timedtext?" + q.Encode()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
