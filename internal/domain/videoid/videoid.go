package videoid

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ErrInvalidID reports that an argument is neither a video id nor a
// recognized video URL. It fires before any fetching starts, so callers
// can tell bad input apart from a video that has no captions.
var ErrInvalidID = errors.New("invalid video id")

var idRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Parse extracts the canonical 11-character video id from a bare id or any
// of the usual URL shapes (watch?v=, youtu.be/, /shorts/, /embed/, /live/).
func Parse(arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	if idRe.MatchString(arg) {
		return arg, nil
	}

	candidate := arg
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, arg)
	}
	if id := idFromURL(u); idRe.MatchString(id) {
		return id, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidID, arg)
}

func idFromURL(u *url.URL) string {
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	path := strings.Trim(u.Path, "/")
	switch host {
	case "youtu.be":
		return firstPathSegment(path)
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		if v := u.Query().Get("v"); v != "" {
			return v
		}
		for _, prefix := range []string{"shorts/", "embed/", "live/"} {
			if rest, ok := strings.CutPrefix(path, prefix); ok {
				return firstPathSegment(rest)
			}
		}
	}
	return ""
}

func firstPathSegment(p string) string {
	seg, _, _ := strings.Cut(p, "/")
	return seg
}
