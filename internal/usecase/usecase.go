package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/avasilkov/capfetch/internal/domain/captions"
	"github.com/avasilkov/capfetch/internal/domain/dedupe"
	"github.com/avasilkov/capfetch/internal/domain/videoid"
	"github.com/avasilkov/capfetch/internal/ports"
	"github.com/avasilkov/capfetch/internal/types"
)

// ErrNoTranscript reports that every configured source ran and none produced a
// usable track. It is distinct from videoid.ErrInvalidID, which fires before
// any source is tried.
var ErrNoTranscript = errors.New("no transcript available")

type Deps struct {
	Sources      []ports.CaptionSource
	JoinCueLines bool
	Logger       zerolog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

// Fetch tries the configured sources strictly in order and returns the first
// transcript with at least one segment. A failing or empty source only records
// a reason and falls through; later sources are never contacted once one
// succeeds.
func (u Usecase) Fetch(ctx context.Context, videoArg string) (types.Transcript, error) {
	id, err := videoid.Parse(videoArg)
	if err != nil {
		return types.Transcript{}, err
	}

	var attempts []string
	for _, src := range u.d.Sources {
		if err := ctx.Err(); err != nil {
			return types.Transcript{}, err
		}

		track, err := src.Fetch(ctx, id)
		if err != nil {
			u.d.Logger.Warn().Str("method", src.Name()).Err(err).Msg("caption source failed")
			attempts = append(attempts, fmt.Sprintf("%s: %v", src.Name(), err))
			continue
		}

		segs := captions.Parse(track, u.d.JoinCueLines)
		if len(segs) == 0 {
			u.d.Logger.Warn().Str("method", src.Name()).Msg("caption source returned no usable cues")
			attempts = append(attempts, src.Name()+": no usable cues")
			continue
		}

		out := dedupe.Collapse(segs)
		u.d.Logger.Info().
			Str("method", src.Name()).
			Int("segments", len(out)).
			Msg("transcript ready")
		return types.Transcript{
			VideoID:   id,
			SourceURL: "https://www.youtube.com/watch?v=" + id,
			Method:    src.Name(),
			Language:  track.Language,
			Segments:  out,
		}, nil
	}

	if len(attempts) == 0 {
		return types.Transcript{}, fmt.Errorf("%w for %s: no sources configured", ErrNoTranscript, id)
	}
	return types.Transcript{}, fmt.Errorf("%w for %s: %s", ErrNoTranscript, id, strings.Join(attempts, "; "))
}

// NormalizeFile runs a caption file already on disk through the same parse and
// collapse path as a fetched track. The encoding comes from the file extension.
func (u Usecase) NormalizeFile(path string) (types.Transcript, error) {
	enc, err := encodingForPath(path)
	if err != nil {
		return types.Transcript{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return types.Transcript{}, err
	}

	segs := captions.Parse(types.RawTrack{Payload: string(b), Encoding: enc}, u.d.JoinCueLines)
	if len(segs) == 0 {
		return types.Transcript{}, fmt.Errorf("%w in %s", ErrNoTranscript, filepath.Base(path))
	}

	name := filepath.Base(path)
	return types.Transcript{
		VideoID:  strings.TrimSuffix(name, filepath.Ext(name)),
		Method:   "file",
		Segments: dedupe.Collapse(segs),
	}, nil
}

func encodingForPath(path string) (types.Encoding, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml", ".srv1":
		return types.EncodingTimedText, nil
	case ".vtt":
		return types.EncodingVTT, nil
	case ".srt":
		return types.EncodingSRT, nil
	default:
		return "", fmt.Errorf("unsupported caption file %s", filepath.Base(path))
	}
}
