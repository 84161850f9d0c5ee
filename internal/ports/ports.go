package ports

import (
	"context"

	"github.com/avasilkov/capfetch/internal/types"
)

type CaptionSource interface {
	// Name tags transcripts and fetch diagnostics with the method that
	// produced them.
	Name() string
	Fetch(ctx context.Context, videoID string) (types.RawTrack, error)
}
