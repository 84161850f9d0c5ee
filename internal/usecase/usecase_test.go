package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/avasilkov/capfetch/internal/domain/videoid"
	"github.com/avasilkov/capfetch/internal/ports"
	"github.com/avasilkov/capfetch/internal/types"
)

const goodVTT = `WEBVTT

00:00:01.000 --> 00:00:04.000
hello world

00:00:04.000 --> 00:00:07.500
goodbye world
`

func TestFetch_FallbackOrder(t *testing.T) {
	t.Parallel()

	one := &fakeSource{name: "one", err: errors.New("boom")}
	two := &fakeSource{name: "two", track: types.RawTrack{Payload: "", Encoding: types.EncodingVTT}}
	three := &fakeSource{name: "three", track: types.RawTrack{Payload: goodVTT, Encoding: types.EncodingVTT, Language: "en"}}
	four := &fakeSource{name: "four", track: types.RawTrack{Payload: goodVTT, Encoding: types.EncodingVTT}}

	uc := New(Deps{
		Sources: []ports.CaptionSource{one, two, three, four},
		Logger:  zerolog.Nop(),
	})

	tr, err := uc.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if tr.Method != "three" {
		t.Fatalf("expected method three, got %q", tr.Method)
	}
	if tr.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("unexpected video id: %q", tr.VideoID)
	}
	if tr.Language != "en" {
		t.Fatalf("unexpected language: %q", tr.Language)
	}
	want := []types.Segment{
		{Text: "hello world", Start: 1, Duration: 3},
		{Text: "goodbye world", Start: 4, Duration: 3.5},
	}
	if !reflect.DeepEqual(tr.Segments, want) {
		t.Fatalf("unexpected segments: %+v", tr.Segments)
	}
	if one.calls != 1 || two.calls != 1 || three.calls != 1 {
		t.Fatalf("expected one call each for first three sources, got %d/%d/%d", one.calls, two.calls, three.calls)
	}
	if four.calls != 0 {
		t.Fatalf("expected later source to stay untouched, got %d calls", four.calls)
	}
}

func TestFetch_InvalidArgumentBeforeSources(t *testing.T) {
	t.Parallel()

	src := &fakeSource{name: "one", track: types.RawTrack{Payload: goodVTT, Encoding: types.EncodingVTT}}
	uc := New(Deps{Sources: []ports.CaptionSource{src}, Logger: zerolog.Nop()})

	_, err := uc.Fetch(context.Background(), "https://example.com/watch?v=dQw4w9WgXcQ")
	if !errors.Is(err, videoid.ErrInvalidID) {
		t.Fatalf("expected invalid id error, got %v", err)
	}
	if errors.Is(err, ErrNoTranscript) {
		t.Fatalf("invalid id must not read as a transcript miss")
	}
	if src.calls != 0 {
		t.Fatalf("expected no source calls for invalid input, got %d", src.calls)
	}
}

func TestFetch_AllSourcesExhausted(t *testing.T) {
	t.Parallel()

	one := &fakeSource{name: "one", err: errors.New("status 404")}
	two := &fakeSource{name: "two", track: types.RawTrack{Payload: "garbage", Encoding: types.EncodingSRT}}
	uc := New(Deps{Sources: []ports.CaptionSource{one, two}, Logger: zerolog.Nop()})

	_, err := uc.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("expected ErrNoTranscript, got %v", err)
	}
	for _, reason := range []string{"one: status 404", "two: no usable cues"} {
		if !strings.Contains(err.Error(), reason) {
			t.Fatalf("expected %q in error, got %v", reason, err)
		}
	}
}

func TestFetch_NoSourcesConfigured(t *testing.T) {
	t.Parallel()

	uc := New(Deps{Logger: zerolog.Nop()})
	_, err := uc.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("expected ErrNoTranscript, got %v", err)
	}
}

func TestFetch_CollapsesNearDuplicates(t *testing.T) {
	t.Parallel()

	payload := `WEBVTT

00:00:01.000 --> 00:00:03.000
hello there friend

00:00:01.500 --> 00:00:03.500
hello there friends
`
	src := &fakeSource{name: "one", track: types.RawTrack{Payload: payload, Encoding: types.EncodingVTT}}
	uc := New(Deps{Sources: []ports.CaptionSource{src}, Logger: zerolog.Nop()})

	tr, err := uc.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(tr.Segments) != 1 {
		t.Fatalf("expected overlapping cues collapsed to 1 segment, got %d", len(tr.Segments))
	}
	if tr.Segments[0].Text != "hello there friends" {
		t.Fatalf("expected longer text kept, got %q", tr.Segments[0].Text)
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{name: "one", track: types.RawTrack{Payload: goodVTT, Encoding: types.EncodingVTT}}
	uc := New(Deps{Sources: []ports.CaptionSource{src}, Logger: zerolog.Nop()})

	_, err := uc.Fetch(ctx, "dQw4w9WgXcQ")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context error, got %v", err)
	}
	if src.calls != 0 {
		t.Fatalf("expected no source calls after cancellation, got %d", src.calls)
	}
}

func TestNormalizeFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "talk.srt")
	srt := "1\n00:00:01,000 --> 00:00:04,000\nhello world\n\n2\n00:00:04,000 --> 00:00:07,500\ngoodbye world\n"
	if err := os.WriteFile(path, []byte(srt), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	uc := New(Deps{Logger: zerolog.Nop()})
	tr, err := uc.NormalizeFile(path)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if tr.Method != "file" {
		t.Fatalf("expected method file, got %q", tr.Method)
	}
	if tr.VideoID != "talk" {
		t.Fatalf("unexpected video id: %q", tr.VideoID)
	}
	if len(tr.Segments) != 2 || tr.Segments[0].Text != "hello world" {
		t.Fatalf("unexpected segments: %+v", tr.Segments)
	}
}

func TestNormalizeFile_Errors(t *testing.T) {
	t.Parallel()

	uc := New(Deps{Logger: zerolog.Nop()})

	if _, err := uc.NormalizeFile(filepath.Join(t.TempDir(), "talk.ass")); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}

	empty := filepath.Join(t.TempDir(), "empty.vtt")
	if err := os.WriteFile(empty, []byte("WEBVTT\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := uc.NormalizeFile(empty); !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("expected ErrNoTranscript for cueless file, got %v", err)
	}
}

type fakeSource struct {
	name  string
	track types.RawTrack
	err   error
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(_ context.Context, _ string) (types.RawTrack, error) {
	f.calls++
	if f.err != nil {
		return types.RawTrack{}, f.err
	}
	return f.track, nil
}
