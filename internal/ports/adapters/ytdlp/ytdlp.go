package ytdlp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/avasilkov/capfetch/internal/types"
)

// SourceName tags transcripts produced by this adapter.
const SourceName = "ytdlp"

type Adapter struct {
	bin       string
	lang      string
	subFormat string
	tmpDir    string
}

func New(binPath, lang, subFormat, tmpDir string) *Adapter {
	if binPath == "" {
		binPath = "yt-dlp"
	}
	if lang == "" {
		lang = "en"
	}
	if subFormat != "srt" {
		subFormat = "vtt"
	}
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	return &Adapter{bin: binPath, lang: lang, subFormat: subFormat, tmpDir: tmpDir}
}

func (a *Adapter) Name() string {
	return SourceName
}

func (a *Adapter) Fetch(ctx context.Context, videoID string) (types.RawTrack, error) {
	// Each request gets its own directory keyed by video id, so parallel
	// fetches of the same video never collide on artifact names.
	workDir, err := os.MkdirTemp(a.tmpDir, "capfetch-"+videoID+"-")
	if err != nil {
		return types.RawTrack{}, err
	}
	defer os.RemoveAll(workDir)

	args := []string{
		"--skip-download",
		"--write-subs",
		"--write-auto-subs",
		"--sub-langs", a.lang,
		"--sub-format", a.subFormat,
		"-o", filepath.Join(workDir, videoID),
		"https://www.youtube.com/watch?v=" + videoID,
	}
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return types.RawTrack{}, fmt.Errorf("yt-dlp failed: %w\n%s", err, string(b))
	}

	// yt-dlp names subtitle files <id>.<lang>.<ext>. Prefer the exact
	// requested language and fall back to whatever else it wrote.
	matches, err := filepath.Glob(filepath.Join(workDir, videoID+"*."+a.subFormat))
	if err != nil {
		return types.RawTrack{}, err
	}
	path := pickSubtitle(matches, filepath.Join(workDir, videoID+"."+a.lang+"."+a.subFormat))
	if path == "" {
		return types.RawTrack{}, fmt.Errorf("yt-dlp wrote no %s subtitles for %s", a.lang, videoID)
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		return types.RawTrack{}, err
	}
	enc := types.EncodingVTT
	if a.subFormat == "srt" {
		enc = types.EncodingSRT
	}
	return types.RawTrack{
		Payload:  string(payload),
		Encoding: enc,
		Language: subtitleLanguage(path),
	}, nil
}

func pickSubtitle(paths []string, preferred string) string {
	if len(paths) == 0 {
		return ""
	}
	for _, p := range paths {
		if p == preferred {
			return p
		}
	}
	sort.Strings(paths)
	return paths[0]
}

func subtitleLanguage(path string) string {
	parts := strings.Split(filepath.Base(path), ".")
	if len(parts) < 3 {
		return ""
	}
	return parts[len(parts)-2]
}
