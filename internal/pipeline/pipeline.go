package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/avasilkov/capfetch/internal/domain/render"
	"github.com/avasilkov/capfetch/internal/ports"
	"github.com/avasilkov/capfetch/internal/ports/adapters/timedtext"
	"github.com/avasilkov/capfetch/internal/ports/adapters/ytdlp"
	"github.com/avasilkov/capfetch/internal/types"
	"github.com/avasilkov/capfetch/internal/usecase"
	"github.com/avasilkov/capfetch/internal/watcher"
)

type Config struct {
	Video        string
	Language     string
	Sources      []string
	JoinCueLines bool
	Format       string

	// OutPath is the file the rendered transcript goes to. If empty, it is
	// printed to stdout.
	OutPath string

	TimedtextBaseURL      string
	TimedtextAllowedHosts []string

	YtdlpPath      string
	YtdlpSubFormat string
	TmpDir         string

	Logger zerolog.Logger
}

func (c Config) Validate() error {
	if c.Video == "" {
		return errors.New("video is empty")
	}
	if _, err := render.ParseFormat(c.Format); err != nil {
		return err
	}
	for _, name := range c.Sources {
		switch name {
		case timedtext.SourceName, timedtext.SourceNameVTT, ytdlp.SourceName:
		default:
			return fmt.Errorf("unknown source %q (want %s)", name, strings.Join(DefaultSourceOrder(), ", "))
		}
	}
	return timedtext.ValidateBaseURL(
		c.TimedtextBaseURL,
		c.TimedtextAllowedHosts,
	)
}

func Run(ctx context.Context, cfg Config) error {
	uc := usecase.New(usecase.Deps{
		Sources:      buildSources(cfg),
		JoinCueLines: cfg.JoinCueLines,
		Logger:       cfg.Logger,
	})

	tr, err := uc.Fetch(ctx, cfg.Video)
	if err != nil {
		return err
	}
	return writeRendered(cfg, tr)
}

// RunFile normalizes a caption file already on disk. No sources are built and
// nothing is fetched.
func RunFile(cfg Config, path string) error {
	uc := usecase.New(usecase.Deps{
		JoinCueLines: cfg.JoinCueLines,
		Logger:       cfg.Logger,
	})

	tr, err := uc.NormalizeFile(path)
	if err != nil {
		return err
	}
	return writeRendered(cfg, tr)
}

// RunWatch monitors inputDir and writes a rendered transcript into outDir for
// every caption file dropped there. It blocks until ctx is cancelled.
func RunWatch(ctx context.Context, cfg Config, inputDir, outDir string, maxConcurrent int) error {
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	uc := usecase.New(usecase.Deps{
		JoinCueLines: cfg.JoinCueLines,
		Logger:       cfg.Logger,
	})
	handler := func(_ context.Context, path string) error {
		tr, err := uc.NormalizeFile(path)
		if err != nil {
			return err
		}
		out, err := render.Render(tr, format)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + format.Ext()
		return os.WriteFile(filepath.Join(outDir, name), []byte(out), 0o644)
	}

	w, err := watcher.New(inputDir, handler, cfg.Logger, maxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()
	return w.Start(ctx)
}

func writeRendered(cfg Config, tr types.Transcript) error {
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	out, err := render.Render(tr, format)
	if err != nil {
		return err
	}

	if cfg.OutPath == "" {
		_, err := fmt.Fprintln(os.Stdout, out)
		return err
	}
	if err := os.WriteFile(cfg.OutPath, []byte(out), 0o644); err != nil {
		return err
	}
	cfg.Logger.Info().Str("path", cfg.OutPath).Msg("transcript written")
	return nil
}

// DefaultSourceOrder lists every known source in fallback priority order.
func DefaultSourceOrder() []string {
	return []string{timedtext.SourceName, timedtext.SourceNameVTT, ytdlp.SourceName}
}

func buildSources(cfg Config) []ports.CaptionSource {
	names := cfg.Sources
	if len(names) == 0 {
		names = DefaultSourceOrder()
	}

	var out []ports.CaptionSource
	for _, name := range names {
		switch name {
		case timedtext.SourceName:
			out = append(out, timedtext.New(cfg.TimedtextBaseURL, cfg.Language))
		case timedtext.SourceNameVTT:
			out = append(out, timedtext.NewVTT(cfg.TimedtextBaseURL, cfg.Language))
		case ytdlp.SourceName:
			out = append(out, ytdlp.New(cfg.YtdlpPath, cfg.Language, cfg.YtdlpSubFormat, cfg.TmpDir))
		}
	}
	return out
}

// ensure adapters implement ports
var _ ports.CaptionSource = (*timedtext.Adapter)(nil)
var _ ports.CaptionSource = (*ytdlp.Adapter)(nil)
