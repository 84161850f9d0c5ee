package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/avasilkov/capfetch/internal/config"
	"github.com/avasilkov/capfetch/internal/logging"
	"github.com/avasilkov/capfetch/internal/pipeline"
)

func runFetch(cmd *cobra.Command, video string) error {
	cfg, _, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Video = video

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()
	return pipeline.Run(ctx, cfg)
}

func runNormalize(cmd *cobra.Command, path string) error {
	cfg, _, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	return pipeline.RunFile(cfg, path)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, fileCfg, err := pipelineConfig(cmd)
	if err != nil {
		return err
	}

	inputDir := fileCfg.Watch.Input
	outDir := fileCfg.Watch.Output
	if len(args) > 0 {
		inputDir = args[0]
	}
	if len(args) > 1 {
		outDir = args[1]
	}
	if inputDir == "" || outDir == "" {
		return errors.New("watch needs an input and an output directory (args or watch.input/watch.output in config)")
	}

	maxConcurrent, _ := cmd.Flags().GetInt("max-concurrent")
	if maxConcurrent <= 0 {
		maxConcurrent = fileCfg.Watch.MaxConcurrent
	}
	cfg.Logger = logging.WithComponent("watcher")

	ctx, cancel := signalContext()
	defer cancel()
	if err := pipeline.RunWatch(ctx, cfg, inputDir, outDir, maxConcurrent); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// pipelineConfig resolves settings in flag > environment > config file order.
func pipelineConfig(cmd *cobra.Command) (pipeline.Config, *config.Config, error) {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return pipeline.Config{}, nil, err
	}
	initLogging(cmd, fileCfg)

	cfg := pipeline.Config{
		Language:     fileCfg.Fetch.Language,
		Sources:      fileCfg.Fetch.Sources,
		JoinCueLines: fileCfg.Fetch.JoinCueLines,
		Format:       fileCfg.Output.Format,
		OutPath:      fileCfg.Output.Path,

		TimedtextBaseURL:      getenvDefault("TIMEDTEXT_BASE_URL", fileCfg.Timedtext.BaseURL),
		TimedtextAllowedHosts: fileCfg.Timedtext.AllowedHosts,

		YtdlpPath:      getenvDefault("YTDLP_PATH", fileCfg.Ytdlp.BinaryPath),
		YtdlpSubFormat: fileCfg.Ytdlp.SubFormat,
		TmpDir:         fileCfg.Ytdlp.TempDir,

		Logger: logging.WithComponent("pipeline"),
	}

	if v := os.Getenv("TIMEDTEXT_ALLOWED_HOSTS"); v != "" {
		cfg.TimedtextAllowedHosts = strings.Split(v, ",")
	}

	if v, _ := cmd.Flags().GetString("lang"); v != "" {
		cfg.Language = v
	}
	if v, _ := cmd.Flags().GetStringSlice("sources"); len(v) > 0 {
		cfg.Sources = v
	}
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		cfg.Format = v
	}
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		cfg.OutPath = v
	}
	if cmd.Flags().Changed("join-cue-lines") {
		cfg.JoinCueLines, _ = cmd.Flags().GetBool("join-cue-lines")
	}
	if v, _ := cmd.Flags().GetString("ytdlp-path"); v != "" {
		cfg.YtdlpPath = v
	}
	if v, _ := cmd.Flags().GetString("tmp-dir"); v != "" {
		cfg.TmpDir = v
	}
	if v, _ := cmd.Flags().GetString("timedtext-base-url"); v != "" {
		cfg.TimedtextBaseURL = v
	}

	return cfg, fileCfg, nil
}

// initLogging re-initializes the logger once the file config is known. Flags
// and environment take precedence over the file.
func initLogging(cmd *cobra.Command, fileCfg *config.Config) {
	lc := logging.DefaultConfig()
	lc.Level, _ = cmd.Flags().GetString("log-level")
	lc.Format, _ = cmd.Flags().GetString("log-format")
	if !cmd.Flags().Changed("log-level") && os.Getenv("CAPFETCH_LOG_LEVEL") == "" {
		lc.Level = fileCfg.Logging.Level
	}
	if !cmd.Flags().Changed("log-format") {
		lc.Format = fileCfg.Logging.Format
	}
	logging.Init(lc)
}

func loadFileConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("CAPFETCH_CONFIG")
	}
	if path != "" {
		return config.Load(path)
	}

	cfg := &config.Config{}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
