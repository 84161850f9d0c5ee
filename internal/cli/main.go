package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "capfetch",
		Short:        "Fetch and normalize YouTube video transcripts",
		SilenceUsage: true,
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.PersistentFlags().String("config", "", "YAML config file")
	root.PersistentFlags().String("log-level", getenvDefault("CAPFETCH_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "Log format (console, json)")

	root.AddCommand(newFetchCmd(), newNormalizeCmd(), newWatchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "fetch <video-id-or-url>",
		Short:        "Fetch the transcript for a YouTube video",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args[0])
		},
	}

	// Visible flags
	cmd.Flags().String("lang", "", "Caption language code")
	cmd.Flags().StringSlice("sources", nil, "Caption sources in priority order")
	cmd.Flags().String("format", "", "Output format (text, timestamps, json)")
	cmd.Flags().String("out", "", "Output file (default: stdout)")
	cmd.Flags().Bool("join-cue-lines", false, "Join all text lines of a multi-line cue")
	cmd.Flags().String("ytdlp-path", "", "yt-dlp binary")
	cmd.Flags().String("tmp-dir", "", "Directory for temporary fetch artifacts")

	// Hidden endpoint override (internal)
	cmd.Flags().String("timedtext-base-url", "", "Timedtext endpoint base URL")
	_ = cmd.Flags().MarkHidden("timedtext-base-url")

	return cmd
}

func newNormalizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "normalize <caption-file>",
		Short:        "Normalize a caption file already on disk",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(cmd, args[0])
		},
	}

	cmd.Flags().String("format", "", "Output format (text, timestamps, json)")
	cmd.Flags().String("out", "", "Output file (default: stdout)")
	cmd.Flags().Bool("join-cue-lines", false, "Join all text lines of a multi-line cue")

	return cmd
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "watch [input-dir] [output-dir]",
		Short:        "Normalize caption files as they appear in a directory",
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args)
		},
	}

	cmd.Flags().String("format", "", "Output format (text, timestamps, json)")
	cmd.Flags().Bool("join-cue-lines", false, "Join all text lines of a multi-line cue")
	cmd.Flags().Int("max-concurrent", 0, "Caption files processed at once")

	return cmd
}
