package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Fetch     FetchConfig     `yaml:"fetch"`
	Timedtext TimedtextConfig `yaml:"timedtext"`
	Ytdlp     YtdlpConfig     `yaml:"ytdlp"`
	Output    OutputConfig    `yaml:"output"`
	Watch     WatchConfig     `yaml:"watch"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type FetchConfig struct {
	Language     string   `yaml:"language"`
	Sources      []string `yaml:"sources"`
	JoinCueLines bool     `yaml:"join_cue_lines"`
}

type TimedtextConfig struct {
	BaseURL      string   `yaml:"base_url"`
	AllowedHosts []string `yaml:"allowed_hosts"`
}

type YtdlpConfig struct {
	BinaryPath string `yaml:"binary_path"`
	SubFormat  string `yaml:"sub_format"`
	TempDir    string `yaml:"temp_dir"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

type WatchConfig struct {
	Input         string `yaml:"input"`
	Output        string `yaml:"output"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Output.Format {
	case "", "text", "timestamps", "json":
	default:
		return fmt.Errorf("output.format must be text, timestamps or json")
	}
	if c.Ytdlp.SubFormat != "" && c.Ytdlp.SubFormat != "vtt" && c.Ytdlp.SubFormat != "srt" {
		return fmt.Errorf("ytdlp.sub_format must be vtt or srt")
	}
	if c.Watch.MaxConcurrent < 0 {
		return fmt.Errorf("watch.max_concurrent must not be negative")
	}

	if c.Fetch.Language == "" {
		c.Fetch.Language = "en"
	}
	if len(c.Fetch.Sources) == 0 {
		c.Fetch.Sources = []string{"timedtext", "timedtext-vtt", "ytdlp"}
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Ytdlp.SubFormat == "" {
		c.Ytdlp.SubFormat = "vtt"
	}
	if c.Watch.MaxConcurrent == 0 {
		c.Watch.MaxConcurrent = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}

	return nil
}
