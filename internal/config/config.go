package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Whisper WhisperConfig `yaml:"whisper"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Scraper ScraperConfig `yaml:"scraper"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type GeminiConfig struct {
	Model string `yaml:"model"`
}

type ScraperConfig struct {
	UserAgent      string `yaml:"user_agent"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	ScrollPasses   int    `yaml:"scroll_passes"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
	Watch  string `yaml:"watch"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Scraper.TimeoutSeconds == 0 {
		c.Scraper.TimeoutSeconds = 30
	}
	if c.Scraper.ScrollPasses == 0 {
		c.Scraper.ScrollPasses = 3
	}
	if c.Paths.Watch == "" {
		c.Paths.Watch = "data/input"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// GeminiAPIKeys returns the API keys from the GEMINI_API_KEYS environment
// variable (comma separated). A .env file in the working directory is
// loaded first when present, system environment takes precedence.
func GeminiAPIKeys() ([]string, error) {
	_ = godotenv.Load()

	raw := os.Getenv("GEMINI_API_KEYS")
	if strings.TrimSpace(raw) == "" {
		raw = os.Getenv("GEMINI_API_KEY")
	}

	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("GEMINI_API_KEYS is not set")
	}
	return keys, nil
}
