package radish

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds configuration options for compiling and running radish
// code. The YAML keys are used by LoadConfig.
type Config struct {
	// Name labels the source in diagnostics (default: "<input>").
	Name string `yaml:"name"`

	// TypeCheck rejects programs whose operators are statically applied
	// to the wrong kinds of value, before anything runs.
	TypeCheck bool `yaml:"type_check"`

	// Optimize folds constant subexpressions (default: true).
	Optimize *bool `yaml:"optimize"`

	// Trace logs every executed instruction at debug level to Logger.
	Trace bool `yaml:"trace"`

	// Logger receives trace records. If nil, records are discarded.
	Logger *slog.Logger `yaml:"-"`

	// Prompt is the interactive prompt (default: "> ").
	Prompt string `yaml:"prompt"`

	// HistoryFile is where the interactive session keeps its history.
	// Empty disables history.
	HistoryFile string `yaml:"history_file"`
}

// DefaultPrompt is the prompt used when Config.Prompt is empty.
const DefaultPrompt = "> "

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "<input>"
	}
	if c.Optimize == nil {
		optimize := true
		c.Optimize = &optimize
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
}

// WithDefaults returns a copy of c with unset fields filled in.
func (c Config) WithDefaults() Config {
	c.applyDefaults()
	return c
}

// LoadConfig reads a YAML configuration from r. Unknown keys are errors.
// An empty document yields the zero Config.
func LoadConfig(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML configuration from the named file.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
