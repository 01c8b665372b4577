package logging

import "github.com/cockroachdb/errors"

// Level is a log level name
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Format is an encoder name
type Format string

const (
	JSONFormat    Format = "json"
	ConsoleFormat Format = "console"
)

var (
	ErrNoOutput          = errors.New("logging: no output enabled")
	ErrInvalidOutputPath = errors.New("logging: file output requires a path")
)

// Config configures the process logger.
type Config struct {
	Level  Level  `yaml:"level" json:"level"`
	Format Format `yaml:"format" json:"format"`
	// Console writes to stderr; stdout carries the stdio transport.
	Console    bool     `yaml:"console" json:"console"`
	File       bool     `yaml:"file" json:"file"`
	OutputPath string   `yaml:"outputPath" json:"outputPath"`
	Rotation   Rotation `yaml:"rotation" json:"rotation"`
	TimeFormat string   `yaml:"timeFormat" json:"timeFormat"`
}

// Rotation configures size based file rotation
type Rotation struct {
	MaxSize    int  `yaml:"maxSize" json:"maxSize"`
	MaxBackups int  `yaml:"maxBackups" json:"maxBackups"`
	MaxAge     int  `yaml:"maxAge" json:"maxAge"`
	Compress   bool `yaml:"compress" json:"compress"`
}

// DefaultConfig returns console logging at info level
func DefaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		Format:     ConsoleFormat,
		Console:    true,
		TimeFormat: "2006-01-02 15:04:05",
		Rotation: Rotation{
			MaxSize:    50,
			MaxBackups: 3,
			MaxAge:     7,
			Compress:   true,
		},
	}
}

// Validate checks output settings
func (c *Config) Validate() error {
	if c.File && c.OutputPath == "" {
		return ErrInvalidOutputPath
	}
	if !c.Console && !c.File {
		return ErrNoOutput
	}
	return nil
}

func (c *Config) init() {
	defaults := DefaultConfig()
	if c.Level == "" {
		c.Level = defaults.Level
	}
	if c.Format == "" {
		c.Format = defaults.Format
	}
	if c.TimeFormat == "" {
		c.TimeFormat = defaults.TimeFormat
	}
	if c.Rotation.MaxSize == 0 {
		c.Rotation.MaxSize = defaults.Rotation.MaxSize
	}
}
