package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogMaxSize = 300 // MB

// FileLogConfig describes rotated file output. An empty Filename disables it.
type FileLogConfig struct {
	RootPath   string `yaml:"root_path" json:"root_path"`
	Filename   string `yaml:"filename" json:"filename"`
	MaxSize    int    `yaml:"max_size" json:"max_size"`
	MaxDays    int    `yaml:"max_days" json:"max_days"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
}

// Config is the logging section of the engine configuration.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" json:"level"`
	// Format is json or console.
	Format string `yaml:"format" json:"format"`
	// Stdout enables writing to standard output.
	Stdout bool `yaml:"stdout" json:"stdout"`
	// File enables rotated file output.
	File FileLogConfig `yaml:"file" json:"file"`
	// Development switches zap into development mode (stack traces on warn).
	Development       bool `yaml:"development" json:"development"`
	DisableCaller     bool `yaml:"disable_caller" json:"disable_caller"`
	DisableStacktrace bool `yaml:"disable_stacktrace" json:"disable_stacktrace"`
}

// DefaultConfig returns the configuration used before InitLogger is called.
func DefaultConfig() *Config {
	return &Config{Level: "info", Format: "console", Stdout: true}
}

func (cfg *Config) encoder() zapcore.Encoder {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if cfg.Format == "json" {
		return zapcore.NewJSONEncoder(encCfg)
	}

	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	return zapcore.NewConsoleEncoder(encCfg)
}

func (cfg *Config) buildOptions(errSink zapcore.WriteSyncer) []zap.Option {
	opts := []zap.Option{zap.ErrorOutput(errSink)}

	if cfg.Development {
		opts = append(opts, zap.Development())
	}

	if !cfg.DisableCaller {
		opts = append(opts, zap.AddCaller())
	}

	stackLevel := zap.ErrorLevel
	if cfg.Development {
		stackLevel = zap.WarnLevel
	}

	if !cfg.DisableStacktrace {
		opts = append(opts, zap.AddStacktrace(stackLevel))
	}

	return opts
}
