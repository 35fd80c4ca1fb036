// Package log holds the process-wide zap logger used by the marshal engine.
package log

import (
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"gopkg.in/natefinch/lumberjack.v2"
)

var _globalL, _globalP atomic.Value

// ZapProperties records the pieces of a built logger that callers may adjust later.
type ZapProperties struct {
	Core   zapcore.Core
	Syncer zapcore.WriteSyncer
	Level  zap.AtomicLevel
}

func init() {
	l, p, err := InitLogger(DefaultConfig())
	if err != nil {
		l, p = zap.NewNop(), &ZapProperties{Level: zap.NewAtomicLevel()}
	}

	ReplaceGlobals(l, p)
}

// InitLogger builds a logger writing to stdout and/or a rotated file.
func InitLogger(cfg *Config, opts ...zap.Option) (*zap.Logger, *ZapProperties, error) {
	var outputs []zapcore.WriteSyncer

	if len(cfg.File.Filename) > 0 {
		lg, err := initFileLog(&cfg.File)
		if err != nil {
			return nil, nil, err
		}

		outputs = append(outputs, zapcore.AddSync(lg))
	}

	if cfg.Stdout {
		outputs = append(outputs, zapcore.Lock(os.Stdout))
	}

	if len(outputs) == 0 {
		return zap.NewNop(), &ZapProperties{Level: zap.NewAtomicLevel()}, nil
	}

	return InitLoggerWithWriteSyncer(cfg, zap.CombineWriteSyncers(outputs...), opts...)
}

// InitLoggerWithWriteSyncer builds a logger over an explicit output.
func InitLoggerWithWriteSyncer(cfg *Config, output zapcore.WriteSyncer, opts ...zap.Option) (*zap.Logger, *ZapProperties, error) {
	level := zap.NewAtomicLevel()

	levelName := cfg.Level
	if levelName == "" {
		levelName = "info"
	}

	if err := level.UnmarshalText([]byte(levelName)); err != nil {
		return nil, nil, errors.Wrapf(err, "invalid log level %q", cfg.Level)
	}

	core := zapcore.NewCore(cfg.encoder(), output, level)
	opts = append(cfg.buildOptions(output), opts...)

	return zap.New(core, opts...), &ZapProperties{Core: core, Syncer: output, Level: level}, nil
}

// InitTestLogger returns a logger that writes through t.Log.
func InitTestLogger(t zaptest.TestingT, opts ...zaptest.LoggerOption) *zap.Logger {
	return zaptest.NewLogger(t, opts...)
}

func initFileLog(cfg *FileLogConfig) (*lumberjack.Logger, error) {
	logPath := strings.Join([]string{cfg.RootPath, cfg.Filename}, string(filepath.Separator))
	if cfg.RootPath == "" {
		logPath = cfg.Filename
	}

	if st, err := os.Stat(logPath); err == nil && st.IsDir() {
		return nil, errors.Newf("can't use directory %s as log file name", logPath)
	}

	maxSize := cfg.MaxSize
	if maxSize == 0 {
		maxSize = defaultLogMaxSize
	}

	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxDays,
		LocalTime:  true,
	}, nil
}

// L returns the global logger. It's safe for concurrent use.
func L() *zap.Logger {
	return _globalL.Load().(*zap.Logger)
}

// ReplaceGlobals swaps the global logger and its properties.
func ReplaceGlobals(logger *zap.Logger, props *ZapProperties) {
	_globalL.Store(logger)
	_globalP.Store(props)
}

// SetLevel alters the level of the global logger.
func SetLevel(level zapcore.Level) {
	_globalP.Load().(*ZapProperties).Level.SetLevel(level)
}

// GetLevel returns the level of the global logger.
func GetLevel() zapcore.Level {
	return _globalP.Load().(*ZapProperties).Level.Level()
}

func Debug(msg string, fields ...zap.Field) { L().Debug(msg, fields...) }

func Info(msg string, fields ...zap.Field) { L().Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { L().Warn(msg, fields...) }

func Error(msg string, fields ...zap.Field) { L().Error(msg, fields...) }
