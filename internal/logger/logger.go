package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	DevMod bool   `env:"LOG_DEV_MODE" envDefault:"false"`
}

// Logger is the logging interface used across the application.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Fatal(msg string, fields ...zap.Field)
	Sync() error
}

type appLogger struct {
	zl *zap.Logger
}

// New builds a zap-backed logger writing to stderr so report output on
// stdout stays machine-readable.
func New(cfg *Config) (Logger, error) {
	level := zapcore.InfoLevel
	if cfg != nil {
		if err := level.Set(cfg.Level); err != nil {
			level = zapcore.InfoLevel
		}
	}

	zapCfg := zap.NewProductionConfig()
	if cfg != nil && cfg.DevMod {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	zl, err := zapCfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &appLogger{zl: zl}, nil
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() Logger {
	return &appLogger{zl: zap.NewNop()}
}

func (l *appLogger) Debug(msg string, fields ...zap.Field) { l.zl.Debug(msg, fields...) }
func (l *appLogger) Info(msg string, fields ...zap.Field)  { l.zl.Info(msg, fields...) }
func (l *appLogger) Warn(msg string, fields ...zap.Field)  { l.zl.Warn(msg, fields...) }
func (l *appLogger) Error(msg string, fields ...zap.Field) { l.zl.Error(msg, fields...) }
func (l *appLogger) Fatal(msg string, fields ...zap.Field) { l.zl.Fatal(msg, fields...) }
func (l *appLogger) Sync() error                           { return l.zl.Sync() }
