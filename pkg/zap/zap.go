package zap

import (
	"os"

	"rescue-service/config"

	"github.com/natefinch/lumberjack"
	uberzap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the service logger. Console output is always on; when
// LOG_FILE is set, logs are additionally written there with rotation.
func New(cfg *config.Config) (*uberzap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderCfg := uberzap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.AddSync(os.Stdout),
			level,
		),
	}

	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(rotator),
			level,
		))
	}

	logger := uberzap.New(zapcore.NewTee(cores...), uberzap.AddCaller())
	return logger.Sugar(), nil
}
