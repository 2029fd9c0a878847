package bot

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger 构造两路输出的 SugaredLogger：
//   - diag：诊断流（通常是 stderr），只输出消息本身，保证启动横幅是一整行原文
//   - 文件：opts.LogFile 非空时写入带滚动的日志文件，带时间、级别、调用位置和会话 id
//
// 走法只写 stdout，日志绝不进入协议流
func NewLogger(diag zapcore.WriteSyncer, opts Options) (*zap.SugaredLogger, error) {
	diagEnc := zapcore.EncoderConfig{
		MessageKey: "msg",
		LineEnding: zapcore.DefaultLineEnding,
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(diagEnc), diag, zapcore.InfoLevel),
	}

	if opts.LogFile != "" {
		level, err := zapcore.ParseLevel(opts.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		// 文件滚动策略：10MB 每文件，保留3个备份
		lj := &lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
			Compress:   false,
		}
		fileEnc := zapcore.EncoderConfig{
			TimeKey:       "ts",
			LevelKey:      "level",
			NameKey:       "logger",
			CallerKey:     "caller",
			MessageKey:    "msg",
			StacktraceKey: "stack",
			LineEnding:    zapcore.DefaultLineEnding,
			EncodeLevel:   zapcore.CapitalLevelEncoder,
			EncodeTime:    zapcore.ISO8601TimeEncoder,
			EncodeCaller:  zapcore.ShortCallerEncoder,
		}
		fileCore := zapcore.NewCore(zapcore.NewConsoleEncoder(fileEnc), zapcore.AddSync(lj), level).
			With([]zapcore.Field{zap.String("session", uuid.NewString())})
		cores = append(cores, fileCore)
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller())
	return logger.Sugar(), nil
}
