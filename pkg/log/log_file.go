package log

import (
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

/**
 * @file: log_file.go
 * @description: file output with rotation
 */

// getFileLogWriter 返回带滚动策略的文件日志 writer
func getFileLogWriter(conf *Conf) (zapcore.WriteSyncer, error) {
	if err := os.MkdirAll(conf.Path, 0o755); err != nil {
		return nil, err
	}

	filename := conf.Filename
	if filename == "" {
		filename = "core.log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   filepath.Join(conf.Path, filename),
		MaxSize:    conf.RotateSize,
		MaxBackups: conf.RotateNum,
		MaxAge:     conf.KeepHours,
		Compress:   true,
		LocalTime:  true,
	}

	return zapcore.AddSync(lumberJackLogger), nil
}
