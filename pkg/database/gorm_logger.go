package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/go-bizcore/bizcore/pkg/log"
)

/**
 * @file: gorm_logger.go
 * @description: gorm logger bridged to zap
 */

type gormLogger struct {
	conf gormlogger.Config
}

// NewGormLogger 创建基于 zap 的 gorm 日志适配器
func NewGormLogger(conf gormlogger.Config) gormlogger.Interface {
	return &gormLogger{conf: conf}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.conf.LogLevel = level
	return &newLogger
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.conf.LogLevel >= gormlogger.Info {
		log.Infof(msg, data...)
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.conf.LogLevel >= gormlogger.Warn {
		log.Warnf(msg, data...)
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.conf.LogLevel >= gormlogger.Error {
		log.Errorf(msg, data...)
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.conf.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && (!l.conf.IgnoreRecordNotFoundError || !errors.Is(err, gorm.ErrRecordNotFound)):
		log.Errorw("sql error", "err", err, "sql", sql, "rows", rows, "elapsed", elapsed)
	case elapsed > l.conf.SlowThreshold && l.conf.SlowThreshold != 0:
		log.Warnw("slow sql", "sql", sql, "rows", rows, "elapsed", elapsed)
	case l.conf.LogLevel == gormlogger.Info:
		log.Debugw("sql", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
