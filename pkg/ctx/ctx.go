package ctx

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/go-bizcore/bizcore/pkg/cache"
)

/**
 * @file: ctx.go
 * @description: Global context
 */

type Context struct {
	DB    *gorm.DB
	Redis cache.ICache
	Ctx   context.Context
	Log   *zap.SugaredLogger
}

func NewContext(ctx context.Context, db *gorm.DB, redis cache.ICache, log *zap.SugaredLogger) *Context {
	return &Context{
		DB:    db,
		Redis: redis,
		Ctx:   ctx,
		Log:   log,
	}
}

func (c *Context) GetCtx() context.Context {
	return c.Ctx
}

func (c *Context) GetDB() *gorm.DB {
	return c.DB
}
