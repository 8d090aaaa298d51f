package database

import (
	"github.com/google/wire"
	"gorm.io/gorm"
)

// ProviderSet 提供数据库相关的依赖
var ProviderSet = wire.NewSet(ProvideDatabase, ProvideIDatabase)

// ProvideDatabase 提供 *gorm.DB 实例
func ProvideDatabase(cfg Database) (*gorm.DB, error) {
	return NewDatabase(cfg)
}

// ProvideIDatabase 提供 IDatabase 接口实例
func ProvideIDatabase(db *gorm.DB) IDatabase {
	return NewGormDB(db)
}
