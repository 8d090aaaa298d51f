package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

/**
 * @file: dbresolver_helper.go
 * @description: read/write splitting via dbresolver
 */

// registerReplicas 注册只读副本，读请求走 replicas，写请求走主库
func registerReplicas(db *gorm.DB, cfg Database) error {
	replicas := make([]gorm.Dialector, 0, len(cfg.Replicas))
	for _, host := range cfg.Replicas {
		dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User, cfg.Password, host, cfg.DB)
		replicas = append(replicas, mysql.Open(dsn))
	}

	return db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}))
}
