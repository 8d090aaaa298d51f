//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/go-bizcore/bizcore/internal/core/conf"
	"github.com/go-bizcore/bizcore/internal/core/repo"
	"github.com/go-bizcore/bizcore/internal/core/router"
	"github.com/go-bizcore/bizcore/pkg/ctx"
	"github.com/go-bizcore/bizcore/pkg/database"
)

/**
 * @file: wire.go
 * @description: dependency injection
 */

func initRouter(appConf conf.AppConfig, appCtx *ctx.Context) *router.Router {
	panic(wire.Build(
		wire.FieldsOf(new(conf.AppConfig), "Http", "Staff"),
		router.NewRouter,
	))
}

func initRepositories(cfg database.Database) (*repo.Repositories, error) {
	panic(wire.Build(
		database.ProviderSet,
		repo.NewRepositories,
	))
}
