package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/go-bizcore/bizcore/internal/core/conf"
	"github.com/go-bizcore/bizcore/internal/core/router"
	"github.com/go-bizcore/bizcore/pkg/cache"
	"github.com/go-bizcore/bizcore/pkg/ctx"
	"github.com/go-bizcore/bizcore/pkg/database"
	"github.com/go-bizcore/bizcore/pkg/http"
	"github.com/go-bizcore/bizcore/pkg/log"
	"github.com/go-bizcore/bizcore/pkg/runner"
)

/**
 * @file: main.go
 * @description: core program
 */

var (
	configFile string
)

func init() {
	flag.StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path, e.g. -conf ./conf.d/config.toml")
}

func main() {
	flag.Parse()
	printRunner()

	appConf := conf.NewConf(configFile)

	log.MustInit(&appConf.Log)

	redisClient, err := cache.NewRedis(appConf.Redis)
	if err != nil {
		panic(err)
	}

	db, err := database.NewDatabase(appConf.Database)
	if err != nil {
		panic(err)
	}

	appCtx := ctx.NewContext(context.Background(), db, cache.NewRedisCache(redisClient), log.GetLogger())

	route := router.NewRouter(appConf.Http, appConf.Staff, appCtx)

	// http srv
	httpClean := http.Server(appConf.Http, route.Router())

	httpClean()
}

func printRunner() {
	fmt.Println("runner.pwd:", runner.Pwd)
	fmt.Println("runner.hostname:", runner.Hostname)
}
