package http

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/go-bizcore/bizcore/pkg/ctx"
)

/**
 * @file: http.go
 * @description: http server
 */

type Http struct {
	Host            string
	Port            int
	ContextPath     string
	ExposeMetrics   bool
	AccessLog       bool
	ReadTimeout     int
	WriteTimeout    int
	IdleTimeout     int
	ShutdownTimeout int
	TLS             TLS
	Auth            Auth
	Ctx             *ctx.Context
}

type TLS struct {
	CertFile string
	KeyFile  string
}

type Auth struct {
	SecretKey     string
	AccessExpire  time.Duration
	RefreshExpire time.Duration
}

// NewFiberApp 创建 fiber 应用实例
func NewFiberApp(cfg Http) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "bizcore",
		ReadTimeout:           time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(cfg.WriteTimeout) * time.Second,
		IdleTimeout:           time.Duration(cfg.IdleTimeout) * time.Second,
		DisableStartupMessage: true,
	})
}

// Server 启动 http 服务并返回优雅退出钩子
func Server(cfg Http, app *fiber.App) func() {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	go func() {
		fmt.Printf("[Init] http server start at: %s\n", addr)
		var err error
		if cfg.TLS.CertFile != "" && cfg.TLS.KeyFile != "" {
			err = app.ListenTLS(addr, cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = app.Listen(addr)
		}
		if err != nil {
			fmt.Printf("[Error] HTTP server error: %v\n", err)
			os.Exit(1)
		}
	}()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	return func() {
		<-sc
		fmt.Println("[Shutdown] HTTP server shutting down...")

		timeout := time.Duration(cfg.ShutdownTimeout) * time.Second
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		if err := app.ShutdownWithTimeout(timeout); err != nil {
			fmt.Printf("[Error] Server shutdown error: %v\n", err)
		} else {
			fmt.Println("[Shutdown] HTTP server shut down gracefully.")
		}
	}
}
