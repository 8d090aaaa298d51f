// Copyright 2025 Bizcore Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"errors"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/go-bizcore/bizcore/internal/core/conf"
	"github.com/go-bizcore/bizcore/internal/core/errs"
	"github.com/go-bizcore/bizcore/internal/core/repo"
	"github.com/go-bizcore/bizcore/internal/core/service"
	"github.com/go-bizcore/bizcore/pkg/ctx"
	"github.com/go-bizcore/bizcore/pkg/database"
	httpx "github.com/go-bizcore/bizcore/pkg/http"
	"github.com/go-bizcore/bizcore/pkg/http/interceptor"
	"github.com/go-bizcore/bizcore/pkg/http/middleware"
	"github.com/go-bizcore/bizcore/pkg/metrics"
	"github.com/go-bizcore/bizcore/pkg/version"
)

/**
 * @file: router.go
 * @description: setup router
 *  		     internal api router, use by web
 */

type Router struct {
	Http  httpx.Http
	Staff conf.Staff
	Ctx   *ctx.Context
}

func NewRouter(httpConf httpx.Http, staffConf conf.Staff, appCtx *ctx.Context) *Router {
	return &Router{
		Http:  httpConf,
		Staff: staffConf,
		Ctx:   appCtx,
	}
}

func (rt *Router) Router() *fiber.App {

	app := httpx.NewFiberApp(rt.Http)

	// cors interceptor
	app.Use(interceptor.CorsInterceptor())

	// request id
	app.Use(interceptor.RequestIdInterceptor())

	// panic recover
	app.Use(interceptor.ExceptionInterceptor())

	if rt.Http.AccessLog {
		app.Use(httpx.AccessLog())
	}

	// unified response interceptor
	app.Use(interceptor.UnifiedResponseInterceptor())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "version": version.GetVersion()})
	})

	metrics.Register()
	if rt.Http.ExposeMetrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	rt.debugRouter(app.Group("/debug/pprof"))

	api := app.Group(rt.Http.ContextPath)
	auth := middleware.AuthorizationMiddleware(rt.Http.Auth.SecretKey)

	rt.invitationRouter(api, auth)
	rt.staffRelationRouter(api, auth)
	rt.workSessionRouter(api, auth)
	rt.jobCardRouter(api, auth)

	return app
}

// coreServices 每次请求构建一组服务，与底层连接池解耦
type coreServices struct {
	invitation  *service.InvitationService
	relation    *service.StaffRelationService
	workSession *service.WorkSessionService
	jobCard     *service.JobCardService
}

func (rt *Router) services() *coreServices {
	db := database.NewGormDB(rt.Ctx.DB)
	repos := repo.NewRepositories(db)
	permission := service.NewPermissionService(rt.Ctx, repos.Business, repos.StaffRelation)
	return &coreServices{
		invitation:  service.NewInvitationService(repos.Invitation, permission, rt.Staff),
		relation:    service.NewStaffRelationService(repos.StaffRelation, repos.WorkSession, repos.JobCard, permission, rt.Staff),
		workSession: service.NewWorkSessionService(repos.StaffRelation, repos.WorkSession, repos.JobCard, permission),
		jobCard:     service.NewJobCardService(repos.StaffRelation, repos.WorkSession, repos.JobCard, repos.Job, permission),
	}
}

// replyErr 业务错误到响应码的映射
func replyErr(c *fiber.Ctx, err error) error {
	var dup *errs.DuplicateActiveSessionError
	if errors.As(err, &dup) {
		return httpx.WithRepDetail(c, httpx.DuplicateActiveSession.Code, httpx.DuplicateActiveSession.Msg,
			fiber.Map{"sessionId": dup.SessionId})
	}

	switch {
	case errors.Is(err, errs.ErrValidation):
		return httpx.WithRepErrMsg(c, httpx.ValidationError.Code, err.Error(), c.Path())
	case errors.Is(err, errs.ErrPermissionDenied):
		return httpx.WithRepErrMsg(c, httpx.PermissionDenied.Code, httpx.PermissionDenied.Msg, c.Path())
	case errors.Is(err, errs.ErrInvitationNotFound):
		return httpx.WithRepErrMsg(c, httpx.InvitationNotFound.Code, httpx.InvitationNotFound.Msg, c.Path())
	case errors.Is(err, errs.ErrInvitationExpired):
		return httpx.WithRepErrMsg(c, httpx.InvitationExpired.Code, httpx.InvitationExpired.Msg, c.Path())
	case errors.Is(err, errs.ErrInvitationAlreadyAccepted):
		return httpx.WithRepErrMsg(c, httpx.InvitationAlreadyAccepted.Code, httpx.InvitationAlreadyAccepted.Msg, c.Path())
	case errors.Is(err, errs.ErrDuplicateActiveSession):
		return httpx.WithRepErrMsg(c, httpx.DuplicateActiveSession.Code, httpx.DuplicateActiveSession.Msg, c.Path())
	case errors.Is(err, errs.ErrSessionNotFound):
		return httpx.WithRepErrMsg(c, httpx.SessionNotFound.Code, httpx.SessionNotFound.Msg, c.Path())
	case errors.Is(err, errs.ErrSessionAlreadyCompleted):
		return httpx.WithRepErrMsg(c, httpx.SessionAlreadyCompleted.Code, httpx.SessionAlreadyCompleted.Msg, c.Path())
	case errors.Is(err, errs.ErrJobCardNotFound):
		return httpx.WithRepErrMsg(c, httpx.JobCardNotFound.Code, httpx.JobCardNotFound.Msg, c.Path())
	default:
		return httpx.WithRepErrMsg(c, httpx.Failed.Code, httpx.Failed.Msg, c.Path())
	}
}
