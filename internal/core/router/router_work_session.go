package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-bizcore/bizcore/internal/core/constant"
	"github.com/go-bizcore/bizcore/internal/core/model"
	"github.com/go-bizcore/bizcore/internal/core/tool"
	"github.com/go-bizcore/bizcore/pkg/http"
	"github.com/go-bizcore/bizcore/pkg/log"
)

/**
 * @file: router_work_session.go
 * @description: 工作时段路由
 */

func (rt *Router) workSessionRouter(r fiber.Router, auth fiber.Handler) {
	sessionGroup := r.Group("/staff/session")
	{
		// 上班打卡
		sessionGroup.Post("/start", auth, rt.startWorkSession)

		// 下班打卡
		sessionGroup.Post("/end", auth, rt.endWorkSession)

		// 进行中的时段
		sessionGroup.Get("/active/:relationId", auth, rt.getActiveWorkSession)

		// 某员工关系的全部时段
		sessionGroup.Get("/list/:relationId", auth, rt.listWorkSessions)
	}
}

// startWorkSession 上班打卡
func (rt *Router) startWorkSession(c *fiber.Ctx) error {
	var req model.StartWorkSessionReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("start work session failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	session, err := rt.services().workSession.Start(claims.IdentityId, &req)
	if err != nil {
		log.Errorf("start work session failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, session)
	return nil
}

// endWorkSession 下班打卡
func (rt *Router) endWorkSession(c *fiber.Ctx) error {
	var req model.EndWorkSessionReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("end work session failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	session, err := rt.services().workSession.End(claims.IdentityId, &req)
	if err != nil {
		log.Errorf("end work session failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, session)
	return nil
}

// getActiveWorkSession 进行中的时段; 没有时 detail 为空
func (rt *Router) getActiveWorkSession(c *fiber.Ctx) error {
	relationId := c.Params("relationId")
	if relationId == "" {
		return http.WithRepErrMsg(c, http.RelationIdIsEmpty.Code, http.RelationIdIsEmpty.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	svc := rt.services()

	// 归属与权限校验复用关系详情的可见性规则
	if _, err := svc.relation.GetById(claims.IdentityId, relationId); err != nil {
		return replyErr(c, err)
	}

	session, err := svc.workSession.GetActive(relationId)
	if err != nil {
		log.Errorf("get active work session failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, session)
	return nil
}

// listWorkSessions 某员工关系的全部时段
func (rt *Router) listWorkSessions(c *fiber.Ctx) error {
	relationId := c.Params("relationId")
	if relationId == "" {
		return http.WithRepErrMsg(c, http.RelationIdIsEmpty.Code, http.RelationIdIsEmpty.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	sessions, err := rt.services().workSession.ListByRelation(claims.IdentityId, relationId)
	if err != nil {
		log.Errorf("list work sessions failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, sessions)
	return nil
}
