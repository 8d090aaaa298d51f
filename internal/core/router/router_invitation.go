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
 * @file: router_invitation.go
 * @description: 员工邀请路由
 */

func (rt *Router) invitationRouter(r fiber.Router, auth fiber.Handler) {
	invitationGroup := r.Group("/staff/invitation")
	{
		// 签发邀请
		invitationGroup.Post("/issue", auth, rt.issueInvitation)

		// 校验邀请令牌; 被邀请人此时可能尚未登录, 不要求认证
		invitationGroup.Get("/verify", rt.verifyInvitation)

		// 接受邀请
		invitationGroup.Post("/accept", auth, rt.acceptInvitation)

		// 撤销邀请
		invitationGroup.Delete("/:invitationId", auth, rt.cancelInvitation)

		// 查询商户的邀请列表
		invitationGroup.Get("/list", auth, rt.listInvitations)
	}
}

// issueInvitation 签发邀请
func (rt *Router) issueInvitation(c *fiber.Ctx) error {
	var req model.IssueInvitationReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("issue invitation failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	result, err := rt.services().invitation.Issue(claims.IdentityId, &req)
	if err != nil {
		log.Errorf("issue invitation failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, result)
	return nil
}

// verifyInvitation 校验邀请令牌
func (rt *Router) verifyInvitation(c *fiber.Ctx) error {
	token := c.Query("token", "")
	if token == "" {
		return http.WithRepErrMsg(c, http.ValidationError.Code, "token cannot be empty", c.Path())
	}

	invitation, err := rt.services().invitation.Verify(token)
	if err != nil {
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, invitation)
	return nil
}

// acceptInvitation 接受邀请并建立员工关系
func (rt *Router) acceptInvitation(c *fiber.Ctx) error {
	var req model.AcceptInvitationReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("accept invitation failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	relation, err := rt.services().invitation.Accept(req.Token, claims.IdentityId)
	if err != nil {
		log.Errorf("accept invitation failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, relation)
	return nil
}

// cancelInvitation 撤销待接受的邀请
func (rt *Router) cancelInvitation(c *fiber.Ctx) error {
	invitationId := c.Params("invitationId")
	businessId := c.Query("businessId", "")
	if businessId == "" {
		return http.WithRepErrMsg(c, http.BusinessIdIsEmpty.Code, http.BusinessIdIsEmpty.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	if err := rt.services().invitation.Cancel(claims.IdentityId, businessId, invitationId); err != nil {
		log.Errorf("cancel invitation failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.OPERATION, invitationId)
	return nil
}

// listInvitations 查询商户的邀请列表
func (rt *Router) listInvitations(c *fiber.Ctx) error {
	businessId := c.Query("businessId", "")
	if businessId == "" {
		return http.WithRepErrMsg(c, http.BusinessIdIsEmpty.Code, http.BusinessIdIsEmpty.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	invitations, err := rt.services().invitation.ListByBusiness(claims.IdentityId, businessId)
	if err != nil {
		log.Errorf("list invitations failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, invitations)
	return nil
}
