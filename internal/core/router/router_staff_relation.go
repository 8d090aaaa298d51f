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
 * @file: router_staff_relation.go
 * @description: 员工关系路由
 */

func (rt *Router) staffRelationRouter(r fiber.Router, auth fiber.Handler) {
	relationGroup := r.Group("/staff/relation")
	{
		// 本人的全部员工关系
		relationGroup.Get("/mine", auth, rt.listMyRelations)

		// 商户的全部员工关系
		relationGroup.Get("/business/:businessId", auth, rt.listBusinessRelations)

		// 员工关系详情
		relationGroup.Get("/:relationId", auth, rt.getRelationById)

		// 调整授权表
		relationGroup.Put("/:relationId/permissions", auth, rt.updateRelationPermissions)

		// 切换状态(停用/重新激活)
		relationGroup.Post("/:relationId/status", auth, rt.setRelationStatus)
	}
}

// listMyRelations 本人的全部员工关系
func (rt *Router) listMyRelations(c *fiber.Ctx) error {
	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	relations, err := rt.services().relation.ListByIdentity(claims.IdentityId)
	if err != nil {
		log.Errorf("list my relations failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, relations)
	return nil
}

// listBusinessRelations 商户的全部员工关系
func (rt *Router) listBusinessRelations(c *fiber.Ctx) error {
	businessId := c.Params("businessId")
	if businessId == "" {
		return http.WithRepErrMsg(c, http.BusinessIdIsEmpty.Code, http.BusinessIdIsEmpty.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	relations, err := rt.services().relation.ListByBusiness(claims.IdentityId, businessId)
	if err != nil {
		log.Errorf("list business relations failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, relations)
	return nil
}

// getRelationById 员工关系详情
func (rt *Router) getRelationById(c *fiber.Ctx) error {
	relationId := c.Params("relationId")
	if relationId == "" {
		return http.WithRepErrMsg(c, http.RelationIdIsEmpty.Code, http.RelationIdIsEmpty.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	relation, err := rt.services().relation.GetById(claims.IdentityId, relationId)
	if err != nil {
		log.Errorf("get relation failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, relation)
	return nil
}

// updateRelationPermissions 调整授权表
func (rt *Router) updateRelationPermissions(c *fiber.Ctx) error {
	relationId := c.Params("relationId")
	if relationId == "" {
		return http.WithRepErrMsg(c, http.RelationIdIsEmpty.Code, http.RelationIdIsEmpty.Msg, c.Path())
	}

	var req model.UpdateStaffPermissionsReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update permissions failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	relation, err := rt.services().relation.UpdatePermissions(claims.IdentityId, relationId, req.Permissions)
	if err != nil {
		log.Errorf("update permissions failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, relation)
	return nil
}

// setRelationStatus 切换员工关系状态
func (rt *Router) setRelationStatus(c *fiber.Ctx) error {
	relationId := c.Params("relationId")
	if relationId == "" {
		return http.WithRepErrMsg(c, http.RelationIdIsEmpty.Code, http.RelationIdIsEmpty.Msg, c.Path())
	}

	var req model.SetStaffStatusReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("set relation status failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	relation, err := rt.services().relation.SetStatus(claims.IdentityId, relationId, req.Status)
	if err != nil {
		log.Errorf("set relation status failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, relation)
	return nil
}
