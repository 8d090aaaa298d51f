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
 * @file: router_job_card.go
 * @description: 计费工单路由
 */

func (rt *Router) jobCardRouter(r fiber.Router, auth fiber.Handler) {
	jobCardGroup := r.Group("/staff/jobcard")
	{
		// 创建工单
		jobCardGroup.Post("/create", auth, rt.createJobCard)

		// 修正工单
		jobCardGroup.Put("/:jobCardId", auth, rt.updateJobCard)

		// 删除工单
		jobCardGroup.Delete("/:jobCardId", auth, rt.deleteJobCard)

		// 某员工关系的全部工单
		jobCardGroup.Get("/list/:relationId", auth, rt.listJobCards)

		// 商户的服务目录
		jobCardGroup.Get("/catalog/:businessId", auth, rt.listJobCatalog)
	}
}

// createJobCard 创建工单
func (rt *Router) createJobCard(c *fiber.Ctx) error {
	var req model.CreateJobCardReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("create job card failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	card, err := rt.services().jobCard.Create(claims.IdentityId, &req)
	if err != nil {
		log.Errorf("create job card failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, card)
	return nil
}

// updateJobCard 修正工单
func (rt *Router) updateJobCard(c *fiber.Ctx) error {
	jobCardId := c.Params("jobCardId")

	var req model.UpdateJobCardReq
	if err := c.BodyParser(&req); err != nil {
		log.Errorf("update job card failed: %v", err)
		return http.WithRepErrMsg(c, http.RequestParameterParsingFailed.Code, http.RequestParameterParsingFailed.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	card, err := rt.services().jobCard.Update(claims.IdentityId, jobCardId, &req)
	if err != nil {
		log.Errorf("update job card failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, card)
	return nil
}

// deleteJobCard 删除工单
func (rt *Router) deleteJobCard(c *fiber.Ctx) error {
	jobCardId := c.Params("jobCardId")

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	if err := rt.services().jobCard.Delete(claims.IdentityId, jobCardId); err != nil {
		log.Errorf("delete job card failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.OPERATION, jobCardId)
	return nil
}

// listJobCards 某员工关系的全部工单
func (rt *Router) listJobCards(c *fiber.Ctx) error {
	relationId := c.Params("relationId")
	if relationId == "" {
		return http.WithRepErrMsg(c, http.RelationIdIsEmpty.Code, http.RelationIdIsEmpty.Msg, c.Path())
	}

	claims, err := tool.ParseAuthorizationToken(c, rt.Http.Auth.SecretKey)
	if err != nil {
		log.Errorf("authentication failed: %v", err)
		return http.WithRepErrMsg(c, http.AuthenticationFailed.Code, http.AuthenticationFailed.Msg, c.Path())
	}

	cards, err := rt.services().jobCard.ListByRelation(claims.IdentityId, relationId)
	if err != nil {
		log.Errorf("list job cards failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, cards)
	return nil
}

// listJobCatalog 商户的服务目录
func (rt *Router) listJobCatalog(c *fiber.Ctx) error {
	businessId := c.Params("businessId")
	if businessId == "" {
		return http.WithRepErrMsg(c, http.BusinessIdIsEmpty.Code, http.BusinessIdIsEmpty.Msg, c.Path())
	}

	jobs, err := rt.services().jobCard.ListJobs(businessId)
	if err != nil {
		log.Errorf("list job catalog failed: %v", err)
		return replyErr(c, err)
	}

	c.Locals(constant.DETAIL, jobs)
	return nil
}
