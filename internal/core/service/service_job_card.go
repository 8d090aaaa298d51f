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

package service

import (
	"github.com/go-bizcore/bizcore/internal/core/errs"
	"github.com/go-bizcore/bizcore/internal/core/model"
	"github.com/go-bizcore/bizcore/internal/core/repo"
	"github.com/go-bizcore/bizcore/pkg/id"
	"github.com/go-bizcore/bizcore/pkg/log"
	"github.com/go-bizcore/bizcore/pkg/metrics"
)

// JobCardService 计费工单：创建、修正、删除、查询。
// 工单引用只读服务目录，收款组合 (method, amount) 在写入前校验。
type JobCardService struct {
	relationRepo repo.IStaffRelationRepository
	sessionRepo  repo.IWorkSessionRepository
	jobCardRepo  repo.IJobCardRepository
	jobRepo      repo.IJobRepository
	permission   *PermissionService
}

func NewJobCardService(relationRepo repo.IStaffRelationRepository, sessionRepo repo.IWorkSessionRepository,
	jobCardRepo repo.IJobCardRepository, jobRepo repo.IJobRepository, permission *PermissionService) *JobCardService {
	return &JobCardService{
		relationRepo: relationRepo,
		sessionRepo:  sessionRepo,
		jobCardRepo:  jobCardRepo,
		jobRepo:      jobRepo,
		permission:   permission,
	}
}

// validatePayment 校验收款组合；none 必须是 0 金额
func validatePayment(method string, amount float64) error {
	if !model.IsKnownPaymentMethod(method) {
		return errs.Validationf("unknown payment method: %s", method)
	}
	if amount < 0 {
		return errs.Validationf("payment amount cannot be negative")
	}
	if method == model.PaymentMethodNone && amount != 0 {
		return errs.Validationf("payment amount must be 0 when payment method is none")
	}
	return nil
}

// Create 创建工单；需要 job_card_create 能力。
// 目录项必须存在且属于同一商户；关联时段必须属于同一员工关系。
func (s *JobCardService) Create(identityId string, req *model.CreateJobCardReq) (*model.JobCard, error) {
	if req.StaffRelationId == "" {
		return nil, errs.Validationf("staff relation id cannot be empty")
	}
	if req.JobId == "" {
		return nil, errs.Validationf("job id cannot be empty")
	}
	if req.StartTime.IsZero() {
		return nil, errs.Validationf("start time cannot be empty")
	}
	if err := validatePayment(req.PaymentMethod, req.PaymentAmount); err != nil {
		return nil, err
	}
	if req.EndTime != nil && !req.EndTime.After(req.StartTime) {
		return nil, errs.Validationf("end time must be after start time")
	}

	relation, err := s.relationRepo.GetById(req.StaffRelationId)
	if err != nil {
		return nil, err
	}
	if err := s.permission.Require(identityId, relation.BusinessId, model.CapJobCardCreate); err != nil {
		return nil, err
	}

	job, err := s.jobRepo.GetById(req.JobId)
	if err != nil {
		return nil, err
	}
	if job == nil || job.BusinessId != relation.BusinessId {
		return nil, errs.Validationf("unknown job: %s", req.JobId)
	}

	if req.WorkLogId != "" {
		session, err := s.sessionRepo.GetById(req.WorkLogId)
		if err != nil {
			return nil, errs.Validationf("unknown work session: %s", req.WorkLogId)
		}
		if session.StaffRelationId != relation.RelationId {
			return nil, errs.Validationf("work session belongs to a different staff relation")
		}
	}

	card := &model.JobCard{
		JobCardId:       id.GetXid(),
		StaffRelationId: relation.RelationId,
		BusinessId:      relation.BusinessId,
		JobId:           req.JobId,
		WorkLogId:       req.WorkLogId,
		StartTime:       req.StartTime.UTC(),
		EndTime:         req.EndTime,
		PaymentMethod:   req.PaymentMethod,
		PaymentAmount:   req.PaymentAmount,
		Notes:           req.Notes,
	}
	if err := s.jobCardRepo.Create(card); err != nil {
		log.Errorw("create job card failed", "relationId", relation.RelationId, "error", err)
		return nil, err
	}

	metrics.JobCardsCreatedTotal.WithLabelValues(req.PaymentMethod).Inc()
	return card, nil
}

// Update 修正工单；需要 job_card_edit 能力，只更新请求中携带的字段。
// 收款组合按修正后的最终值校验。
func (s *JobCardService) Update(identityId, jobCardId string, req *model.UpdateJobCardReq) (*model.JobCard, error) {
	card, err := s.jobCardRepo.GetById(jobCardId)
	if err != nil {
		return nil, err
	}
	if err := s.permission.Require(identityId, card.BusinessId, model.CapJobCardEdit); err != nil {
		return nil, err
	}

	method := card.PaymentMethod
	amount := card.PaymentAmount
	if req.PaymentMethod != nil {
		method = *req.PaymentMethod
	}
	if req.PaymentAmount != nil {
		amount = *req.PaymentAmount
	}
	if err := validatePayment(method, amount); err != nil {
		return nil, err
	}

	startTime := card.StartTime
	if req.StartTime != nil {
		startTime = req.StartTime.UTC()
	}
	endTime := card.EndTime
	if req.EndTime != nil {
		endTime = req.EndTime
	}
	if endTime != nil && !endTime.After(startTime) {
		return nil, errs.Validationf("end time must be after start time")
	}

	updates := map[string]any{}
	if req.StartTime != nil {
		updates["start_time"] = startTime
	}
	if req.EndTime != nil {
		updates["end_time"] = endTime
	}
	if req.PaymentMethod != nil {
		updates["payment_method"] = method
	}
	if req.PaymentAmount != nil {
		updates["payment_amount"] = amount
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return card, nil
	}

	if err := s.jobCardRepo.Update(jobCardId, updates); err != nil {
		return nil, err
	}
	return s.jobCardRepo.GetById(jobCardId)
}

// Delete 删除工单；需要 job_card_delete 能力
func (s *JobCardService) Delete(identityId, jobCardId string) error {
	card, err := s.jobCardRepo.GetById(jobCardId)
	if err != nil {
		return err
	}
	if err := s.permission.Require(identityId, card.BusinessId, model.CapJobCardDelete); err != nil {
		return err
	}
	return s.jobCardRepo.Delete(jobCardId)
}

// ListJobs 列出商户的服务目录；目录由外部服务维护，这里只读
func (s *JobCardService) ListJobs(businessId string) ([]model.Job, error) {
	return s.jobRepo.ListByBusiness(businessId)
}

// ListByRelation 列出某员工关系的全部工单。
// 本人可查自己的，其他人需要 view_reports 能力。
func (s *JobCardService) ListByRelation(actorId, staffRelationId string) ([]model.JobCard, error) {
	relation, err := s.relationRepo.GetById(staffRelationId)
	if err != nil {
		return nil, err
	}
	if relation.StaffIdentityId != actorId {
		if err := s.permission.Require(actorId, relation.BusinessId, model.CapViewReports); err != nil {
			return nil, err
		}
	}
	return s.jobCardRepo.ListByRelation(staffRelationId)
}
