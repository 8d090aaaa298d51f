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
	"time"

	"github.com/go-bizcore/bizcore/internal/core/errs"
	"github.com/go-bizcore/bizcore/internal/core/model"
	"github.com/go-bizcore/bizcore/internal/core/repo"
	"github.com/go-bizcore/bizcore/pkg/id"
	"github.com/go-bizcore/bizcore/pkg/log"
	"github.com/go-bizcore/bizcore/pkg/metrics"
)

// WorkSessionService 工作时段：上班打卡开启，下班打卡结束。
// 同一员工关系同一时刻至多一个进行中的时段，由存储层唯一索引保证。
type WorkSessionService struct {
	relationRepo repo.IStaffRelationRepository
	sessionRepo  repo.IWorkSessionRepository
	jobCardRepo  repo.IJobCardRepository
	permission   *PermissionService
}

func NewWorkSessionService(relationRepo repo.IStaffRelationRepository, sessionRepo repo.IWorkSessionRepository,
	jobCardRepo repo.IJobCardRepository, permission *PermissionService) *WorkSessionService {
	return &WorkSessionService{
		relationRepo: relationRepo,
		sessionRepo:  sessionRepo,
		jobCardRepo:  jobCardRepo,
		permission:   permission,
	}
}

// Start 上班打卡；需要 clock_in 能力。
// 并发重复打卡时输家收到 DuplicateActiveSessionError，其中带有
// 已存在时段的ID，调用方可直接复用。
func (s *WorkSessionService) Start(identityId string, req *model.StartWorkSessionReq) (*model.WorkSession, error) {
	if req.StaffRelationId == "" {
		return nil, errs.Validationf("staff relation id cannot be empty")
	}

	relation, err := s.relationRepo.GetById(req.StaffRelationId)
	if err != nil {
		return nil, err
	}
	if relation.Status != model.StaffRelationStatusActive {
		return nil, errs.Validationf("staff relation is not active")
	}

	if err := s.permission.Require(identityId, relation.BusinessId, model.CapClockIn); err != nil {
		return nil, err
	}

	startTime := time.Now().UTC()
	if req.StartTime != nil {
		startTime = req.StartTime.UTC()
	}

	activeFlag := uint8(1)
	session := &model.WorkSession{
		SessionId:       id.GetUlid(),
		StaffRelationId: relation.RelationId,
		BusinessId:      relation.BusinessId,
		StartTime:       startTime,
		Status:          model.WorkSessionStatusActive,
		ActiveFlag:      &activeFlag,
	}
	if err := s.sessionRepo.CreateActive(session); err != nil {
		return nil, err
	}

	metrics.WorkSessionsStartedTotal.Inc()
	log.Infow("work session started", "sessionId", session.SessionId, "relationId", relation.RelationId)
	return session, nil
}

// End 下班打卡；需要 clock_out 能力。
// earnings 为空时取时段内工单收款汇总；结束时间必须晚于开始时间。
// 并发重复结束时只有一个调用方成功，输家收到 ErrSessionAlreadyCompleted。
func (s *WorkSessionService) End(identityId string, req *model.EndWorkSessionReq) (*model.WorkSession, error) {
	if req.SessionId == "" {
		return nil, errs.Validationf("session id cannot be empty")
	}

	session, err := s.sessionRepo.GetById(req.SessionId)
	if err != nil {
		return nil, err
	}

	if err := s.permission.Require(identityId, session.BusinessId, model.CapClockOut); err != nil {
		return nil, err
	}

	endTime := time.Now().UTC()
	if req.EndTime != nil {
		endTime = req.EndTime.UTC()
	}
	if !endTime.After(session.StartTime) {
		return nil, errs.Validationf("end time must be after start time")
	}

	earnings := req.Earnings
	if earnings != nil && *earnings < 0 {
		return nil, errs.Validationf("earnings cannot be negative")
	}
	if earnings == nil {
		sum, err := s.jobCardRepo.SumPaymentsBySession(session.SessionId)
		if err != nil {
			return nil, err
		}
		earnings = &sum
	}

	completed, err := s.sessionRepo.Complete(session.SessionId, endTime, earnings, req.Notes)
	if err != nil {
		return nil, err
	}

	if completed.EndTime != nil {
		metrics.WorkSessionDurationSeconds.Observe(completed.EndTime.Sub(completed.StartTime).Seconds())
	}
	log.Infow("work session completed", "sessionId", completed.SessionId, "earnings", *earnings)
	return completed, nil
}

// GetActive 获取某员工关系进行中的时段，没有时返回 (nil, nil)
func (s *WorkSessionService) GetActive(staffRelationId string) (*model.WorkSession, error) {
	return s.sessionRepo.GetActive(staffRelationId)
}

// ListByRelation 列出某员工关系的全部时段。
// 本人可查自己的，其他人需要 view_reports 能力。
func (s *WorkSessionService) ListByRelation(actorId, staffRelationId string) ([]model.WorkSession, error) {
	relation, err := s.relationRepo.GetById(staffRelationId)
	if err != nil {
		return nil, err
	}
	if relation.StaffIdentityId != actorId {
		if err := s.permission.Require(actorId, relation.BusinessId, model.CapViewReports); err != nil {
			return nil, err
		}
	}
	return s.sessionRepo.ListByRelation(staffRelationId)
}
