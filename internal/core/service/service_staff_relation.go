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

	"github.com/go-bizcore/bizcore/internal/core/conf"
	"github.com/go-bizcore/bizcore/internal/core/errs"
	"github.com/go-bizcore/bizcore/internal/core/model"
	"github.com/go-bizcore/bizcore/internal/core/repo"
	"github.com/go-bizcore/bizcore/pkg/log"
)

// StaffRelationService 员工关系管理：授权调整、状态切换、查询
type StaffRelationService struct {
	relationRepo repo.IStaffRelationRepository
	sessionRepo  repo.IWorkSessionRepository
	jobCardRepo  repo.IJobCardRepository
	permission   *PermissionService
	staffConf    conf.Staff
}

func NewStaffRelationService(relationRepo repo.IStaffRelationRepository, sessionRepo repo.IWorkSessionRepository,
	jobCardRepo repo.IJobCardRepository, permission *PermissionService, staffConf conf.Staff) *StaffRelationService {
	return &StaffRelationService{
		relationRepo: relationRepo,
		sessionRepo:  sessionRepo,
		jobCardRepo:  jobCardRepo,
		permission:   permission,
		staffConf:    staffConf,
	}
}

// UpdatePermissions 调整员工授权表；需要 manage_staff 能力。
// 授权表整体替换，未知或所有者保留能力点直接拒绝。
func (s *StaffRelationService) UpdatePermissions(actorId, relationId string, permissions map[model.Capability]bool) (*model.StaffRelation, error) {
	relation, err := s.relationRepo.GetById(relationId)
	if err != nil {
		return nil, err
	}
	if err := s.permission.Require(actorId, relation.BusinessId, model.CapManageStaff); err != nil {
		return nil, err
	}

	if err := model.ValidatePermissions(permissions); err != nil {
		return nil, errs.Validationf("%s", err)
	}
	raw, err := model.MarshalPermissions(permissions)
	if err != nil {
		return nil, err
	}

	if err := s.relationRepo.UpdatePermissions(relationId, raw); err != nil {
		return nil, err
	}
	return s.relationRepo.GetById(relationId)
}

// SetStatus 切换员工关系状态；需要 manage_staff 能力。
// 停用时按配置决定是否自动结束进行中的时段，收入按工单收款汇总。
func (s *StaffRelationService) SetStatus(actorId, relationId string, status int) (*model.StaffRelation, error) {
	if status != model.StaffRelationStatusActive && status != model.StaffRelationStatusInactive {
		return nil, errs.Validationf("unknown staff relation status: %d", status)
	}

	relation, err := s.relationRepo.GetById(relationId)
	if err != nil {
		return nil, err
	}
	if err := s.permission.Require(actorId, relation.BusinessId, model.CapManageStaff); err != nil {
		return nil, err
	}

	if err := s.relationRepo.UpdateStatus(relationId, status); err != nil {
		return nil, err
	}

	if status == model.StaffRelationStatusInactive && s.staffConf.AutoCloseSessionOnDeactivate {
		if err := s.closeActiveSession(relationId); err != nil {
			log.Warnw("auto close session failed", "relationId", relationId, "error", err)
		}
	}

	return s.relationRepo.GetById(relationId)
}

// closeActiveSession 结束员工关系上进行中的时段；没有则无事发生
func (s *StaffRelationService) closeActiveSession(relationId string) error {
	session, err := s.sessionRepo.GetActive(relationId)
	if err != nil || session == nil {
		return err
	}

	sum, err := s.jobCardRepo.SumPaymentsBySession(session.SessionId)
	if err != nil {
		return err
	}
	_, err = s.sessionRepo.Complete(session.SessionId, time.Now().UTC(), &sum, "")
	return err
}

// GetById 获取员工关系详情。
// 本人可查自己的，其他人需要 manage_staff 能力。
func (s *StaffRelationService) GetById(actorId, relationId string) (*model.StaffRelation, error) {
	relation, err := s.relationRepo.GetById(relationId)
	if err != nil {
		return nil, err
	}
	if relation.StaffIdentityId != actorId {
		if err := s.permission.Require(actorId, relation.BusinessId, model.CapManageStaff); err != nil {
			return nil, err
		}
	}
	return relation, nil
}

// ListByBusiness 列出商户的全部员工关系；需要 manage_staff 能力
func (s *StaffRelationService) ListByBusiness(actorId, businessId string) ([]model.StaffRelation, error) {
	if err := s.permission.Require(actorId, businessId, model.CapManageStaff); err != nil {
		return nil, err
	}
	return s.relationRepo.ListByBusiness(businessId)
}

// ListByIdentity 列出本人的全部员工关系
func (s *StaffRelationService) ListByIdentity(identityId string) ([]model.StaffRelation, error) {
	return s.relationRepo.ListByIdentity(identityId)
}
