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
	"errors"
	"regexp"
	"time"

	"github.com/go-bizcore/bizcore/internal/core/conf"
	"github.com/go-bizcore/bizcore/internal/core/errs"
	"github.com/go-bizcore/bizcore/internal/core/model"
	"github.com/go-bizcore/bizcore/internal/core/repo"
	"github.com/go-bizcore/bizcore/pkg/id"
	"github.com/go-bizcore/bizcore/pkg/log"
	"github.com/go-bizcore/bizcore/pkg/metrics"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// InvitationService 邀请生命周期：签发、校验、接受、撤销。
// core 不发送邮件，令牌在签发响应中返回，投递由调用方负责。
type InvitationService struct {
	invitationRepo repo.IInvitationRepository
	permission     *PermissionService
	staffConf      conf.Staff
}

func NewInvitationService(invitationRepo repo.IInvitationRepository, permission *PermissionService, staffConf conf.Staff) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		permission:     permission,
		staffConf:      staffConf,
	}
}

func (s *InvitationService) invitationTTL() time.Duration {
	hours := s.staffConf.InvitationTTLHours
	if hours <= 0 {
		hours = 48
	}
	return time.Duration(hours) * time.Hour
}

// Issue 签发邀请；需要 manage_staff 能力。
// permissions 为空时按角色默认授权，未知或所有者保留能力点直接拒绝。
func (s *InvitationService) Issue(actorId string, req *model.IssueInvitationReq) (*model.IssueInvitationResp, error) {
	if req.BusinessId == "" {
		return nil, errs.Validationf("business id cannot be empty")
	}
	if !emailPattern.MatchString(req.Email) {
		return nil, errs.Validationf("invalid email address: %s", req.Email)
	}
	if !model.IsKnownRole(req.Role) {
		return nil, errs.Validationf("unknown role: %s", req.Role)
	}

	if err := s.permission.Require(actorId, req.BusinessId, model.CapManageStaff); err != nil {
		return nil, err
	}

	permissions := req.Permissions
	if permissions == nil {
		permissions = model.DefaultPermissions(req.Role)
	}
	if err := model.ValidatePermissions(permissions); err != nil {
		return nil, errs.Validationf("%s", err)
	}
	raw, err := model.MarshalPermissions(permissions)
	if err != nil {
		return nil, err
	}

	token := id.SecureToken(0)
	invitation := &model.StaffInvitation{
		InvitationId:        id.GetUUID(),
		BusinessId:          req.BusinessId,
		BusinessName:        req.BusinessName,
		Email:               req.Email,
		Token:               token,
		InvitedBy:           actorId,
		ProposedRole:        req.Role,
		ProposedPermissions: raw,
		Status:              model.InvitationStatusPending,
		ExpiresAt:           time.Now().UTC().Add(s.invitationTTL()),
	}
	if err := s.invitationRepo.Create(invitation); err != nil {
		log.Errorw("create invitation failed", "businessId", req.BusinessId, "error", err)
		return nil, err
	}

	metrics.InvitationsIssuedTotal.WithLabelValues(req.Role).Inc()
	return &model.IssueInvitationResp{StaffInvitation: invitation, Token: token}, nil
}

// Verify 校验令牌并返回邀请详情。
// 过期是惰性判定的：首次在过期后被观测时把 pending 置为 expired。
func (s *InvitationService) Verify(token string) (*model.StaffInvitation, error) {
	if token == "" {
		return nil, errs.ErrInvitationNotFound
	}

	invitation, err := s.invitationRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}

	switch invitation.Status {
	case model.InvitationStatusAccepted:
		return nil, errs.ErrInvitationAlreadyAccepted
	case model.InvitationStatusExpired:
		return nil, errs.ErrInvitationExpired
	}

	if invitation.Expired(time.Now().UTC()) {
		if err := s.invitationRepo.MarkExpired(invitation.InvitationId); err != nil {
			log.Warnf("mark invitation expired failed: %v", err)
		}
		return nil, errs.ErrInvitationExpired
	}
	return invitation, nil
}

// Accept 接受邀请并建立员工关系。
// pending→accepted 与关系创建在同一事务内完成；并发接受同一令牌时
// 恰好一人成功，输家收到 ErrInvitationAlreadyAccepted。
func (s *InvitationService) Accept(token, staffIdentityId string) (*model.StaffRelation, error) {
	if staffIdentityId == "" {
		return nil, errs.Validationf("staff identity id cannot be empty")
	}

	invitation, err := s.Verify(token)
	if err != nil {
		return nil, err
	}

	activeFlag := uint8(1)
	relation := &model.StaffRelation{
		RelationId:      id.GetUUID(),
		StaffIdentityId: staffIdentityId,
		BusinessId:      invitation.BusinessId,
		Role:            invitation.ProposedRole,
		Permissions:     invitation.ProposedPermissions,
		Status:          model.StaffRelationStatusActive,
		InvitedBy:       invitation.InvitedBy,
		ActiveFlag:      &activeFlag,
	}
	if err := s.invitationRepo.AcceptWithRelation(invitation.InvitationId, relation); err != nil {
		return nil, err
	}

	metrics.InvitationsAcceptedTotal.Inc()
	log.Infow("invitation accepted", "invitationId", invitation.InvitationId,
		"businessId", invitation.BusinessId, "relationId", relation.RelationId)
	return relation, nil
}

// Cancel 撤销待接受的邀请；需要 manage_staff 能力。
// 已接受或已过期的邀请不可撤销，按剩余状态分类报错。
func (s *InvitationService) Cancel(actorId, businessId, invitationId string) error {
	if err := s.permission.Require(actorId, businessId, model.CapManageStaff); err != nil {
		return err
	}

	rows, err := s.invitationRepo.DeletePending(invitationId, businessId)
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	invitation, err := s.invitationRepo.GetById(invitationId)
	if err != nil {
		return err
	}
	// 邀请属于其他商户时按越权处理
	if invitation.BusinessId != businessId {
		return errs.ErrPermissionDenied
	}
	switch invitation.Status {
	case model.InvitationStatusAccepted:
		return errs.ErrInvitationAlreadyAccepted
	case model.InvitationStatusExpired:
		return errs.ErrInvitationExpired
	}
	return errors.New("cancel invitation failed")
}

// GetByToken 按令牌查询邀请详情，不做过期副作用
func (s *InvitationService) GetByToken(token string) (*model.StaffInvitation, error) {
	return s.invitationRepo.GetByToken(token)
}

// ListByBusiness 列出商户的全部邀请；需要 manage_staff 能力
func (s *InvitationService) ListByBusiness(actorId, businessId string) ([]model.StaffInvitation, error) {
	if err := s.permission.Require(actorId, businessId, model.CapManageStaff); err != nil {
		return nil, err
	}
	return s.invitationRepo.ListByBusiness(businessId)
}
