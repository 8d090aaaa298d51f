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

package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/go-bizcore/bizcore/internal/core/errs"
	"github.com/go-bizcore/bizcore/internal/core/model"
	"github.com/go-bizcore/bizcore/pkg/database"
)

type IInvitationRepository interface {
	Create(invitation *model.StaffInvitation) error
	GetByToken(token string) (*model.StaffInvitation, error)
	GetById(invitationId string) (*model.StaffInvitation, error)
	MarkExpired(invitationId string) error
	AcceptWithRelation(invitationId string, relation *model.StaffRelation) error
	DeletePending(invitationId, businessId string) (int64, error)
	ListByBusiness(businessId string) ([]model.StaffInvitation, error)
}

type InvitationRepo struct {
	database.IDatabase
}

func NewInvitationRepo(db database.IDatabase) IInvitationRepository {
	return &InvitationRepo{IDatabase: db}
}

// Create 创建邀请；token 列的唯一索引保证历史全局唯一
func (r *InvitationRepo) Create(invitation *model.StaffInvitation) error {
	return r.Database().Create(invitation).Error
}

// GetByToken 按令牌查询邀请
func (r *InvitationRepo) GetByToken(token string) (*model.StaffInvitation, error) {
	var invitation model.StaffInvitation
	err := r.Database().Where("token = ?", token).First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrInvitationNotFound
		}
		return nil, err
	}
	return &invitation, nil
}

// GetById 按ID查询邀请
func (r *InvitationRepo) GetById(invitationId string) (*model.StaffInvitation, error) {
	var invitation model.StaffInvitation
	err := r.Database().Where("invitation_id = ?", invitationId).First(&invitation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrInvitationNotFound
		}
		return nil, err
	}
	return &invitation, nil
}

// MarkExpired 惰性过期：首次观测到超时后把 pending 置为 expired。
// 条件更新保证只有 pending 状态会被改写，已接受的邀请不受影响。
func (r *InvitationRepo) MarkExpired(invitationId string) error {
	return r.Database().Model(&model.StaffInvitation{}).
		Where("invitation_id = ? AND status = ?", invitationId, model.InvitationStatusPending).
		Update("status", model.InvitationStatusExpired).Error
}

// AcceptWithRelation 原子接受：
// 条件更新 pending→accepted 与员工关系创建在同一事务内完成，
// 并发接受同一令牌时恰好一个调用方赢得更新，输家按剩余状态分类报错。
func (r *InvitationRepo) AcceptWithRelation(invitationId string, relation *model.StaffRelation) error {
	return r.Database().Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.StaffInvitation{}).
			Where("invitation_id = ? AND status = ?", invitationId, model.InvitationStatusPending).
			Update("status", model.InvitationStatusAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var invitation model.StaffInvitation
			if err := tx.Where("invitation_id = ?", invitationId).First(&invitation).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return errs.ErrInvitationNotFound
				}
				return err
			}
			if invitation.Status == model.InvitationStatusExpired {
				return errs.ErrInvitationExpired
			}
			return errs.ErrInvitationAlreadyAccepted
		}

		if err := tx.Create(relation).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errs.Validationf("identity already has an active staff relation with this business")
			}
			return err
		}
		return nil
	})
}

// DeletePending 删除待接受的邀请，返回删除行数供调用方分类
func (r *InvitationRepo) DeletePending(invitationId, businessId string) (int64, error) {
	res := r.Database().
		Where("invitation_id = ? AND business_id = ? AND status = ?",
			invitationId, businessId, model.InvitationStatusPending).
		Delete(&model.StaffInvitation{})
	return res.RowsAffected, res.Error
}

// ListByBusiness 列出商户的全部邀请
func (r *InvitationRepo) ListByBusiness(businessId string) ([]model.StaffInvitation, error) {
	var invitations []model.StaffInvitation
	err := r.Database().Where("business_id = ?", businessId).
		Order("created_at DESC").Find(&invitations).Error
	return invitations, err
}
