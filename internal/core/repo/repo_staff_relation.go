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

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/go-bizcore/bizcore/internal/core/errs"
	"github.com/go-bizcore/bizcore/internal/core/model"
	"github.com/go-bizcore/bizcore/pkg/database"
)

type IStaffRelationRepository interface {
	GetById(relationId string) (*model.StaffRelation, error)
	// GetActiveByIdentity 获取激活关系，没有时返回 (nil, nil)
	GetActiveByIdentity(staffIdentityId, businessId string) (*model.StaffRelation, error)
	ListByBusiness(businessId string) ([]model.StaffRelation, error)
	ListByIdentity(staffIdentityId string) ([]model.StaffRelation, error)
	UpdatePermissions(relationId string, permissions datatypes.JSON) error
	UpdateStatus(relationId string, status int) error
}

type StaffRelationRepo struct {
	database.IDatabase
}

func NewStaffRelationRepo(db database.IDatabase) IStaffRelationRepository {
	return &StaffRelationRepo{IDatabase: db}
}

// GetById 获取员工关系
func (r *StaffRelationRepo) GetById(relationId string) (*model.StaffRelation, error) {
	var relation model.StaffRelation
	err := r.Database().Where("relation_id = ?", relationId).First(&relation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Validationf("unknown staff relation: %s", relationId)
		}
		return nil, err
	}
	return &relation, nil
}

// GetActiveByIdentity 获取某身份在某商户下的激活关系
func (r *StaffRelationRepo) GetActiveByIdentity(staffIdentityId, businessId string) (*model.StaffRelation, error) {
	var relation model.StaffRelation
	err := r.Database().
		Where("staff_identity_id = ? AND business_id = ? AND status = ?",
			staffIdentityId, businessId, model.StaffRelationStatusActive).
		First(&relation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &relation, nil
}

// ListByBusiness 列出商户的全部员工关系
func (r *StaffRelationRepo) ListByBusiness(businessId string) ([]model.StaffRelation, error) {
	var relations []model.StaffRelation
	err := r.Database().Where("business_id = ?", businessId).
		Order("created_at").Find(&relations).Error
	return relations, err
}

// ListByIdentity 列出某身份的全部员工关系
func (r *StaffRelationRepo) ListByIdentity(staffIdentityId string) ([]model.StaffRelation, error) {
	var relations []model.StaffRelation
	err := r.Database().Where("staff_identity_id = ?", staffIdentityId).
		Order("created_at").Find(&relations).Error
	return relations, err
}

// UpdatePermissions 更新员工授权表
func (r *StaffRelationRepo) UpdatePermissions(relationId string, permissions datatypes.JSON) error {
	res := r.Database().Model(&model.StaffRelation{}).
		Where("relation_id = ?", relationId).
		Update("permissions", permissions)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.Validationf("unknown staff relation: %s", relationId)
	}
	return nil
}

// UpdateStatus 切换关系状态并同步 active_flag；
// 重新激活时若同一 (identity, business) 已有激活关系，
// 唯一索引会拒绝写入。
func (r *StaffRelationRepo) UpdateStatus(relationId string, status int) error {
	updates := map[string]any{"status": status, "active_flag": nil}
	if status == model.StaffRelationStatusActive {
		updates["active_flag"] = 1
	}

	res := r.Database().Model(&model.StaffRelation{}).
		Where("relation_id = ?", relationId).
		Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return errs.Validationf("identity already has an active staff relation with this business")
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.Validationf("unknown staff relation: %s", relationId)
	}
	return nil
}
