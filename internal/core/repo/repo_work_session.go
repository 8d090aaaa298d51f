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
	"time"

	"gorm.io/gorm"

	"github.com/go-bizcore/bizcore/internal/core/errs"
	"github.com/go-bizcore/bizcore/internal/core/model"
	"github.com/go-bizcore/bizcore/pkg/database"
)

type IWorkSessionRepository interface {
	CreateActive(session *model.WorkSession) error
	GetById(sessionId string) (*model.WorkSession, error)
	// GetActive 获取进行中的时段，没有时返回 (nil, nil)
	GetActive(staffRelationId string) (*model.WorkSession, error)
	Complete(sessionId string, endTime time.Time, earnings *float64, notes string) (*model.WorkSession, error)
	ListByRelation(staffRelationId string) ([]model.WorkSession, error)
}

type WorkSessionRepo struct {
	database.IDatabase
}

func NewWorkSessionRepo(db database.IDatabase) IWorkSessionRepository {
	return &WorkSessionRepo{IDatabase: db}
}

// CreateActive 创建进行中的时段。
// 互斥由唯一索引 (staff_relation_id, active_flag) 在插入事务内保证，
// 不做先查后插；并发重复打卡时输家收到已存在时段的ID。
func (r *WorkSessionRepo) CreateActive(session *model.WorkSession) error {
	err := r.Database().Create(session).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}

	existing, getErr := r.GetActive(session.StaffRelationId)
	if getErr != nil || existing == nil {
		// 竞争的时段刚好又结束了，只报互斥冲突
		return errs.ErrDuplicateActiveSession
	}
	return &errs.DuplicateActiveSessionError{SessionId: existing.SessionId}
}

// GetById 获取时段
func (r *WorkSessionRepo) GetById(sessionId string) (*model.WorkSession, error) {
	var session model.WorkSession
	err := r.Database().Where("session_id = ?", sessionId).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetActive 获取进行中的时段
func (r *WorkSessionRepo) GetActive(staffRelationId string) (*model.WorkSession, error) {
	var session model.WorkSession
	err := r.Database().
		Where("staff_relation_id = ? AND status = ?", staffRelationId, model.WorkSessionStatusActive).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Complete 原子完成时段：单条条件更新 active→completed，
// 第二个并发 End 更新不到任何行，按剩余状态分类报错。
func (r *WorkSessionRepo) Complete(sessionId string, endTime time.Time, earnings *float64, notes string) (*model.WorkSession, error) {
	updates := map[string]any{
		"status":      model.WorkSessionStatusCompleted,
		"end_time":    endTime,
		"earnings":    earnings,
		"active_flag": nil,
	}
	if notes != "" {
		updates["notes"] = notes
	}

	res := r.Database().Model(&model.WorkSession{}).
		Where("session_id = ? AND status = ?", sessionId, model.WorkSessionStatusActive).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		var session model.WorkSession
		if err := r.Database().Where("session_id = ?", sessionId).First(&session).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.ErrSessionNotFound
			}
			return nil, err
		}
		return nil, errs.ErrSessionAlreadyCompleted
	}

	return r.GetById(sessionId)
}

// ListByRelation 列出员工关系的全部时段
func (r *WorkSessionRepo) ListByRelation(staffRelationId string) ([]model.WorkSession, error) {
	var sessions []model.WorkSession
	err := r.Database().Where("staff_relation_id = ?", staffRelationId).
		Order("start_time DESC").Find(&sessions).Error
	return sessions, err
}
