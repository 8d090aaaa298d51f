package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/go-bizcore/bizcore/internal/core/errs"
	"github.com/go-bizcore/bizcore/internal/core/model"
	"github.com/go-bizcore/bizcore/pkg/database"
)

/**
 * @file: repo_job_card.go
 * @description: 工单仓储
 */

type IJobCardRepository interface {
	Create(card *model.JobCard) error
	GetById(jobCardId string) (*model.JobCard, error)
	Update(jobCardId string, updates map[string]any) error
	Delete(jobCardId string) error
	ListByRelation(staffRelationId string) ([]model.JobCard, error)
	SumPaymentsBySession(sessionId string) (float64, error)
}

type JobCardRepo struct {
	database.IDatabase
}

func NewJobCardRepo(db database.IDatabase) IJobCardRepository {
	return &JobCardRepo{IDatabase: db}
}

// Create 创建工单
func (r *JobCardRepo) Create(card *model.JobCard) error {
	return r.Database().Create(card).Error
}

// GetById 获取工单
func (r *JobCardRepo) GetById(jobCardId string) (*model.JobCard, error) {
	var card model.JobCard
	err := r.Database().Where("job_card_id = ?", jobCardId).First(&card).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrJobCardNotFound
		}
		return nil, err
	}
	return &card, nil
}

// Update 修正工单字段
func (r *JobCardRepo) Update(jobCardId string, updates map[string]any) error {
	res := r.Database().Model(&model.JobCard{}).
		Where("job_card_id = ?", jobCardId).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrJobCardNotFound
	}
	return nil
}

// Delete 删除工单
func (r *JobCardRepo) Delete(jobCardId string) error {
	res := r.Database().Where("job_card_id = ?", jobCardId).Delete(&model.JobCard{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrJobCardNotFound
	}
	return nil
}

// ListByRelation 列出员工关系的全部工单
func (r *JobCardRepo) ListByRelation(staffRelationId string) ([]model.JobCard, error) {
	var cards []model.JobCard
	err := r.Database().Where("staff_relation_id = ?", staffRelationId).
		Order("start_time DESC").Find(&cards).Error
	return cards, err
}

// SumPaymentsBySession 汇总某时段内工单的收款金额
func (r *JobCardRepo) SumPaymentsBySession(sessionId string) (float64, error) {
	var total float64
	err := r.Database().Model(&model.JobCard{}).
		Where("work_log_id = ?", sessionId).
		Select("COALESCE(SUM(payment_amount), 0)").
		Scan(&total).Error
	return total, err
}
