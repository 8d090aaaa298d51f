package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/go-bizcore/bizcore/internal/core/model"
	"github.com/go-bizcore/bizcore/pkg/database"
)

/**
 * @file: repo_job.go
 * @description: 服务目录仓储(只读)
 */

type IJobRepository interface {
	// GetById 获取目录项，不存在时返回 (nil, nil)
	GetById(jobId string) (*model.Job, error)
	ListByBusiness(businessId string) ([]model.Job, error)
}

type JobRepo struct {
	database.IDatabase
}

func NewJobRepo(db database.IDatabase) IJobRepository {
	return &JobRepo{IDatabase: db}
}

// GetById 获取目录项
func (r *JobRepo) GetById(jobId string) (*model.Job, error) {
	var job model.Job
	err := r.Database().Where("job_id = ?", jobId).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// ListByBusiness 列出商户的服务目录
func (r *JobRepo) ListByBusiness(businessId string) ([]model.Job, error) {
	var jobs []model.Job
	err := r.Database().Where("business_id = ?", businessId).
		Order("name").Find(&jobs).Error
	return jobs, err
}
