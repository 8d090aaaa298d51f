package repo

import (
	"errors"

	"gorm.io/gorm"

	"github.com/go-bizcore/bizcore/internal/core/model"
	"github.com/go-bizcore/bizcore/pkg/database"
)

/**
 * @file: repo_business.go
 * @description: 商户仓储(只读)
 */

type IBusinessRepository interface {
	// GetById 获取商户，不存在时返回 (nil, nil)
	GetById(businessId string) (*model.Business, error)
}

type BusinessRepo struct {
	database.IDatabase
}

func NewBusinessRepo(db database.IDatabase) IBusinessRepository {
	return &BusinessRepo{IDatabase: db}
}

// GetById 获取商户
func (r *BusinessRepo) GetById(businessId string) (*model.Business, error) {
	var business model.Business
	err := r.Database().Where("business_id = ?", businessId).First(&business).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &business, nil
}
