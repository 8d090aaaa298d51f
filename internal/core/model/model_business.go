package model

/**
 * @file: model_business.go
 * @description: 商户租户表
 */

// Business 商户租户表；core 只读，归属判断依据 owner_identity_id
type Business struct {
	BaseModel
	BusinessId      string `gorm:"column:business_id;uniqueIndex" json:"businessId"`    // 商户唯一标识
	Name            string `gorm:"column:name" json:"name"`                             // 商户名称
	OwnerIdentityId string `gorm:"column:owner_identity_id" json:"ownerIdentityId"`     // 商户所有者身份ID
	Status          int    `gorm:"column:status" json:"status"`                         // 状态: 0-未激活, 1-正常, 2-冻结
}

func (Business) TableName() string {
	return "t_business"
}

// BusinessStatus 商户状态
const (
	BusinessStatusInactive = 0 // 未激活
	BusinessStatusActive   = 1 // 正常
	BusinessStatusFrozen   = 2 // 冻结
)
