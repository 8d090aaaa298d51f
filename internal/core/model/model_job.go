package model

/**
 * @file: model_job.go
 * @description: 服务目录表(外部维护, core 只读)
 */

// Job 服务目录项；由目录服务维护，core 不做任何写入
type Job struct {
	BaseModel
	JobId           string  `gorm:"column:job_id;uniqueIndex" json:"jobId"`           // 目录项唯一标识
	BusinessId      string  `gorm:"column:business_id;index" json:"businessId"`       // 商户ID
	Name            string  `gorm:"column:name" json:"name"`                          // 服务名称
	DefaultDuration int     `gorm:"column:default_duration" json:"defaultDuration"`   // 默认时长(分钟)
	DefaultPrice    float64 `gorm:"column:default_price" json:"defaultPrice"`         // 默认价格
}

func (Job) TableName() string {
	return "t_job"
}
