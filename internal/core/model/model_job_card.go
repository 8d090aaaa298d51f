package model

import "time"

/**
 * @file: model_job_card.go
 * @description: 计费工单表
 */

// JobCard 计费工单表；一条可计费的已完成工作记录
type JobCard struct {
	BaseModel
	JobCardId       string     `gorm:"column:job_card_id;uniqueIndex" json:"jobCardId"`     // 工单唯一标识
	StaffRelationId string     `gorm:"column:staff_relation_id;index" json:"staffRelationId"` // 员工关系ID
	BusinessId      string     `gorm:"column:business_id;index" json:"businessId"`          // 商户ID
	JobId           string     `gorm:"column:job_id" json:"jobId"`                          // 服务目录项ID(外部只读目录)
	WorkLogId       string     `gorm:"column:work_log_id;index" json:"workLogId"`           // 关联的工作时段ID, 可为空
	StartTime       time.Time  `gorm:"column:start_time" json:"startTime"`                  // 开始时间(UTC)
	EndTime         *time.Time `gorm:"column:end_time" json:"endTime"`                      // 结束时间, 可为空
	PaymentMethod   string     `gorm:"column:payment_method" json:"paymentMethod"`          // 支付方式: cash/pos/none
	PaymentAmount   float64    `gorm:"column:payment_amount" json:"paymentAmount"`          // 支付金额, >= 0
	Notes           string     `gorm:"column:notes" json:"notes"`                           // 备注
}

func (JobCard) TableName() string {
	return "t_job_card"
}

// PaymentMethod 支付方式
const (
	PaymentMethodCash = "cash" // 现金
	PaymentMethodPos  = "pos"  // 刷卡
	PaymentMethodNone = "none" // 无收款, 金额必须为 0
)

// IsKnownPaymentMethod 判断支付方式是否合法
func IsKnownPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodPos, PaymentMethodNone:
		return true
	}
	return false
}
