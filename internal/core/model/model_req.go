package model

import "time"

/**
 * @file: model_req.go
 * @description: 请求与响应结构
 */

// IssueInvitationReq 发起员工邀请
type IssueInvitationReq struct {
	BusinessId   string              `json:"businessId"`
	BusinessName string              `json:"businessName"`
	Email        string              `json:"email"`
	Role         string              `json:"role"`
	Permissions  map[Capability]bool `json:"permissions"` // 为空时按角色默认授权
}

// IssueInvitationResp 返回邀请与一次性令牌；令牌只在签发时可见
type IssueInvitationResp struct {
	*StaffInvitation
	Token string `json:"token"`
}

// AcceptInvitationReq 接受员工邀请
type AcceptInvitationReq struct {
	Token string `json:"token"`
}

// StartWorkSessionReq 上班打卡
type StartWorkSessionReq struct {
	StaffRelationId string     `json:"staffRelationId"`
	StartTime       *time.Time `json:"startTime"` // 为空时取当前时间
}

// EndWorkSessionReq 下班打卡
type EndWorkSessionReq struct {
	SessionId string     `json:"sessionId"`
	EndTime   *time.Time `json:"endTime"`  // 为空时取当前时间
	Earnings  *float64   `json:"earnings"` // 为空时按时段内工单收款汇总
	Notes     string     `json:"notes"`
}

// CreateJobCardReq 创建工单
type CreateJobCardReq struct {
	StaffRelationId string     `json:"staffRelationId"`
	JobId           string     `json:"jobId"`
	WorkLogId       string     `json:"workLogId"` // 可为空, 非空时必须属于同一员工关系
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	PaymentMethod   string     `json:"paymentMethod"`
	PaymentAmount   float64    `json:"paymentAmount"`
	Notes           string     `json:"notes"`
}

// UpdateJobCardReq 修正工单；只更新非空字段
type UpdateJobCardReq struct {
	StartTime     *time.Time `json:"startTime"`
	EndTime       *time.Time `json:"endTime"`
	PaymentMethod *string    `json:"paymentMethod"`
	PaymentAmount *float64   `json:"paymentAmount"`
	Notes         *string    `json:"notes"`
}

// UpdateStaffPermissionsReq 调整员工授权表
type UpdateStaffPermissionsReq struct {
	Permissions map[Capability]bool `json:"permissions"`
}

// SetStaffStatusReq 切换员工关系状态
type SetStaffStatusReq struct {
	Status int `json:"status"`
}
