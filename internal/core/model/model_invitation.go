package model

import (
	"time"

	"gorm.io/datatypes"
)

/**
 * @file: model_invitation.go
 * @description: 员工邀请表
 */

// StaffInvitation 员工邀请表
type StaffInvitation struct {
	BaseModel
	InvitationId        string         `gorm:"column:invitation_id;uniqueIndex" json:"invitationId"`   // 邀请唯一标识
	BusinessId          string         `gorm:"column:business_id;index" json:"businessId"`             // 商户ID
	BusinessName        string         `gorm:"column:business_name" json:"businessName"`               // 商户名称(冗余, 供展示)
	Email               string         `gorm:"column:email" json:"email"`                              // 被邀请人邮箱
	Token               string         `gorm:"column:token;uniqueIndex" json:"-"`                      // 邀请令牌, 历史全局唯一
	InvitedBy           string         `gorm:"column:invited_by" json:"invitedBy"`                     // 邀请人身份ID
	ProposedRole        string         `gorm:"column:proposed_role" json:"proposedRole"`               // 拟授予角色
	ProposedPermissions datatypes.JSON `gorm:"column:proposed_permissions" json:"proposedPermissions"` // 拟授予能力点
	Status              int            `gorm:"column:status" json:"status"`                            // 状态: 0-待接受, 1-已接受, 2-已过期
	ExpiresAt           time.Time      `gorm:"column:expires_at" json:"expiresAt"`                     // 过期时间(UTC)
}

func (StaffInvitation) TableName() string {
	return "t_staff_invitation"
}

// InvitationStatus 邀请状态；pending 只能单向进入 accepted 或 expired
const (
	InvitationStatusPending  = 0 // 待接受
	InvitationStatusAccepted = 1 // 已接受(终态)
	InvitationStatusExpired  = 2 // 已过期(终态)
)

// Expired 判断邀请在 now 时刻是否已过期
func (i *StaffInvitation) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}
