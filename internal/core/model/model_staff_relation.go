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

package model

import "gorm.io/datatypes"

// StaffRelation 员工关系表；每个被接受的邀请恰好产生一条
type StaffRelation struct {
	BaseModel
	RelationId      string         `gorm:"column:relation_id;uniqueIndex" json:"relationId"`                       // 关系唯一标识
	StaffIdentityId string         `gorm:"column:staff_identity_id;uniqueIndex:uk_staff_business_active" json:"staffIdentityId"` // 员工身份ID
	BusinessId      string         `gorm:"column:business_id;uniqueIndex:uk_staff_business_active" json:"businessId"`            // 商户ID
	Role            string         `gorm:"column:role" json:"role"`                                                // 角色: staff/co-admin
	Permissions     datatypes.JSON `gorm:"column:permissions" json:"permissions"`                                  // 能力点授权表
	Status          int            `gorm:"column:status" json:"status"`                                            // 状态: 0-待激活, 1-正常, 2-停用
	InvitedBy       string         `gorm:"column:invited_by" json:"invitedBy"`                                     // 邀请人身份ID
	// ActiveFlag 为 1 表示 status=active，否则为 NULL；
	// 唯一索引 (staff_identity_id, business_id, active_flag) 在存储层
	// 保证同一员工在同一商户下至多一条激活关系。
	ActiveFlag *uint8 `gorm:"column:active_flag;uniqueIndex:uk_staff_business_active" json:"-"`
}

func (StaffRelation) TableName() string {
	return "t_staff_relation"
}

// StaffRelationStatus 员工关系状态
const (
	StaffRelationStatusPending  = 0 // 待激活
	StaffRelationStatusActive   = 1 // 正常
	StaffRelationStatusInactive = 2 // 停用
)

// PermissionMap 反序列化授权表
func (r *StaffRelation) PermissionMap() (map[Capability]bool, error) {
	return UnmarshalPermissions(r.Permissions)
}
