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

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// Capability 能力点；封闭枚举，未知键在授权编辑时即被拒绝
type Capability string

const (
	CapClockIn        Capability = "clock_in"         // 上班打卡
	CapClockOut       Capability = "clock_out"        // 下班打卡
	CapJobCardCreate  Capability = "job_card_create"  // 创建工单
	CapJobCardEdit    Capability = "job_card_edit"    // 修正工单
	CapJobCardDelete  Capability = "job_card_delete"  // 删除工单
	CapViewReports    Capability = "view_reports"     // 查看报表
	CapManageStaff    Capability = "manage_staff"     // 管理员工
	CapManageBookings Capability = "manage_bookings"  // 管理预订
	CapMessaging      Capability = "messaging"        // 商户消息
	CapPageEdit       Capability = "page_edit"        // 页面编辑

	// 所有者保留能力，不可授予任何员工角色
	CapBilling           Capability = "billing"            // 账单与订阅
	CapOwnershipTransfer Capability = "ownership_transfer" // 所有权转移
	CapBusinessDelete    Capability = "business_delete"    // 删除商户
)

// knownCapabilities 全量能力点
var knownCapabilities = map[Capability]struct{}{
	CapClockIn:           {},
	CapClockOut:          {},
	CapJobCardCreate:     {},
	CapJobCardEdit:       {},
	CapJobCardDelete:     {},
	CapViewReports:       {},
	CapManageStaff:       {},
	CapManageBookings:    {},
	CapMessaging:         {},
	CapPageEdit:          {},
	CapBilling:           {},
	CapOwnershipTransfer: {},
	CapBusinessDelete:    {},
}

// ownerOnlyCapabilities 所有者保留集合，固定白名单，不随租户配置
var ownerOnlyCapabilities = map[Capability]struct{}{
	CapBilling:           {},
	CapOwnershipTransfer: {},
	CapBusinessDelete:    {},
}

// StaffRole 员工角色
const (
	RoleStaff   = "staff"    // 普通员工
	RoleCoAdmin = "co-admin" // 协同管理员
)

// defaultRoleGrants 角色默认授权
var defaultRoleGrants = map[string][]Capability{
	RoleStaff: {
		CapClockIn,
		CapClockOut,
		CapJobCardCreate,
		CapMessaging,
	},
	RoleCoAdmin: {
		CapClockIn,
		CapClockOut,
		CapJobCardCreate,
		CapJobCardEdit,
		CapJobCardDelete,
		CapViewReports,
		CapManageStaff,
		CapManageBookings,
		CapMessaging,
		CapPageEdit,
	},
}

// IsKnownCapability 判断能力点是否在封闭枚举内
func IsKnownCapability(capability Capability) bool {
	_, ok := knownCapabilities[capability]
	return ok
}

// IsOwnerOnlyCapability 判断能力点是否为所有者保留
func IsOwnerOnlyCapability(capability Capability) bool {
	_, ok := ownerOnlyCapabilities[capability]
	return ok
}

// IsKnownRole 判断角色是否合法
func IsKnownRole(role string) bool {
	_, ok := defaultRoleGrants[role]
	return ok
}

// DefaultPermissions 返回角色的默认授权表
func DefaultPermissions(role string) map[Capability]bool {
	grants := make(map[Capability]bool, len(defaultRoleGrants[role]))
	for _, capability := range defaultRoleGrants[role] {
		grants[capability] = true
	}
	return grants
}

// ValidatePermissions 校验授权表：未知键或所有者保留键直接报错
func ValidatePermissions(permissions map[Capability]bool) error {
	for capability := range permissions {
		if !IsKnownCapability(capability) {
			return fmt.Errorf("unknown capability: %s", capability)
		}
		if IsOwnerOnlyCapability(capability) {
			return fmt.Errorf("capability %s is reserved for the business owner", capability)
		}
	}
	return nil
}

// MarshalPermissions 序列化授权表为 JSON 列值
func MarshalPermissions(permissions map[Capability]bool) (datatypes.JSON, error) {
	if permissions == nil {
		permissions = map[Capability]bool{}
	}
	raw, err := json.Marshal(permissions)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// UnmarshalPermissions 反序列化 JSON 列值为授权表
func UnmarshalPermissions(raw datatypes.JSON) (map[Capability]bool, error) {
	permissions := map[Capability]bool{}
	if len(raw) == 0 {
		return permissions, nil
	}
	if err := json.Unmarshal(raw, &permissions); err != nil {
		return nil, err
	}
	return permissions, nil
}
