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

import "time"

// WorkSession 工作时段表；一次完整的上下班周期
type WorkSession struct {
	BaseModel
	SessionId       string     `gorm:"column:session_id;uniqueIndex" json:"sessionId"`                          // 时段唯一标识
	StaffRelationId string     `gorm:"column:staff_relation_id;uniqueIndex:uk_relation_active" json:"staffRelationId"` // 员工关系ID
	BusinessId      string     `gorm:"column:business_id;index" json:"businessId"`                              // 商户ID
	StartTime       time.Time  `gorm:"column:start_time" json:"startTime"`                                      // 开始时间(UTC)
	EndTime         *time.Time `gorm:"column:end_time" json:"endTime"`                                          // 结束时间, 完成前为空
	Status          int        `gorm:"column:status" json:"status"`                                             // 状态: 0-进行中, 1-已完成
	Earnings        *float64   `gorm:"column:earnings" json:"earnings"`                                         // 收入, 完成前为空
	Notes           string     `gorm:"column:notes" json:"notes"`                                               // 备注
	// ActiveFlag 为 1 表示 status=active，完成后置 NULL；
	// 唯一索引 (staff_relation_id, active_flag) 在存储层保证
	// 同一员工关系至多一个进行中的时段。
	ActiveFlag *uint8 `gorm:"column:active_flag;uniqueIndex:uk_relation_active" json:"-"`
}

func (WorkSession) TableName() string {
	return "t_work_session"
}

// WorkSessionStatus 工作时段状态；active 单向进入 completed
const (
	WorkSessionStatusActive    = 0 // 进行中
	WorkSessionStatusCompleted = 1 // 已完成(终态)
)
