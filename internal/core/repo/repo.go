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

package repo

import (
	"gorm.io/gorm"

	"github.com/go-bizcore/bizcore/pkg/database"
)

// Repositories 统一管理所有 repository
type Repositories struct {
	Business      IBusinessRepository
	Invitation    IInvitationRepository
	StaffRelation IStaffRelationRepository
	WorkSession   IWorkSessionRepository
	JobCard       IJobCardRepository
	Job           IJobRepository
}

// NewRepositories 初始化所有 repository
func NewRepositories(db database.IDatabase) *Repositories {
	return &Repositories{
		Business:      NewBusinessRepo(db),
		Invitation:    NewInvitationRepo(db),
		StaffRelation: NewStaffRelationRepo(db),
		WorkSession:   NewWorkSessionRepo(db),
		JobCard:       NewJobCardRepo(db),
		Job:           NewJobRepo(db),
	}
}

func Count(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
