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

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-bizcore/bizcore/internal/core/conf"
	"github.com/go-bizcore/bizcore/internal/core/errs"
	"github.com/go-bizcore/bizcore/internal/core/model"
)

func TestStaffRelation_UpdatePermissions(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, staffPermissions())

	// 授权表整体替换，立即生效
	updated, err := env.relation.UpdatePermissions("owner-1", relation.RelationId, map[model.Capability]bool{
		model.CapViewReports: true,
	})
	require.NoError(t, err)

	permissions, err := updated.PermissionMap()
	require.NoError(t, err)
	assert.True(t, permissions[model.CapViewReports])
	assert.False(t, permissions[model.CapClockIn])

	ok, err := env.permission.HasPermission("staff-1", "biz-1", model.CapClockIn)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStaffRelation_UpdatePermissionsValidation(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, nil)

	// 所有者保留能力点不可授予
	_, err := env.relation.UpdatePermissions("owner-1", relation.RelationId, map[model.Capability]bool{
		model.CapBilling: true,
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	// 未知能力点直接拒绝
	_, err = env.relation.UpdatePermissions("owner-1", relation.RelationId, map[model.Capability]bool{
		"teleportation": true,
	})
	assert.ErrorIs(t, err, errs.ErrValidation)

	// 非 manage_staff 持有者不可调整
	_, err = env.relation.UpdatePermissions("staff-1", relation.RelationId, map[model.Capability]bool{})
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestStaffRelation_SetStatus(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, staffPermissions())

	// 停用后权限立即失效
	updated, err := env.relation.SetStatus("owner-1", relation.RelationId, model.StaffRelationStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, model.StaffRelationStatusInactive, updated.Status)

	ok, err := env.permission.HasPermission("staff-1", "biz-1", model.CapClockIn)
	require.NoError(t, err)
	assert.False(t, ok)

	// 重新激活
	updated, err = env.relation.SetStatus("owner-1", relation.RelationId, model.StaffRelationStatusActive)
	require.NoError(t, err)
	assert.Equal(t, model.StaffRelationStatusActive, updated.Status)

	ok, err = env.permission.HasPermission("staff-1", "biz-1", model.CapClockIn)
	require.NoError(t, err)
	assert.True(t, ok)

	// 非法状态值
	_, err = env.relation.SetStatus("owner-1", relation.RelationId, 9)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestStaffRelation_SetStatusIdempotent(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, staffPermissions())

	_, err := env.relation.SetStatus("owner-1", relation.RelationId, model.StaffRelationStatusInactive)
	require.NoError(t, err)

	// 重复停用是无变化更新，不是"未找到"
	updated, err := env.relation.SetStatus("owner-1", relation.RelationId, model.StaffRelationStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, model.StaffRelationStatusInactive, updated.Status)

	// 重新提交相同授权表同样幂等
	_, err = env.relation.UpdatePermissions("owner-1", relation.RelationId, staffPermissions())
	require.NoError(t, err)
	_, err = env.relation.UpdatePermissions("owner-1", relation.RelationId, staffPermissions())
	require.NoError(t, err)
}

func TestStaffRelation_DeactivateKeepsSessionByDefault(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, staffPermissions())

	session, err := env.workSession.Start("staff-1", &model.StartWorkSessionReq{StaffRelationId: relation.RelationId})
	require.NoError(t, err)

	_, err = env.relation.SetStatus("owner-1", relation.RelationId, model.StaffRelationStatusInactive)
	require.NoError(t, err)

	// 默认配置下进行中的时段保持原样
	stored, err := env.sessions.GetById(session.SessionId)
	require.NoError(t, err)
	assert.Equal(t, model.WorkSessionStatusActive, stored.Status)
}

func TestStaffRelation_DeactivateAutoClosesSession(t *testing.T) {
	env := newTestEnv(t, conf.Staff{AutoCloseSessionOnDeactivate: true})
	env.addBusiness("biz-1", "owner-1")
	env.addJob("job-1", "biz-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, staffPermissions())

	session, err := env.workSession.Start("staff-1", &model.StartWorkSessionReq{StaffRelationId: relation.RelationId})
	require.NoError(t, err)

	_, err = env.jobCard.Create("staff-1", &model.CreateJobCardReq{
		StaffRelationId: relation.RelationId,
		JobId:           "job-1",
		WorkLogId:       session.SessionId,
		StartTime:       session.StartTime,
		PaymentMethod:   model.PaymentMethodCash,
		PaymentAmount:   40,
	})
	require.NoError(t, err)

	_, err = env.relation.SetStatus("owner-1", relation.RelationId, model.StaffRelationStatusInactive)
	require.NoError(t, err)

	// 时段被自动结束，收入按工单收款汇总
	stored, err := env.sessions.GetById(session.SessionId)
	require.NoError(t, err)
	assert.Equal(t, model.WorkSessionStatusCompleted, stored.Status)
	require.NotNil(t, stored.Earnings)
	assert.Equal(t, 40.0, *stored.Earnings)
}

func TestStaffRelation_ReactivateConflict(t *testing.T) {
	env := newTestEnv(t, conf.Staff{InvitationTTLHours: 48})
	env.addBusiness("biz-1", "owner-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, staffPermissions())

	_, err := env.relation.SetStatus("owner-1", relation.RelationId, model.StaffRelationStatusInactive)
	require.NoError(t, err)

	// 停用期间同一身份又通过新邀请建立了激活关系
	resp, err := env.invitation.Issue("owner-1", &model.IssueInvitationReq{
		BusinessId: "biz-1", Email: "staff@example.com", Role: model.RoleStaff,
	})
	require.NoError(t, err)
	_, err = env.invitation.Accept(resp.Token, "staff-1")
	require.NoError(t, err)

	// 旧关系不可再激活
	_, err = env.relation.SetStatus("owner-1", relation.RelationId, model.StaffRelationStatusActive)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestStaffRelation_GetAndList(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, nil)

	// 本人可查自己的
	got, err := env.relation.GetById("staff-1", relation.RelationId)
	require.NoError(t, err)
	assert.Equal(t, relation.RelationId, got.RelationId)

	// 其他员工不可查
	env.addActiveRelation(t, "staff-2", "biz-1", model.RoleStaff, nil)
	_, err = env.relation.GetById("staff-2", relation.RelationId)
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)

	relations, err := env.relation.ListByBusiness("owner-1", "biz-1")
	require.NoError(t, err)
	assert.Len(t, relations, 2)

	_, err = env.relation.ListByBusiness("staff-1", "biz-1")
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)

	mine, err := env.relation.ListByIdentity("staff-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}
