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
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-bizcore/bizcore/internal/core/conf"
	"github.com/go-bizcore/bizcore/internal/core/errs"
	"github.com/go-bizcore/bizcore/internal/core/model"
)

func staffPermissions() map[model.Capability]bool {
	return map[model.Capability]bool{
		model.CapClockIn:       true,
		model.CapClockOut:      true,
		model.CapJobCardCreate: true,
	}
}

func TestWorkSession_StartEnd(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, staffPermissions())

	// 09:00 上班
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	session, err := env.workSession.Start("staff-1", &model.StartWorkSessionReq{
		StaffRelationId: relation.RelationId,
		StartTime:       &start,
	})
	require.NoError(t, err)
	assert.Equal(t, model.WorkSessionStatusActive, session.Status)
	assert.Nil(t, session.EndTime)

	// 09:05 重复上班被拒绝，错误里带着已存在时段的ID
	again := start.Add(5 * time.Minute)
	_, err = env.workSession.Start("staff-1", &model.StartWorkSessionReq{
		StaffRelationId: relation.RelationId,
		StartTime:       &again,
	})
	var dup *errs.DuplicateActiveSessionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, session.SessionId, dup.SessionId)
	assert.ErrorIs(t, err, errs.ErrDuplicateActiveSession)

	// 17:00 下班
	end := start.Add(8 * time.Hour)
	earnings := 120.0
	completed, err := env.workSession.End("staff-1", &model.EndWorkSessionReq{
		SessionId: session.SessionId,
		EndTime:   &end,
		Earnings:  &earnings,
		Notes:     "regular shift",
	})
	require.NoError(t, err)
	assert.Equal(t, model.WorkSessionStatusCompleted, completed.Status)
	require.NotNil(t, completed.EndTime)
	assert.Equal(t, 8*time.Hour, completed.EndTime.Sub(completed.StartTime))
	require.NotNil(t, completed.Earnings)
	assert.Equal(t, 120.0, *completed.Earnings)
	assert.Equal(t, "regular shift", completed.Notes)

	// 下班后可再次上班
	_, err = env.workSession.Start("staff-1", &model.StartWorkSessionReq{
		StaffRelationId: relation.RelationId,
	})
	assert.NoError(t, err)
}

func TestWorkSession_StartConcurrent(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, staffPermissions())

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.workSession.Start("staff-1", &model.StartWorkSessionReq{
				StaffRelationId: relation.RelationId,
			})
		}(i)
	}
	wg.Wait()

	var winners int
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		// 输家拿到赢家的时段ID
		var dup *errs.DuplicateActiveSessionError
		require.ErrorAs(t, err, &dup)
		assert.NotEmpty(t, dup.SessionId)
	}
	assert.Equal(t, 1, winners)

	sessions, err := env.sessions.ListByRelation(relation.RelationId)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestWorkSession_StartValidation(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")

	// 关系不存在
	_, err := env.workSession.Start("staff-1", &model.StartWorkSessionReq{StaffRelationId: "missing"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	// 关系已停用
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, staffPermissions())
	require.NoError(t, env.relations.UpdateStatus(relation.RelationId, model.StaffRelationStatusInactive))
	_, err = env.workSession.Start("staff-1", &model.StartWorkSessionReq{StaffRelationId: relation.RelationId})
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestWorkSession_StartRequiresClockIn(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, map[model.Capability]bool{
		model.CapJobCardCreate: true,
	})

	_, err := env.workSession.Start("staff-1", &model.StartWorkSessionReq{
		StaffRelationId: relation.RelationId,
	})
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestWorkSession_EndTwice(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, staffPermissions())

	session, err := env.workSession.Start("staff-1", &model.StartWorkSessionReq{StaffRelationId: relation.RelationId})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.workSession.End("staff-1", &model.EndWorkSessionReq{SessionId: session.SessionId})
		}(i)
	}
	wg.Wait()

	// 恰好一个调用方完成时段
	var winners int
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, errs.ErrSessionAlreadyCompleted)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestWorkSession_EndValidation(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, staffPermissions())

	session, err := env.workSession.Start("staff-1", &model.StartWorkSessionReq{StaffRelationId: relation.RelationId})
	require.NoError(t, err)

	// 结束时间早于开始时间
	before := session.StartTime.Add(-time.Minute)
	_, err = env.workSession.End("staff-1", &model.EndWorkSessionReq{SessionId: session.SessionId, EndTime: &before})
	assert.ErrorIs(t, err, errs.ErrValidation)

	// 负收入
	negative := -1.0
	_, err = env.workSession.End("staff-1", &model.EndWorkSessionReq{SessionId: session.SessionId, Earnings: &negative})
	assert.ErrorIs(t, err, errs.ErrValidation)

	// 时段不存在
	_, err = env.workSession.End("staff-1", &model.EndWorkSessionReq{SessionId: "missing"})
	assert.ErrorIs(t, err, errs.ErrSessionNotFound)
}

func TestWorkSession_EndDefaultEarnings(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")
	env.addJob("job-1", "biz-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, staffPermissions())

	session, err := env.workSession.Start("staff-1", &model.StartWorkSessionReq{StaffRelationId: relation.RelationId})
	require.NoError(t, err)

	// 时段内两张工单：现金 30 + 刷卡 45
	for _, card := range []struct {
		method string
		amount float64
	}{
		{model.PaymentMethodCash, 30},
		{model.PaymentMethodPos, 45},
	} {
		_, err := env.jobCard.Create("staff-1", &model.CreateJobCardReq{
			StaffRelationId: relation.RelationId,
			JobId:           "job-1",
			WorkLogId:       session.SessionId,
			StartTime:       session.StartTime,
			PaymentMethod:   card.method,
			PaymentAmount:   card.amount,
		})
		require.NoError(t, err)
	}

	// earnings 未传时按时段内工单收款汇总
	completed, err := env.workSession.End("staff-1", &model.EndWorkSessionReq{SessionId: session.SessionId})
	require.NoError(t, err)
	require.NotNil(t, completed.Earnings)
	assert.Equal(t, 75.0, *completed.Earnings)
}

func TestWorkSession_ListByRelation(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")
	relation := env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, staffPermissions())
	env.addActiveRelation(t, "staff-2", "biz-1", model.RoleStaff, staffPermissions())

	_, err := env.workSession.Start("staff-1", &model.StartWorkSessionReq{StaffRelationId: relation.RelationId})
	require.NoError(t, err)

	// 本人可查
	sessions, err := env.workSession.ListByRelation("staff-1", relation.RelationId)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	// 其他员工没有 view_reports，拒绝
	_, err = env.workSession.ListByRelation("staff-2", relation.RelationId)
	assert.True(t, errors.Is(err, errs.ErrPermissionDenied))

	// 所有者可查
	sessions, err = env.workSession.ListByRelation("owner-1", relation.RelationId)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}
