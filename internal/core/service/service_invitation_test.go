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
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-bizcore/bizcore/internal/core/conf"
	"github.com/go-bizcore/bizcore/internal/core/errs"
	"github.com/go-bizcore/bizcore/internal/core/model"
)

func issueInvitation(t *testing.T, env *testEnv, actorId string) *model.IssueInvitationResp {
	t.Helper()
	resp, err := env.invitation.Issue(actorId, &model.IssueInvitationReq{
		BusinessId:   "biz-1",
		BusinessName: "Glow Salon",
		Email:        "staff@example.com",
		Role:         model.RoleStaff,
	})
	require.NoError(t, err)
	return resp
}

func TestInvitation_Issue(t *testing.T) {
	env := newTestEnv(t, conf.Staff{InvitationTTLHours: 48})
	env.addBusiness("biz-1", "owner-1")

	resp := issueInvitation(t, env, "owner-1")

	assert.NotEmpty(t, resp.InvitationId)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, model.InvitationStatusPending, resp.Status)
	assert.Equal(t, "owner-1", resp.InvitedBy)

	// 有效期 48 小时
	ttl := time.Until(resp.ExpiresAt)
	assert.InDelta(t, 48*time.Hour, ttl, float64(time.Minute))

	// 未传授权表时按角色默认授权
	permissions, err := model.UnmarshalPermissions(resp.ProposedPermissions)
	require.NoError(t, err)
	assert.True(t, permissions[model.CapClockIn])
	assert.True(t, permissions[model.CapJobCardCreate])
	assert.False(t, permissions[model.CapManageStaff])
}

func TestInvitation_IssueValidation(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")

	tests := []struct {
		name string
		req  model.IssueInvitationReq
	}{
		{"invalid email", model.IssueInvitationReq{BusinessId: "biz-1", Email: "not-an-email", Role: model.RoleStaff}},
		{"unknown role", model.IssueInvitationReq{BusinessId: "biz-1", Email: "a@b.com", Role: "superuser"}},
		{"empty business", model.IssueInvitationReq{Email: "a@b.com", Role: model.RoleStaff}},
		{"owner-only capability", model.IssueInvitationReq{
			BusinessId: "biz-1", Email: "a@b.com", Role: model.RoleStaff,
			Permissions: map[model.Capability]bool{model.CapBilling: true},
		}},
		{"unknown capability", model.IssueInvitationReq{
			BusinessId: "biz-1", Email: "a@b.com", Role: model.RoleStaff,
			Permissions: map[model.Capability]bool{"teleportation": true},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.invitation.Issue("owner-1", &tt.req)
			assert.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

func TestInvitation_IssueRequiresManageStaff(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})
	env.addBusiness("biz-1", "owner-1")
	env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, nil)

	_, err := env.invitation.Issue("staff-1", &model.IssueInvitationReq{
		BusinessId: "biz-1", Email: "a@b.com", Role: model.RoleStaff,
	})
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestInvitation_VerifyLazyExpiry(t *testing.T) {
	env := newTestEnv(t, conf.Staff{InvitationTTLHours: 48})
	env.addBusiness("biz-1", "owner-1")
	resp := issueInvitation(t, env, "owner-1")

	// 47 小时后仍然有效
	env.invitations.mu.Lock()
	env.invitations.invitations[resp.InvitationId].ExpiresAt = time.Now().UTC().Add(time.Hour)
	env.invitations.mu.Unlock()
	invitation, err := env.invitation.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, model.InvitationStatusPending, invitation.Status)

	// 49 小时后首次被观测即判定过期并落库
	env.invitations.mu.Lock()
	env.invitations.invitations[resp.InvitationId].ExpiresAt = time.Now().UTC().Add(-time.Hour)
	env.invitations.mu.Unlock()
	_, err = env.invitation.Verify(resp.Token)
	assert.ErrorIs(t, err, errs.ErrInvitationExpired)

	stored, err := env.invitations.GetById(resp.InvitationId)
	require.NoError(t, err)
	assert.Equal(t, model.InvitationStatusExpired, stored.Status)

	// 过期后接受同样被拒绝
	_, err = env.invitation.Accept(resp.Token, "staff-1")
	assert.ErrorIs(t, err, errs.ErrInvitationExpired)
}

func TestInvitation_VerifyUnknownToken(t *testing.T) {
	env := newTestEnv(t, conf.Staff{})

	_, err := env.invitation.Verify("no-such-token")
	assert.ErrorIs(t, err, errs.ErrInvitationNotFound)

	_, err = env.invitation.Verify("")
	assert.ErrorIs(t, err, errs.ErrInvitationNotFound)
}

func TestInvitation_Accept(t *testing.T) {
	env := newTestEnv(t, conf.Staff{InvitationTTLHours: 48})
	env.addBusiness("biz-1", "owner-1")
	resp := issueInvitation(t, env, "owner-1")

	relation, err := env.invitation.Accept(resp.Token, "staff-1")
	require.NoError(t, err)

	// 关系复制了邀请中的角色与授权
	assert.Equal(t, "staff-1", relation.StaffIdentityId)
	assert.Equal(t, "biz-1", relation.BusinessId)
	assert.Equal(t, model.RoleStaff, relation.Role)
	assert.Equal(t, model.StaffRelationStatusActive, relation.Status)
	assert.Equal(t, "owner-1", relation.InvitedBy)

	permissions, err := relation.PermissionMap()
	require.NoError(t, err)
	assert.True(t, permissions[model.CapClockIn])

	// 邀请进入终态，二次接受被拒绝
	_, err = env.invitation.Accept(resp.Token, "staff-2")
	assert.ErrorIs(t, err, errs.ErrInvitationAlreadyAccepted)
}

func TestInvitation_AcceptConcurrent(t *testing.T) {
	env := newTestEnv(t, conf.Staff{InvitationTTLHours: 48})
	env.addBusiness("biz-1", "owner-1")
	resp := issueInvitation(t, env, "owner-1")

	var wg sync.WaitGroup
	results := make([]error, 2)
	identities := []string{"staff-a", "staff-b"}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.invitation.Accept(resp.Token, identities[i])
		}(i)
	}
	wg.Wait()

	// 恰好一人成功
	var winners, losers int
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, errs.ErrInvitationAlreadyAccepted)
			losers++
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, losers)

	// 只产生一条员工关系
	relations, err := env.relations.ListByBusiness("biz-1")
	require.NoError(t, err)
	assert.Len(t, relations, 1)
}

func TestInvitation_AcceptDuplicateRelation(t *testing.T) {
	env := newTestEnv(t, conf.Staff{InvitationTTLHours: 48})
	env.addBusiness("biz-1", "owner-1")
	env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, nil)
	resp := issueInvitation(t, env, "owner-1")

	// 同一身份在同一商户下已有激活关系
	_, err := env.invitation.Accept(resp.Token, "staff-1")
	assert.ErrorIs(t, err, errs.ErrValidation)

	// 事务回滚后邀请仍然 pending，可被他人接受
	_, err = env.invitation.Accept(resp.Token, "staff-2")
	assert.NoError(t, err)
}

func TestInvitation_Cancel(t *testing.T) {
	env := newTestEnv(t, conf.Staff{InvitationTTLHours: 48})
	env.addBusiness("biz-1", "owner-1")
	resp := issueInvitation(t, env, "owner-1")

	require.NoError(t, env.invitation.Cancel("owner-1", "biz-1", resp.InvitationId))

	// 撤销后令牌立即失效
	_, err := env.invitation.Verify(resp.Token)
	assert.ErrorIs(t, err, errs.ErrInvitationNotFound)
}

func TestInvitation_CancelAccepted(t *testing.T) {
	env := newTestEnv(t, conf.Staff{InvitationTTLHours: 48})
	env.addBusiness("biz-1", "owner-1")
	resp := issueInvitation(t, env, "owner-1")
	_, err := env.invitation.Accept(resp.Token, "staff-1")
	require.NoError(t, err)

	err = env.invitation.Cancel("owner-1", "biz-1", resp.InvitationId)
	assert.ErrorIs(t, err, errs.ErrInvitationAlreadyAccepted)
}

func TestInvitation_CancelOtherBusiness(t *testing.T) {
	env := newTestEnv(t, conf.Staff{InvitationTTLHours: 48})
	env.addBusiness("biz-1", "owner-1")
	env.addBusiness("biz-2", "owner-2")
	resp := issueInvitation(t, env, "owner-1")

	// 其他商户的所有者不能撤销 biz-1 的邀请
	err := env.invitation.Cancel("owner-2", "biz-2", resp.InvitationId)
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)

	// 邀请保持待接受，原商户仍可撤销
	_, err = env.invitation.Verify(resp.Token)
	require.NoError(t, err)
	require.NoError(t, env.invitation.Cancel("owner-1", "biz-1", resp.InvitationId))
}

func TestInvitation_CancelRequiresManageStaff(t *testing.T) {
	env := newTestEnv(t, conf.Staff{InvitationTTLHours: 48})
	env.addBusiness("biz-1", "owner-1")
	env.addActiveRelation(t, "staff-1", "biz-1", model.RoleStaff, nil)
	resp := issueInvitation(t, env, "owner-1")

	err := env.invitation.Cancel("staff-1", "biz-1", resp.InvitationId)
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
}

func TestInvitation_ListByBusiness(t *testing.T) {
	env := newTestEnv(t, conf.Staff{InvitationTTLHours: 48})
	env.addBusiness("biz-1", "owner-1")
	issueInvitation(t, env, "owner-1")

	invitations, err := env.invitation.ListByBusiness("owner-1", "biz-1")
	require.NoError(t, err)
	assert.Len(t, invitations, 1)

	_, err = env.invitation.ListByBusiness("stranger", "biz-1")
	assert.ErrorIs(t, err, errs.ErrPermissionDenied)
}
