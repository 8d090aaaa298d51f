package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePermissions(t *testing.T) {
	err := ValidatePermissions(map[Capability]bool{
		CapClockIn:       true,
		CapJobCardCreate: false,
	})
	assert.NoError(t, err)

	err = ValidatePermissions(map[Capability]bool{Capability("made_up"): true})
	assert.Error(t, err)

	// 所有者保留能力不可出现在员工授权表中
	err = ValidatePermissions(map[Capability]bool{CapBilling: true})
	assert.Error(t, err)
}

func TestDefaultPermissions(t *testing.T) {
	staff := DefaultPermissions(RoleStaff)
	assert.True(t, staff[CapClockIn])
	assert.False(t, staff[CapManageStaff])

	coAdmin := DefaultPermissions(RoleCoAdmin)
	assert.True(t, coAdmin[CapManageStaff])
	assert.False(t, coAdmin[CapBilling])

	assert.Empty(t, DefaultPermissions("owner"))
}

func TestPermissionsRoundTrip(t *testing.T) {
	raw, err := MarshalPermissions(map[Capability]bool{CapClockIn: true, CapMessaging: false})
	require.NoError(t, err)

	grants, err := UnmarshalPermissions(raw)
	require.NoError(t, err)
	assert.True(t, grants[CapClockIn])
	assert.False(t, grants[CapMessaging])
	// 未知键默认 false
	assert.False(t, grants[CapManageStaff])
}

func TestUnmarshalPermissionsEmpty(t *testing.T) {
	grants, err := UnmarshalPermissions(nil)
	require.NoError(t, err)
	assert.Empty(t, grants)
}

func TestIsKnownRole(t *testing.T) {
	assert.True(t, IsKnownRole(RoleStaff))
	assert.True(t, IsKnownRole(RoleCoAdmin))
	assert.False(t, IsKnownRole("owner"))
	assert.False(t, IsKnownRole(""))
}
