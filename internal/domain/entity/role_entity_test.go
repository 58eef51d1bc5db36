package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_StringAndParseRoundTrip(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleModerator, RoleUser} {
		parsed, err := ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
	assert.Equal(t, "admin", RoleAdmin.String())
	assert.Equal(t, "moderator", RoleModerator.String())
	assert.Equal(t, "user", RoleUser.String())
}

func TestRole_ZeroValueIsUser(t *testing.T) {
	var r Role
	assert.Equal(t, RoleUser, r)
}

func TestParseRole_Unknown(t *testing.T) {
	_, err := ParseRole("Admin")
	assert.Error(t, err)
}

func TestRole_Scan(t *testing.T) {
	var r Role
	require.NoError(t, r.Scan([]byte("moderator")))
	assert.Equal(t, RoleModerator, r)

	require.NoError(t, r.Scan("admin"))
	assert.Equal(t, RoleAdmin, r)

	assert.Error(t, r.Scan(42))
	assert.Error(t, r.Scan("root"))
}
