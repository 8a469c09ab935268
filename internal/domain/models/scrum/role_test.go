package scrum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{input: "owner", want: RoleOwner},
		{input: "scrum_master", want: RoleScrumMaster},
		{input: " Developer ", want: RoleDeveloper},
		{input: "observer", want: RoleObserver},
		{input: "none", want: RoleNone},
		{input: "admin", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_JSON(t *testing.T) {
	var m ProjectMembership
	require.NoError(t, json.Unmarshal([]byte(`{"user_id":"u","role":"scrum_master"}`), &m))
	assert.Equal(t, RoleScrumMaster, m.Role)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"role":"scrum_master"`)

	err = json.Unmarshal([]byte(`{"role":"boss"}`), &m)
	assert.Error(t, err)

	_, err = json.Marshal(ProjectMembership{Role: Role(42)})
	assert.Error(t, err)
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "developer", RoleDeveloper.String())
	assert.Equal(t, "role(9)", Role(9).String())
	assert.False(t, Role(9).Valid())
}

func TestItem_CloneSharesNoPointers(t *testing.T) {
	points := 3
	item := &Item{ID: "i", AssignedUserID: strPtr("u"), ParentID: strPtr("p"), StoryPoints: &points}

	clone := item.Clone()
	*clone.AssignedUserID = "other"
	*clone.ParentID = "other"
	*clone.StoryPoints = 8

	assert.Equal(t, "u", *item.AssignedUserID)
	assert.Equal(t, "p", *item.ParentID)
	assert.Equal(t, 3, *item.StoryPoints)
}

func TestSameID(t *testing.T) {
	assert.True(t, SameID(nil, nil))
	assert.True(t, SameID(strPtr("a"), strPtr("a")))
	assert.False(t, SameID(strPtr("a"), nil))
	assert.False(t, SameID(strPtr("a"), strPtr("b")))
}

func strPtr(s string) *string { return &s }
