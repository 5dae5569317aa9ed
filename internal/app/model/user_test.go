package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionProfile_Merge_AppliesOnlyNonNilFields(t *testing.T) {
	profile := SessionProfile{
		ID:      7,
		Name:    "Asha",
		Email:   "asha@example.com",
		Phone:   "010-1111-2222",
		Address: "Green Valley Farm",
		Role:    RoleUser,
		Status:  "active",
	}

	role := RoleAdmin
	image := "https://cdn.example.com/asha.jpg"
	profile.Merge(ProfileUpdate{Role: &role, Image: &image})

	assert.Equal(t, RoleAdmin, profile.Role)
	assert.Equal(t, image, profile.Image)

	// Untouched fields survive the merge.
	assert.Equal(t, "Asha", profile.Name)
	assert.Equal(t, "010-1111-2222", profile.Phone)
	assert.Equal(t, "Green Valley Farm", profile.Address)
}

func TestSessionProfile_IsAdmin(t *testing.T) {
	admin := SessionProfile{Role: RoleAdmin}
	user := SessionProfile{Role: RoleUser}

	assert.True(t, admin.IsAdmin())
	assert.False(t, user.IsAdmin())

	var nilProfile *SessionProfile
	assert.False(t, nilProfile.IsAdmin())
}
