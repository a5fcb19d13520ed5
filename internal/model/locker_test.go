package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSize(t *testing.T) {
	assert.True(t, ValidSize(SizeSmall))
	assert.True(t, ValidSize(SizeMedium))
	assert.True(t, ValidSize(SizeLarge))
	assert.False(t, ValidSize("small"))
	assert.False(t, ValidSize("XL"))
	assert.False(t, ValidSize(""))
}

func TestValidLockerStatus(t *testing.T) {
	assert.True(t, ValidLockerStatus(LockerAvailable))
	assert.True(t, ValidLockerStatus(LockerReserved))
	assert.True(t, ValidLockerStatus(LockerMaintenance))
	assert.False(t, ValidLockerStatus("available"))
	assert.False(t, ValidLockerStatus("BROKEN"))
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleClient))
	assert.False(t, ValidRole("client"))
	assert.False(t, ValidRole("OWNER"))
}
