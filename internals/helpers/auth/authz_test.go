package helper

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanView(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name     string
		actor    uuid.UUID
		isPublic bool
		isAdmin  bool
		want     bool
	}{
		{"publik boleh siapa saja", other, true, false, true},
		{"private oleh owner", owner, false, false, true},
		{"private oleh orang lain", other, false, false, false},
		{"private oleh admin", other, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(tt.actor, owner, tt.isPublic, tt.isAdmin))
		})
	}
}

func TestCanModify(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	// publik tidak membuka hak mutasi — hanya owner/admin
	assert.True(t, CanModify(owner, owner, false))
	assert.True(t, CanModify(other, owner, true))
	assert.False(t, CanModify(other, owner, false))
}

func TestEnsureCanSubmit(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	assert.NoError(t, EnsureCanSubmit(other, owner, true, false))
	assert.NoError(t, EnsureCanSubmit(owner, owner, false, false))
	assert.NoError(t, EnsureCanSubmit(other, owner, false, true))

	err := EnsureCanSubmit(other, owner, false, false)
	require.Error(t, err)
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusForbidden, fe.Code)
}
