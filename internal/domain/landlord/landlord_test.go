package landlord

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validContact() Contact {
	return Contact{
		Name:     "Jane Muthoni",
		Phone:    "+254722000111",
		IDNumber: "LL-1001",
		Email:    " Jane@Example.com ",
		Address:  "12 Ngong Rd, Nairobi",
	}
}

func TestNewLandlord(t *testing.T) {
	l, err := NewLandlord(uuid.New(), validContact())
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", l.Email)
	assert.Equal(t, StatusActive, l.Status)
	assert.True(t, l.IsActive())
	require.Len(t, l.GetDomainEvents(), 1)
	assert.Equal(t, EventTypeLandlordRegistered, l.GetDomainEvents()[0].EventType())

	tests := []struct {
		name   string
		mutate func(c *Contact)
	}{
		{"blank name", func(c *Contact) { c.Name = " " }},
		{"blank phone", func(c *Contact) { c.Phone = "" }},
		{"blank id number", func(c *Contact) { c.IDNumber = "" }},
		{"blank address", func(c *Contact) { c.Address = "" }},
		{"bad email", func(c *Contact) { c.Email = "jane-at-example" }},
		{"missing email", func(c *Contact) { c.Email = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validContact()
			tt.mutate(&c)
			_, err := NewLandlord(uuid.New(), c)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
		})
	}
}

func TestLandlord_UpdateAndStatus(t *testing.T) {
	l, err := NewLandlord(uuid.New(), validContact())
	require.NoError(t, err)

	c := validContact()
	c.Phone = "+254722999000"
	require.NoError(t, l.Update(c))
	assert.Equal(t, "+254722999000", l.Phone)

	c.Email = "nope"
	assert.ErrorIs(t, l.Update(c), shared.ErrInvalidInput)
	assert.Equal(t, "jane@example.com", l.Email)

	require.NoError(t, l.ChangeStatus(StatusSuspended))
	assert.False(t, l.IsActive())
	assert.ErrorIs(t, l.ChangeStatus("retired"), shared.ErrInvalidInput)
}
