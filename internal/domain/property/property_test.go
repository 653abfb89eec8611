package property

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProperty(t *testing.T) {
	businessID := uuid.New()

	t.Run("creates active property with zero counts", func(t *testing.T) {
		p, err := NewProperty(businessID, "Sunrise Court", "12 Elm St", PropertyTypeApartment)
		require.NoError(t, err)
		assert.Equal(t, businessID, p.BusinessID)
		assert.Equal(t, PropertyStatusActive, p.Status)
		assert.Equal(t, OccupancyCounts{}, p.Counts)
		require.Len(t, p.GetDomainEvents(), 1)
		assert.Equal(t, EventTypePropertyCreated, p.GetDomainEvents()[0].EventType())
	})

	t.Run("validates input", func(t *testing.T) {
		_, err := NewProperty(businessID, " ", "12 Elm St", PropertyTypeApartment)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		_, err = NewProperty(businessID, "Sunrise", "", PropertyTypeApartment)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		_, err = NewProperty(businessID, "Sunrise", "12 Elm St", PropertyType("castle"))
		assert.Contains(t, err.Error(), "Invalid property type")
	})
}

func TestProperty_UpdateAndStatus(t *testing.T) {
	p, err := NewProperty(uuid.New(), "Sunrise Court", "12 Elm St", PropertyTypeApartment)
	require.NoError(t, err)

	require.NoError(t, p.Update("Sunset Court", "14 Elm St", "Nairobi", "J. Doe", "", PropertyTypeMixed))
	assert.Equal(t, "Sunset Court", p.Name)
	assert.Equal(t, PropertyTypeMixed, p.Type)
	assert.Equal(t, 2, p.Version)

	require.NoError(t, p.ChangeStatus(PropertyStatusMaintenance))
	assert.Equal(t, PropertyStatusMaintenance, p.Status)
	assert.Error(t, p.ChangeStatus(PropertyStatus("sold")))
}
