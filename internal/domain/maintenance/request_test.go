package maintenance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest(t *testing.T) {
	r, err := NewRequest(uuid.New(), uuid.New(), "Leaking tap", "Kitchen tap drips", "")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, r.Priority)
	assert.Equal(t, StatusPending, r.Status)

	_, err = NewRequest(uuid.New(), uuid.New(), "", "x", PriorityLow)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	_, err = NewRequest(uuid.New(), uuid.New(), "x", "y", Priority("urgent"))
	assert.Contains(t, err.Error(), "Invalid priority")
}

func TestRequest_ChangeStatus(t *testing.T) {
	t.Run("completion records date and cost", func(t *testing.T) {
		r, err := NewRequest(uuid.New(), uuid.New(), "Boiler", "No hot water", PriorityEmergency)
		require.NoError(t, err)
		require.NoError(t, r.ChangeStatus(StatusInProgress, nil, decimal.Zero))
		assert.Nil(t, r.CompletedDate)

		when := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, r.ChangeStatus(StatusCompleted, &when, decimal.NewFromInt(350)))
		assert.Equal(t, StatusCompleted, r.Status)
		assert.Equal(t, when, *r.CompletedDate)
		assert.Equal(t, "350", r.ActualCost.String())
		assert.True(t, r.IsHighPriority())
	})

	t.Run("closed requests cannot move", func(t *testing.T) {
		r, err := NewRequest(uuid.New(), uuid.New(), "Paint", "Hallway", PriorityLow)
		require.NoError(t, err)
		require.NoError(t, r.ChangeStatus(StatusCancelled, nil, decimal.Zero))
		assert.ErrorIs(t, r.ChangeStatus(StatusInProgress, nil, decimal.Zero), shared.ErrInvalidState)
	})
}

func TestRequest_Events(t *testing.T) {
	r, err := NewRequest(uuid.New(), uuid.New(), "Gate motor", "Gate does not close", PriorityHigh)
	require.NoError(t, err)
	require.NoError(t, r.ChangeStatus(StatusInProgress, nil, decimal.Zero))

	events := r.GetDomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, EventTypeRequestOpened, events[0].EventType())
	changed, ok := events[1].(*RequestEvent)
	require.True(t, ok)
	assert.Equal(t, StatusInProgress, changed.Status)
	assert.Equal(t, r.BusinessID, changed.BusinessID())
}
