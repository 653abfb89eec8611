package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRecorder_Filters(t *testing.T) {
	ctx := context.Background()
	biz := TestBusinessID()

	all := NewEventRecorder()
	vacated := NewEventRecorder("UnitVacated")
	assert.Equal(t, []string{"UnitVacated"}, vacated.EventTypes())

	occupied := UnitEvent("UnitOccupied", biz)
	for _, r := range []*EventRecorder{all, vacated} {
		require.NoError(t, r.Publish(ctx, occupied, UnitEvent("UnitVacated", biz)))
	}

	assert.Equal(t, []string{"UnitOccupied", "UnitVacated"}, all.Types())
	assert.Equal(t, []string{"UnitVacated"}, vacated.Types())
	require.Len(t, all.For(occupied.AggregateID()), 1)
	assert.Same(t, occupied, all.For(occupied.AggregateID())[0])
	assert.Equal(t, biz, all.Events()[0].BusinessID())
}

func TestEventRecorder_FailWithAndReset(t *testing.T) {
	ctx := context.Background()
	r := NewEventRecorder()
	r.FailWith(errors.New("bus down"))

	err := r.Publish(ctx, UnitEvent("UnitOccupied", TestBusinessID()), UnitEvent("UnitVacated", TestBusinessID()))
	require.EqualError(t, err, "bus down")
	assert.Equal(t, 1, r.Count(), "publishing stops at the first failure")

	r.Reset()
	assert.Zero(t, r.Count())
	assert.NoError(t, r.Handle(ctx, UnitEvent("UnitVacated", TestBusinessID())))
}

func TestWaitForEvents(t *testing.T) {
	r := NewEventRecorder()
	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = r.Handle(context.Background(), UnitEvent("PaymentRecorded", TestBusinessID()))
	}()
	WaitForEvents(t, r, 1, time.Second)
	assert.Equal(t, []string{"PaymentRecorded"}, r.Types())
}
