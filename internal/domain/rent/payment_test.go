package rent

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPayment(t *testing.T, paymentType PaymentType) *RentPayment {
	t.Helper()
	now := time.Now()
	p, err := NewRentPayment(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(500), paymentType,
		PaymentMethodMobileMoney, now, now, Period{Month: 10, Year: 2026})
	require.NoError(t, err)
	return p
}

func TestNewRentPayment(t *testing.T) {
	p := newTestPayment(t, PaymentTypeRent)
	assert.False(t, p.IsConfirmed)
	assert.True(t, p.AffectsBalance())
	assert.True(t, decimal.NewFromInt(500).Equal(p.Breakdown.Total))
	require.Len(t, p.GetDomainEvents(), 1)
	assert.Equal(t, EventTypePaymentRecorded, p.GetDomainEvents()[0].EventType())

	assert.False(t, newTestPayment(t, PaymentTypeDeposit).AffectsBalance())

	now := time.Now()
	_, err := NewRentPayment(uuid.New(), uuid.New(), uuid.New(), decimal.Zero, PaymentTypeRent,
		PaymentMethodCash, now, now, Period{Month: 1, Year: 2026})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)

	_, err = NewRentPayment(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(1), PaymentTypeRent,
		PaymentMethodCash, now, now, Period{Month: 13, Year: 2026})
	assert.Contains(t, err.Error(), "Month")
}

func TestRentPayment_ConfirmUnconfirm(t *testing.T) {
	p := newTestPayment(t, PaymentTypeRent)
	now := time.Now()

	require.NoError(t, p.Confirm("landlord@example.com", now))
	assert.True(t, p.IsConfirmed)
	assert.Equal(t, "landlord@example.com", p.ConfirmedBy)
	require.NotNil(t, p.ConfirmedAt)

	assert.ErrorIs(t, p.Confirm("again", now), shared.ErrInvalidState)

	require.NoError(t, p.Unconfirm())
	assert.False(t, p.IsConfirmed)
	assert.Nil(t, p.ConfirmedAt)
	assert.Empty(t, p.ConfirmedBy)
	assert.ErrorIs(t, p.Unconfirm(), shared.ErrInvalidState)
}

func TestBreakdown_Normalize(t *testing.T) {
	amount := decimal.NewFromInt(1300)

	t.Run("empty breakdown totals to amount", func(t *testing.T) {
		b := Breakdown{}.Normalize(amount)
		assert.True(t, amount.Equal(b.Total))
		assert.NotNil(t, b.Utilities)
	})

	t.Run("unset total is rent plus utilities", func(t *testing.T) {
		b := Breakdown{
			Rent: decimal.NewFromInt(1000),
			Utilities: []BreakdownLine{
				{Name: "Water", Amount: decimal.NewFromInt(200)},
				{Name: "Security", Amount: decimal.NewFromInt(100)},
			},
		}.Normalize(decimal.NewFromInt(1))
		assert.Equal(t, "1300", b.Total.String())
	})

	t.Run("explicit total is kept", func(t *testing.T) {
		b := Breakdown{Rent: decimal.NewFromInt(1000), Total: decimal.NewFromInt(999)}.Normalize(amount)
		assert.Equal(t, "999", b.Total.String())
	})
}

func TestNumbering(t *testing.T) {
	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	ref := NewReferenceNumber(now)
	assert.Regexp(t, `^PAY-1792227600000-\d{1,3}$`, ref)

	prefix := ReceiptPrefix(now)
	assert.Equal(t, "RCPT-2610", prefix)
	assert.Equal(t, "RCPT-2610-0007", FormatReceiptNumber(prefix, 7))
	assert.Equal(t, "RCPT-2610-12345", FormatReceiptNumber(prefix, 12345))

	seq, ok := ParseReceiptSequence("RCPT-2610-0042", prefix)
	assert.True(t, ok)
	assert.Equal(t, int64(42), seq)

	_, ok = ParseReceiptSequence("RCPT-2609-0042", prefix)
	assert.False(t, ok)
	_, ok = ParseReceiptSequence("RCPT-2610-abc", prefix)
	assert.False(t, ok)
}

func TestNewPaymentSummary(t *testing.T) {
	s := NewPaymentSummary(SummaryFilter{Month: 10, Year: 2026}, map[PaymentType]TypeTotal{
		PaymentTypeRent:    {Count: 3, Amount: decimal.NewFromInt(3000)},
		PaymentTypeDeposit: {Count: 1, Amount: decimal.NewFromInt(2000)},
		PaymentTypeLateFee: {Count: 2, Amount: decimal.NewFromInt(100)},
		PaymentTypeOther:   {Count: 1, Amount: decimal.NewFromInt(5)},
	})
	assert.Equal(t, int64(7), s.TotalPayments)
	assert.Equal(t, "5105", s.TotalAmount.String())
	assert.Equal(t, "3000", s.Rent.String())
	assert.True(t, s.Utilities.IsZero())
	assert.Equal(t, "5", s.Other.String())
}

func TestRentPayment_Revise(t *testing.T) {
	now := time.Now()

	t.Run("granting confirmation bumps the version once", func(t *testing.T) {
		p := newTestPayment(t, PaymentTypeRent)
		before := p.Version
		d := p.Details()
		d.Amount = decimal.NewFromInt(900)
		d.Description = "partial"

		change, err := p.Revise(d, true, "agent", now)
		require.NoError(t, err)
		assert.Equal(t, ConfirmationGranted, change)
		assert.Equal(t, before+1, p.Version)
		assert.True(t, p.IsConfirmed)
		assert.Equal(t, "agent", p.ConfirmedBy)
		assert.Equal(t, "partial", p.Description)
	})

	t.Run("amount edit on a confirmed payment is not a confirmation change", func(t *testing.T) {
		p := newTestPayment(t, PaymentTypeRent)
		require.NoError(t, p.Confirm("agent", now))
		d := p.Details()
		d.Amount = d.Amount.Add(decimal.NewFromInt(50))

		change, err := p.Revise(d, true, "", now)
		require.NoError(t, err)
		assert.Equal(t, ConfirmationUnchanged, change)
		assert.Equal(t, "agent", p.ConfirmedBy)
	})

	t.Run("withdrawal clears the confirmation", func(t *testing.T) {
		p := newTestPayment(t, PaymentTypeRent)
		require.NoError(t, p.Confirm("agent", now))

		change, err := p.Revise(p.Details(), false, "", now)
		require.NoError(t, err)
		assert.Equal(t, ConfirmationWithdrawn, change)
		assert.Nil(t, p.ConfirmedAt)
	})

	t.Run("invalid details leave the payment untouched", func(t *testing.T) {
		p := newTestPayment(t, PaymentTypeRent)
		before := p.Version
		d := p.Details()
		d.Period.Month = 13

		_, err := p.Revise(d, true, "agent", now)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.False(t, p.IsConfirmed)
		assert.Equal(t, before, p.Version)
	})
}
