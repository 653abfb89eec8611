package printing

import (
	"context"
	"errors"
	"html"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RenderResult), args.Error(1)
}

func (m *MockPDFRenderer) Close() error {
	return m.Called().Error(0)
}

func samplePayment(t *testing.T) *rent.RentPayment {
	t.Helper()
	paid := time.Date(2026, time.October, 5, 10, 0, 0, 0, time.UTC)
	p, err := rent.NewRentPayment(uuid.New(), uuid.New(), uuid.New(), decimal.NewFromInt(30700),
		rent.PaymentTypeRent, rent.PaymentMethod("mobile_money"), paid, paid, rent.Period{Month: 10, Year: 2026})
	require.NoError(t, err)
	require.NoError(t, p.AssignNumbers("PAY-1791200000000-42", "RCPT-2610-0007"))
	p.SetBreakdown(rent.Breakdown{
		Rent: decimal.NewFromInt(30000),
		Utilities: []rent.BreakdownLine{
			{UtilityID: uuid.New(), Name: "Water", Amount: decimal.NewFromInt(700), BillingCycle: "monthly"},
		},
		Total: decimal.NewFromInt(30700),
	})
	return p
}

func sampleReceipt(t *testing.T) rent.Receipt {
	return rent.Receipt{
		Payment:      samplePayment(t),
		LandlordName: "Jane Muthoni",
		PropertyName: "Lavington Gardens",
		Address:      "9 James Gichuru Rd",
		UnitNumber:   "3A",
		TenantName:   "Peter Njoroge",
		TenantPhone:  "+254733000000",
	}
}

func TestReceiptPrinter_RenderHTML(t *testing.T) {
	printer, err := NewReceiptPrinter(&MockPDFRenderer{})
	require.NoError(t, err)
	printer.now = func() time.Time { return time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC) }

	t.Run("itemized receipt", func(t *testing.T) {
		out, err := printer.RenderHTML(sampleReceipt(t))
		require.NoError(t, err)
		text := html.UnescapeString(out)

		assert.Contains(t, out, "RCPT-2610-0007")
		assert.Contains(t, out, "PAY-1791200000000-42")
		assert.Contains(t, out, "Lavington Gardens")
		assert.Contains(t, out, "Landlord: Jane Muthoni")
		assert.Contains(t, out, "Peter Njoroge (&#43;254733000000)")
		assert.Contains(t, text, "Peter Njoroge (+254733000000)")
		assert.Contains(t, out, "05 Oct 2026")
		assert.Contains(t, out, "October 2026")
		assert.Contains(t, out, "Rent via Mobile Money")
		assert.Contains(t, out, "30,000.00")
		assert.Contains(t, out, "Water")
		assert.Contains(t, out, "700.00")
		assert.Contains(t, out, "KES 30,700.00")
		assert.Contains(t, out, "Pending confirmation")
		assert.Contains(t, out, "Generated 17 Oct 2026")
	})

	t.Run("confirmed receipt without breakdown", func(t *testing.T) {
		r := sampleReceipt(t)
		r.Payment.SetBreakdown(rent.Breakdown{})
		require.NoError(t, r.Payment.Confirm("Office", time.Now()))
		r.Payment.Description = "October rent"
		r.TenantPhone = ""

		out, err := printer.RenderHTML(r)
		require.NoError(t, err)
		text := html.UnescapeString(out)
		assert.Contains(t, text, "October rent")
		assert.Contains(t, text, "Confirmed by Office")
		assert.NotContains(t, text, "Pending confirmation")
		assert.NotContains(t, text, "(+254")
	})

	t.Run("escapes tenant input", func(t *testing.T) {
		r := sampleReceipt(t)
		r.TenantName = "<script>alert(1)</script>"
		out, err := printer.RenderHTML(r)
		require.NoError(t, err)
		assert.NotContains(t, out, "<script>alert(1)</script>")
		assert.Contains(t, out, "&lt;script&gt;")
	})

	t.Run("missing payment", func(t *testing.T) {
		_, err := printer.RenderHTML(rent.Receipt{})
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})
}

func TestReceiptPrinter_RenderReceipt(t *testing.T) {
	ctx := context.Background()

	t.Run("prints on A5 by default", func(t *testing.T) {
		renderer := &MockPDFRenderer{}
		renderer.On("Render", ctx, mock.MatchedBy(func(req *RenderRequest) bool {
			return req.PaperSize == PaperSizeA5 &&
				req.Orientation == OrientationPortrait &&
				req.Title == "Receipt RCPT-2610-0007" &&
				req.Margins == DefaultMargins()
		})).Return(&RenderResult{PDFData: []byte("%PDF-1.4"), PageCount: 1}, nil)

		printer, err := NewReceiptPrinter(renderer)
		require.NoError(t, err)

		pdf, err := printer.RenderReceipt(ctx, sampleReceipt(t))
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-1.4"), pdf)
		renderer.AssertExpectations(t)
	})

	t.Run("thermal roll uses narrow margins", func(t *testing.T) {
		renderer := &MockPDFRenderer{}
		renderer.On("Render", ctx, mock.MatchedBy(func(req *RenderRequest) bool {
			return req.PaperSize == PaperSizeReceipt80MM && req.Margins == RollMargins()
		})).Return(&RenderResult{PDFData: []byte("%PDF")}, nil)

		printer, err := NewReceiptPrinter(renderer, WithPaperSize(PaperSizeReceipt80MM))
		require.NoError(t, err)
		_, err = printer.RenderReceipt(ctx, sampleReceipt(t))
		require.NoError(t, err)
		renderer.AssertExpectations(t)
	})

	t.Run("renderer failure is returned", func(t *testing.T) {
		renderer := &MockPDFRenderer{}
		cause := NewRenderError(ErrCodeRenderTimeout, "timed out", errors.New("deadline"))
		renderer.On("Render", ctx, mock.Anything).Return(nil, cause)

		printer, err := NewReceiptPrinter(renderer)
		require.NoError(t, err)
		_, err = printer.RenderReceipt(ctx, sampleReceipt(t))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("invalid paper size", func(t *testing.T) {
		_, err := NewReceiptPrinter(&MockPDFRenderer{}, WithPaperSize("LETTER"))
		assert.Error(t, err)
	})
}
