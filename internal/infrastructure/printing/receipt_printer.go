package printing

import (
	"context"
	"html/template"
	"time"

	"github.com/rentdesk/backend/internal/domain/rent"
	"github.com/shopspring/decimal"
)

// receiptView is the data the receipt template renders
type receiptView struct {
	ReceiptNumber   string
	ReferenceNumber string
	PaymentDate     time.Time
	Month           int
	Year            int
	PaymentType     string
	PaymentMethod   string
	Description     string
	Amount          decimal.Decimal
	Itemized        bool
	Rent            decimal.Decimal
	Lines           []rent.BreakdownLine
	IsConfirmed     bool
	ConfirmedBy     string

	LandlordName string
	PropertyName string
	Address      string
	UnitNumber   string
	TenantName   string
	TenantPhone  string

	GeneratedAt time.Time
}

// ReceiptPrinter implements rent.ReceiptRenderer on top of a PDFRenderer
type ReceiptPrinter struct {
	renderer    PDFRenderer
	engine      *TemplateEngine
	tmpl        *template.Template
	paperSize   PaperSize
	orientation Orientation
	margins     Margins
	now         func() time.Time
}

// ReceiptPrinterOption configures a ReceiptPrinter
type ReceiptPrinterOption func(*ReceiptPrinter)

// WithPaperSize selects the paper receipts are printed on
func WithPaperSize(size PaperSize) ReceiptPrinterOption {
	return func(p *ReceiptPrinter) {
		p.paperSize = size
		if size.IsRoll() {
			p.margins = RollMargins()
		}
	}
}

// WithTemplateEngine replaces the default formatting helpers
func WithTemplateEngine(engine *TemplateEngine) ReceiptPrinterOption {
	return func(p *ReceiptPrinter) {
		p.engine = engine
	}
}

// NewReceiptPrinter creates a printer. Receipts default to portrait A5.
func NewReceiptPrinter(renderer PDFRenderer, opts ...ReceiptPrinterOption) (*ReceiptPrinter, error) {
	p := &ReceiptPrinter{
		renderer:    renderer,
		paperSize:   PaperSizeA5,
		orientation: OrientationPortrait,
		margins:     DefaultMargins(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if !p.paperSize.IsValid() {
		return nil, NewRenderError(ErrCodeInvalidPaperSize, "invalid paper size: "+string(p.paperSize), nil)
	}
	if p.engine == nil {
		p.engine = NewTemplateEngine()
	}

	tmpl, err := p.engine.Parse("receipt", receiptTemplate)
	if err != nil {
		return nil, err
	}
	p.tmpl = tmpl
	return p, nil
}

// RenderHTML lays out the receipt without printing it
func (p *ReceiptPrinter) RenderHTML(receipt rent.Receipt) (string, error) {
	if receipt.Payment == nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "receipt has no payment", nil)
	}
	return p.engine.Execute(p.tmpl, p.view(receipt))
}

// RenderReceipt prints the receipt to PDF
func (p *ReceiptPrinter) RenderReceipt(ctx context.Context, receipt rent.Receipt) ([]byte, error) {
	html, err := p.RenderHTML(receipt)
	if err != nil {
		return nil, err
	}

	result, err := p.renderer.Render(ctx, &RenderRequest{
		HTML:        html,
		PaperSize:   p.paperSize,
		Orientation: p.orientation,
		Margins:     p.margins,
		Title:       "Receipt " + receipt.Payment.ReceiptNumber,
	})
	if err != nil {
		return nil, err
	}
	return result.PDFData, nil
}

func (p *ReceiptPrinter) view(r rent.Receipt) receiptView {
	pay := r.Payment
	return receiptView{
		ReceiptNumber:   pay.ReceiptNumber,
		ReferenceNumber: pay.ReferenceNumber,
		PaymentDate:     pay.PaymentDate,
		Month:           pay.Period.Month,
		Year:            pay.Period.Year,
		PaymentType:     string(pay.Type),
		PaymentMethod:   string(pay.Method),
		Description:     pay.Description,
		Amount:          pay.Amount,
		Itemized:        pay.Breakdown.Rent.IsPositive() || len(pay.Breakdown.Utilities) > 0,
		Rent:            pay.Breakdown.Rent,
		Lines:           pay.Breakdown.Utilities,
		IsConfirmed:     pay.IsConfirmed,
		ConfirmedBy:     pay.ConfirmedBy,
		LandlordName:    r.LandlordName,
		PropertyName:    r.PropertyName,
		Address:         r.Address,
		UnitNumber:      r.UnitNumber,
		TenantName:      r.TenantName,
		TenantPhone:     r.TenantPhone,
		GeneratedAt:     p.now(),
	}
}

var _ rent.ReceiptRenderer = (*ReceiptPrinter)(nil)
