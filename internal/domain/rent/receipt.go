package rent

import "context"

// Receipt is everything printed on a payment receipt
type Receipt struct {
	Payment      *RentPayment
	LandlordName string
	PropertyName string
	Address      string
	UnitNumber   string
	TenantName   string
	TenantPhone  string
}

// ReceiptRenderer turns a receipt into a printable PDF document
type ReceiptRenderer interface {
	RenderReceipt(ctx context.Context, receipt Receipt) ([]byte, error)
}
