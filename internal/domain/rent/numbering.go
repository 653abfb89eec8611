package rent

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	referencePrefix = "PAY"
	receiptPrefix   = "RCPT"
)

// NewReferenceNumber returns PAY-<epoch millis>-<0..999>
func NewReferenceNumber(now time.Time) string {
	return fmt.Sprintf("%s-%d-%d", referencePrefix, now.UnixMilli(), rand.IntN(1000))
}

// ReceiptPrefix returns the receipt prefix for the month of t, e.g. RCPT-2610
func ReceiptPrefix(t time.Time) string {
	return receiptPrefix + "-" + t.Format("0601")
}

// FormatReceiptNumber renders prefix-NNNN, widening past four digits when needed
func FormatReceiptNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%04d", prefix, seq)
}

// ParseReceiptSequence extracts the counter from a receipt carrying prefix
func ParseReceiptSequence(receipt, prefix string) (int64, bool) {
	rest, ok := strings.CutPrefix(receipt, prefix+"-")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ReceiptSequencer hands out the next receipt counter for a business and
// prefix. Implementations must be atomic: concurrent callers never receive
// the same value.
type ReceiptSequencer interface {
	Next(ctx context.Context, businessID uuid.UUID, prefix string) (int64, error)
}
