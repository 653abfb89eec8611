// Package printing renders rent receipts to PDF.
//
// Receipts are laid out with an html/template and printed by headless
// Chrome through the DevTools protocol:
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	if err != nil {
//	    return err
//	}
//	defer renderer.Close()
//
//	printer, err := NewReceiptPrinter(renderer, WithPaperSize(PaperSizeA5))
//	if err != nil {
//	    return err
//	}
//	pdf, err := printer.RenderReceipt(ctx, receipt)
package printing
