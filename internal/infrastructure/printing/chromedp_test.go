package printing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChromedpRenderer_Defaults(t *testing.T) {
	r, err := NewChromedpRenderer(nil)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, defaultChromeTimeout, r.config.DefaultTimeout)
	assert.Equal(t, defaultScale, r.config.Scale)
	assert.NotNil(t, r.logger)
}

func TestChromedpRenderer_RejectsBadRequests(t *testing.T) {
	r, err := NewChromedpRenderer(&ChromedpConfig{DefaultTimeout: time.Second})
	require.NoError(t, err)
	defer r.Close()

	tests := []struct {
		name string
		req  *RenderRequest
		code string
	}{
		{"nil request", nil, ErrCodeInvalidHTML},
		{"empty HTML", &RenderRequest{PaperSize: PaperSizeA4}, ErrCodeInvalidHTML},
		{"whitespace HTML", &RenderRequest{HTML: " \n\t", PaperSize: PaperSizeA4}, ErrCodeInvalidHTML},
		{"unknown paper", &RenderRequest{HTML: "<p>x</p>", PaperSize: "LETTER"}, ErrCodeInvalidPaperSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Render(context.Background(), tt.req)
			var renderErr *RenderError
			require.ErrorAs(t, err, &renderErr)
			assert.Equal(t, tt.code, renderErr.Code)
		})
	}
}

func TestBuildPrintParams(t *testing.T) {
	t.Run("A5 portrait", func(t *testing.T) {
		p := buildPrintParams(&RenderRequest{PaperSize: PaperSizeA5, Margins: DefaultMargins()}, 1)
		assert.InDelta(t, mmToInches(148), p.paperWidth, 0.001)
		assert.InDelta(t, mmToInches(210), p.paperHeight, 0.001)
		assert.InDelta(t, mmToInches(12), p.marginTop, 0.001)
		assert.False(t, p.landscape)
	})

	t.Run("A4 landscape", func(t *testing.T) {
		p := buildPrintParams(&RenderRequest{PaperSize: PaperSizeA4, Orientation: OrientationLandscape}, 0.9)
		assert.True(t, p.landscape)
		assert.Equal(t, 0.9, p.scale)
	})

	t.Run("thermal roll is tall", func(t *testing.T) {
		p := buildPrintParams(&RenderRequest{PaperSize: PaperSizeReceipt80MM, Margins: RollMargins()}, 1)
		assert.InDelta(t, mmToInches(80), p.paperWidth, 0.001)
		assert.InDelta(t, mmToInches(rollPageHeightMM), p.paperHeight, 0.001)
	})
}

func TestWrapDocument(t *testing.T) {
	full := "<!DOCTYPE html><html><body>x</body></html>"
	assert.Equal(t, full, wrapDocument(&RenderRequest{HTML: full}))

	wrapped := wrapDocument(&RenderRequest{HTML: "<p>Paid</p>", Title: "Receipt <1>"})
	assert.True(t, strings.HasPrefix(wrapped, "<!DOCTYPE html>"))
	assert.Contains(t, wrapped, "<title>Receipt &lt;1&gt;</title>")
	assert.Contains(t, wrapped, "<body><p>Paid</p></body>")
}

func TestCountPages(t *testing.T) {
	assert.Equal(t, 0, countPages(nil))
	assert.Equal(t, 1, countPages([]byte("%PDF-1.4 compressed")))
	pdf := []byte("1 0 obj << /Type /Pages /Count 2 >> 2 0 obj << /Type /Page /Parent 1 0 R >> 3 0 obj << /Type /Page\n/Parent 1 0 R >>")
	assert.Equal(t, 2, countPages(pdf))
}

func TestPaperSize(t *testing.T) {
	w, h := PaperSizeA4.Dimensions()
	assert.Equal(t, 210, w)
	assert.Equal(t, 297, h)
	assert.True(t, PaperSizeReceipt80MM.IsRoll())
	assert.False(t, PaperSize("B5").IsValid())
	w, h = PaperSize("B5").Dimensions()
	assert.Zero(t, w+h)
}
