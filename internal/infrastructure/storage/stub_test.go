package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPresigner(t *testing.T) {
	p := NewLocalPresigner("")
	fixed := time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	url, expiresAt, err := p.PresignUpload(context.Background(), "b1/units/u1/ab12-front door.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(15*time.Minute), expiresAt)
	assert.Contains(t, url, "http://localhost:9000/rentdesk-documents/b1/units/u1/ab12-front%20door.jpg?")
	assert.Contains(t, url, "content_type=image%2Fjpeg")
	assert.Contains(t, url, "expires=2026-10-17T09%3A15%3A00Z")

	_, _, err = p.PresignUpload(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidKey)
}
