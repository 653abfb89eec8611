package storage

import (
	"context"
	"net/url"
	"time"

	appproperty "github.com/rentdesk/backend/internal/application/property"
)

var _ appproperty.UploadPresigner = (*LocalPresigner)(nil)

// LocalPresigner builds unsigned upload URLs against a fixed base. It lets
// development setups exercise the upload flow without object storage.
type LocalPresigner struct {
	BaseURL string
	TTL     time.Duration
	now     func() time.Time
}

// NewLocalPresigner creates a LocalPresigner; an empty base uses localhost MinIO
func NewLocalPresigner(baseURL string) *LocalPresigner {
	if baseURL == "" {
		baseURL = "http://localhost:9000/rentdesk-documents"
	}
	return &LocalPresigner{BaseURL: baseURL, TTL: 15 * time.Minute, now: time.Now}
}

// PresignUpload returns BaseURL/key with the content type and expiry as query
func (p *LocalPresigner) PresignUpload(_ context.Context, key, contentType string) (string, time.Time, error) {
	if err := ValidateKey(key); err != nil {
		return "", time.Time{}, err
	}

	expiresAt := p.now().Add(p.TTL)
	q := url.Values{}
	if contentType != "" {
		q.Set("content_type", contentType)
	}
	q.Set("expires", expiresAt.UTC().Format(time.RFC3339))

	return p.BaseURL + "/" + (&url.URL{Path: key}).EscapedPath() + "?" + q.Encode(), expiresAt, nil
}
