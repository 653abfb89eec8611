package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const businessHeader = "X-Business-ID"

// Envelope is the JSON wrapper every API response comes in
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

// APIClient sends JSON requests straight into a handler on behalf of one
// business.
type APIClient struct {
	handler    http.Handler
	BusinessID uuid.UUID
}

func NewAPIClient(h http.Handler, businessID uuid.UUID) *APIClient {
	return &APIClient{handler: h, BusinessID: businessID}
}

// As returns a client acting for another business. uuid.Nil sends no
// business header at all.
func (c *APIClient) As(businessID uuid.UUID) *APIClient {
	return &APIClient{handler: c.handler, BusinessID: businessID}
}

// Do serves one request. The envelope is decoded unless the body is empty or
// not JSON.
func (c *APIClient) Do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body), "Failed to marshal request body")
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.BusinessID != uuid.Nil {
		req.Header.Set(businessHeader, c.BusinessID.String())
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)

	var env Envelope
	if w.Body.Len() > 0 && isJSON(w.Header().Get("Content-Type")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

// MustDo is Do that fails the test unless the status matches
func (c *APIClient) MustDo(t *testing.T, status int, method, path string, body any) Envelope {
	t.Helper()
	w, env := c.Do(t, method, path, body)
	require.Equal(t, status, w.Code, "%s %s: %s", method, path, w.Body.String())
	return env
}

func isJSON(contentType string) bool {
	return len(contentType) >= 16 && contentType[:16] == "application/json"
}

// Data decodes the envelope payload into T
func Data[T any](t *testing.T, env Envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), "Failed to decode response data")
	return out
}

// AssertError checks an error response's status and code
func AssertError(t *testing.T, w *httptest.ResponseRecorder, env Envelope, status int, code string) {
	t.Helper()
	assert.Equal(t, status, w.Code, w.Body.String())
	assert.False(t, env.Success)
	if assert.NotNil(t, env.Error, "expected an error object") {
		assert.Equal(t, code, env.Error.Code)
	}
}
