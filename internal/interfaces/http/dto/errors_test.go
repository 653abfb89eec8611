package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeMissingBusiness, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode_CoversDomainCodes(t *testing.T) {
	domainCodes := map[string]int{
		shared.CodeNotFound:            http.StatusNotFound,
		shared.CodeAlreadyExists:       http.StatusConflict,
		shared.CodeConflict:            http.StatusConflict,
		shared.CodeInvalidInput:        http.StatusBadRequest,
		shared.CodeInvalidState:        http.StatusUnprocessableEntity,
		shared.CodeConcurrencyConflict: http.StatusConflict,
		shared.CodeUnavailable:         http.StatusServiceUnavailable,
	}
	for code, status := range domainCodes {
		t.Run(code, func(t *testing.T) {
			normalized := NormalizeErrorCode(code)
			assert.NotEqual(t, code, normalized)
			assert.Equal(t, status, GetHTTPStatus(normalized))
		})
	}

	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
	assert.Equal(t, "CUSTOM", NormalizeErrorCode("CUSTOM"))
}

func TestErrorCodesAllMapped(t *testing.T) {
	for _, code := range domainCodeMapping {
		_, ok := ErrorCodeHTTPStatus[code]
		assert.True(t, ok, "code %s has no status", code)
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)
	require.NotNil(t, resp.Meta)
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Meta.TotalPages)
	assert.Equal(t, int64(41), resp.Meta.Total)

	resp = NewSuccessResponseWithMeta(nil, 0, 1, 0)
	assert.Equal(t, 0, resp.Meta.TotalPages)
}

func TestErrorResponseJSON(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Unit not found", "req-1")
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.NotContains(t, decoded, "data")
	errObj := decoded["error"].(map[string]any)
	assert.Equal(t, "ERR_NOT_FOUND", errObj["code"])
	assert.Equal(t, "req-1", errObj["request_id"])
	assert.NotContains(t, errObj, "details")
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "unit_id", Message: "This field is required"},
		{Field: "billing_cycle", Message: "Must be a billing cycle"},
	}
	resp := NewValidationErrorResponse("Request validation failed", "req-2", details)
	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "req-2", resp.Error.RequestID)
}
