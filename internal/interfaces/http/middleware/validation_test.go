package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unitBody struct {
	UnitNumber string `json:"unit_number" binding:"required,max=20"`
	Status     string `json:"status" binding:"omitempty,unit_status"`
	Cycle      string `json:"billing_cycle" binding:"omitempty,billing_cycle"`
	Rent       int    `json:"rent_amount" binding:"gte=0"`
}

func bindUnit(t *testing.T, body string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	SetupValidator()
	r := newEngine(RequestID())
	r.POST("/", func(c *gin.Context) {
		var req unitBody
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp dto.Response
	if w.Code != http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

func TestValidation(t *testing.T) {
	t.Run("valid body", func(t *testing.T) {
		w, _ := bindUnit(t, `{"unit_number":"A1","status":"reserved","billing_cycle":"quarterly"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("field names follow json tags", func(t *testing.T) {
		w, resp := bindUnit(t, `{"status":"rented","billing_cycle":"weekly","rent_amount":-1}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)

		fields := map[string]string{}
		for _, d := range resp.Error.Details {
			fields[d.Field] = d.Message
		}
		assert.Equal(t, "This field is required", fields["unit_number"])
		assert.Contains(t, fields["status"], "vacant")
		assert.Contains(t, fields["billing_cycle"], "monthly")
		assert.Equal(t, "Must be greater than or equal to 0", fields["rent_amount"])
	})

	t.Run("malformed json", func(t *testing.T) {
		w, resp := bindUnit(t, `{"unit_number":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, resp.Error.Details)
		assert.Contains(t, resp.Error.Message, "Invalid request body")
	})
}
