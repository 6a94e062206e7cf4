package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ARTICLE_NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"REFERENCE_CONFLICT", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"TOKEN_EXPIRED", http.StatusUnauthorized},
		{"ACCOUNT_LOCKED", http.StatusForbidden},
		{"FORBIDDEN", http.StatusForbidden},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"SALE_NOT_EDITABLE", http.StatusUnprocessableEntity},
		{"INVALID_STATE_TRANSITION", http.StatusUnprocessableEntity},
		{"NO_ITEMS", http.StatusUnprocessableEntity},
		{"INVARIANT_VIOLATION", http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"INVALID_QUANTITY", http.StatusBadRequest},
		{"SOME_UNKNOWN_CODE", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 45, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID("NOT_FOUND", "Sale not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}
