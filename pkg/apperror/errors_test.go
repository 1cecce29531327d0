package apperror

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetAppError(t *testing.T) {
	wrapped := fmt.Errorf("delete invoice: %w", ErrPaidInvoiceDelete)

	appErr := GetAppError(wrapped)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, KindValidation, appErr.Kind)

	plain := GetAppError(fmt.Errorf("boom"))
	assert.Equal(t, http.StatusInternalServerError, plain.Code)
	assert.Equal(t, "boom", plain.Message)
}

func TestKindHelpers(t *testing.T) {
	assert.True(t, IsValidation(NewRuleError("Select a customer")))
	assert.False(t, IsValidation(NewAPIError(http.StatusBadGateway, "Server error")))
	assert.True(t, IsUnauthorized(fmt.Errorf("x: %w", ErrSessionExpired)))
	assert.False(t, IsUnauthorized(ErrNotFound))
}

func TestIsMatchesCopies(t *testing.T) {
	copyErr := *ErrSubmitInProgress
	assert.ErrorIs(t, &copyErr, ErrSubmitInProgress)
	assert.NotErrorIs(t, ErrDraftSubmitted, ErrSubmitInProgress)
}
