package validator

import (
	"net/http"
	"testing"

	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type walletRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Type   string          `json:"transaction_type" validate:"required,oneof=add deduct"`
}

func TestValidateRequest(t *testing.T) {
	require.NoError(t, ValidateRequest(walletRequest{Amount: decimal.NewFromInt(5), Type: "add"}))

	err := ValidateRequest(walletRequest{Amount: decimal.Zero, Type: "refund"})
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 2)
	assert.Equal(t, "amount", appErr.Errors[0].Field)
	assert.Equal(t, "must be greater than 0", appErr.Errors[0].Message)
	assert.Equal(t, "transaction_type", appErr.Errors[1].Field)
}
