package service

import (
	"context"
	"testing"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/testutil"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustWallet(t *testing.T) {
	repo := testutil.NewCustomerRepo(testutil.Customer("c1", "Mona", "100"))
	svc := NewCustomerService(repo)
	ctx := context.Background()

	_, err := svc.AdjustWallet(ctx, "c1", &WalletAdjustInput{Amount: d("0"), Type: enum.WalletTransactionAdd})
	assert.True(t, apperror.IsValidation(err))
	_, err = svc.AdjustWallet(ctx, "c1", &WalletAdjustInput{Amount: d("5"), Type: "refund"})
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, repo.Adjusted)

	c, err := svc.AdjustWallet(ctx, "c1", &WalletAdjustInput{Amount: d("25.50"), Type: enum.WalletTransactionDeduct})
	require.NoError(t, err)
	assert.Equal(t, "74.50", c.WalletBalance.StringFixed(2))
}

func TestSetWalletBalance(t *testing.T) {
	repo := testutil.NewCustomerRepo(testutil.Customer("c1", "Mona", "100"))
	svc := NewCustomerService(repo)

	_, err := svc.SetWalletBalance(context.Background(), "c1", d("-1"))
	assert.True(t, apperror.IsValidation(err))

	c, err := svc.SetWalletBalance(context.Background(), "c1", d("40"))
	require.NoError(t, err)
	assert.Equal(t, "40", c.WalletBalance.String())
}

func TestCreateCustomerValidation(t *testing.T) {
	svc := NewCustomerService(testutil.NewCustomerRepo())
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, &CustomerInput{Name: lo.ToPtr("Ali"), Phone: lo.ToPtr("123")})
	require.Error(t, err)
	assert.Equal(t, "phone", apperror.GetAppError(err).Errors[0].Field)

	_, err = svc.CreateCustomer(ctx, &CustomerInput{Phone: lo.ToPtr("01000000009")})
	assert.True(t, apperror.IsValidation(err))

	c, err := svc.CreateCustomer(ctx, &CustomerInput{Name: lo.ToPtr(" Ali "), Phone: lo.ToPtr("01000000009")})
	require.NoError(t, err)
	assert.Equal(t, "Ali", c.Name)

	_, err = svc.ListCustomers(ctx, &repository.CustomerFilterParams{Status: "vip"})
	assert.True(t, apperror.IsValidation(err))
}
