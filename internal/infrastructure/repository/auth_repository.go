package repository

import (
	"context"
	"net/http"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	domainRepo "github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/infrastructure/backend"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
)

type authRepository struct {
	api *backend.Client
}

// NewAuthRepository creates a new auth repository
func NewAuthRepository(api *backend.Client) domainRepo.AuthRepository {
	return &authRepository{api: api}
}

type userWire struct {
	entity.User
	MongoID string `json:"_id"`
}

func (w userWire) toEntity() entity.User {
	u := w.User
	if u.ID == "" {
		u.ID = w.MongoID
	}
	return u
}

type tokenWire struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        userWire `json:"user"`
}

func (r *authRepository) Login(ctx context.Context, phone, password string, role enum.UserRole) (*entity.User, string, error) {
	body := struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}{Phone: phone, Password: password, Role: string(role)}

	var out tokenWire
	if err := r.api.Post(ctx, "/auth/login", nil, body, &out); err != nil {
		return nil, "", err
	}
	if out.AccessToken == "" {
		return nil, "", apperror.NewAPIError(http.StatusBadGateway, "Unexpected response from the server")
	}
	user := out.User.toEntity()
	return &user, out.AccessToken, nil
}

func (r *authRepository) Me(ctx context.Context) (*entity.User, error) {
	var out userWire
	if err := r.api.Get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	user := out.toEntity()
	return &user, nil
}

func (r *authRepository) Logout(ctx context.Context) error {
	return r.api.Post(ctx, "/auth/logout", nil, nil, nil)
}

func (r *authRepository) CheckCustomer(ctx context.Context, phone string) (*entity.CustomerCheck, error) {
	var out entity.CustomerCheck
	if err := r.api.Post(ctx, "/auth/check-customer", query(Eq("phone", phone)), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *authRepository) SetCustomerPassword(ctx context.Context, phone, password string) (*entity.PasswordSetResult, error) {
	body := struct {
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}{Phone: phone, Password: password}

	var out entity.PasswordSetResult
	if err := r.api.Post(ctx, "/auth/set-customer-password", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *authRepository) SetCustomerPasswordByID(ctx context.Context, customerID, password string) (*entity.PasswordSetResult, error) {
	body := struct {
		CustomerID string `json:"customer_id"`
		Password   string `json:"password"`
	}{CustomerID: customerID, Password: password}

	var out entity.PasswordSetResult
	if err := r.api.Post(ctx, "/auth/set-customer-password-by-id", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
