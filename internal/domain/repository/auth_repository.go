package repository

import (
	"context"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
)

// AuthRepository defines the backend authentication operations
type AuthRepository interface {
	// Login returns the authenticated user and the bearer token the backend issued.
	Login(ctx context.Context, phone, password string, role enum.UserRole) (*entity.User, string, error)
	Me(ctx context.Context) (*entity.User, error)
	Logout(ctx context.Context) error
	CheckCustomer(ctx context.Context, phone string) (*entity.CustomerCheck, error)
	SetCustomerPassword(ctx context.Context, phone, password string) (*entity.PasswordSetResult, error)
	SetCustomerPasswordByID(ctx context.Context, customerID, password string) (*entity.PasswordSetResult, error)
}

// SessionRepository stores gateway sessions
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}
