package service

import (
	"context"
	"strings"
	"time"

	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/entity"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/enum"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/domain/repository"
	"github.com/essamaboelmgd/sanabel-elkhair/internal/infrastructure/backend"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/apperror"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/utils"
	"github.com/essamaboelmgd/sanabel-elkhair/pkg/validator"
	"go.uber.org/zap"
)

// AuthService handles login, session resolution and customer password setup
type AuthService struct {
	authRepo    repository.AuthRepository
	sessionRepo repository.SessionRepository
	jwtManager  *utils.JWTManager
	log         *zap.Logger
	now         func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(
	authRepo repository.AuthRepository,
	sessionRepo repository.SessionRepository,
	jwtManager *utils.JWTManager,
	log *zap.Logger,
) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		authRepo:    authRepo,
		sessionRepo: sessionRepo,
		jwtManager:  jwtManager,
		log:         log,
		now:         time.Now,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Phone    string        `json:"phone" validate:"required"`
	Password string        `json:"password" validate:"required"`
	Role     enum.UserRole `json:"role" validate:"required,oneof=admin cashier customer"`
}

// LoginOutput represents the login output
type LoginOutput struct {
	Session     *entity.Session `json:"-"`
	User        *entity.User    `json:"user"`
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   time.Time       `json:"expires_at"`
}

// Login authenticates against the backend and opens a gateway session
// holding the backend token. The returned access token names the session.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validator.ValidateRequest(input); err != nil {
		return nil, err
	}

	user, token, err := s.authRepo.Login(ctx, input.Phone, input.Password, input.Role)
	if err != nil {
		if apperror.IsUnauthorized(err) {
			return nil, apperror.ErrInvalidCredentials
		}
		return nil, err
	}

	// Staff log in through the admin screen, customers through the portal.
	if input.Role == enum.UserRoleCustomer && user.Role != enum.UserRoleCustomer {
		return nil, apperror.ErrForbidden
	}
	if input.Role.IsStaff() && !user.Role.IsStaff() {
		return nil, apperror.ErrForbidden
	}

	now := s.now()
	session := &entity.Session{
		ID:        utils.NewID(),
		User:      *user,
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(s.jwtManager.Expiry()),
	}
	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	accessToken, err := s.jwtManager.GenerateSessionToken(session.ID, user.ID, string(user.Role), session.ExpiresAt)
	if err != nil {
		_ = s.sessionRepo.Delete(ctx, session.ID)
		return nil, apperror.ErrInternalServer
	}

	s.log.Info("session opened",
		zap.String("session_id", session.ID),
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	return &LoginOutput{
		Session:     session,
		User:        user,
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

// Resolve maps a gateway access token to its live session.
func (s *AuthService) Resolve(ctx context.Context, accessToken string) (*entity.Session, error) {
	claims, err := s.jwtManager.ValidateSessionToken(accessToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	return s.sessionRepo.Get(ctx, claims.SessionID)
}

// Logout tells the backend the token is no longer used and drops the session.
// The session is dropped even when the backend call fails.
func (s *AuthService) Logout(ctx context.Context, session *entity.Session) error {
	callCtx := backend.WithToken(ctx, session.Token)
	if err := s.authRepo.Logout(callCtx); err != nil {
		s.log.Warn("backend logout failed", zap.String("session_id", session.ID), zap.Error(err))
	}
	return s.EndSession(ctx, session.ID)
}

// EndSession destroys a session without calling the backend.
func (s *AuthService) EndSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	s.log.Info("session closed", zap.String("session_id", sessionID))
	return s.sessionRepo.Delete(ctx, sessionID)
}

// HandleUnauthorized ends the session that issued a call the backend
// rejected with 401.
func (s *AuthService) HandleUnauthorized(ctx context.Context) {
	if err := s.EndSession(ctx, backend.SessionIDFrom(ctx)); err != nil {
		s.log.Warn("failed to end rejected session", zap.Error(err))
	}
}

// Me returns the backend's view of the logged-in user.
func (s *AuthService) Me(ctx context.Context) (*entity.User, error) {
	return s.authRepo.Me(ctx)
}

// CheckCustomer looks up a phone number for the first-login flow.
func (s *AuthService) CheckCustomer(ctx context.Context, phone string) (*entity.CustomerCheck, error) {
	phone = strings.TrimSpace(phone)
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	return s.authRepo.CheckCustomer(ctx, phone)
}

// SetPasswordInput represents a customer password setup request
type SetPasswordInput struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// SetCustomerPassword sets a first-login customer's password by phone.
func (s *AuthService) SetCustomerPassword(ctx context.Context, input *SetPasswordInput) (*entity.PasswordSetResult, error) {
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validator.ValidateRequest(input); err != nil {
		return nil, err
	}
	if err := validatePhone(input.Phone); err != nil {
		return nil, err
	}
	return s.authRepo.SetCustomerPassword(ctx, input.Phone, input.Password)
}

// SetCustomerPasswordByID lets staff set a customer's password.
func (s *AuthService) SetCustomerPasswordByID(ctx context.Context, customerID, password string) (*entity.PasswordSetResult, error) {
	if len(password) < 6 {
		return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "password", Message: "must be at least 6"}})
	}
	return s.authRepo.SetCustomerPasswordByID(ctx, customerID, password)
}

// validatePhone accepts digits only, at least ten of them.
func validatePhone(phone string) error {
	if len(phone) < 10 || strings.IndexFunc(phone, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return apperror.NewValidationError([]apperror.FieldError{{Field: "phone", Message: "must be a valid phone number"}})
	}
	return nil
}
