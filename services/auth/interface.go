package auth

import (
	"context"
	"time"

	userRepo "tripnest/database/repository/user"
	"tripnest/models"
	"tripnest/utils"

	"go.uber.org/zap"
)

// AuthService signs users up and in and resolves bearer tokens to users.
type AuthService interface {
	// SignUp validates the input, creates the identity account and the profile,
	// and opens a session.
	SignUp(ctx context.Context, email, password, name string) (*models.AuthSession, error)
	// SignIn verifies credentials and opens a session.
	SignIn(ctx context.Context, email, password string) (*models.AuthSession, error)
	// SignOut revokes the session of token.
	SignOut(ctx context.Context, token string) error
	// CurrentUser returns the profile of the authenticated caller.
	CurrentUser(ctx context.Context) (*models.User, error)
	// Authenticate returns the user id of a live session token.
	Authenticate(ctx context.Context, token string) (string, error)
}

// IdentityProvider owns accounts and passwords.
type IdentityProvider interface {
	// CreateAccount returns the uid of the new account.
	CreateAccount(ctx context.Context, email, password, name string) (string, error)
	// VerifyPassword returns the uid of the matching account, or an
	// Unauthenticated error for wrong credentials.
	VerifyPassword(ctx context.Context, email, password string) (string, error)
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Identity IdentityProvider
	Users    userRepo.UserRepository
	Sessions SessionStore
	Tokens   *utils.TokenIssuer
	Logger   *zap.Logger
	now      func() time.Time
}

func NewAuthService(identity IdentityProvider, users userRepo.UserRepository, sessions SessionStore, tokens *utils.TokenIssuer, logger *zap.Logger) *DefaultAuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultAuthService{
		Identity: identity,
		Users:    users,
		Sessions: sessions,
		Tokens:   tokens,
		Logger:   logger,
		now:      time.Now,
	}
}

var errInvalidCredentials = utils.Unauthenticated("invalid email or password")

// InvalidCredentials is the error identity providers return for a wrong email or password.
func InvalidCredentials() error {
	return errInvalidCredentials
}
