package auth

import (
	"context"

	userRepo "tripnest/database/repository/user"
	"tripnest/models"
	"tripnest/utils"

	"go.uber.org/zap"
)

func (s *DefaultAuthService) SignIn(ctx context.Context, email, password string) (*models.AuthSession, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, utils.InvalidArgument("password is required")
	}

	uid, err := s.Identity.VerifyPassword(ctx, userRepo.NormalizeEmail(email), password)
	if err != nil {
		if utils.KindOf(err) != utils.KindUnauthenticated {
			s.Logger.Error("SignIn: identity provider failed", zap.Error(err))
		}
		return nil, utils.Wrap(err, "authentication failed, please try again")
	}

	user, err := s.Users.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return s.openSession(ctx, *user)
}

func (s *DefaultAuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return utils.Unauthenticated("user not authenticated")
	}
	if err := s.Sessions.Revoke(ctx, utils.HashToken(token)); err != nil {
		return utils.Wrap(err, "failed to sign out")
	}
	return nil
}

func (s *DefaultAuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	uid, err := utils.RequireUserID(ctx)
	if err != nil {
		return nil, err
	}
	return s.Users.GetByID(ctx, uid)
}

// Authenticate accepts a token only while it is both valid and not revoked.
func (s *DefaultAuthService) Authenticate(ctx context.Context, token string) (string, error) {
	uid, err := s.Tokens.Subject(token)
	if err != nil {
		return "", utils.Unauthenticated("invalid or expired token")
	}
	owner, err := s.Sessions.Lookup(ctx, utils.HashToken(token))
	if err != nil {
		return "", err
	}
	if owner != uid {
		return "", utils.Unauthenticated("invalid or expired token")
	}
	return uid, nil
}

func (s *DefaultAuthService) openSession(ctx context.Context, user models.User) (*models.AuthSession, error) {
	token, err := s.Tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, utils.Wrap(err, "failed to generate token")
	}
	ttl := s.Tokens.TTL()
	if err := s.Sessions.Save(ctx, utils.HashToken(token), user.ID, ttl); err != nil {
		return nil, utils.Wrap(err, "failed to store session")
	}
	return &models.AuthSession{
		Token:     token,
		ExpiresAt: s.now().Add(ttl).UnixMilli(),
		User:      user,
	}, nil
}
