package auth

import (
	"context"
	"strings"

	userRepo "tripnest/database/repository/user"
	"tripnest/models"
	"tripnest/utils"

	"go.uber.org/zap"
)

func (s *DefaultAuthService) SignUp(ctx context.Context, email, password, name string) (*models.AuthSession, error) {
	if err := validateSignUp(email, password, name); err != nil {
		return nil, err
	}
	email = userRepo.NormalizeEmail(email)
	name = strings.TrimSpace(name)

	uid, err := s.Identity.CreateAccount(ctx, email, password, name)
	if err != nil {
		return nil, utils.Wrap(err, "failed to create account")
	}

	user := models.User{ID: uid, Name: name, Email: email, CreatedAt: s.now().UnixMilli()}
	if err := s.Users.Create(ctx, &user); err != nil {
		s.Logger.Error("SignUp: account created but profile write failed", zap.String("uid", uid), zap.Error(err))
		return nil, err
	}
	s.Logger.Info("User signed up", zap.String("uid", uid))
	return s.openSession(ctx, user)
}
