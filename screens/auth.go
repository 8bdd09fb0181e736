package screens

import (
	"context"

	"tripnest/models"
	"tripnest/services/auth"
)

// AuthScreen drives the sign-in and sign-up forms.
type AuthScreen struct {
	auth    auth.AuthService
	Session *Holder[*models.AuthSession]
}

func NewAuthScreen(svc auth.AuthService) *AuthScreen {
	return &AuthScreen{auth: svc, Session: NewHolder[*models.AuthSession]()}
}

func (s *AuthScreen) SignIn(ctx context.Context, email, password string) (State[*models.AuthSession], error) {
	return s.Session.Run(ctx, func(ctx context.Context) (*models.AuthSession, error) {
		return s.auth.SignIn(ctx, email, password)
	})
}

func (s *AuthScreen) SignUp(ctx context.Context, email, password, name string) (State[*models.AuthSession], error) {
	return s.Session.Run(ctx, func(ctx context.Context) (*models.AuthSession, error) {
		return s.auth.SignUp(ctx, email, password, name)
	})
}
