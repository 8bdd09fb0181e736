package auth

import (
	"context"
	"errors"
	"net/http"

	"tripnest/utils"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// FirebaseIdentity creates accounts with the Firebase Auth admin client and
// checks passwords through the Identity Toolkit REST API.
type FirebaseIdentity struct {
	admin   *fbauth.Client
	toolkit *identitytoolkit.Service
}

func NewFirebaseIdentity(ctx context.Context, app *firebase.App, apiKey string) (*FirebaseIdentity, error) {
	admin, err := app.Auth(ctx)
	if err != nil {
		return nil, utils.Wrap(err, "firebase: error getting Auth client")
	}
	toolkit, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, utils.Wrap(err, "firebase: error creating identity toolkit client")
	}
	return &FirebaseIdentity{admin: admin, toolkit: toolkit}, nil
}

func (f *FirebaseIdentity) CreateAccount(ctx context.Context, email, password, name string) (string, error) {
	params := (&fbauth.UserToCreate{}).Email(email).Password(password).DisplayName(name)
	rec, err := f.admin.CreateUser(ctx, params)
	if err != nil {
		if fbauth.IsEmailAlreadyExists(err) {
			return "", utils.Conflict("an account with this email already exists")
		}
		return "", utils.Wrap(err, "failed to create account")
	}
	return rec.UID, nil
}

func (f *FirebaseIdentity) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}
	resp, err := f.toolkit.Relyingparty.VerifyPassword(req).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusBadRequest {
			return "", InvalidCredentials()
		}
		return "", utils.Wrap(err, "failed to verify password")
	}
	return resp.LocalId, nil
}
