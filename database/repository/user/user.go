package userRepo

import (
	"context"
	"errors"
	"strings"

	"tripnest/database/docstore"
	"tripnest/models"
	"tripnest/utils"
)

const (
	// UsersCollection holds profiles keyed by uid.
	UsersCollection = "users"
	// CredentialsCollection holds local password hashes keyed by normalized email.
	CredentialsCollection = "credentials"
)

// UserRepository defines methods for profile and credential data access.
type UserRepository interface {
	// GetByID retrieves a profile by uid.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Create writes the profile document of a new account.
	Create(ctx context.Context, user *models.User) error
	// GetCredential retrieves a locally stored password hash.
	GetCredential(ctx context.Context, email string) (*models.Credential, error)
	// CreateCredential stores a password hash; an existing email is a conflict.
	CreateCredential(ctx context.Context, cred *models.Credential) error
}

// DocUserRepo implements UserRepository on a document store.
type DocUserRepo struct {
	store docstore.Store
}

func NewUserRepo(store docstore.Store) *DocUserRepo {
	return &DocUserRepo{store: store}
}

// NormalizeEmail lowercases and trims an address for use as a key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *DocUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	doc, err := r.store.Get(ctx, UsersCollection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, utils.NotFound("user profile not found")
		}
		return nil, utils.Wrap(err, "failed to fetch user %s", id)
	}
	var user models.User
	if err := docstore.Decode(doc.Data, &user); err != nil {
		return nil, utils.Wrap(err, "failed to decode user %s", id)
	}
	if user.ID == "" {
		user.ID = doc.Key
	}
	return &user, nil
}

func (r *DocUserRepo) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return utils.InvalidArgument("user id is required")
	}
	data, err := docstore.Encode(user)
	if err != nil {
		return utils.Wrap(err, "failed to encode user")
	}
	if err := r.store.Set(ctx, UsersCollection, user.ID, data); err != nil {
		return utils.Wrap(err, "failed to create user profile")
	}
	return nil
}

func (r *DocUserRepo) GetCredential(ctx context.Context, email string) (*models.Credential, error) {
	doc, err := r.store.Get(ctx, CredentialsCollection, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, utils.NotFound("no account for %s", email)
		}
		return nil, utils.Wrap(err, "failed to fetch credentials")
	}
	var cred models.Credential
	if err := docstore.Decode(doc.Data, &cred); err != nil {
		return nil, utils.Wrap(err, "failed to decode credentials")
	}
	return &cred, nil
}

func (r *DocUserRepo) CreateCredential(ctx context.Context, cred *models.Credential) error {
	key := NormalizeEmail(cred.Email)
	if _, err := r.store.Get(ctx, CredentialsCollection, key); err == nil {
		return utils.Conflict("an account with this email already exists")
	} else if !errors.Is(err, docstore.ErrNotFound) {
		return utils.Wrap(err, "failed to check credentials")
	}
	cred.Email = key
	data, err := docstore.Encode(cred)
	if err != nil {
		return utils.Wrap(err, "failed to encode credentials")
	}
	if err := r.store.Set(ctx, CredentialsCollection, key, data); err != nil {
		return utils.Wrap(err, "failed to store credentials")
	}
	return nil
}
