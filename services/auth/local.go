package auth

import (
	"context"
	"errors"
	"time"

	userRepo "tripnest/database/repository/user"
	"tripnest/models"
	"tripnest/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// LocalIdentity keeps bcrypt password hashes in the document store.
type LocalIdentity struct {
	users userRepo.UserRepository
	cost  int
}

// NewLocalIdentity uses bcrypt.DefaultCost when cost is zero.
func NewLocalIdentity(users userRepo.UserRepository, cost int) *LocalIdentity {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &LocalIdentity{users: users, cost: cost}
}

func (l *LocalIdentity) CreateAccount(ctx context.Context, email, password, _ string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), l.cost)
	if err != nil {
		return "", utils.Wrap(err, "failed to hash password")
	}
	uid := uuid.New().String()
	cred := &models.Credential{
		UserID:       uid,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UnixMilli(),
	}
	if err := l.users.CreateCredential(ctx, cred); err != nil {
		return "", err
	}
	return uid, nil
}

func (l *LocalIdentity) VerifyPassword(ctx context.Context, email, password string) (string, error) {
	cred, err := l.users.GetCredential(ctx, email)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return "", InvalidCredentials()
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", InvalidCredentials()
	}
	return cred.UserID, nil
}
