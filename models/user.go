// models/user.go
package models

// User is the profile document stored under users/{uid}.
type User struct {
	ID        string `firestore:"id" json:"id"`
	Name      string `firestore:"name" json:"name"`
	Email     string `firestore:"email" json:"email"`
	CreatedAt int64  `firestore:"createdAt" json:"createdAt"`
}

// Credential holds a locally verified password hash, keyed by normalized email.
type Credential struct {
	UserID       string `firestore:"uid" json:"-"`
	Email        string `firestore:"email" json:"-"`
	PasswordHash string `firestore:"passwordHash" json:"-"`
	CreatedAt    int64  `firestore:"createdAt" json:"-"`
}

// AuthSession is returned by sign-up and sign-in.
type AuthSession struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
	User      User   `json:"user"`
}
