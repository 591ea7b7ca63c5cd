package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"exale/model"
	"exale/store"

	"golang.org/x/crypto/bcrypt"
)

const signInTokenTTL = 12 * time.Hour

// PasswordSignIn checks an e-mail and password against the hash that
// StoredPasswords keeps on the user record. It only exists in jwt auth mode.
type PasswordSignIn struct {
	store  store.Store
	secret string
}

func NewPasswordSignIn(s store.Store, secret string) *PasswordSignIn {
	return &PasswordSignIn{store: s, secret: secret}
}

func (p *PasswordSignIn) SignIn(ctx context.Context, email, password string) (string, model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", model.User{}, invalid("Email and password are required")
	}
	docs, err := p.store.Query(ctx, store.Query{Collection: CollectionUsers, Limit: 1}.Where("email", email))
	if err != nil {
		return "", model.User{}, fmt.Errorf("find user: %w", err)
	}
	if len(docs) == 0 {
		return "", model.User{}, unauthenticated("Invalid email or password")
	}
	var user model.User
	if err := store.Decode(docs[0], &user); err != nil {
		return "", model.User{}, err
	}
	user.ID = docs[0].ID

	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", model.User{}, unauthenticated("Invalid email or password")
	}
	token, err := CreateAccessToken(p.secret, user.ID, user.Email, user.Name, signInTokenTTL)
	if err != nil {
		return "", model.User{}, fmt.Errorf("create access token: %w", err)
	}
	return token, user, nil
}
