package services

import (
	"context"
	"errors"

	"exale/store"

	"firebase.google.com/go/auth"
	"golang.org/x/crypto/bcrypt"
)

// Identity is who the identity service says signed the token.
type Identity struct {
	UID   string
	Email string
	Name  string
}

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

type PasswordSetter interface {
	SetPassword(ctx context.Context, uid, password string) error
}

// FirebaseVerifier checks Firebase Auth ID tokens.
type FirebaseVerifier struct {
	client *auth.Client
}

func NewFirebaseVerifier(client *auth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (f *FirebaseVerifier) Verify(ctx context.Context, idToken string) (Identity, error) {
	t, err := f.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return Identity{}, err
	}
	email, _ := t.Claims["email"].(string)
	name, _ := t.Claims["name"].(string)
	return Identity{UID: t.UID, Email: email, Name: name}, nil
}

// FirebasePasswords changes the password on the Firebase Auth account.
type FirebasePasswords struct {
	client *auth.Client
}

func NewFirebasePasswords(client *auth.Client) *FirebasePasswords {
	return &FirebasePasswords{client: client}
}

func (f *FirebasePasswords) SetPassword(ctx context.Context, uid, password string) error {
	_, err := f.client.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Password(password))
	return err
}

// StoredPasswords keeps a bcrypt hash on the user record, for jwt auth mode
// where no identity service holds credentials.
type StoredPasswords struct {
	store store.Store
}

func NewStoredPasswords(s store.Store) *StoredPasswords {
	return &StoredPasswords{store: s}
}

func (p *StoredPasswords) SetPassword(ctx context.Context, uid, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	err = p.store.Update(ctx, CollectionUsers, uid, map[string]interface{}{"password": string(hashed)})
	if errors.Is(err, store.ErrNotFound) {
		return notFound("User not found")
	}
	return err
}
