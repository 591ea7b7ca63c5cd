package services

import (
	"context"

	"exale/model"
	"exale/store"
)

const minPasswordLength = 6

type ProfileService struct {
	store     store.Store
	passwords PasswordSetter
}

func NewProfileService(s store.Store, passwords PasswordSetter) *ProfileService {
	return &ProfileService{store: s, passwords: passwords}
}

// UpdateProfile edits the employee record matching the session e-mail.
func (p *ProfileService) UpdateProfile(ctx context.Context, s model.Session, nickname, bio, photoURL string) (model.Employee, error) {
	if err := requireSignedIn(s); err != nil {
		return model.Employee{}, err
	}
	docs, err := p.store.Query(ctx, store.Query{Collection: CollectionEmployees, Limit: 1}.Where("email", s.Email))
	if err != nil {
		return model.Employee{}, err
	}
	if len(docs) == 0 {
		return model.Employee{}, notFound("Could not find your employee record. Contact Admin.")
	}
	id := docs[0].ID
	if err := p.store.Update(ctx, CollectionEmployees, id, map[string]interface{}{
		"nickname": nickname,
		"bio":      bio,
		"photoURL": photoURL,
	}); err != nil {
		return model.Employee{}, err
	}
	return model.Employee{ID: id, Email: s.Email, Nickname: nickname, Bio: bio, PhotoURL: photoURL}, nil
}

func (p *ProfileService) UpdatePassword(ctx context.Context, s model.Session, password string) error {
	if err := requireSignedIn(s); err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return invalid("Password must be at least 6 characters.")
	}
	return p.passwords.SetPassword(ctx, s.UserID, password)
}
