package services

import (
	"errors"

	"exale/model"
	"exale/store"
)

var (
	ErrInvalid         = errors.New("invalid input")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("sign in required")
	ErrNotFound        = store.ErrNotFound
)

// userError carries the message shown to the person who triggered it.
type userError struct {
	kind error
	msg  string
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.kind }

func invalid(msg string) error   { return &userError{kind: ErrInvalid, msg: msg} }
func forbidden(msg string) error { return &userError{kind: ErrForbidden, msg: msg} }
func notFound(msg string) error  { return &userError{kind: ErrNotFound, msg: msg} }

func unauthenticated(msg string) error {
	return &userError{kind: ErrUnauthenticated, msg: msg}
}

func requireSignedIn(s model.Session) error {
	if !s.Role.SignedIn() {
		return unauthenticated("Please sign in first.")
	}
	return nil
}

func requireManager(s model.Session, msg string) error {
	if err := requireSignedIn(s); err != nil {
		return err
	}
	if !s.Role.IsManager() {
		return forbidden(msg)
	}
	return nil
}

func requireOwner(s model.Session, msg string) error {
	if err := requireSignedIn(s); err != nil {
		return err
	}
	if s.Role != model.RoleOwner {
		return forbidden(msg)
	}
	return nil
}
