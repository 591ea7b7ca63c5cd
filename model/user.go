package model

import "time"

type User struct {
	ID        string    `firestore:"-" json:"id"`
	Name      string    `firestore:"name,omitempty" json:"name"`
	Email     string    `firestore:"email,omitempty" json:"email"`
	Role      Role      `firestore:"role,omitempty" json:"role"`
	Activity  string    `firestore:"activity,omitempty" json:"activity,omitempty"`
	Password  string    `firestore:"password,omitempty" json:"-"` // bcrypt hash, jwt auth mode only
	CreatedAt time.Time `firestore:"createdAt,omitempty" json:"createdAt"`
}

// DisplayName falls back to the e-mail when no name was recorded.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Employee is the profile record edited from the settings panel.
type Employee struct {
	ID       string `firestore:"-" json:"id"`
	Email    string `firestore:"email" json:"email"`
	Nickname string `firestore:"nickname,omitempty" json:"nickname"`
	Bio      string `firestore:"bio,omitempty" json:"bio"`
	PhotoURL string `firestore:"photoURL,omitempty" json:"photoURL"`
}
