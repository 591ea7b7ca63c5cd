package model

import "time"

type Client struct {
	ID        string    `firestore:"-" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	Email     string    `firestore:"email" json:"email"`
	Industry  string    `firestore:"industry,omitempty" json:"industry"`
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
}

type Contact struct {
	ID        string    `firestore:"-" json:"id"`
	Name      string    `firestore:"name" json:"name"`
	Phone     string    `firestore:"phone,omitempty" json:"phone"`
	Email     string    `firestore:"email,omitempty" json:"email"`
	Tag       string    `firestore:"tag,omitempty" json:"tag"`
	Timestamp time.Time `firestore:"timestamp" json:"timestamp"`
}
