// Package domain contains the persistent entities, just meta-data and
// validation, no transport or storage logic.
package domain

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleTeacher = "teacher"
	RoleStudent = "student"

	MaxNameLen = 72
)

var (
	ErrNameEmpty   = errors.New("name empty")
	ErrNameTooLong = errors.New("name too long")
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"`
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in handlers.
func NewUser(name, email, passwordHash, role string) (*User, error) {
	if len(name) == 0 {
		return nil, ErrNameEmpty
	}
	if len(name) > MaxNameLen {
		return nil, ErrNameTooLong
	}
	if role != RoleTeacher {
		role = RoleStudent
	}
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}, nil
}
