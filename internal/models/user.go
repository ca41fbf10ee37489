// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account. The password is a stored hash and is
// never verified by the login endpoint; it exists so seeded accounts look
// like real ones.
type User struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Username  string          `gorm:"uniqueIndex;not null" json:"username"`
	FirstName string          `json:"first_name"`
	Email     string          `json:"email"`
	Password  string          `json:"-"`
	Profile   *StudentProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StudentProfile extends a User one-to-one with campus-specific attributes.
// At most one profile exists per user (unique FK).
type StudentProfile struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	UserID     uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	College    string  `gorm:"size:255" json:"college"`
	Avatar     string  `gorm:"type:text" json:"avatar"` // URL or base64 blob, opaque to the server
	IsVerified bool    `json:"is_verified"`
	UpiID      *string `gorm:"size:100" json:"upi_id,omitempty"`
	Bio        string  `gorm:"type:text" json:"bio"`
}

// UserProjection is the read-only wire shape returned by the login lookup.
// College and avatar come from the linked profile and stay empty when the
// user has none.
type UserProjection struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	College   string `json:"college"`
	Avatar    string `json:"avatar"`
}

// Project flattens a user and their optional profile into the wire shape.
func (u *User) Project() UserProjection {
	p := UserProjection{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
	}
	if u.Profile != nil {
		p.College = u.Profile.College
		p.Avatar = u.Profile.Avatar
	}
	return p
}
