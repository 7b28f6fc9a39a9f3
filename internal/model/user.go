// Package model contain gorm model for recording data to database
package model

import (
	"time"

	"github.com/google/uuid"
)

// Realm constants govern authorization across the whole API.
var (
	// RealmAdmin has override rights on every resource
	RealmAdmin = "admin"
	// RealmRecruiter can post jobs and review applications for them
	RealmRecruiter = "recruiter"
	// RealmCandidate can browse jobs and apply to them
	RealmCandidate = "candidate"
)

// User is gorm model for an account. Email is stored lowercased and its
// uniqueness is enforced by the database, not only by the pre-check in
// the register handler.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	Username string    `gorm:"type:text;not null" json:"username"`
	Email    string    `gorm:"type:text;not null;uniqueIndex" json:"email"`
	Password string    `gorm:"type:text;not null" json:"-"`
	Realm    string    `gorm:"type:text;default:'candidate'" json:"realm"`
	IsBanned bool      `gorm:"type:boolean;default:false" json:"is_banned"`

	Warnings []Warning `gorm:"foreignKey:UserID" json:"warnings"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

// Warning is an admin-issued notice appended to a user account.
// Admin accounts can receive warnings even though they cannot be banned
// or deleted.
type Warning struct {
	ID      uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Message string    `gorm:"type:text;not null" json:"message"`
	Date    time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"date"`
	IsRead  bool      `gorm:"type:boolean;default:false" json:"is_read"`
}
