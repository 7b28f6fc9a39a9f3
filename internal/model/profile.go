package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SocialLinks holds the public links shown on a profile page.
type SocialLinks struct {
	Linkedin string `gorm:"type:text" json:"linkedin"`
	Github   string `gorm:"type:text" json:"github"`
	Website  string `gorm:"type:text" json:"website"`
}

// EditableProfileInfo is the part of a profile its owner may change.
// Upserts merge field by field, so an unset field never clears a value.
type EditableProfileInfo struct {
	Title       string         `json:"title"`
	Bio         string         `json:"bio"`
	Location    string         `json:"location"`
	Skills      pq.StringArray `gorm:"type:text[]" json:"skills"`
	SocialLinks SocialLinks    `gorm:"embedded;embeddedPrefix:social_" json:"social_links"`

	Qualifications []Qualification `gorm:"foreignKey:ProfileID" json:"qualifications"`
	Projects       []Project       `gorm:"foreignKey:ProfileID" json:"projects"`
}

// Profile is a one-to-one extension of User, created empty at
// registration time.
type Profile struct {
	ID     uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID" json:"user"`

	EditableProfileInfo

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

// Qualification is one education entry on a profile.
type Qualification struct {
	ID          uint   `gorm:"primaryKey;autoIncrement;->" json:"id"`
	ProfileID   uint   `gorm:"not null;index" json:"-"`
	Degree      string `gorm:"type:text" json:"degree"`
	Institution string `gorm:"type:text" json:"institution"`
	Year        string `gorm:"type:text" json:"year"`
}

// Project is one portfolio entry on a profile.
type Project struct {
	ID          uint           `gorm:"primaryKey;autoIncrement;->" json:"id"`
	ProfileID   uint           `gorm:"not null;index" json:"-"`
	Title       string         `gorm:"type:text" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Link        string         `gorm:"type:text" json:"link"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
}
