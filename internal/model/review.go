package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ReviewRoleCandidate marks feedback written from the applicant side
	ReviewRoleCandidate = "Candidate"
	// ReviewRoleRecruiter marks feedback written from the hiring side
	ReviewRoleRecruiter = "Recruiter"
)

// Review is a company rating authored by a user. There is no
// ownership-based mutation: reviews are created once and read publicly.
type Review struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;->" json:"id"`
	CompanyName string    `gorm:"type:text;not null;index" json:"company_name"`
	UserID      uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID;references:ID" json:"user"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text;not null" json:"comment"`
	Role    string `gorm:"type:text;default:'Candidate'" json:"role"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
