package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Job is gorm model for store job posting data in DB. RecruiterID is
// nullable so seed tooling can insert postings without an owning account.
type Job struct {
	ID          uint       `gorm:"primaryKey;autoIncrement;->" json:"id"`
	RecruiterID *uuid.UUID `gorm:"type:uuid;index;<-:create" json:"recruiter_id"`
	Recruiter   *User      `gorm:"foreignKey:RecruiterID;references:ID" json:"-"`

	Title       string `gorm:"type:text;not null" json:"title"`
	Company     string `gorm:"type:text;not null" json:"company"`
	Location    string `gorm:"type:text;not null" json:"location"`
	Description string `gorm:"type:text;not null" json:"description"`
	Salary      string `gorm:"type:text" json:"salary"`

	Requirements   pq.StringArray `gorm:"type:text[]" json:"requirements"`
	Qualifications pq.StringArray `gorm:"type:text[]" json:"qualifications"`
	HardSkills     pq.StringArray `gorm:"type:text[]" json:"hard_skills"`
	SoftSkills     pq.StringArray `gorm:"type:text[]" json:"soft_skills"`

	CompanyLogo       string `gorm:"type:text" json:"company_logo"`
	CompanyBackground string `gorm:"type:text" json:"company_background"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

// EditableJobInfo is the part of a job posting that the creating
// recruiter supplies. Ownership fields are set by the handler, never
// bound from the request body.
type EditableJobInfo struct {
	Title       string `json:"title" binding:"required"`
	Company     string `json:"company" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Description string `json:"description" binding:"required"`
	Salary      string `json:"salary"`

	Requirements   pq.StringArray `json:"requirements"`
	Qualifications pq.StringArray `json:"qualifications"`
	HardSkills     pq.StringArray `json:"hard_skills"`
	SoftSkills     pq.StringArray `json:"soft_skills"`

	CompanyLogo       string `json:"company_logo"`
	CompanyBackground string `json:"company_background"`
}
