package model

import (
	"time"

	"github.com/google/uuid"
)

var (
	// ApplicationStatusPending indicates that the application is waiting for review
	ApplicationStatusPending = "pending"
	// ApplicationStatusReviewed indicates that the recruiter has seen the application
	ApplicationStatusReviewed = "reviewed"
	// ApplicationStatusAccepted indicates that the application has been accepted
	ApplicationStatusAccepted = "accepted"
	// ApplicationStatusRejected indicates that the application has been rejected
	ApplicationStatusRejected = "rejected"
)

// Application represents a job application record. The composite unique
// index on (job_id, applicant_id) is the authoritative guard against a
// candidate applying to the same job twice; the handler pre-check only
// improves the error message.
type Application struct {
	ID     uint   `gorm:"primaryKey;autoIncrement;->" json:"id"`
	Status string `gorm:"type:text;default:'pending'" json:"status"`

	JobID uint `gorm:"not null;uniqueIndex:idx_job_applicant" json:"job_id"`
	Job   Job  `gorm:"foreignKey:JobID;references:ID" json:"job"`

	ApplicantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_job_applicant" json:"applicant_id"`
	Applicant   User      `gorm:"foreignKey:ApplicantID;references:ID" json:"applicant"`

	// Resume is the stored path of the uploaded file
	Resume      string `gorm:"type:text;not null" json:"resume"`
	CoverLetter string `gorm:"type:text" json:"cover_letter"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}
