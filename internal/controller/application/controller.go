// Package application provides HTTP handlers for job application operations.
package application

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/waselkoz/jobSphere/internal/database"
	"github.com/waselkoz/jobSphere/internal/model"
	"github.com/waselkoz/jobSphere/internal/utilities"
)

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB *database.DBinstanceStruct
	// UploadDir is where resume files are stored
	UploadDir string
}

// NewApplicationController creates a new instance of ApplicationController
// with the provided database connection and resume storage directory.
func NewApplicationController(db *database.DBinstanceStruct, uploadDir string) *ApplicationController {
	return &ApplicationController{
		DB:        db,
		UploadDir: uploadDir,
	}
}

// Apply handles the creation of a new job application by a candidate.
// The handler pre-checks for an existing application to give a clean
// error message, but the unique index on (job_id, applicant_id) is what
// actually prevents a duplicate slipping through a concurrent submit.
// @Summary Apply to a job posting
// @Description Only candidate and admin can access this endpoint. Multipart body with a required resume file.
// @Tags Applications
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job_id formData integer true "ID of the job posting"
// @Param cover_letter formData string false "Cover letter text"
// @Param resume formData file true "Resume file (PDF/DOC)"
// @Success 201 {object} model.Application "Successfully applied"
// @Failure 400 {object} utilities.ErrorResponse "Missing resume or malformed job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as candidate"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 409 {object} utilities.ErrorResponse "Already applied to this job"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [post]
func (ac *ApplicationController) Apply(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	resumeFile, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Please upload a resume (PDF/DOC)",
		})
		return
	}

	jobID, err := strconv.Atoi(c.PostForm("job_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "A valid job_id must be provided",
		})
		return
	}

	job := model.Job{}
	if err := ac.DB.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	// Pre-check for a friendlier error message than a raw index violation
	existing := model.Application{}
	if err := ac.DB.
		Where("applicant_id = ? AND job_id = ?", user.ID, job.ID).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, utilities.ErrorResponse{
			Error: "You have already applied for this job",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to check existing application",
		})
		return
	}

	if err := os.MkdirAll(ac.UploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to prepare upload directory: %s", err.Error()),
		})
		return
	}

	storedName := uuid.NewString() + filepath.Ext(resumeFile.Filename)
	storedPath := filepath.Join(ac.UploadDir, storedName)
	if err := c.SaveUploadedFile(resumeFile, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store resume: %s", err.Error()),
		})
		return
	}

	application := model.Application{
		JobID:       job.ID,
		ApplicantID: user.ID,
		Status:      model.ApplicationStatusPending,
		Resume:      storedPath,
		CoverLetter: c.PostForm("cover_letter"),
	}

	if err := ac.DB.Create(&application).Error; err != nil {
		var pqErr *pgconn.PgError
		// Unique violation: a concurrent submit won the race on the
		// (job_id, applicant_id) index
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: "You have already applied for this job",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, application)
}

// MyApplications returns the caller's own applications with the job attached.
// @Summary List own applications
// @Tags Applications
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Application
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/me [get]
func (ac *ApplicationController) MyApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	applications := []model.Application{}
	if err := ac.DB.
		Preload("Job").
		Where("applicant_id = ?", user.ID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// JobApplications returns all applications for one job posting, newest
// first, with each applicant attached. Only the recruiter owning the
// posting or an admin may view them.
// @Summary List applications for a job posting
// @Description Only the recruiter that owns the posting or an admin can access this endpoint
// @Tags Applications
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param jobId path integer true "ID of the job posting"
// @Success 200 {array} model.Application
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner of this posting"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/job/{jobId} [get]
func (ac *ApplicationController) JobApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	jobID := c.Param("jobId")

	job := model.Job{}
	if err := ac.DB.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	if job.RecruiterID == nil || *job.RecruiterID != user.ID {
		if user.Realm != model.RealmAdmin {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "Not authorized to view applications for this job",
			})
			return
		}
	}

	applications := []model.Application{}
	if err := ac.DB.
		Preload("Applicant").
		Where("job_id = ?", job.ID).
		Order("created_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}
