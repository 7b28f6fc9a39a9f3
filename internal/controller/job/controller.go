// Package job provides HTTP handlers for job posting operations.
package job

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/waselkoz/jobSphere/internal/database"
	"github.com/waselkoz/jobSphere/internal/model"
	"github.com/waselkoz/jobSphere/internal/utilities"
)

// JobController handles job posting related endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController with the provided database connection.
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB: db,
	}
}

// GetJobs fetches all job postings matching the optional keyword, newest first.
// @Summary List job postings
// @Description Public endpoint. Keyword matches title, company, description and location
// @Description with substring matching, or any entry of hard skills, soft skills and qualifications.
// @Tags Jobs
// @Produce json
// @Param keyword query string false "Case-insensitive search keyword"
// @Success 200 {array} model.Job
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [get]
func (jc *JobController) GetJobs(c *gin.Context) {
	keyword := c.Query("keyword")

	result := jc.DB.Session(&gorm.Session{})

	if keyword != "" {
		pattern := "%" + keyword + "%"
		result = result.Where(
			jc.DB.
				Where("title ILIKE ?", pattern).
				Or("company ILIKE ?", pattern).
				Or("description ILIKE ?", pattern).
				Or("location ILIKE ?", pattern).
				Or("? ILIKE ANY(hard_skills)", keyword).
				Or("? ILIKE ANY(soft_skills)", keyword).
				Or("? ILIKE ANY(qualifications)", keyword),
		)
	}

	jobs := []model.Job{}
	if err := result.Order("created_at DESC").Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch jobs: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetMyJobs fetches the jobs posted by the authenticated caller, newest first.
// An admin calling this sees only jobs they personally posted, not all jobs.
// @Summary List own job postings
// @Description Only recruiter and admin can access this endpoint
// @Tags Jobs
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Job
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as recruiter or admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/my [get]
func (jc *JobController) GetMyJobs(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobs := []model.Job{}
	if err := jc.DB.
		Where("recruiter_id = ?", user.ID).
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch jobs: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetJobByID fetches a single job posting by its ID.
// @Summary Get job posting by ID
// @Tags Jobs
// @Produce json
// @Param id path integer true "ID of desired job posting"
// @Success 200 {object} model.Job
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobByID(c *gin.Context) {
	id := c.Param("id")

	job := model.Job{}
	if err := jc.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJob handles the creation of a new job posting by a recruiter or admin.
// @Summary Create job posting based on given json structure
// @Description Only recruiter and admin can access this endpoint
// @Tags Jobs
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body model.EditableJobInfo true "Input job information"
// @Success 201 {object} model.Job "Successfully create job posting"
// @Failure 400 {object} utilities.ErrorResponse "Missing required fields"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as recruiter or admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info model.EditableJobInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Title, company, location and description must be provided",
		})
		return
	}

	job := model.Job{
		RecruiterID:       &user.ID,
		Title:             info.Title,
		Company:           info.Company,
		Location:          info.Location,
		Description:       info.Description,
		Salary:            info.Salary,
		Requirements:      info.Requirements,
		Qualifications:    info.Qualifications,
		HardSkills:        info.HardSkills,
		SoftSkills:        info.SoftSkills,
		CompanyLogo:       info.CompanyLogo,
		CompanyBackground: info.CompanyBackground,
	}

	if err := jc.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// DeleteJob allows the owning recruiter or an admin to delete a job posting.
// Applications referencing the deleted job are kept.
// @Summary Delete given job posting ID
// @Description Only the recruiter that owns the posting or an admin can access this endpoint
// @Tags Jobs
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job posting"
// @Success 200 {object} utilities.MessageResponse "Successfully delete job posting"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to delete this posting"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	id := c.Param("id")

	job := model.Job{}
	if err := jc.DB.Where("id = ?", id).First(&job).Error; err != nil {
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
		// Allow admins to bypass ownership check
		if user.Realm != model.RealmAdmin {
			c.JSON(http.StatusForbidden, utilities.ErrorResponse{
				Error: "You are not allowed to delete this job",
			})
			return
		}
	}

	if err := jc.DB.Delete(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job deleted"})
}
