// Package review provides HTTP handlers for company review operations.
package review

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waselkoz/jobSphere/internal/database"
	"github.com/waselkoz/jobSphere/internal/model"
	"github.com/waselkoz/jobSphere/internal/utilities"
)

// ReviewController handles company review related endpoints
type ReviewController struct {
	DB *database.DBinstanceStruct
}

// NewReviewController creates a new instance of ReviewController with the provided database connection.
func NewReviewController(db *database.DBinstanceStruct) *ReviewController {
	return &ReviewController{
		DB: db,
	}
}

// recentFeedLimit caps the homepage feed
const recentFeedLimit = 5

type reviewInfo struct {
	CompanyName string `json:"company_name" binding:"required"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Comment     string `json:"comment" binding:"required"`
	Role        string `json:"role" binding:"omitempty,oneof=Candidate Recruiter"`
}

// CreateReview handles the creation of a new company review.
// @Summary Create company review
// @Description Any authenticated user can access this endpoint, regardless of realm.
// @Tags Reviews
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Review body reviewInfo true "Review information, rating must be within [1,5]"
// @Success 201 {object} model.Review
// @Failure 400 {object} utilities.ErrorResponse "Missing fields or rating out of range"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /reviews [post]
func (rc *ReviewController) CreateReview(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info reviewInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Company name, rating within [1,5] and comment must be provided",
		})
		return
	}

	role := info.Role
	if role == "" {
		role = model.ReviewRoleCandidate
	}

	review := model.Review{
		CompanyName: info.CompanyName,
		UserID:      user.ID,
		Rating:      info.Rating,
		Comment:     info.Comment,
		Role:        role,
	}

	if err := rc.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create review: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// RecentReviews returns the homepage feed: high-rated reviews, newest
// first, capped.
// @Summary List recent high-rated reviews
// @Description Public endpoint. Returns reviews with rating >= 4, newest first, at most 5.
// @Tags Reviews
// @Produce json
// @Success 200 {array} model.Review
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /reviews/recent [get]
func (rc *ReviewController) RecentReviews(c *gin.Context) {
	reviews := []model.Review{}
	if err := rc.DB.
		Preload("User").
		Where("rating >= ?", 4).
		Order("created_at DESC").
		Limit(recentFeedLimit).
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch reviews: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// CompanyReviews returns every review for the exact company name, newest first.
// @Summary List reviews for a company
// @Description Public endpoint, exact company name match.
// @Tags Reviews
// @Produce json
// @Param companyName path string true "Company name"
// @Success 200 {array} model.Review
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /reviews/{companyName} [get]
func (rc *ReviewController) CompanyReviews(c *gin.Context) {
	companyName := c.Param("companyName")

	reviews := []model.Review{}
	if err := rc.DB.
		Preload("User").
		Where("company_name = ?", companyName).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch reviews: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, reviews)
}
