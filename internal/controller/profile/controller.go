// Package profile provides HTTP handlers for user profile operations.
package profile

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

// ProfileController handles profile related endpoints
type ProfileController struct {
	DB *database.DBinstanceStruct
}

// NewProfileController creates a new instance of ProfileController with the provided database connection.
func NewProfileController(db *database.DBinstanceStruct) *ProfileController {
	return &ProfileController{
		DB: db,
	}
}

// GetMyProfile returns the caller's profile.
// @Summary Get own profile
// @Tags Profile
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.Profile
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "No profile for this user"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile/me [get]
func (pc *ProfileController) GetMyProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	profile := model.Profile{}
	if err := pc.DB.
		Preload("User").
		Preload("Qualifications").
		Preload("Projects").
		Where("user_id = ?", user.ID).
		First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{
				Error: "There is no profile for this user",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile creates the caller's profile when absent, otherwise
// merges only the provided top-level fields. Fields left out of the
// request keep their stored values. Qualification and project lists are
// replaced wholesale when present.
// @Summary Create or update own profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Profile body model.EditableProfileInfo true "Profile fields to set"
// @Success 200 {object} model.Profile
// @Failure 400 {object} utilities.ErrorResponse "Malformed request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile [post]
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var info model.EditableProfileInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	profile := model.Profile{}
	err = pc.DB.
		Preload("Qualifications").
		Preload("Projects").
		Where("user_id = ?", user.ID).
		First(&profile).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		profile = model.Profile{
			UserID:              user.ID,
			EditableProfileInfo: info,
		}
		if err := pc.DB.Create(&profile).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to create profile: %s", err.Error()),
			})
			return
		}
		c.JSON(http.StatusOK, profile)
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&profile.EditableProfileInfo, &info)

	txErr := pc.DB.Transaction(func(tx *gorm.DB) error {
		// Replace child lists instead of appending to them
		if info.Qualifications != nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&model.Qualification{}).Error; err != nil {
				return err
			}
			for i := range profile.Qualifications {
				profile.Qualifications[i].ID = 0
				profile.Qualifications[i].ProfileID = profile.ID
			}
		}
		if info.Projects != nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&model.Project{}).Error; err != nil {
				return err
			}
			for i := range profile.Projects {
				profile.Projects[i].ID = 0
				profile.Projects[i].ProfileID = profile.ID
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&profile).Error
	})
	if txErr != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update profile: %s", txErr.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}
