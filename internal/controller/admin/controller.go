// Package admin provides HTTP handlers for user administration.
package admin

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

// AdminController handles administration endpoints
type AdminController struct {
	DB *database.DBinstanceStruct
}

// NewAdminController creates a new instance of AdminController with the provided database connection.
func NewAdminController(db *database.DBinstanceStruct) *AdminController {
	return &AdminController{
		DB: db,
	}
}

// GetUsers returns every account, newest first, without password hashes.
// @Summary List all users
// @Description Only admin can access this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.User
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/users [get]
func (ac *AdminController) GetUsers(c *gin.Context) {
	users := []model.User{}
	if err := ac.DB.
		Preload("Warnings").
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, users)
}

// DeleteUser removes a non-admin account.
// @Summary Delete a user
// @Description Only admin can access this endpoint. Admin accounts cannot be deleted, including by other admins.
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param user_id path string true "ID of user to delete"
// @Success 200 {object} utilities.MessageResponse "Successfully delete user"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Target is an admin account"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/users/{user_id} [delete]
func (ac *AdminController) DeleteUser(c *gin.Context) {
	userID := c.Param("user_id")

	user := model.User{}
	if err := ac.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if user.Realm == model.RealmAdmin {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Cannot delete admin users",
		})
		return
	}

	if err := ac.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete user: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "User removed"})
}

type banResponse struct {
	Message  string `json:"message"`
	IsBanned bool   `json:"is_banned"`
}

// ToggleUserStatus flips the ban flag on a non-admin account.
// @Summary Ban or activate a user
// @Description Only admin can access this endpoint. Admin accounts cannot be banned.
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param user_id path string true "ID of user to toggle"
// @Success 200 {object} banResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Target is an admin account"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/users/{user_id}/status [put]
func (ac *AdminController) ToggleUserStatus(c *gin.Context) {
	userID := c.Param("user_id")

	user := model.User{}
	if err := ac.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if user.Realm == model.RealmAdmin {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Cannot ban admin users",
		})
		return
	}

	user.IsBanned = !user.IsBanned
	if err := ac.DB.Model(&user).Update("is_banned", user.IsBanned).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update user information: %s", err.Error()),
		})
		return
	}

	status := "activated"
	if user.IsBanned {
		status = "banned"
	}
	c.JSON(http.StatusOK, banResponse{
		Message:  fmt.Sprintf("User %s", status),
		IsBanned: user.IsBanned,
	})
}

type warningInfo struct {
	Message string `json:"message" binding:"required"`
}

// SendWarning appends a warning to a user account. Unlike ban and
// delete, warnings can be sent to admin accounts as well.
// @Summary Send warning to a user
// @Description Only admin can access this endpoint
// @Tags Admin
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param user_id path string true "ID of user to warn"
// @Param Warning body warningInfo true "Warning message"
// @Success 200 {object} utilities.MessageResponse "Successfully send warning"
// @Failure 400 {object} utilities.ErrorResponse "Missing message"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/users/{user_id}/warning [post]
func (ac *AdminController) SendWarning(c *gin.Context) {
	userID := c.Param("user_id")

	var info warningInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "A warning message must be provided",
		})
		return
	}

	user := model.User{}
	if err := ac.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	warning := model.Warning{
		UserID:  user.ID,
		Message: info.Message,
	}
	if err := ac.DB.Create(&warning).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create warning: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Warning sent successfully"})
}
