package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/waselkoz/jobSphere/internal/database"
	"github.com/waselkoz/jobSphere/internal/model"
	"github.com/waselkoz/jobSphere/internal/utilities"
)

// LocalAuthHandler holds DB reference and token service for handler methods.
type LocalAuthHandler struct {
	DB     *database.DBinstanceStruct
	Tokens *TokenService
}

// NewLocalAuthHandler creates a new instance of LocalAuthHandler with the
// provided database connection and token service.
func NewLocalAuthHandler(db *database.DBinstanceStruct, tokens *TokenService) *LocalAuthHandler {
	return &LocalAuthHandler{
		DB:     db,
		Tokens: tokens,
	}
}

type registerInfo struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Realm    string `json:"realm" binding:"omitempty,oneof=admin recruiter candidate"`
}

type loginInfo struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	User        model.User `json:"user"`
	AccessToken string     `json:"access_token"`
}

// Register function handles local registration by receiving username, email and password.
// The user and its empty profile are created in one transaction so a
// failure partway leaves no half-registered account behind.
// @Summary Register a new account
// @Description Email must be unique (case insensitive). Realm defaults to candidate when omitted.
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body registerInfo true "Registration info"
// @Success 201 {object} authResponse "Newly created account with access token"
// @Failure 400 {object} utilities.ErrorResponse "Missing or malformed fields"
// @Failure 409 {object} utilities.ErrorResponse "Email already registered"
// @Failure 500 {object} utilities.ErrorResponse "Database or password hashing error"
// @Router /auth/register [post]
func (lh *LocalAuthHandler) Register(c *gin.Context) {
	var info registerInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Username, email and password must be provided",
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))

	var existing model.User
	err := lh.DB.Where("email = ?", email).First(&existing).Error

	switch {
	case err == nil:
		c.JSON(http.StatusConflict, utilities.ErrorResponse{
			Error: "Email already registered",
		})
		return

	case errors.Is(err, gorm.ErrRecordNotFound):
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	hashedPassword, err := utilities.HashPassword(info.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed hash password: %s", err.Error()),
		})
		return
	}

	realm := info.Realm
	if realm == "" {
		realm = model.RealmCandidate
	}

	user := model.User{
		Username: info.Username,
		Email:    email,
		Password: hashedPassword,
		Realm:    realm,
		Warnings: []model.Warning{},
	}

	txErr := lh.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile := model.Profile{UserID: user.ID}
		return tx.Create(&profile).Error
	})
	if txErr != nil {
		var pqErr *pgconn.PgError
		// Unique violation on the email index: the pre-check lost a race
		if errors.As(txErr, &pqErr) && pqErr.Code == "23505" {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: "Email already registered",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create user: %s", txErr.Error()),
		})
		return
	}

	accessToken, err := lh.Tokens.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		User:        user,
		AccessToken: accessToken,
	})
}

// Login function handles local login by receiving email and password.
// A banned account is rejected before the password comparison so the
// client can show a "disabled" message instead of "wrong password".
// @Summary Login with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param Info body loginInfo true "Credentials for login"
// @Success 200 {object} authResponse "Account with access token"
// @Failure 400 {object} utilities.ErrorResponse "Missing fields"
// @Failure 401 {object} utilities.ErrorResponse "Email not exist or password incorrect"
// @Failure 403 {object} utilities.ErrorResponse "Account is banned"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/login [post]
func (lh *LocalAuthHandler) Login(c *gin.Context) {
	var info loginInfo

	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Email or password is not provided",
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))

	var user model.User
	err := lh.DB.Preload("Warnings").Where("email = ?", email).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Invalid credentials",
		})
		return

	case err == nil:
		// Do nothing

	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %s", err.Error()),
		})
		return
	}

	if user.IsBanned {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Your account has been disabled. Please contact support.",
		})
		return
	}

	if !utilities.VerifyPassword(info.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{
			Error: "Invalid credentials",
		})
		return
	}

	accessToken, err := lh.Tokens.Issue(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, authResponse{
		User:        user,
		AccessToken: accessToken,
	})
}

// Me returns the authenticated account attached by the auth middleware.
// @Summary Get current account
// @Tags Auth
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.User
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /auth/me [get]
func (lh *LocalAuthHandler) Me(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}
