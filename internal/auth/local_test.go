package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/waselkoz/jobSphere/internal/database"
	"github.com/waselkoz/jobSphere/internal/model"
	"github.com/waselkoz/jobSphere/internal/utilities"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
)

var testDB *database.DBinstanceStruct
var testTeardown func(context.Context, ...testcontainers.TerminateOption) error
var testTokens = NewTokenService("test-secret", time.Hour)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	testTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
}

// Helper: validate access token in response and return its subject.
func assertValidAccessToken(t *testing.T, resp map[string]interface{}) string {
	t.Helper()
	tokenStr, ok := resp["access_token"].(string)
	assert.True(t, ok, "access_token not a string")
	userID, err := testTokens.Verify(tokenStr)
	assert.NoError(t, err)
	assert.NotEmpty(t, userID.String())
	return userID.String()
}

func TestRegisterCandidate(t *testing.T) {
	handler := NewLocalAuthHandler(testDB, testTokens)

	payload := map[string]string{
		"username": "test_candidate",
		"email":    "test_candidate@example.com",
		"password": "password123",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.Register, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())

	assert.Contains(t, resp, "access_token")
	subject := assertValidAccessToken(t, resp)

	userObj, ok := resp["user"].(map[string]interface{})
	assert.True(t, ok, "user key missing in response")
	assert.Equal(t, userObj["id"], subject, "JWT subject should match user id")
	assert.Equal(t, model.RealmCandidate, userObj["realm"], "realm should default to candidate")
	assert.NotContains(t, userObj, "password")

	// Registration creates an empty profile in the same transaction.
	var profile model.Profile
	err = testDB.Where("user_id = ?", subject).First(&profile).Error
	assert.NoError(t, err, "profile should be created alongside the user")
}

func TestRegisterRecruiterRealm(t *testing.T) {
	handler := NewLocalAuthHandler(testDB, testTokens)

	payload := map[string]string{
		"username": "test_recruiter",
		"email":    "test_recruiter@example.com",
		"password": "password123",
		"realm":    model.RealmRecruiter,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.Register, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())

	userObj, ok := resp["user"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, model.RealmRecruiter, userObj["realm"])
}

func TestRegisterInvalidRealm(t *testing.T) {
	handler := NewLocalAuthHandler(testDB, testTokens)

	payload := map[string]string{
		"username": "test_bad_realm",
		"email":    "test_bad_realm@example.com",
		"password": "password123",
		"realm":    "superuser",
	}
	rec, _, err := utilities.SimulateAPICall(handler.Register, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterMissingFields(t *testing.T) {
	handler := NewLocalAuthHandler(testDB, testTokens)

	payload := map[string]string{
		"username": "no_email_user",
		"password": "password123",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.Register, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, "must be provided")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	handler := NewLocalAuthHandler(testDB, testTokens)

	payload := map[string]string{
		"username": "another_candidate",
		"email":    database.TestCandidate1.Email, // seeded email
		"password": "password123",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.Register, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, "Email already registered")
}

func TestRegisterDuplicateEmailDifferentCase(t *testing.T) {
	handler := NewLocalAuthHandler(testDB, testTokens)

	payload := map[string]string{
		"username": "shouting_candidate",
		"email":    "CANDIDATE1@EXAMPLE.COM",
		"password": "password123",
	}
	rec, _, err := utilities.SimulateAPICall(handler.Register, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code, "email comparison should be case insensitive")
}

func TestLoginSuccess(t *testing.T) {
	handler := NewLocalAuthHandler(testDB, testTokens)

	payload := map[string]string{
		"email":    database.TestCandidate1.Email,
		"password": database.TestSeedPassword,
	}
	rec, resp, err := utilities.SimulateAPICall(handler.Login, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, "unexpected status, body: %s", rec.Body.String())

	subject := assertValidAccessToken(t, resp)
	assert.Equal(t, database.TestCandidate1.ID.String(), subject)
}

func TestLoginWrongPassword(t *testing.T) {
	handler := NewLocalAuthHandler(testDB, testTokens)

	payload := map[string]string{
		"email":    database.TestCandidate1.Email,
		"password": "definitely-wrong",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.Login, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Equal(t, "Invalid credentials", errMsg)
}

func TestLoginUnknownEmail(t *testing.T) {
	handler := NewLocalAuthHandler(testDB, testTokens)

	payload := map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	}
	rec, resp, err := utilities.SimulateAPICall(handler.Login, "/login", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Same message as a wrong password so the response does not leak
	// which emails are registered.
	errMsg, _ := resp["error"].(string)
	assert.Equal(t, "Invalid credentials", errMsg)
}

func TestLoginBannedAccount(t *testing.T) {
	handler := NewLocalAuthHandler(testDB, testTokens)

	// Register a throwaway account and ban it directly.
	payload := map[string]string{
		"username": "banned_user",
		"email":    "banned_user@example.com",
		"password": "password123",
	}
	rec, _, err := utilities.SimulateAPICall(handler.Register, "/register", http.MethodPost, payload)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	err = testDB.Model(&model.User{}).Where("email = ?", "banned_user@example.com").
		Update("is_banned", true).Error
	assert.NoError(t, err)

	rec, resp, err := utilities.SimulateAPICall(handler.Login, "/login", http.MethodPost, map[string]string{
		"email":    "banned_user@example.com",
		"password": "password123",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, "disabled")
}

func TestLoginBannedAccountWrongPassword(t *testing.T) {
	handler := NewLocalAuthHandler(testDB, testTokens)

	// The ban check runs before the password comparison.
	rec, _, err := utilities.SimulateAPICall(handler.Login, "/login", http.MethodPost, map[string]string{
		"email":    "banned_user@example.com",
		"password": "wrong-password",
	})
	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
