package profile

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/waselkoz/jobSphere/internal/auth"
	"github.com/waselkoz/jobSphere/internal/database"
	"github.com/waselkoz/jobSphere/internal/middleware"
	"github.com/waselkoz/jobSphere/internal/model"
	"github.com/waselkoz/jobSphere/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
)

var testDB *database.DBinstanceStruct
var testTokens = auth.NewTokenService("test-secret", time.Hour)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	var err error
	var teardown func(context.Context, ...testcontainers.TerminateOption) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
}

func newTestRouter() *gin.Engine {
	r := gin.Default()
	pc := NewProfileController(testDB)

	r.GET("/profile/me", middleware.RequireAuth(testDB, testTokens), pc.GetMyProfile)
	r.POST("/profile", middleware.RequireAuth(testDB, testTokens), pc.UpdateProfile)

	return r
}

func TestGetMyProfile(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestCandidate1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := newTestRouter()

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/profile/me", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestProfile1.Title, resp["title"])
	assert.Equal(t, database.TestProfile1.Bio, resp["bio"])

	userObj, ok := resp["user"].(map[string]interface{})
	assert.True(t, ok, "user should be preloaded")
	assert.Equal(t, database.TestCandidate1.Email, userObj["email"])
	assert.NotContains(t, userObj, "password")
}

func TestGetMyProfileNotFound(t *testing.T) {
	// Seeded recruiters have no profile rows.
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestRecruiter2.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := newTestRouter()

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/profile/me", http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, "no profile")
}

func TestUpdateProfileCreatesWhenAbsent(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := newTestRouter()

	body := gin.H{
		"title":    "Talent Lead",
		"location": "Berlin",
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/profile", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code, "unexpected status, body: %s", rec.Body.String())
	assert.Equal(t, "Talent Lead", resp["title"])

	var profile model.Profile
	err = testDB.Where("user_id = ?", database.TestRecruiter1.ID).First(&profile).Error
	assert.NoError(t, err)
	assert.Equal(t, "Talent Lead", profile.Title)
}

func TestUpdateProfileMergeKeepsUnsetFields(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestCandidate1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := newTestRouter()

	body := gin.H{
		"bio": "Now four years building REST services.",
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/profile", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code, "unexpected status, body: %s", rec.Body.String())
	assert.Equal(t, "Now four years building REST services.", resp["bio"])
	assert.Equal(t, database.TestProfile1.Title, resp["title"], "unset field must keep its stored value")
	assert.Equal(t, database.TestProfile1.Location, resp["location"])
}

func TestUpdateProfileReplacesChildLists(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestCandidate2.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := newTestRouter()

	body := gin.H{
		"qualifications": []gin.H{
			{"degree": "BSc Computer Science", "institution": "TU Lisbon", "year": "2019"},
			{"degree": "MSc Data Engineering", "institution": "TU Lisbon", "year": "2021"},
		},
	}
	rec, _ := testutil.MakeJSONRequest(body, token, r, "/profile", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code, "unexpected status, body: %s", rec.Body.String())

	// A second submit replaces the list instead of appending to it.
	body = gin.H{
		"qualifications": []gin.H{
			{"degree": "MSc Data Engineering", "institution": "TU Lisbon", "year": "2021"},
		},
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/profile", http.MethodPost)
	assert.Equal(t, http.StatusOK, rec.Code)

	quals, ok := resp["qualifications"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, quals, 1)

	var count int64
	var profile model.Profile
	err = testDB.Where("user_id = ?", database.TestCandidate2.ID).First(&profile).Error
	assert.NoError(t, err)
	err = testDB.Model(&model.Qualification{}).Where("profile_id = ?", profile.ID).Count(&count).Error
	assert.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUpdateProfileSocialLinks(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestCandidate1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := newTestRouter()

	body := gin.H{
		"social_links": gin.H{
			"linkedin": "https://linkedin.com/in/candidate1",
		},
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/profile", http.MethodPost)

	assert.Equal(t, http.StatusOK, rec.Code)
	links, ok := resp["social_links"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "https://linkedin.com/in/candidate1", links["linkedin"])
}

func TestUpdateProfileMalformedBody(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestCandidate1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r := newTestRouter()

	body := gin.H{
		"skills": "not-an-array",
	}
	rec, _ := testutil.MakeJSONRequest(body, token, r, "/profile", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
