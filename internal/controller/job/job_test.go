package job

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

func newTestRouter() (*gin.Engine, *JobController) {
	r := gin.Default()
	jc := NewJobController(testDB)

	r.GET("/jobs", jc.GetJobs)
	r.GET("/jobs/my", middleware.RequireAuth(testDB, testTokens),
		middleware.CheckRealm(model.RealmRecruiter, model.RealmAdmin), jc.GetMyJobs)
	r.GET("/jobs/:id", jc.GetJobByID)
	r.POST("/jobs", middleware.RequireAuth(testDB, testTokens),
		middleware.CheckRealm(model.RealmRecruiter, model.RealmAdmin), jc.CreateJob)
	r.DELETE("/jobs/:id", middleware.RequireAuth(testDB, testTokens), jc.DeleteJob)

	return r, jc
}

func TestGetJobsPublic(t *testing.T) {
	r, _ := newTestRouter()

	rec, resp := testutil.MakeJSONListRequest(nil, "", r, "/jobs", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.GreaterOrEqual(t, len(resp), 3, "seeded jobs should be listed")
}

func TestGetJobsKeywordMatchesTitle(t *testing.T) {
	r, _ := newTestRouter()

	rec, resp := testutil.MakeJSONListRequest(nil, "", r, "/jobs?keyword=backend", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, resp)
	for _, job := range resp {
		title, _ := job["title"].(string)
		assert.Contains(t, []string{database.TestJob1.Title}, title)
	}
}

func TestGetJobsKeywordMatchesHardSkill(t *testing.T) {
	r, _ := newTestRouter()

	// "tableau" only appears as a hard skill on the seeded analyst job.
	rec, resp := testutil.MakeJSONListRequest(nil, "", r, "/jobs?keyword=tableau", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp, 1)
	assert.Equal(t, database.TestJob3.Title, resp[0]["title"])
}

func TestGetJobsKeywordExcludes(t *testing.T) {
	r, _ := newTestRouter()

	rec, resp := testutil.MakeJSONListRequest(nil, "", r, "/jobs?keyword=zeppelin", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, resp, "keyword with no matches should return an empty list, not an error")
}

func TestGetJobByID(t *testing.T) {
	r, _ := newTestRouter()

	rec, resp := testutil.MakeJSONRequest(nil, "", r,
		fmt.Sprintf("/jobs/%d", database.TestJob1.ID), http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(database.TestJob1.ID), resp["id"])
	assert.Equal(t, database.TestJob1.Title, resp["title"])
	assert.Equal(t, database.TestJob1.Company, resp["company"])
}

func TestGetJobByIDNotFound(t *testing.T) {
	r, _ := newTestRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/jobs/999999", http.MethodGet)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMyJobsScopedToCaller(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r, _ := newTestRouter()

	rec, resp := testutil.MakeJSONListRequest(nil, token, r, "/jobs/my", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, resp)
	for _, job := range resp {
		assert.Equal(t, database.TestRecruiter1.ID.String(), job["recruiter_id"],
			"listing must not include other recruiters' jobs")
	}
}

func TestGetMyJobsForbiddenForCandidate(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestCandidate1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r, _ := newTestRouter()

	rec, _ := testutil.MakeJSONListRequest(nil, token, r, "/jobs/my", http.MethodGet)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateJob(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestRecruiter2.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r, _ := newTestRouter()

	body := gin.H{
		"title":       "Platform Engineer",
		"company":     "DataForge",
		"location":    "Remote",
		"description": "Own the deployment pipeline.",
		"salary":      "65000 EUR",
		"hard_skills": []string{"Kubernetes", "Terraform"},
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusCreated, rec.Code, "unexpected status, body: %s", rec.Body.String())
	assert.Equal(t, "Platform Engineer", resp["title"])
	assert.Equal(t, database.TestRecruiter2.ID.String(), resp["recruiter_id"],
		"ownership comes from the token, not the payload")
}

func TestCreateJobMissingRequiredFields(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r, _ := newTestRouter()

	body := gin.H{
		"title": "No description here",
	}
	rec, _ := testutil.MakeJSONRequest(body, token, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateJobForbiddenForCandidate(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestCandidate1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r, _ := newTestRouter()

	body := gin.H{
		"title":       "Sneaky Posting",
		"company":     "Nope Inc",
		"location":    "Nowhere",
		"description": "Should never be created.",
	}
	rec, _ := testutil.MakeJSONRequest(body, token, r, "/jobs", http.MethodPost)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteJobByOwner(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r, _ := newTestRouter()

	// Create a throwaway job so seeded fixtures stay intact.
	body := gin.H{
		"title":       "Temporary Role",
		"company":     "TechNova",
		"location":    "Berlin",
		"description": "Will be deleted shortly.",
	}
	rec, resp := testutil.MakeJSONRequest(body, token, r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	jobID := uint(resp["id"].(float64))

	rec, _ = testutil.MakeJSONRequest(nil, token, r, fmt.Sprintf("/jobs/%d", jobID), http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	err = testDB.Model(&model.Job{}).Where("id = ?", jobID).Count(&count).Error
	assert.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteJobForbiddenForOtherRecruiter(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestRecruiter2.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r, _ := newTestRouter()

	rec, _ := testutil.MakeJSONRequest(nil, token, r,
		fmt.Sprintf("/jobs/%d", database.TestJob1.ID), http.MethodDelete)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The posting must survive a rejected delete.
	var count int64
	err = testDB.Model(&model.Job{}).Where("id = ?", database.TestJob1.ID).Count(&count).Error
	assert.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestDeleteJobByAdmin(t *testing.T) {
	recruiterToken, err := auth.GetAccessToken(t, testDB, testTokens, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	adminToken, err := auth.GetAccessToken(t, testDB, testTokens, database.TestAdminUser.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r, _ := newTestRouter()

	body := gin.H{
		"title":       "Moderated Posting",
		"company":     "TechNova",
		"location":    "Berlin",
		"description": "Admin removes this one.",
	}
	rec, resp := testutil.MakeJSONRequest(body, recruiterToken, r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	jobID := uint(resp["id"].(float64))

	rec, _ = testutil.MakeJSONRequest(nil, adminToken, r, fmt.Sprintf("/jobs/%d", jobID), http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteJobNotFound(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, testTokens, database.TestRecruiter1.Email, database.TestSeedPassword)
	assert.NoError(t, err)
	r, _ := newTestRouter()

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/jobs/999999", http.MethodDelete)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
