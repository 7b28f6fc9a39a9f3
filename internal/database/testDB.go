package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	m "github.com/waselkoz/jobSphere/internal/model"
	"github.com/waselkoz/jobSphere/internal/utilities"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported test users & profiles
var (
	TestAdminUser  m.User
	TestCandidate1 m.User
	TestCandidate2 m.User
	TestRecruiter1 m.User
	TestRecruiter2 m.User

	TestProfile1 m.Profile
	TestProfile2 m.Profile

	// Add exported plain password
	TestSeedPassword = "SeedPass123!"

	// Exported seeded jobs
	TestJob1 m.Job
	TestJob2 m.Job
	TestJob3 m.Job
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {

	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	// Database configuration
	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	config := &DBConfig{
		UseConstr: true,
		Constr:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(config)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	// Seed sample candidates, recruiters and jobs
	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// seedTestData inserts sample candidate and recruiter accounts plus a
// few jobs if the database is empty.
func seedTestData(db *DBinstanceStruct) error {
	// An admin may already exist when NewDBInstance ran with ADMIN_*
	// env set, so key the check on a seed account instead.
	var seedCount int64
	if err := db.Model(&m.User{}).Where("username = ?", "candidate_1").Count(&seedCount).Error; err != nil {
		return err
	}

	if seedCount > 0 {
		return loadTestData(db)
	}

	userSpecs := []struct {
		username string
		email    string
		realm    string
	}{
		{"candidate_1", "candidate1@example.com", m.RealmCandidate},
		{"candidate_2", "candidate2@example.com", m.RealmCandidate},
		{"recruiter_1", "recruiter1@example.com", m.RealmRecruiter},
		{"recruiter_2", "recruiter2@example.com", m.RealmRecruiter},
		{"admin_user", "admin@example.com", m.RealmAdmin},
	}

	// Pre-hash shared password for all seeded users
	hashedPwd, errHash := utilities.HashPassword(TestSeedPassword)
	if errHash != nil {
		return errHash
	}

	users := make([]m.User, 0, len(userSpecs))
	for _, s := range userSpecs {
		users = append(users, m.User{
			ID:       uuid.New(),
			Username: s.username,
			Email:    s.email,
			Realm:    s.realm,
			Password: hashedPwd,
		})
	}

	if err := db.Create(&users).Error; err != nil {
		return err
	}

	// Map created users to exported variables
	for _, u := range users {
		switch u.Username {
		case "candidate_1":
			TestCandidate1 = u
		case "candidate_2":
			TestCandidate2 = u
		case "recruiter_1":
			TestRecruiter1 = u
		case "recruiter_2":
			TestRecruiter2 = u
		case "admin_user":
			TestAdminUser = u
		}
	}

	profiles := []m.Profile{
		{
			UserID: TestCandidate1.ID,
			EditableProfileInfo: m.EditableProfileInfo{
				Title:    "Backend Developer",
				Bio:      "Three years building REST services.",
				Location: "Berlin",
				Skills:   pq.StringArray{"Go", "PostgreSQL"},
				SocialLinks: m.SocialLinks{
					Github: "https://github.com/candidate1",
				},
			},
		},
		{
			UserID: TestCandidate2.ID,
			EditableProfileInfo: m.EditableProfileInfo{
				Title:    "Data Engineer",
				Bio:      "Pipelines and warehouses.",
				Location: "Remote",
				Skills:   pq.StringArray{"Python", "SQL"},
			},
		},
	}
	if err := db.Create(&profiles).Error; err != nil {
		return err
	}

	TestProfile1 = profiles[0]
	TestProfile2 = profiles[1]

	// Seed jobs (only if none exist yet)
	var jobCount int64
	if err := db.Model(&m.Job{}).Count(&jobCount).Error; err != nil {
		return err
	}
	if jobCount == 0 {
		jobs := []m.Job{
			{
				RecruiterID: &TestRecruiter1.ID,
				Title:       "Backend Engineer",
				Company:     "TechNova",
				Location:    "Berlin (Hybrid)",
				Description: "Work on Go microservices and database layers.",
				Salary:      "70000 EUR",
				HardSkills:  pq.StringArray{"Go", "PostgreSQL", "Docker"},
				SoftSkills:  pq.StringArray{"Teamwork"},
			},
			{
				RecruiterID: &TestRecruiter1.ID,
				Title:       "Frontend Developer",
				Company:     "TechNova",
				Location:    "Remote",
				Description: "Build the component library in React.",
				Salary:      "60000 EUR",
				HardSkills:  pq.StringArray{"React", "TypeScript"},
				SoftSkills:  pq.StringArray{"Communication"},
			},
			{
				RecruiterID: &TestRecruiter2.ID,
				Title:       "Data Analyst",
				Company:     "DataForge",
				Location:    "Lisbon (On-site)",
				Description: "Support data cleansing and dashboard creation.",
				Salary:      "45000 EUR",
				HardSkills:  pq.StringArray{"SQL", "Tableau"},
				SoftSkills:  pq.StringArray{"Attention to detail"},
			},
		}

		if err := db.Create(&jobs).Error; err != nil {
			return err
		}
		if len(jobs) > 0 {
			TestJob1 = jobs[0]
		}
		if len(jobs) > 1 {
			TestJob2 = jobs[1]
		}
		if len(jobs) > 2 {
			TestJob3 = jobs[2]
		}
	}

	return nil
}

// loadTestData populates exported variables when records already exist.
func loadTestData(db *DBinstanceStruct) error {
	var users []m.User
	if err := db.Where("username IN ?", []string{
		"candidate_1", "candidate_2", "recruiter_1", "recruiter_2", "admin_user",
	}).Find(&users).Error; err != nil {
		return err
	}
	for _, u := range users {
		switch u.Username {
		case "candidate_1":
			TestCandidate1 = u
		case "candidate_2":
			TestCandidate2 = u
		case "recruiter_1":
			TestRecruiter1 = u
		case "recruiter_2":
			TestRecruiter2 = u
		case "admin_user":
			TestAdminUser = u
		}
	}

	_ = db.First(&TestProfile1, "user_id = ?", TestCandidate1.ID).Error
	_ = db.First(&TestProfile2, "user_id = ?", TestCandidate2.ID).Error

	// Load first three jobs deterministically
	var jobs []m.Job
	if err := db.Order("id ASC").Limit(3).Find(&jobs).Error; err == nil {
		if len(jobs) > 0 {
			TestJob1 = jobs[0]
		}
		if len(jobs) > 1 {
			TestJob2 = jobs[1]
		}
		if len(jobs) > 2 {
			TestJob3 = jobs[2]
		}
	}

	return nil
}
