package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	// Init swagger doc
	_ "github.com/waselkoz/jobSphere/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/waselkoz/jobSphere/internal/auth"
	"github.com/waselkoz/jobSphere/internal/controller/admin"
	"github.com/waselkoz/jobSphere/internal/controller/application"
	"github.com/waselkoz/jobSphere/internal/controller/job"
	"github.com/waselkoz/jobSphere/internal/controller/profile"
	"github.com/waselkoz/jobSphere/internal/controller/review"
	"github.com/waselkoz/jobSphere/internal/middleware"
	"github.com/waselkoz/jobSphere/internal/model"
)

// uploadDir is where resume files land, served back under /uploads.
const uploadDir = "uploads"

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOriginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrigins := strings.Split(allowOriginsStr, ",")

	lAuth := auth.NewLocalAuthHandler(s.DB, s.Tokens)
	jobCtrl := job.NewJobController(s.DB)
	appCtrl := application.NewApplicationController(s.DB, uploadDir)
	profileCtrl := profile.NewProfileController(s.DB)
	reviewCtrl := review.NewReviewController(s.DB)
	adminCtrl := admin.NewAdminController(s.DB)

	r.Use(middleware.SafeHeader())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	r.Static("/uploads", "./"+uploadDir)

	api := r.Group("/api")
	api.Use(middleware.EnvRateLimitMiddleware())
	{
		authRoute := api.Group("/auth")
		{
			authRoute.POST("register", lAuth.Register)
			authRoute.POST("login", lAuth.Login)
			authRoute.GET("me", middleware.RequireAuth(s.DB, s.Tokens), lAuth.Me)
		}

		jobRoute := api.Group("/jobs")
		{
			jobRoute.GET("", jobCtrl.GetJobs)
			jobRoute.GET("/:id", jobCtrl.GetJobByID)

			needAuth := jobRoute.Group("")
			needAuth.Use(middleware.RequireAuth(s.DB, s.Tokens))
			{
				needAuth.GET("/my",
					middleware.CheckRealm(model.RealmRecruiter, model.RealmAdmin),
					jobCtrl.GetMyJobs)
				needAuth.POST("",
					middleware.CheckRealm(model.RealmRecruiter, model.RealmAdmin),
					jobCtrl.CreateJob)
				// Ownership check happens in the handler, any realm may try
				needAuth.DELETE("/:id", jobCtrl.DeleteJob)
			}
		}

		applicationRoute := api.Group("/applications")
		applicationRoute.Use(middleware.RequireAuth(s.DB, s.Tokens))
		{
			applicationRoute.POST("",
				middleware.CheckRealm(model.RealmCandidate, model.RealmAdmin),
				middleware.SizeLimit(10<<20),
				appCtrl.Apply)
			applicationRoute.GET("me", appCtrl.MyApplications)
			applicationRoute.GET("job/:jobId",
				middleware.CheckRealm(model.RealmRecruiter, model.RealmAdmin),
				appCtrl.JobApplications)
		}

		profileRoute := api.Group("/profile")
		profileRoute.Use(middleware.RequireAuth(s.DB, s.Tokens))
		{
			profileRoute.GET("me", profileCtrl.GetMyProfile)
			profileRoute.POST("", profileCtrl.UpdateProfile)
		}

		reviewRoute := api.Group("/reviews")
		{
			reviewRoute.GET("recent", reviewCtrl.RecentReviews)
			reviewRoute.GET(":companyName", reviewCtrl.CompanyReviews)
			reviewRoute.POST("", middleware.RequireAuth(s.DB, s.Tokens), reviewCtrl.CreateReview)
		}

		adminRoute := api.Group("/admin")
		adminRoute.Use(
			middleware.RequireAuth(s.DB, s.Tokens),
			middleware.CheckRealm(model.RealmAdmin),
		)
		{
			adminRoute.GET("users", adminCtrl.GetUsers)
			adminRoute.DELETE("users/:user_id", adminCtrl.DeleteUser)
			adminRoute.PUT("users/:user_id/status", adminCtrl.ToggleUserStatus)
			adminRoute.POST("users/:user_id/warning", adminCtrl.SendWarning)
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *Server) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
