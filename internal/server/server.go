// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"github.com/waselkoz/jobSphere/internal/auth"
	"github.com/waselkoz/jobSphere/internal/database"
)

// Server holds the port, database instance and token service every
// handler is wired with.
type Server struct {
	port int

	DB     *database.DBinstanceStruct
	Tokens *auth.TokenService
}

// NewServer construct new http.Server instance with all routes registered
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))

	db, err := database.NewDBInstance(database.ConfigFromEnv())
	if err != nil {
		log.Fatalf("Database failed to initialize: %s", err)
	}

	s := &Server{
		port:   port,
		DB:     db,
		Tokens: auth.TokenServiceFromEnv(),
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
