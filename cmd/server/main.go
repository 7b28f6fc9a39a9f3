// Command server runs the JobSphere HTTP API.
package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/waselkoz/jobSphere/internal/server"
)

// @title JobSphere API
// @version 1.0
// @description Job board backend: accounts, job postings, applications, profiles and company reviews.
// @BasePath /api
func main() {
	srv := server.NewServer()

	log.Printf("Server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %s", err)
	}
}
