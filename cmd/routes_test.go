package main

import (
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"rentloBack/internal/config"
)

// The rental approve/remove and post disable/enable actions ride on GET,
// matching the mobile client's wire contract.
func TestRouteMethods(t *testing.T) {
	infoLog := log.New(os.Stdout, "INFO\t", 0)
	errorLog := log.New(os.Stderr, "ERROR\t", 0)
	app := initializeApp(nil, config.Config{}, nil, errorLog, infoLog)
	h := app.routes()

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/rentalRequest/approve/5", http.StatusUnauthorized},
		{http.MethodGet, "/api/rentalRequest/remove/5", http.StatusUnauthorized},
		{http.MethodGet, "/api/post/5/disable", http.StatusUnauthorized},
		{http.MethodGet, "/api/post/5/enable", http.StatusUnauthorized},
		{http.MethodPost, "/api/rentalRequest/approve/5", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/api/rentalRequest/remove/5", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/nope", http.StatusNotFound},
	}
	for _, c := range cases {
		req := httptest.NewRequest(c.method, c.path, nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != c.status {
			t.Errorf("%s %s: expected %d, got %d", c.method, c.path, c.status, rec.Code)
		}
	}
}
