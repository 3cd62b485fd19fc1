package handlers_test

import (
	"database/sql"
	"html/template"
	"net/http"
	"testing"

	dbinit "newshub/internal/db"
	"newshub/internal/models"
	"newshub/internal/repository"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := dbinit.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// Одна in-memory база на все запросы теста
	db.SetMaxOpenConns(1)
	if err := dbinit.InitDatabase(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func loadTemplates(t *testing.T) *template.Template {
	t.Helper()
	return template.Must(template.ParseGlob("../../templates/*.html"))
}

func registerTestUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()
	u, err := repository.RegisterUser(db, username, username+"@student.edu", "123456", "123456")
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func sessionCookie(t *testing.T, db *sql.DB, userID int) *http.Cookie {
	t.Helper()
	id, _, err := repository.CreateSession(db, userID)
	if err != nil {
		t.Fatal(err)
	}
	return &http.Cookie{Name: "session_id", Value: id}
}
