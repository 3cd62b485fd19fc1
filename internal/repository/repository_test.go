package repository_test

import (
	"database/sql"
	"testing"

	dbinit "newshub/internal/db"
	"newshub/internal/models"
	"newshub/internal/repository"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := dbinit.Open(":memory:")
	require.NoError(t, err)
	// Пул из одного соединения: иначе каждый коннект получает свою пустую базу
	db.SetMaxOpenConns(1)
	require.NoError(t, dbinit.InitDatabase(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, db *sql.DB, username string) *models.User {
	t.Helper()
	u, err := repository.RegisterUser(db, username, username+"@student.edu", "student123", "student123")
	require.NoError(t, err)
	return u
}

func createAdmin(t *testing.T, db *sql.DB, password string) *models.User {
	t.Helper()
	require.NoError(t, repository.EnsureAdmin(db, password))
	u, err := repository.VerifyUser(db, "admin", password)
	require.NoError(t, err)
	return u
}

func createPost(t *testing.T, db *sql.DB, author *models.User, title string) *models.Post {
	t.Helper()
	p, err := repository.CreatePost(db, author, title, "Текст поста", "Events", "")
	require.NoError(t, err)
	return p
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
