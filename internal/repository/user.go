package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"newshub/internal/models"
	"newshub/internal/policy"

	sqlite3 "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

// Регистрация пользователя. Пароль хранится только в виде bcrypt-хеша.
func RegisterUser(db *sql.DB, username, email, password, confirm string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, NewValidationError("Все поля обязательны")
	}
	if password != confirm {
		return nil, NewValidationError("Пароли не совпадают")
	}

	// Предварительные проверки дают точное сообщение для формы,
	// гонку окончательно закрывают UNIQUE-ограничения в схеме.
	var exists int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE username = ?", username).Scan(&exists); err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, ErrDuplicateUsername
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", email).Scan(&exists); err != nil {
		return nil, err
	}
	if exists > 0 {
		return nil, ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := db.Exec(
		"INSERT INTO users (username, email, password_hash, is_admin, created_at) VALUES (?, ?, ?, 0, ?)",
		username, email, string(hashed), now,
	)
	if err != nil {
		return nil, mapUniqueUserError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.User{
		ID:        int(id),
		Username:  username,
		Email:     email,
		CreatedAt: now,
	}, nil
}

// Проверка пары логин/пароль. Возвращает одну и ту же ошибку и для
// несуществующего пользователя, и для неверного пароля.
func VerifyUser(db *sql.DB, username, password string) (*models.User, error) {
	var u models.User
	err := db.QueryRow(
		"SELECT id, username, email, password_hash, is_admin, created_at FROM users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

func GetUser(db *sql.DB, id int) (*models.User, error) {
	var u models.User
	err := db.QueryRow(
		"SELECT id, username, email, password_hash, is_admin, created_at FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func ListUsers(db *sql.DB) ([]models.User, error) {
	rows, err := db.Query("SELECT id, username, email, is_admin, created_at FROM users ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Удаление пользователя администратором. Вся связка удаляется одной
// транзакцией: сначала зависимые строки (включая чужие комментарии и
// репосты на постах удаляемого), потом посты, потом сам пользователь.
func DeleteUser(db *sql.DB, actor *models.User, userID int) error {
	if !policy.CanAccessAdmin(actor) {
		return ErrForbidden
	}
	if actor.ID == userID {
		return ErrSelfDeletion
	}
	if _, err := GetUser(db, userID); err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	steps := []string{
		"DELETE FROM comments WHERE post_id IN (SELECT id FROM posts WHERE author_id = ?)",
		"DELETE FROM shares WHERE post_id IN (SELECT id FROM posts WHERE author_id = ?)",
		"DELETE FROM posts WHERE author_id = ?",
		"DELETE FROM comments WHERE author_id = ?",
		"DELETE FROM shares WHERE user_id = ?",
		"DELETE FROM sessions WHERE user_id = ?",
		"DELETE FROM users WHERE id = ?",
	}
	for _, q := range steps {
		if _, err := tx.Exec(q, userID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Статистика для панели администратора
type Stats struct {
	TotalUsers    int
	TotalPosts    int
	TotalComments int
	TotalShares   int
}

func CountStats(db *sql.DB) (Stats, error) {
	var s Stats
	counts := []struct {
		query string
		dst   *int
	}{
		{"SELECT COUNT(*) FROM users", &s.TotalUsers},
		{"SELECT COUNT(*) FROM posts", &s.TotalPosts},
		{"SELECT COUNT(*) FROM comments", &s.TotalComments},
		{"SELECT COUNT(*) FROM shares", &s.TotalShares},
	}
	for _, c := range counts {
		if err := db.QueryRow(c.query).Scan(c.dst); err != nil {
			return Stats{}, err
		}
	}
	return s, nil
}

// Создание администратора при первом запуске, если его ещё нет
func EnsureAdmin(db *sql.DB, password string) error {
	var exists int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE username = 'admin'").Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(
		"INSERT INTO users (username, email, password_hash, is_admin, created_at) VALUES ('admin', 'admin@studentnews.com', ?, 1, ?)",
		string(hashed), time.Now().UTC(),
	)
	return err
}

func mapUniqueUserError(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		if strings.Contains(sqliteErr.Error(), "users.username") {
			return ErrDuplicateUsername
		}
		if strings.Contains(sqliteErr.Error(), "users.email") {
			return ErrDuplicateEmail
		}
	}
	return err
}
