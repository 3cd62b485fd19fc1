package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

const sessionTTL = 24 * time.Hour

// Создание сессии. Старые сессии пользователя удаляются:
// активной остаётся одна.
func CreateSession(db *sql.DB, userID int) (id string, expires time.Time, err error) {
	if _, err = db.Exec("DELETE FROM sessions WHERE user_id = ?", userID); err != nil {
		return "", time.Time{}, err
	}

	id = uuid.New().String()
	expires = time.Now().Add(sessionTTL)
	_, err = db.Exec("INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)", id, userID, expires)
	if err != nil {
		return "", time.Time{}, err
	}
	return id, expires, nil
}

// Пользователь по идентификатору сессии; просроченная сессия не годится
func SessionUserID(db *sql.DB, sessionID string) (int, bool) {
	var userID int
	var expiresAt time.Time
	err := db.QueryRow("SELECT user_id, expires_at FROM sessions WHERE id = ?", sessionID).
		Scan(&userID, &expiresAt)
	if err != nil {
		return 0, false
	}
	if time.Now().UTC().After(expiresAt.UTC()) {
		return 0, false
	}
	return userID, true
}

func DeleteSession(db *sql.DB, sessionID string) error {
	_, err := db.Exec("DELETE FROM sessions WHERE id = ?", sessionID)
	return err
}
