package repository

import (
	"database/sql"
	"errors"
	"time"

	"newshub/internal/models"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// Репост поста. Повторный репост той же пары (пользователь, пост) не
// ошибка: UNIQUE-ограничение отлавливает дубль, включая гонку двух
// одновременных запросов, и наружу уходит ErrAlreadyShared.
func AddShare(db *sql.DB, actor *models.User, postID int) error {
	if _, err := GetPost(db, postID); err != nil {
		return err
	}

	_, err := db.Exec(
		"INSERT INTO shares (post_id, user_id, shared_at) VALUES (?, ?, ?)",
		postID, actor.ID, time.Now().UTC(),
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return ErrAlreadyShared
		}
		return err
	}
	return nil
}

// Количество репостов поста
func CountShares(db *sql.DB, postID int) (int, error) {
	var n int
	err := db.QueryRow("SELECT COUNT(*) FROM shares WHERE post_id = ?", postID).Scan(&n)
	return n, err
}
