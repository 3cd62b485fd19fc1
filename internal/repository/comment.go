package repository

import (
	"database/sql"
	"time"

	"newshub/internal/models"
	"newshub/internal/policy"
)

// Добавление комментария к существующему посту
func AddComment(db *sql.DB, actor *models.User, postID int, content string) (*models.Comment, error) {
	if content == "" {
		return nil, NewValidationError("Комментарий не может быть пустым")
	}
	if _, err := GetPost(db, postID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := db.Exec(
		"INSERT INTO comments (post_id, author_id, content, created_at) VALUES (?, ?, ?, ?)",
		postID, actor.ID, content, now,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Comment{
		ID:        int(id),
		PostID:    postID,
		AuthorID:  actor.ID,
		Author:    actor.Username,
		Content:   content,
		CreatedAt: now,
	}, nil
}

func GetComment(db *sql.DB, id int) (*models.Comment, error) {
	var c models.Comment
	err := db.QueryRow(`
		SELECT c.id, c.post_id, c.author_id, u.username, c.content, c.created_at
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.id = ?
	`, id).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Author, &c.Content, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Удаление комментария автором или администратором.
// Возвращает post_id для редиректа на страницу поста.
func DeleteComment(db *sql.DB, actor *models.User, commentID int) (int, error) {
	comment, err := GetComment(db, commentID)
	if err != nil {
		return 0, err
	}
	if !policy.CanModifyComment(actor, comment) {
		return 0, ErrForbidden
	}

	if _, err := db.Exec("DELETE FROM comments WHERE id = ?", commentID); err != nil {
		return 0, err
	}
	return comment.PostID, nil
}

// Комментарии поста, свежие сверху
func CommentsByPost(db *sql.DB, postID int) ([]models.Comment, error) {
	return queryComments(db, `
		SELECT c.id, c.post_id, c.author_id, u.username, c.content, c.created_at
		FROM comments c
		JOIN users u ON c.author_id = u.id
		WHERE c.post_id = ?
		ORDER BY c.created_at DESC, c.id DESC
	`, postID)
}

// Все комментарии для панели администратора
func AllComments(db *sql.DB) ([]models.Comment, error) {
	return queryComments(db, `
		SELECT c.id, c.post_id, c.author_id, u.username, c.content, c.created_at
		FROM comments c
		JOIN users u ON c.author_id = u.id
		ORDER BY c.created_at DESC, c.id DESC
	`)
}

func queryComments(db *sql.DB, query string, args ...interface{}) ([]models.Comment, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Author, &c.Content, &c.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
