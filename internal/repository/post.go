package repository

import (
	"database/sql"
	"time"

	"newshub/internal/models"
	"newshub/internal/policy"
)

const (
	maxTitleLength   = 200
	maxContentLength = 10000
)

// Создание поста. Категория не сверяется с фиксированным набором:
// сервер принимает любое непустое значение, набор задаёт только форму.
func CreatePost(db *sql.DB, author *models.User, title, content, category, imageFilename string) (*models.Post, error) {
	if title == "" || content == "" || category == "" {
		return nil, NewValidationError("Все поля обязательны")
	}
	if len(title) > maxTitleLength {
		return nil, NewValidationError("Название слишком длинное (до 200 символов)")
	}
	if len(content) > maxContentLength {
		return nil, NewValidationError("Текст слишком длинный (до 10000 символов)")
	}

	now := time.Now().UTC()
	res, err := db.Exec(
		"INSERT INTO posts (author_id, title, content, category, image_filename, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		author.ID, title, content, category, nullable(imageFilename), now, now,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &models.Post{
		ID:            int(id),
		AuthorID:      author.ID,
		Title:         title,
		Content:       content,
		Category:      category,
		ImageFilename: imageFilename,
		CreatedAt:     now,
		UpdatedAt:     now,
		Author:        author.Username,
	}, nil
}

func GetPost(db *sql.DB, id int) (*models.Post, error) {
	var p models.Post
	var image sql.NullString
	err := db.QueryRow(`
		SELECT p.id, p.author_id, p.title, p.content, p.category, p.image_filename, p.created_at, p.updated_at, u.username
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.id = ?
	`, id).Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.Category, &image, &p.CreatedAt, &p.UpdatedAt, &p.Author)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p.ImageFilename = image.String
	return &p, nil
}

// Обновление поста автором или администратором. Возвращает имя старого
// изображения, если newImage его заменило: файл освобождает вызывающий,
// уже после фиксации строки.
func UpdatePost(db *sql.DB, actor *models.User, postID int, title, content, category, newImage string) (oldImage string, err error) {
	post, err := GetPost(db, postID)
	if err != nil {
		return "", err
	}
	if !policy.CanModifyPost(actor, post) {
		return "", ErrForbidden
	}
	if title == "" || content == "" || category == "" {
		return "", NewValidationError("Все поля обязательны")
	}
	if len(title) > maxTitleLength {
		return "", NewValidationError("Название слишком длинное (до 200 символов)")
	}
	if len(content) > maxContentLength {
		return "", NewValidationError("Текст слишком длинный (до 10000 символов)")
	}

	image := post.ImageFilename
	if newImage != "" {
		image = newImage
	}

	_, err = db.Exec(
		"UPDATE posts SET title = ?, content = ?, category = ?, image_filename = ?, updated_at = ? WHERE id = ?",
		title, content, category, nullable(image), time.Now().UTC(), postID,
	)
	if err != nil {
		return "", err
	}

	if newImage != "" && post.ImageFilename != "" {
		return post.ImageFilename, nil
	}
	return "", nil
}

// Удаление поста вместе с комментариями и репостами одной транзакцией
func DeletePost(db *sql.DB, actor *models.User, postID int) error {
	post, err := GetPost(db, postID)
	if err != nil {
		return err
	}
	if !policy.CanModifyPost(actor, post) {
		return ErrForbidden
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM comments WHERE post_id = ?", postID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM shares WHERE post_id = ?", postID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM posts WHERE id = ?", postID); err != nil {
		return err
	}

	return tx.Commit()
}

// Последние посты для главной страницы
func ListRecent(db *sql.DB, limit int) ([]models.Post, error) {
	return queryPosts(db, `
		SELECT p.id, p.author_id, p.title, p.content, p.category, p.image_filename, p.created_at, p.updated_at, u.username
		FROM posts p
		JOIN users u ON p.author_id = u.id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ?
	`, limit)
}

// Страница ленты. Нумерация с единицы, страница за пределами ленты —
// пустой результат. Сортировка created_at DESC с добитием по id, чтобы
// повторные запросы при неизменной базе давали одинаковый порядок.
func ListPage(db *sql.DB, page, pageSize int, category string) ([]models.Post, int, error) {
	if page < 1 {
		page = 1
	}

	var total int
	var err error
	if category != "" {
		err = db.QueryRow("SELECT COUNT(*) FROM posts WHERE category = ?", category).Scan(&total)
	} else {
		err = db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&total)
	}
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT p.id, p.author_id, p.title, p.content, p.category, p.image_filename, p.created_at, p.updated_at, u.username
		FROM posts p
		JOIN users u ON p.author_id = u.id`
	args := []interface{}{}
	if category != "" {
		query += " WHERE p.category = ?"
		args = append(args, category)
	}
	query += " ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?"
	args = append(args, pageSize, (page-1)*pageSize)

	posts, err := queryPosts(db, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// Все посты для панели администратора
func AllPosts(db *sql.DB) ([]models.Post, error) {
	return queryPosts(db, `
		SELECT p.id, p.author_id, p.title, p.content, p.category, p.image_filename, p.created_at, p.updated_at, u.username
		FROM posts p
		JOIN users u ON p.author_id = u.id
		ORDER BY p.created_at DESC, p.id DESC
	`)
}

// Посты пользователя для страницы профиля
func PostsByAuthor(db *sql.DB, authorID int) ([]models.Post, error) {
	return queryPosts(db, `
		SELECT p.id, p.author_id, p.title, p.content, p.category, p.image_filename, p.created_at, p.updated_at, u.username
		FROM posts p
		JOIN users u ON p.author_id = u.id
		WHERE p.author_id = ?
		ORDER BY p.created_at DESC, p.id DESC
	`, authorID)
}

func queryPosts(db *sql.DB, query string, args ...interface{}) ([]models.Post, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		var image sql.NullString
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Content, &p.Category, &image, &p.CreatedAt, &p.UpdatedAt, &p.Author); err != nil {
			return nil, err
		}
		p.ImageFilename = image.String
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
