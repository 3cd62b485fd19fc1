package handlers

import (
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"newshub/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Максимальный размер загружаемого файла — 16MB
const MaxUploadSize = 16 << 20

var allowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
	"webp": true,
}

// Uploader сохраняет изображения постов под уникальными именами
type Uploader struct {
	Dir string
}

// Save достаёт файл из поля "image" и кладёт его в Dir.
// Пустое поле — не ошибка: возвращается пустое имя.
func (u *Uploader) Save(r *http.Request) (string, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", repository.NewValidationError("Не удалось прочитать файл изображения")
	}
	defer file.Close()

	if header.Filename == "" {
		return "", nil
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if !allowedExtensions[ext] {
		return "", repository.NewValidationError("Недопустимый формат изображения. Разрешены: PNG, JPG, JPEG, GIF, WEBP")
	}

	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return "", err
	}

	id := uuid.New()
	filename := hex.EncodeToString(id[:]) + "." + ext

	dst, err := os.Create(filepath.Join(u.Dir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(filepath.Join(u.Dir, filename))
		return "", err
	}
	return filename, nil
}

// Remove освобождает файл заменённого изображения
func (u *Uploader) Remove(filename string) {
	if filename == "" {
		return
	}
	if err := os.Remove(filepath.Join(u.Dir, filename)); err != nil && !os.IsNotExist(err) {
		logrus.Warn("Не удалось удалить файл изображения: ", err)
	}
}
