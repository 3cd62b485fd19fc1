package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"newshub/internal/handlers"
	"newshub/internal/repository"
)

func multipartUpload(t *testing.T, filename string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("не настоящая картинка, но для проверки расширения сойдёт"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/post/create", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploader_AllowedExtension(t *testing.T) {
	dir := t.TempDir()
	uploader := &handlers.Uploader{Dir: dir}

	req := multipartUpload(t, "photo.JPG")
	filename, err := uploader.Save(req)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(filename, ".jpg") {
		t.Errorf("расширение приводится к нижнему регистру, получено: %s", filename)
	}
	if filename == "photo.jpg" {
		t.Error("имя файла должно быть сгенерировано заново")
	}
	if _, err := os.Stat(filepath.Join(dir, filename)); err != nil {
		t.Error("файл не сохранён: ", err)
	}
}

func TestUploader_RejectedExtension(t *testing.T) {
	dir := t.TempDir()
	uploader := &handlers.Uploader{Dir: dir}

	req := multipartUpload(t, "malware.exe")
	_, err := uploader.Save(req)
	if !repository.IsValidation(err) {
		t.Errorf("недопустимое расширение должно давать ошибку валидации, получено: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Error("отклонённый файл не должен сохраняться")
	}
}

func TestUploader_UniqueNames(t *testing.T) {
	dir := t.TempDir()
	uploader := &handlers.Uploader{Dir: dir}

	first, err := uploader.Save(multipartUpload(t, "a.png"))
	if err != nil {
		t.Fatal(err)
	}
	second, err := uploader.Save(multipartUpload(t, "a.png"))
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Error("одинаковые исходные имена не должны давать одинаковые файлы")
	}
}

func TestUploader_NoFile(t *testing.T) {
	uploader := &handlers.Uploader{Dir: t.TempDir()}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("title", "Без картинки")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/post/create", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	filename, err := uploader.Save(req)
	if err != nil {
		t.Fatal(err)
	}
	if filename != "" {
		t.Errorf("без файла имя должно быть пустым, получено: %s", filename)
	}
}
