package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"newshub/internal/config"
	"newshub/internal/models"
	"newshub/internal/policy"
	"newshub/internal/repository"

	"github.com/sirupsen/logrus"
)

type PostHandler struct {
	DB        *sql.DB
	Templates *template.Template
	Err       *ErrorHandler
	Cfg       *config.Config
	Uploads   *Uploader
}

// Главная страница: последние посты
func (h *PostHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.Err.NotFound(w, r)
		return
	}

	posts, err := repository.ListRecent(h.DB, h.Cfg.HomePageSize)
	if err != nil {
		logrus.Error("Ошибка загрузки ленты: ", err)
		h.Err.Render(w, http.StatusInternalServerError, "Ошибка базы данных")
		return
	}

	user, _ := CurrentUser(h.DB, r)
	flash := GetFlash(w, r, "flash")
	h.Templates.ExecuteTemplate(w, "layout", map[string]interface{}{
		"Page":       "index",
		"Posts":      posts,
		"Categories": config.Categories,
		"User":       user,
		"Flash":      flash,
	})
}

// Лента новостей с пагинацией и фильтром по категории
func (h *PostHandler) News(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	category := r.URL.Query().Get("category")

	posts, total, err := repository.ListPage(h.DB, page, h.Cfg.NewsPageSize, category)
	if err != nil {
		logrus.Error("Ошибка загрузки ленты: ", err)
		h.Err.Render(w, http.StatusInternalServerError, "Ошибка базы данных")
		return
	}

	totalPages := (total + h.Cfg.NewsPageSize - 1) / h.Cfg.NewsPageSize

	user, _ := CurrentUser(h.DB, r)
	flash := GetFlash(w, r, "flash")
	h.Templates.ExecuteTemplate(w, "layout", map[string]interface{}{
		"Page":       "news",
		"Posts":      posts,
		"Categories": config.Categories,
		"Selected":   category,
		"PageNum":    page,
		"TotalPages": totalPages,
		"HasPrev":    page > 1,
		"HasNext":    page < totalPages,
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
		"User":       user,
		"Flash":      flash,
	})
}

// Страница поста с комментариями
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.Err.NotFound(w, r)
		return
	}

	post, err := repository.GetPost(h.DB, id)
	if err != nil {
		h.Err.NotFound(w, r)
		return
	}

	comments, err := repository.CommentsByPost(h.DB, post.ID)
	if err != nil {
		logrus.Error("Ошибка загрузки комментариев: ", err)
	}
	post.Shares, _ = repository.CountShares(h.DB, post.ID)

	user, _ := CurrentUser(h.DB, r)
	flash := GetFlash(w, r, "flash")
	h.Templates.ExecuteTemplate(w, "layout", map[string]interface{}{
		"Page":     "post",
		"Post":     post,
		"Comments": comments,
		"CanEdit":  policy.CanModifyPost(user, post),
		"User":     user,
		"Flash":    flash,
	})
}

// Создание поста с необязательным изображением
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(h.DB, r)
	if !ok {
		SetFlash(w, "flash", "Авторизуйтесь, чтобы создать пост")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		h.renderPostForm(w, "create", user, nil, map[string]string{}, map[string]string{})
		return
	}

	title, content, category, image, formErr := h.parsePostForm(w, r)
	if formErr != "" {
		h.renderPostForm(w, "create", user, nil, map[string]string{"Form": formErr}, map[string]string{
			"Title": title, "Content": content, "Category": category,
		})
		return
	}

	// Файл уже сохранён, строка ещё нет: при отказе базы файл освобождается
	post, err := repository.CreatePost(h.DB, user, title, content, category, image)
	if err != nil {
		h.Uploads.Remove(image)
		if repository.IsValidation(err) {
			h.renderPostForm(w, "create", user, nil, map[string]string{"Form": err.Error()}, map[string]string{
				"Title": title, "Content": content, "Category": category,
			})
			return
		}
		logrus.Error("Ошибка создания поста: ", err)
		h.Err.Render(w, http.StatusInternalServerError, "Ошибка создания поста")
		return
	}

	SetFlash(w, "flash", "Пост создан!")
	http.Redirect(w, r, fmt.Sprintf("/post/%d", post.ID), http.StatusSeeOther)
}

// Редактирование поста автором или администратором
func (h *PostHandler) EditPost(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(h.DB, r)
	if !ok {
		SetFlash(w, "flash", "Авторизуйтесь, чтобы редактировать пост")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.Err.NotFound(w, r)
		return
	}

	post, err := repository.GetPost(h.DB, id)
	if err != nil {
		h.Err.NotFound(w, r)
		return
	}
	if !policy.CanModifyPost(user, post) {
		h.Err.Forbidden(w, r)
		return
	}

	if r.Method == http.MethodGet {
		h.renderPostForm(w, "edit", user, post, map[string]string{}, map[string]string{
			"Title": post.Title, "Content": post.Content, "Category": post.Category,
		})
		return
	}

	title, content, category, image, formErr := h.parsePostForm(w, r)
	if formErr != "" {
		h.renderPostForm(w, "edit", user, post, map[string]string{"Form": formErr}, map[string]string{
			"Title": title, "Content": content, "Category": category,
		})
		return
	}

	oldImage, err := repository.UpdatePost(h.DB, user, id, title, content, category, image)
	if err != nil {
		h.Uploads.Remove(image)
		switch {
		case errors.Is(err, repository.ErrForbidden):
			h.Err.Forbidden(w, r)
		case errors.Is(err, repository.ErrNotFound):
			h.Err.NotFound(w, r)
		case repository.IsValidation(err):
			h.renderPostForm(w, "edit", user, post, map[string]string{"Form": err.Error()}, map[string]string{
				"Title": title, "Content": content, "Category": category,
			})
		default:
			logrus.Error("Ошибка обновления поста: ", err)
			h.Err.Render(w, http.StatusInternalServerError, "Ошибка обновления поста")
		}
		return
	}

	// Старое изображение освобождается только после фиксации строки
	h.Uploads.Remove(oldImage)

	SetFlash(w, "flash", "Пост обновлён!")
	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

// Удаление поста вместе с комментариями и репостами
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(h.DB, r)
	if !ok {
		SetFlash(w, "flash", "Авторизуйтесь, чтобы удалить пост")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.Err.NotFound(w, r)
		return
	}

	switch err := repository.DeletePost(h.DB, user, id); {
	case err == nil:
		SetFlash(w, "flash", "Пост удалён!")
		http.Redirect(w, r, "/news", http.StatusSeeOther)
	case errors.Is(err, repository.ErrNotFound):
		h.Err.NotFound(w, r)
	case errors.Is(err, repository.ErrForbidden):
		h.Err.Forbidden(w, r)
	default:
		logrus.Error("Ошибка удаления поста: ", err)
		h.Err.Render(w, http.StatusInternalServerError, "Ошибка удаления поста")
	}
}

// Разбор формы поста: текстовые поля плюс необязательное изображение.
// Возвращает сообщение для формы, если файл не прошёл проверку.
func (h *PostHandler) parsePostForm(w http.ResponseWriter, r *http.Request) (title, content, category, image, formErr string) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		return "", "", "", "", "Файл слишком большой (до 16MB) или форма повреждена"
	}

	title = r.FormValue("title")
	content = r.FormValue("content")
	category = r.FormValue("category")

	if r.MultipartForm != nil {
		saved, err := h.Uploads.Save(r)
		if err != nil {
			if repository.IsValidation(err) {
				return title, content, category, "", err.Error()
			}
			logrus.Error("Ошибка сохранения изображения: ", err)
			return title, content, category, "", "Не удалось сохранить изображение"
		}
		image = saved
	}
	return title, content, category, image, ""
}

func (h *PostHandler) renderPostForm(w http.ResponseWriter, page string, user *models.User, post *models.Post, formErrors, formValues map[string]string) {
	h.Templates.ExecuteTemplate(w, "layout", map[string]interface{}{
		"Page":       page,
		"Post":       post,
		"Categories": config.Categories,
		"User":       user,
		"FormErrors": formErrors,
		"FormValues": formValues,
	})
}
