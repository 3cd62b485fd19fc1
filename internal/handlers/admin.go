package handlers

import (
	"database/sql"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"newshub/internal/policy"
	"newshub/internal/repository"

	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	DB        *sql.DB
	Templates *template.Template
	Err       *ErrorHandler
}

// Панель администратора: счётчики и списки для модерации
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(h.DB, r)
	if !ok {
		SetFlash(w, "flash", "Авторизуйтесь, чтобы продолжить")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if !policy.CanAccessAdmin(user) {
		h.Err.Forbidden(w, r)
		return
	}

	stats, err := repository.CountStats(h.DB)
	if err != nil {
		logrus.Error("Ошибка подсчёта статистики: ", err)
		h.Err.Render(w, http.StatusInternalServerError, "Ошибка базы данных")
		return
	}

	users, err := repository.ListUsers(h.DB)
	if err != nil {
		logrus.Error("Ошибка загрузки пользователей: ", err)
		h.Err.Render(w, http.StatusInternalServerError, "Ошибка базы данных")
		return
	}

	posts, err := repository.AllPosts(h.DB)
	if err != nil {
		logrus.Error("Ошибка загрузки постов: ", err)
		h.Err.Render(w, http.StatusInternalServerError, "Ошибка базы данных")
		return
	}

	comments, err := repository.AllComments(h.DB)
	if err != nil {
		logrus.Error("Ошибка загрузки комментариев: ", err)
		h.Err.Render(w, http.StatusInternalServerError, "Ошибка базы данных")
		return
	}

	flash := GetFlash(w, r, "flash")
	h.Templates.ExecuteTemplate(w, "layout", map[string]interface{}{
		"Page":     "admin",
		"Stats":    stats,
		"Users":    users,
		"Posts":    posts,
		"Comments": comments,
		"User":     user,
		"Flash":    flash,
	})
}

// Удаление пользователя со всем его содержимым
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(h.DB, r)
	if !ok {
		SetFlash(w, "flash", "Авторизуйтесь, чтобы продолжить")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	userID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.Err.NotFound(w, r)
		return
	}

	target, err := repository.GetUser(h.DB, userID)
	if err != nil {
		h.Err.NotFound(w, r)
		return
	}

	switch err := repository.DeleteUser(h.DB, user, userID); {
	case err == nil:
		SetFlash(w, "flash", "Пользователь "+target.Username+" удалён!")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	case errors.Is(err, repository.ErrSelfDeletion):
		SetFlash(w, "flash", "Нельзя удалить самого себя!")
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	case errors.Is(err, repository.ErrForbidden):
		h.Err.Forbidden(w, r)
	case errors.Is(err, repository.ErrNotFound):
		h.Err.NotFound(w, r)
	default:
		logrus.Error("Ошибка удаления пользователя: ", err)
		h.Err.Render(w, http.StatusInternalServerError, "Ошибка базы данных")
	}
}
