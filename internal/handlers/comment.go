package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"newshub/internal/repository"

	"github.com/sirupsen/logrus"
)

type CommentHandler struct {
	DB  *sql.DB
	Err *ErrorHandler
}

// Добавление комментария
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(h.DB, r)
	if !ok {
		SetFlash(w, "flash", "Авторизуйтесь, чтобы комментировать")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	postID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.Err.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.Err.Render(w, http.StatusBadRequest, "Ошибка формы")
		return
	}

	switch _, err := repository.AddComment(h.DB, user, postID, r.FormValue("content")); {
	case err == nil:
		SetFlash(w, "flash", "Комментарий добавлен!")
		http.Redirect(w, r, fmt.Sprintf("/post/%d", postID), http.StatusSeeOther)
	case errors.Is(err, repository.ErrNotFound):
		h.Err.NotFound(w, r)
	case repository.IsValidation(err):
		SetFlash(w, "flash", err.Error())
		http.Redirect(w, r, fmt.Sprintf("/post/%d", postID), http.StatusSeeOther)
	default:
		logrus.Error("Ошибка при добавлении комментария: ", err)
		h.Err.Render(w, http.StatusInternalServerError, "Ошибка базы данных")
	}
}

// Удаление комментария автором или администратором
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(h.DB, r)
	if !ok {
		SetFlash(w, "flash", "Авторизуйтесь, чтобы удалить комментарий")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	commentID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.Err.NotFound(w, r)
		return
	}

	switch postID, err := repository.DeleteComment(h.DB, user, commentID); {
	case err == nil:
		SetFlash(w, "flash", "Комментарий удалён!")
		http.Redirect(w, r, fmt.Sprintf("/post/%d", postID), http.StatusSeeOther)
	case errors.Is(err, repository.ErrNotFound):
		h.Err.NotFound(w, r)
	case errors.Is(err, repository.ErrForbidden):
		h.Err.Forbidden(w, r)
	default:
		logrus.Error("Ошибка удаления комментария: ", err)
		h.Err.Render(w, http.StatusInternalServerError, "Ошибка базы данных")
	}
}
