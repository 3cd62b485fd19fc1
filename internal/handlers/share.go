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

type ShareHandler struct {
	DB  *sql.DB
	Err *ErrorHandler
}

// Репост поста. Повторный репост — не ошибка, просто уведомление.
func (h *ShareHandler) SharePost(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(h.DB, r)
	if !ok {
		SetFlash(w, "flash", "Авторизуйтесь, чтобы репостнуть")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	postID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.Err.NotFound(w, r)
		return
	}

	switch err := repository.AddShare(h.DB, user, postID); {
	case err == nil:
		SetFlash(w, "flash", "Пост репостнут!")
		http.Redirect(w, r, fmt.Sprintf("/post/%d", postID), http.StatusSeeOther)
	case errors.Is(err, repository.ErrAlreadyShared):
		SetFlash(w, "flash", "Вы уже репостнули этот пост!")
		http.Redirect(w, r, fmt.Sprintf("/post/%d", postID), http.StatusSeeOther)
	case errors.Is(err, repository.ErrNotFound):
		h.Err.NotFound(w, r)
	default:
		logrus.Error("Ошибка репоста: ", err)
		h.Err.Render(w, http.StatusInternalServerError, "Ошибка базы данных")
	}
}
