package handlers

import (
	"database/sql"
	"html/template"
	"net/http"
	"strconv"

	"newshub/internal/repository"

	"github.com/sirupsen/logrus"
)

type ProfileHandler struct {
	DB        *sql.DB
	Templates *template.Template
	Err       *ErrorHandler
}

// Страница пользователя с его постами
func (h *ProfileHandler) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(h.DB, r)
	if !ok {
		SetFlash(w, "flash", "Авторизуйтесь, чтобы смотреть профили")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	userID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		h.Err.NotFound(w, r)
		return
	}

	profile, err := repository.GetUser(h.DB, userID)
	if err != nil {
		h.Err.NotFound(w, r)
		return
	}

	posts, err := repository.PostsByAuthor(h.DB, userID)
	if err != nil {
		logrus.Error("Ошибка загрузки постов профиля: ", err)
		h.Err.Render(w, http.StatusInternalServerError, "Ошибка базы данных")
		return
	}

	flash := GetFlash(w, r, "flash")
	h.Templates.ExecuteTemplate(w, "layout", map[string]interface{}{
		"Page":    "profile",
		"Profile": profile,
		"Posts":   posts,
		"User":    user,
		"Flash":   flash,
	})
}
