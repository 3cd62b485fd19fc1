package handlers

import (
	"database/sql"
	"net/http"
	"net/url"

	"newshub/internal/models"
	"newshub/internal/repository"
)

// CurrentUser сопоставляет запрос с аутентифицированным пользователем.
// Анонимный запрос — (nil, false).
func CurrentUser(db *sql.DB, r *http.Request) (*models.User, bool) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		return nil, false
	}

	userID, ok := repository.SessionUserID(db, cookie.Value)
	if !ok {
		return nil, false
	}

	user, err := repository.GetUser(db, userID)
	if err != nil {
		return nil, false
	}
	return user, true
}

// Flash-сообщения живут в короткой cookie до первого чтения.
// Значение экранируется: в сообщениях есть пробелы и кириллица.
func SetFlash(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:  name,
		Value: url.QueryEscape(value),
		Path:  "/",
	})
}

func GetFlash(w http.ResponseWriter, r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:   name,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	value, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return value
}
