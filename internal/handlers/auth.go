package handlers

import (
	"database/sql"
	"errors"
	"html/template"
	"net/http"
	"regexp"
	"time"

	"newshub/internal/repository"

	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	DB        *sql.DB
	Templates *template.Template
	Err       *ErrorHandler
}

// Проверка формата email
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// Проверка формата username
func isValidUsername(username string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	return re.MatchString(username)
}

// Минимальная длина пароля — 6 символов
func isValidPassword(password string) bool {
	return len(password) >= 6
}

// Регистрация пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if _, ok := CurrentUser(h.DB, r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		flash := GetFlash(w, r, "flash")
		h.Templates.ExecuteTemplate(w, "layout", map[string]interface{}{
			"Page":       "register",
			"Flash":      flash,
			"FormErrors": map[string]string{},
			"FormValues": map[string]string{},
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.Err.Render(w, http.StatusBadRequest, "Ошибка формы")
		return
	}

	email := r.FormValue("email")
	username := r.FormValue("username")
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	formErrors := make(map[string]string)

	if email == "" {
		formErrors["Email"] = "Введите email"
	} else if !isValidEmail(email) {
		formErrors["Email"] = "Некорректный формат email"
	}

	if username == "" {
		formErrors["Username"] = "Введите имя пользователя"
	} else if !isValidUsername(username) {
		formErrors["Username"] = "Имя может содержать только буквы, цифры и подчёркивания (3-20 символов)"
	}

	if password == "" {
		formErrors["Password"] = "Введите пароль"
	} else if !isValidPassword(password) {
		formErrors["Password"] = "Пароль должен быть не менее 6 символов"
	} else if password != confirm {
		formErrors["ConfirmPassword"] = "Пароли не совпадают"
	}

	if len(formErrors) == 0 {
		_, err := repository.RegisterUser(h.DB, username, email, password, confirm)
		switch {
		case err == nil:
			SetFlash(w, "flash", "Регистрация успешна! Войдите в систему.")
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		case errors.Is(err, repository.ErrDuplicateUsername):
			formErrors["Username"] = "Имя пользователя уже занято"
		case errors.Is(err, repository.ErrDuplicateEmail):
			formErrors["Email"] = "Email уже зарегистрирован"
		case repository.IsValidation(err):
			formErrors["Form"] = err.Error()
		default:
			logrus.Error("Ошибка регистрации: ", err)
			h.Err.Render(w, http.StatusInternalServerError, "Ошибка базы данных")
			return
		}
	}

	h.Templates.ExecuteTemplate(w, "layout", map[string]interface{}{
		"Page":       "register",
		"FormErrors": formErrors,
		"FormValues": map[string]string{
			"Email":    email,
			"Username": username,
		},
	})
}

// Вход пользователя по имени и паролю
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if _, ok := CurrentUser(h.DB, r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if r.Method == http.MethodGet {
		flash := GetFlash(w, r, "flash")
		h.Templates.ExecuteTemplate(w, "layout", map[string]interface{}{
			"Page":       "login",
			"Flash":      flash,
			"FormErrors": map[string]string{},
			"FormValues": map[string]string{},
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		h.Err.Render(w, http.StatusBadRequest, "Ошибка формы")
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	formErrors := make(map[string]string)
	if username == "" {
		formErrors["Username"] = "Введите имя пользователя"
	}
	if password == "" {
		formErrors["Password"] = "Введите пароль"
	}

	if len(formErrors) == 0 {
		user, err := repository.VerifyUser(h.DB, username, password)
		switch {
		case err == nil:
			sessionID, expires, err := repository.CreateSession(h.DB, user.ID)
			if err != nil {
				logrus.Error("Ошибка создания сессии: ", err)
				h.Err.Render(w, http.StatusInternalServerError, "Ошибка создания сессии")
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     "session_id",
				Value:    sessionID,
				Expires:  expires,
				HttpOnly: true,
				Path:     "/",
			})
			SetFlash(w, "flash", "С возвращением, "+user.Username+"!")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		case errors.Is(err, repository.ErrInvalidCredentials):
			// Не уточняем, что именно неверно: логин или пароль
			formErrors["Form"] = "Неверное имя пользователя или пароль"
		default:
			logrus.Error("Ошибка входа: ", err)
			h.Err.Render(w, http.StatusInternalServerError, "Ошибка базы данных")
			return
		}
	}

	h.Templates.ExecuteTemplate(w, "layout", map[string]interface{}{
		"Page":       "login",
		"FormErrors": formErrors,
		"FormValues": map[string]string{"Username": username},
	})
}

// Выход пользователя
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err == nil {
		if err := repository.DeleteSession(h.DB, cookie.Value); err != nil {
			logrus.Error("Ошибка удаления сессии: ", err)
		}
		cookie.Expires = time.Unix(0, 0)
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
	}
	SetFlash(w, "flash", "Вы вышли из системы.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
