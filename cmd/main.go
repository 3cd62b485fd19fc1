package main

import (
	"html/template"
	"net/http"
	"path/filepath"

	"newshub/internal/config"
	dbinit "newshub/internal/db"
	"newshub/internal/handlers"
	"newshub/internal/repository"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	db, err := dbinit.Open(cfg.DBPath)
	if err != nil {
		logrus.Fatal(err)
	}
	defer db.Close()

	if err = dbinit.InitDatabase(db); err != nil {
		logrus.Fatal("Ошибка при инициализации схемы: ", err)
	}

	// Администратор по умолчанию для первого запуска
	if err = repository.EnsureAdmin(db, cfg.AdminPassword); err != nil {
		logrus.Fatal("Ошибка создания администратора: ", err)
	}

	templates, err := template.ParseGlob(filepath.Join("templates", "*.html"))
	if err != nil {
		logrus.Fatal("Ошибка парсинга шаблонов: ", err)
	}
	for _, tmpl := range templates.Templates() {
		logrus.Debug("Загружен шаблон: ", tmpl.Name())
	}

	errHandler := &handlers.ErrorHandler{Templates: templates}
	uploads := &handlers.Uploader{Dir: cfg.UploadDir}

	postHandler := handlers.PostHandler{
		DB:        db,
		Templates: templates,
		Err:       errHandler,
		Cfg:       cfg,
		Uploads:   uploads,
	}

	commentHandler := handlers.CommentHandler{
		DB:  db,
		Err: errHandler,
	}

	shareHandler := handlers.ShareHandler{
		DB:  db,
		Err: errHandler,
	}

	profileHandler := handlers.ProfileHandler{
		DB:        db,
		Templates: templates,
		Err:       errHandler,
	}

	adminHandler := handlers.AdminHandler{
		DB:        db,
		Templates: templates,
		Err:       errHandler,
	}

	authHandler := handlers.AuthHandler{
		DB:        db,
		Templates: templates,
		Err:       errHandler,
	}

	mux := http.NewServeMux()

	// Статические файлы (CSS, изображения, загрузки)
	fs := http.FileServer(http.Dir("static"))
	mux.Handle("/static/", http.StripPrefix("/static/", fs))

	// Роуты
	mux.HandleFunc("GET /", postHandler.Home)
	mux.HandleFunc("GET /news", postHandler.News)
	mux.HandleFunc("GET /post/{id}", postHandler.GetPost)
	mux.HandleFunc("GET /post/create", postHandler.CreatePost)
	mux.HandleFunc("POST /post/create", postHandler.CreatePost)
	mux.HandleFunc("GET /post/{id}/edit", postHandler.EditPost)
	mux.HandleFunc("POST /post/{id}/edit", postHandler.EditPost)
	mux.HandleFunc("POST /post/{id}/delete", postHandler.DeletePost)
	mux.HandleFunc("POST /post/{id}/comment", commentHandler.AddComment)
	mux.HandleFunc("POST /comment/{id}/delete", commentHandler.DeleteComment)
	mux.HandleFunc("POST /post/{id}/share", shareHandler.SharePost)
	mux.HandleFunc("GET /profile/{id}", profileHandler.Show)
	mux.HandleFunc("GET /admin", adminHandler.Dashboard)
	mux.HandleFunc("POST /admin/user/{id}/delete", adminHandler.DeleteUser)
	mux.HandleFunc("GET /register", authHandler.Register)
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("GET /login", authHandler.Login)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /logout", authHandler.Logout)

	logrus.Info("Сервер запущен на http://localhost" + cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, errHandler.RecoveryMiddleware(mux)); err != nil {
		logrus.Fatal("Ошибка запуска сервера: ", err)
	}
}
