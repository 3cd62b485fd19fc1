package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Категории постов. Набор задаёт выпадающий список формы и фильтр /news,
// значения вне набора не отклоняются сервером.
var Categories = []string{"Academic", "Sports", "Events", "Clubs", "Announcements", "Other"}

type Config struct {
	Addr          string
	DBPath        string
	UploadDir     string
	NewsPageSize  int
	HomePageSize  int
	AdminPassword string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("Файл .env не найден, используются переменные окружения")
	}

	return &Config{
		Addr:          ":" + getenv("PORT", "8080"),
		DBPath:        getenv("DB_PATH", "./newshub.db"),
		UploadDir:     getenv("UPLOAD_DIR", "static/uploads"),
		NewsPageSize:  getenvInt("NEWS_PAGE_SIZE", 9),
		HomePageSize:  getenvInt("HOME_PAGE_SIZE", 6),
		AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("Некорректное значение %s=%q, используется %d", key, v, def)
		return def
	}
	return n
}
