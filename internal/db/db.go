package db

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// Открытие базы с включёнными внешними ключами
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы: %w", err)
	}
	return db, nil
}

func InitDatabase(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	if err != nil {
		return fmt.Errorf("ошибка выполнения SQL схемы: %w", err)
	}
	return nil
}
