package models

import "time"

type Share struct {
	ID       int
	PostID   int
	UserID   int
	SharedAt time.Time
}
