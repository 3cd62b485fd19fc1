package models

import "time"

type Comment struct {
	ID        int
	PostID    int
	AuthorID  int
	Author    string
	Content   string
	CreatedAt time.Time
}
