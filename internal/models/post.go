package models

import "time"

type Post struct {
	ID            int
	AuthorID      int
	Title         string
	Content       string
	Category      string
	ImageFilename string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Author        string
	Comments      int
	Shares        int
}
