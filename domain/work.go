package domain

import (
	"time"
)

// CREATE TABLE public.works (
//     id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     title           TEXT NOT NULL,
//     title_initial   TEXT NOT NULL,
//     author          TEXT,
//     popularity      NUMERIC,
//     commentary      TEXT,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Work struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string    `gorm:"column:title;type:text;not null" json:"title"`
	TitleInitial string    `gorm:"column:title_initial;type:text;not null" json:"title_initial"`
	Author       string    `gorm:"column:author;type:text" json:"author"`
	Popularity   float64   `gorm:"column:popularity;type:numeric" json:"popularity"`
	Commentary   string    `gorm:"column:commentary;type:text" json:"commentary"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Work) TableName() string {
	return "works"
}

// HasCommentary reports whether soft-confirm content exists for this work.
func (w Work) HasCommentary() bool {
	return w.Commentary != ""
}

// WorkTag links a work to one tag it carries.
type WorkTag struct {
	WorkID    uint64    `gorm:"column:work_id;primaryKey" json:"work_id"`
	TagKey    string    `gorm:"column:tag_key;primaryKey" json:"tag_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (WorkTag) TableName() string {
	return "work_tags"
}
