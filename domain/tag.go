package domain

import (
	"time"
)

type TagType string

const (
	TagTypeOfficial   TagType = "OFFICIAL"
	TagTypeDerived    TagType = "DERIVED"
	TagTypeStructural TagType = "STRUCTURAL"
)

// CREATE TABLE public.tags (
//     tag_key         TEXT PRIMARY KEY,
//     display_name    TEXT NOT NULL,
//     tag_type        TEXT NOT NULL,
//     work_count      INT NOT NULL DEFAULT 0,
//     created_at      TIMESTAMPTZ DEFAULT NOW()
// );

type Tag struct {
	TagKey      string    `gorm:"primaryKey;column:tag_key;type:text" json:"tag_key"`
	DisplayName string    `gorm:"column:display_name;type:text;not null" json:"display_name"`
	TagType     TagType   `gorm:"column:tag_type;type:text;not null" json:"tag_type"`
	WorkCount   int       `gorm:"column:work_count;not null;default:0" json:"work_count"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}

// TagFilter narrows the candidate tag listing.
type TagFilter struct {
	Types        []TagType
	MinWorkCount int
	ExcludedKeys []string
}
