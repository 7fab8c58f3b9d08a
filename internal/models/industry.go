package models

import (
	"time"

	"github.com/lib/pq"
)

// Industry is shared reference data, seeded at deploy time.
type Industry struct {
	ID          int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id" yaml:"-"`
	Name        string         `gorm:"column:name;type:text;uniqueIndex" json:"name" yaml:"name"`
	NameFR      *string        `gorm:"column:name_fr;type:text" json:"name_fr,omitempty" yaml:"name_fr"`
	Description *string        `gorm:"column:description;type:text" json:"description,omitempty" yaml:"description"`
	Tips        pq.StringArray `gorm:"column:tips;type:text[]" json:"tips" yaml:"tips"`
	Keywords    pq.StringArray `gorm:"column:keywords;type:text[]" json:"keywords" yaml:"keywords"`
	IsActive    bool           `gorm:"column:is_active;default:true" json:"is_active" yaml:"-"`
	CreatedAt   time.Time      `gorm:"column:created_at;type:timestamptz" json:"created_at" yaml:"-"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;type:timestamptz" json:"updated_at" yaml:"-"`
}

func (Industry) TableName() string { return "industries" }

// IndustryRef is the short form embedded in cv_content.
type IndustryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
