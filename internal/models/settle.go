package models

import "time"

type SettleRegion struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RegionName  string    `gorm:"column:region_name;type:text;uniqueIndex" json:"region_name"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (SettleRegion) TableName() string { return "settle_regions" }

type SettlePurpose struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	RegionID    int64     `gorm:"column:region_id;index" json:"region_id"`
	PurposeName string    `gorm:"column:purpose_name;type:text" json:"purpose_name"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (SettlePurpose) TableName() string { return "settle_purposes" }

type PurposeStatus string

const (
	PurposePending    PurposeStatus = "pending"
	PurposeInProgress PurposeStatus = "in_progress"
	PurposeCompleted  PurposeStatus = "completed"
)

func (s PurposeStatus) Valid() bool {
	switch s {
	case PurposePending, PurposeInProgress, PurposeCompleted:
		return true
	}
	return false
}

type UserSettlePurpose struct {
	ID              int64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID          int64         `gorm:"column:user_id;index" json:"user_id"`
	SettlePurposeID int64         `gorm:"column:settle_purpose_id;index" json:"settle_purpose_id"`
	Status          PurposeStatus `gorm:"column:status;type:text;default:pending" json:"status"`
	Progression     int           `gorm:"column:progression;default:0" json:"progression"`
	Notes           *string       `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt       time.Time     `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (UserSettlePurpose) TableName() string { return "user_settle_purposes" }
