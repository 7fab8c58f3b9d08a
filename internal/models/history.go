package models

import (
	"time"

	"gorm.io/datatypes"
)

type GenerationStatus string

const (
	GenerationPending   GenerationStatus = "pending"
	GenerationCompleted GenerationStatus = "completed"
	GenerationFailed    GenerationStatus = "failed"
)

// CVGenerationHistory is an append-only audit row: pending, then exactly one
// terminal status.
type CVGenerationHistory struct {
	ID               int64            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID           int64            `gorm:"column:user_id;index" json:"user_id"`
	CVID             *int64           `gorm:"column:cv_id" json:"cv_id,omitempty"`
	IndustryID       *int64           `gorm:"column:industry_id" json:"industry_id,omitempty"`
	Prompt           string           `gorm:"column:prompt;type:text" json:"prompt"`
	Status           GenerationStatus `gorm:"column:status;type:text;default:pending" json:"status"`
	GeneratedContent datatypes.JSON   `gorm:"column:generated_content;type:jsonb" json:"generated_content,omitempty"`
	ErrorMessage     *string          `gorm:"column:error_message;type:text" json:"error_message,omitempty"`
	TokensUsed       *int             `gorm:"column:tokens_used" json:"tokens_used,omitempty"`
	CreatedAt        time.Time        `gorm:"column:created_at;type:timestamptz" json:"created_at"`
}

func (CVGenerationHistory) TableName() string { return "cv_generation_history" }
