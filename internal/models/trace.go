package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GenerationTrace keeps the full prompt and raw model reply for a generation
// attempt. Rows expire through a TTL index on ExpiresAt.
type GenerationTrace struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HistoryID  int64              `bson:"history_id" json:"history_id"`
	UserID     int64              `bson:"user_id" json:"user_id"`
	Provider   string             `bson:"provider" json:"provider"`
	Source     string             `bson:"source" json:"source"` // model|fallback|parse_fallback
	Prompt     string             `bson:"prompt" json:"prompt"`
	RawText    string             `bson:"raw_text,omitempty" json:"raw_text,omitempty"`
	Cause      string             `bson:"cause,omitempty" json:"cause,omitempty"`
	TokensUsed int                `bson:"tokens_used,omitempty" json:"tokens_used,omitempty"`
	LatencyMS  int64              `bson:"latency_ms" json:"latency_ms"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt  time.Time          `bson:"expires_at" json:"expires_at"`
}
