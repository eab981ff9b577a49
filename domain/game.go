package domain

import (
	"time"

	"gorm.io/datatypes"
)

// GameEvent is one answered round (or terminal outcome), logged for analysis.
type GameEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"column:session_id;not null" json:"session_id"`
	QIndex    int       `gorm:"column:q_index;not null" json:"q_index"`
	Kind      string    `gorm:"column:kind;not null" json:"kind"`
	TagKey    string    `gorm:"column:tag_key" json:"tag_key"`
	Answer    string    `gorm:"column:answer" json:"answer"`
	Phase     string    `gorm:"column:phase;not null" json:"phase"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Context datatypes.JSONMap `gorm:"column:context;type:jsonb" json:"context"`
}

func (GameEvent) TableName() string {
	return "game_events"
}

// Question is the player-facing form of one round's question.
type Question struct {
	QIndex          int    `json:"q_index"`
	Kind            string `json:"kind"`
	TagKey          string `json:"tag_key,omitempty"`
	HardConfirmType string `json:"hard_confirm_type,omitempty"`
	Text            string `json:"text"`
	Payload         string `json:"payload,omitempty"`
}

// Guess is the engine's reveal: its single best candidate.
type Guess struct {
	WorkID     uint64  `json:"work_id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Confidence float64 `json:"confidence"`
}

// FailListEntry is one row of the last-chance candidate list.
type FailListEntry struct {
	WorkID      uint64  `json:"work_id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Probability float64 `json:"probability"`
}

// DebugCandidate exposes per-work score components for inspection.
type DebugCandidate struct {
	WorkID      uint64  `json:"work_id"`
	Title       string  `json:"title"`
	Weight      float64 `json:"weight"`
	Probability float64 `json:"probability"`
}

// DebugTagScore exposes per-tag selector components for inspection.
type DebugTagScore struct {
	TagKey      string  `json:"tag_key"`
	Coverage    float64 `json:"coverage"`
	Score       float64 `json:"score"`
	PassedGate  bool    `json:"passed_gate"`
	AlreadyUsed bool    `json:"already_used"`
}

// DebugState is the full selector/updater picture for one session.
type DebugState struct {
	SessionID           string           `json:"session_id"`
	Phase               string           `json:"phase"`
	QuestionCount       int              `json:"question_count"`
	Confidence          float64          `json:"confidence"`
	EffectiveCandidates float64          `json:"effective_candidates"`
	TopCandidates       []DebugCandidate `json:"top_candidates"`
	TagScores           []DebugTagScore  `json:"tag_scores"`
}
