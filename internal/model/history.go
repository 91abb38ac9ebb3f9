// internal/model/history.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// SkipRecord はプレイヤーごとの「後回し」記録です。削除ではなく繰り延べ:
// スキップしたプレイヤーに対してのみ優先度が下がり、フォールバック層で
// 再び候補になります。他のプレイヤーには影響しません。
type SkipRecord struct {
	PlayerID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"player_id"`
	PhraseID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"phrase_id"`
	SkippedAt time.Time `gorm:"not null" json:"skipped_at"`
}

func (SkipRecord) TableName() string {
	return "skip_records"
}

// CompletionRecord は (player, phrase) ごとの終端事実です。
// 「このプレイヤーは既にこのフレーズを解いたか」の唯一の正とし、
// 複合主キーで1件に制限します (挿入は conflict-ignore)。
type CompletionRecord struct {
	PlayerID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"player_id"`
	PhraseID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"phrase_id"`
	Score            int       `gorm:"not null" json:"score"`
	HintsUsed        int       `gorm:"not null;default:0" json:"hints_used"`
	CompletionTimeMs int64     `gorm:"not null;default:0" json:"completion_time_ms"`
	CompletedAt      time.Time `gorm:"not null" json:"completed_at"`
}

func (CompletionRecord) TableName() string {
	return "completion_records"
}

// フレーズ完了報告リクエストDTO
type CompletePhraseRequest struct {
	Score            int   `json:"score" validate:"min=0"`
	HintsUsed        int   `json:"hints_used" validate:"min=0"`
	CompletionTimeMs int64 `json:"completion_time_ms" validate:"min=0"`
}

// TrackResult は完了/スキップ記録の結果。重複呼び出しはエラーではなく
// AlreadyRecorded=true の成功として返します (ネットワーク再送対策)。
type TrackResult struct {
	AlreadyRecorded bool `json:"already_recorded"`
}
