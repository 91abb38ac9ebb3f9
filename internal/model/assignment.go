// internal/model/assignment.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Assignment はターゲット指定フレーズからプレイヤーへの有向エッジです。
// (phrase, player) の組につき未配信レコードは最大1件。重複作成は
// INSERT の conflict-ignore で冪等化します。
type Assignment struct {
	AssignmentID   uuid.UUID  `gorm:"type:uuid;primaryKey" json:"assignment_id"`
	PhraseID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_phrase_target,unique" json:"phrase_id"`
	TargetPlayerID uuid.UUID  `gorm:"type:uuid;not null;index:idx_phrase_target,unique" json:"target_player_id"`
	Priority       int        `gorm:"not null;default:0" json:"priority"` // 小さいほど先
	AssignedAt     time.Time  `gorm:"not null;index" json:"assigned_at"`
	IsDelivered    bool       `gorm:"not null;default:false;index" json:"is_delivered"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`

	// 関連 (Preload用)
	Phrase *Phrase `gorm:"foreignKey:PhraseID;references:PhraseID" json:"-"`
}

func (Assignment) TableName() string {
	return "phrase_assignments"
}
