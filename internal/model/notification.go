// internal/model/notification.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// PhraseEvent は通知コラボレータに渡すイベント。TargetPlayerID が nil の
// 場合はグローバル公開を意味します。リポジトリへの書き込みがコミットした
// 後にのみ発行されます。
type PhraseEvent struct {
	PhraseID       uuid.UUID  `json:"phrase_id"`
	TargetPlayerID *uuid.UUID `json:"target_player_id,omitempty"`
	SenderName     string     `json:"sender_name"`
	CreatedAt      time.Time  `json:"created_at"`
}
