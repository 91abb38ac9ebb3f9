// internal/model/player.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Player はフレーズを受け取る/作成するプレイヤーを表します。
// SkillScore がそのままグローバルプールの難易度上限 (1-100) になります。
type Player struct {
	PlayerID   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"player_id"`
	Name       string         `gorm:"unique;not null" json:"name"`
	SkillScore int            `gorm:"not null;default:1" json:"skill_score"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Player) TableName() string {
	return "players"
}

type ContextKey string

const (
	PlayerIDKey ContextKey = "playerID"
)

// RegisterPlayerRequest はプレイヤー登録APIのリクエストボディ (DTO)
type RegisterPlayerRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// PlayerResponse はクライアントに返すプレイヤー情報
type PlayerResponse struct {
	PlayerID   uuid.UUID `json:"player_id"`
	Name       string    `json:"name"`
	SkillScore int       `json:"skill_score"`
	CreatedAt  time.Time `json:"created_at"`
}
