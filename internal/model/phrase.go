// internal/model/phrase.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Language はフレーズの言語コード
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSwedish Language = "sv"
)

// Phrase は配布対象のワードパズル1件を表します。
// DifficultyScore は作成時に一度だけ計算され、以後再計算されません
// (難易度上限との比較が安定するように)。変更されるのは IsApproved
// (モデレーション) と単調増加の UsageCount のみです。
type Phrase struct {
	PhraseID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"phrase_id"`
	Content           string     `gorm:"not null" json:"content"`
	Hint              string     `json:"hint,omitempty"`
	Language          Language   `gorm:"not null;default:en" json:"language"`
	DifficultyScore   int        `gorm:"not null;index" json:"difficulty_score"`
	IsGlobal          bool       `gorm:"not null;default:false;index" json:"is_global"`
	IsApproved        bool       `gorm:"not null;default:false;index" json:"is_approved"`
	CreatedByPlayerID *uuid.UUID `gorm:"type:uuid;index" json:"created_by_player_id,omitempty"`
	ContributorName   string     `json:"contributor_name,omitempty"` // 外部投稿者の表示名 (プレイヤー以外)
	UsageCount        int        `gorm:"not null;default:0" json:"usage_count"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// 関連 (Preload用)
	Assignments []Assignment `gorm:"foreignKey:PhraseID;references:PhraseID" json:"-"`
}

func (Phrase) TableName() string {
	return "phrases"
}

// フレーズ作成リクエストDTO。ターゲット指定とグローバル公開は同時指定可能。
type CreatePhraseRequest struct {
	Content  string   `json:"content" validate:"required"`
	Hint     string   `json:"hint,omitempty"`
	Language Language `json:"language,omitempty" validate:"omitempty,oneof=en sv"`
	// ContributorName は送信者がプレイヤーでない場合 (システム/外部投稿) の表示名
	ContributorName string      `json:"contributor_name,omitempty" validate:"omitempty,max=50"`
	TargetIDs       []uuid.UUID `json:"target_ids,omitempty"`
	IsGlobal        bool        `json:"is_global"`
}

// モデレーション (承認ゲート) 更新リクエストDTO
type ApprovePhraseRequest struct {
	IsApproved *bool `json:"is_approved" validate:"required"`
}

// NextPhraseResponse は「次のフレーズ」1件のレスポンスDTO。
// Source はどの層から選ばれたかを示す ("targeted" / "global" / "fallback")。
type NextPhraseResponse struct {
	PhraseID        uuid.UUID `json:"phrase_id"`
	Content         string    `json:"content"`
	Hint            string    `json:"hint,omitempty"`
	Language        Language  `json:"language"`
	DifficultyScore int       `json:"difficulty_score"`
	Source          string    `json:"source"`
	SenderName      string    `json:"sender_name"`
}

// 選択元の層
const (
	SourceTargeted = "targeted"
	SourceGlobal   = "global"
	SourceFallback = "fallback"
)
