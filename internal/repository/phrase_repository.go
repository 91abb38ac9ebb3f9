//go:generate mockery --name PhraseRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_phrase_pool/internal/middleware"
	"go_5_phrase_pool/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PhraseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, phrase *model.Phrase) error
	FindByID(ctx context.Context, db *gorm.DB, phraseID uuid.UUID) (*model.Phrase, error)
	// IncrementUsage は usage_count を1増やします (単調増加のみ)。
	IncrementUsage(ctx context.Context, tx *gorm.DB, phraseID uuid.UUID) error
	// SetApproved はモデレーションの承認ゲートを切り替えます。
	SetApproved(ctx context.Context, tx *gorm.DB, phraseID uuid.UUID, approved bool) error
	// FindEligibleGlobal はプレイヤーがグローバルプールから引ける候補を返します。
	// 承認済み・グローバル・自作でない・完了/スキップ済みでない・難易度が上限以下。
	// 順序はランダム。
	FindEligibleGlobal(ctx context.Context, db *gorm.DB, playerID uuid.UUID, maxDifficulty, limit int) ([]*model.Phrase, error)
	// FindSkipFallback はプレイヤーがスキップ済みで未完了のフレーズを返します
	// (グローバル、または自分宛にターゲットされていたもの)。順序はランダム。
	FindSkipFallback(ctx context.Context, db *gorm.DB, playerID uuid.UUID, limit int) ([]*model.Phrase, error)
}

type gormPhraseRepository struct{}

func NewGormPhraseRepository() PhraseRepository {
	return &gormPhraseRepository{}
}

func (r *gormPhraseRepository) Create(ctx context.Context, tx *gorm.DB, phrase *model.Phrase) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(phrase)
	if result.Error != nil {
		logger.Error("Error creating phrase in DB",
			"error", result.Error,
			"content", phrase.Content,
		)
		return fmt.Errorf("gormPhraseRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormPhraseRepository) FindByID(ctx context.Context, db *gorm.DB, phraseID uuid.UUID) (*model.Phrase, error) {
	logger := middleware.GetLogger(ctx)
	var phrase model.Phrase
	result := db.WithContext(ctx).Where("phrase_id = ?", phraseID).First(&phrase)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding phrase by ID in DB",
			"error", result.Error,
			"phrase_id", phraseID.String(),
		)
		return nil, fmt.Errorf("gormPhraseRepository.FindByID: %w", result.Error)
	}
	return &phrase, nil
}

func (r *gormPhraseRepository) IncrementUsage(ctx context.Context, tx *gorm.DB, phraseID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Phrase{}).
		Where("phrase_id = ?", phraseID).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		logger.Error("Error incrementing phrase usage in DB",
			"error", result.Error,
			"phrase_id", phraseID.String(),
		)
		return fmt.Errorf("gormPhraseRepository.IncrementUsage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormPhraseRepository) SetApproved(ctx context.Context, tx *gorm.DB, phraseID uuid.UUID, approved bool) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Model(&model.Phrase{}).
		Where("phrase_id = ?", phraseID).
		Update("is_approved", approved)
	if result.Error != nil {
		logger.Error("Error updating phrase approval in DB",
			"error", result.Error,
			"phrase_id", phraseID.String(),
		)
		return fmt.Errorf("gormPhraseRepository.SetApproved: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormPhraseRepository) FindEligibleGlobal(ctx context.Context, db *gorm.DB, playerID uuid.UUID, maxDifficulty, limit int) ([]*model.Phrase, error) {
	logger := middleware.GetLogger(ctx)
	var phrases []*model.Phrase

	result := db.WithContext(ctx).
		Where("is_approved = ? AND is_global = ?", true, true).
		Where("difficulty_score <= ?", maxDifficulty).
		Where("created_by_player_id IS NULL OR created_by_player_id <> ?", playerID).
		Where("phrase_id NOT IN (SELECT phrase_id FROM completion_records WHERE player_id = ?)", playerID).
		Where("phrase_id NOT IN (SELECT phrase_id FROM skip_records WHERE player_id = ?)", playerID).
		Order("RANDOM()").
		Limit(limit).
		Find(&phrases)

	if result.Error != nil {
		logger.Error("Error finding eligible global phrases in DB",
			"error", result.Error,
			"player_id", playerID.String(),
			"max_difficulty", maxDifficulty,
		)
		return nil, fmt.Errorf("gormPhraseRepository.FindEligibleGlobal: %w", result.Error)
	}
	return phrases, nil
}

func (r *gormPhraseRepository) FindSkipFallback(ctx context.Context, db *gorm.DB, playerID uuid.UUID, limit int) ([]*model.Phrase, error) {
	logger := middleware.GetLogger(ctx)
	var phrases []*model.Phrase

	result := db.WithContext(ctx).
		Where("is_approved = ?", true).
		Where("phrase_id IN (SELECT phrase_id FROM skip_records WHERE player_id = ?)", playerID).
		Where("phrase_id NOT IN (SELECT phrase_id FROM completion_records WHERE player_id = ?)", playerID).
		Where("is_global = ? OR phrase_id IN (SELECT phrase_id FROM phrase_assignments WHERE target_player_id = ?)", true, playerID).
		Order("RANDOM()").
		Limit(limit).
		Find(&phrases)

	if result.Error != nil {
		logger.Error("Error finding skip fallback phrases in DB",
			"error", result.Error,
			"player_id", playerID.String(),
		)
		return nil, fmt.Errorf("gormPhraseRepository.FindSkipFallback: %w", result.Error)
	}
	return phrases, nil
}
