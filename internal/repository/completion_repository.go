//go:generate mockery --name CompletionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_5_phrase_pool/internal/middleware"
	"go_5_phrase_pool/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompletionRepository interface {
	// CreateIgnoreDuplicates は完了記録を conflict-ignore で挿入し、
	// 実際に行が作られたかどうかを返します。false は「既に記録済み」で
	// あり、エラーではありません。
	CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, record *model.CompletionRecord) (bool, error)
	Exists(ctx context.Context, db *gorm.DB, playerID, phraseID uuid.UUID) (bool, error)
}

type gormCompletionRepository struct{}

func NewGormCompletionRepository() CompletionRepository {
	return &gormCompletionRepository{}
}

func (r *gormCompletionRepository) CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, record *model.CompletionRecord) (bool, error) {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "phrase_id"}},
		DoNothing: true,
	}).Create(record)
	if result.Error != nil {
		logger.Error("Error creating completion record in DB",
			"error", result.Error,
			"player_id", record.PlayerID.String(),
			"phrase_id", record.PhraseID.String(),
		)
		return false, fmt.Errorf("gormCompletionRepository.CreateIgnoreDuplicates: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *gormCompletionRepository) Exists(ctx context.Context, db *gorm.DB, playerID, phraseID uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.CompletionRecord{}).
		Where("player_id = ? AND phrase_id = ?", playerID, phraseID).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error checking completion record existence in DB",
			"error", result.Error,
			"player_id", playerID.String(),
			"phrase_id", phraseID.String(),
		)
		return false, fmt.Errorf("gormCompletionRepository.Exists: %w", result.Error)
	}
	return count > 0, nil
}
