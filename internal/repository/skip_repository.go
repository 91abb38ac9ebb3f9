//go:generate mockery --name SkipRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"

	"go_5_phrase_pool/internal/middleware"
	"go_5_phrase_pool/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SkipRepository interface {
	// CreateIgnoreDuplicates はスキップ記録を conflict-ignore で挿入し、
	// 実際に行が作られたかどうかを返します。
	CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, record *model.SkipRecord) (bool, error)
}

type gormSkipRepository struct{}

func NewGormSkipRepository() SkipRepository {
	return &gormSkipRepository{}
}

func (r *gormSkipRepository) CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, record *model.SkipRecord) (bool, error) {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "phrase_id"}},
		DoNothing: true,
	}).Create(record)
	if result.Error != nil {
		logger.Error("Error creating skip record in DB",
			"error", result.Error,
			"player_id", record.PlayerID.String(),
			"phrase_id", record.PhraseID.String(),
		)
		return false, fmt.Errorf("gormSkipRepository.CreateIgnoreDuplicates: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
