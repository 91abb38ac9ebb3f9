//go:generate mockery --name AssignmentRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_5_phrase_pool/internal/middleware"
	"go_5_phrase_pool/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssignmentRepository interface {
	// CreateIgnoreDuplicates は (phrase, player) の複合ユニーク制約に対して
	// conflict-ignore で挿入します。重複はエラーではなく無視されます。
	CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, assignment *model.Assignment) error
	// FindNextUndelivered はプレイヤー宛の未配信アサインのうち、そのプレイヤーが
	// スキップも完了もしていないものを priority 昇順 → assigned_at 昇順 (同一
	// priority 内はFIFO) で1件返します。Phrase をPreloadします。
	FindNextUndelivered(ctx context.Context, db *gorm.DB, playerID uuid.UUID) (*model.Assignment, error)
	// MarkDelivered は配信済みフラグを立てます。既に配信済み、または
	// アサイン自体が存在しない場合は何もしません (グローバルフレーズには
	// アサイン行がないため)。
	MarkDelivered(ctx context.Context, tx *gorm.DB, phraseID, playerID uuid.UUID) error
}

type gormAssignmentRepository struct{}

func NewGormAssignmentRepository() AssignmentRepository {
	return &gormAssignmentRepository{}
}

func (r *gormAssignmentRepository) CreateIgnoreDuplicates(ctx context.Context, tx *gorm.DB, assignment *model.Assignment) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phrase_id"}, {Name: "target_player_id"}},
		DoNothing: true,
	}).Create(assignment)
	if result.Error != nil {
		logger.Error("Error creating assignment in DB",
			"error", result.Error,
			"phrase_id", assignment.PhraseID.String(),
			"target_player_id", assignment.TargetPlayerID.String(),
		)
		return fmt.Errorf("gormAssignmentRepository.CreateIgnoreDuplicates: %w", result.Error)
	}
	return nil
}

func (r *gormAssignmentRepository) FindNextUndelivered(ctx context.Context, db *gorm.DB, playerID uuid.UUID) (*model.Assignment, error) {
	logger := middleware.GetLogger(ctx)
	var assignment model.Assignment

	result := db.WithContext(ctx).
		Preload("Phrase").
		Where("target_player_id = ? AND is_delivered = ?", playerID, false).
		Where("phrase_id NOT IN (SELECT phrase_id FROM skip_records WHERE player_id = ?)", playerID).
		Where("phrase_id NOT IN (SELECT phrase_id FROM completion_records WHERE player_id = ?)", playerID).
		Order("priority ASC, assigned_at ASC").
		First(&assignment)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding next undelivered assignment in DB",
			"error", result.Error,
			"player_id", playerID.String(),
		)
		return nil, fmt.Errorf("gormAssignmentRepository.FindNextUndelivered: %w", result.Error)
	}
	return &assignment, nil
}

func (r *gormAssignmentRepository) MarkDelivered(ctx context.Context, tx *gorm.DB, phraseID, playerID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	now := time.Now()
	result := tx.WithContext(ctx).Model(&model.Assignment{}).
		Where("phrase_id = ? AND target_player_id = ? AND is_delivered = ?", phraseID, playerID, false).
		Updates(map[string]interface{}{
			"is_delivered": true,
			"delivered_at": &now,
		})
	if result.Error != nil {
		logger.Error("Error marking assignment delivered in DB",
			"error", result.Error,
			"phrase_id", phraseID.String(),
			"player_id", playerID.String(),
		)
		return fmt.Errorf("gormAssignmentRepository.MarkDelivered: %w", result.Error)
	}
	// RowsAffected == 0 は「既に配信済み」か「アサインなし」。どちらも正常。
	return nil
}
