//go:generate mockery --name PlayerRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_5_phrase_pool/internal/middleware"
	"go_5_phrase_pool/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type PlayerRepository interface {
	Create(ctx context.Context, db *gorm.DB, player *model.Player) error
	FindByID(ctx context.Context, db *gorm.DB, playerID uuid.UUID) (*model.Player, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Player, error)
}

type gormPlayerRepository struct{}

func NewGormPlayerRepository() PlayerRepository {
	return &gormPlayerRepository{}
}

func (r *gormPlayerRepository) Create(ctx context.Context, db *gorm.DB, player *model.Player) error {
	logger := middleware.GetLogger(ctx)

	result := db.WithContext(ctx).Create(player)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate key error on create player",
				"error", result.Error,
				"player_name", player.Name,
			)
			return model.ErrConflict
		}
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return model.ErrConflict
		}

		logger.Error("Error creating player in DB",
			"error", result.Error,
			"player_name", player.Name,
		)
		return fmt.Errorf("gormPlayerRepository.Create: %w", result.Error)
	}

	return nil
}

func (r *gormPlayerRepository) FindByID(ctx context.Context, db *gorm.DB, playerID uuid.UUID) (*model.Player, error) {
	logger := middleware.GetLogger(ctx)
	var player model.Player
	result := db.WithContext(ctx).Where("player_id = ?", playerID).First(&player)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding player by ID in DB",
			"error", result.Error,
			"player_id", playerID.String(),
		)
		return nil, fmt.Errorf("gormPlayerRepository.FindByID: %w", result.Error)
	}
	return &player, nil
}

func (r *gormPlayerRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Player, error) {
	logger := middleware.GetLogger(ctx)
	var player model.Player
	result := db.WithContext(ctx).Where("name = ?", name).First(&player)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding player by name in DB",
			"error", result.Error,
			"player_name", name,
		)
		return nil, fmt.Errorf("gormPlayerRepository.FindByName: %w", result.Error)
	}
	return &player, nil
}
