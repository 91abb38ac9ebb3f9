// internal/service/player_service.go
package service

import (
	"context"
	"errors"

	"go_5_phrase_pool/internal/config"
	"go_5_phrase_pool/internal/middleware"
	"go_5_phrase_pool/internal/model"
	"go_5_phrase_pool/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlayerService はプレイヤーの最小限の登録と参照を提供します。
// セッション/トークン管理は外部コラボレータの責務のため、ここでは扱いません。
type PlayerService interface {
	RegisterPlayer(ctx context.Context, req *model.RegisterPlayerRequest) (*model.Player, error)
	GetPlayer(ctx context.Context, playerID uuid.UUID) (*model.Player, error)
	// Authenticate は middleware.PlayerAuthenticator の実装です。
	Authenticate(ctx context.Context, playerID uuid.UUID) error
}

type playerService struct {
	db         *gorm.DB
	playerRepo repository.PlayerRepository
}

func NewPlayerService(db *gorm.DB, playerRepo repository.PlayerRepository) PlayerService {
	return &playerService{
		db:         db,
		playerRepo: playerRepo,
	}
}

func (s *playerService) RegisterPlayer(ctx context.Context, req *model.RegisterPlayerRequest) (*model.Player, error) {
	logger := middleware.GetLogger(ctx)

	// 名前の事前チェック。最終防壁はユニーク制約だが、先に引いておくと
	// 大半の重複は制約違反になる前に返せる。
	if _, err := s.playerRepo.FindByName(ctx, s.db, req.Name); err == nil {
		return nil, model.NewAppError("PLAYER_NAME_TAKEN", "この名前は既に使用されています。", "name", model.ErrConflict)
	} else if !errors.Is(err, model.ErrNotFound) {
		logger.Error("Error checking player name", "error", err, "player_name", req.Name)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "プレイヤーの登録に失敗しました。", "", model.ErrInternalServer)
	}

	player := &model.Player{
		PlayerID:   uuid.New(),
		Name:       req.Name,
		SkillScore: config.MinDifficultyScore,
	}

	if err := s.playerRepo.Create(ctx, s.db, player); err != nil {
		if errors.Is(err, model.ErrConflict) {
			// 事前チェックと挿入の間に同名が滑り込んだ場合
			return nil, model.NewAppError("PLAYER_NAME_TAKEN", "この名前は既に使用されています。", "name", model.ErrConflict)
		}
		logger.Error("Error registering player", "error", err, "player_name", req.Name)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "プレイヤーの登録に失敗しました。", "", model.ErrInternalServer)
	}

	return player, nil
}

func (s *playerService) GetPlayer(ctx context.Context, playerID uuid.UUID) (*model.Player, error) {
	player, err := s.playerRepo.FindByID(ctx, s.db, playerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PLAYER_NOT_FOUND", "プレイヤーが見つかりません。", "player_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "プレイヤーの取得に失敗しました。", "", err)
	}
	return player, nil
}

func (s *playerService) Authenticate(ctx context.Context, playerID uuid.UUID) error {
	_, err := s.playerRepo.FindByID(ctx, s.db, playerID)
	return err
}
