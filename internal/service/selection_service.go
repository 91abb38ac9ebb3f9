// internal/service/selection_service.go
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

// SelectionService は「プレイヤーXの次のフレーズ」を決める唯一の入口です。
// 3層を順に評価します:
//
//  1. ターゲット層 — 自分宛の未配信アサイン。難易度・承認フィルタは一切
//     適用しない (プレイヤー間の直接送信は受信者のスキルに関係なく届く)。
//  2. グローバル層 — 難易度上限以下の承認済みグローバルフレーズ。上限が
//     閾値未満のプレイヤーには広げた上限を適用する (初心者ブースト)。
//  3. フォールバック層 — 自分がスキップ済みで未完了のフレーズ。
//
// 3層とも空なら (nil, nil) を返す。これはエラーではなく正当な空状態。
type SelectionService interface {
	NextPhrase(ctx context.Context, playerID uuid.UUID) (*model.NextPhraseResponse, error)
	// PhraseBatch はクライアント先読み用に最大 limit 件 (BatchLimitで制限)
	// をまとめて返します。ターゲット分が先、残りをグローバルで埋めます。
	PhraseBatch(ctx context.Context, playerID uuid.UUID, limit int) ([]*model.NextPhraseResponse, error)
}

type selectionService struct {
	db         *gorm.DB
	phraseRepo repository.PhraseRepository
	assignRepo repository.AssignmentRepository
	playerRepo repository.PlayerRepository
	cfg        *config.Config
}

func NewSelectionService(db *gorm.DB, phraseRepo repository.PhraseRepository, assignRepo repository.AssignmentRepository, playerRepo repository.PlayerRepository, cfg *config.Config) SelectionService {
	return &selectionService{
		db:         db,
		phraseRepo: phraseRepo,
		assignRepo: assignRepo,
		playerRepo: playerRepo,
		cfg:        cfg,
	}
}

func (s *selectionService) NextPhrase(ctx context.Context, playerID uuid.UUID) (*model.NextPhraseResponse, error) {
	logger := middleware.GetLogger(ctx).With("player_id", playerID.String())

	// 層1: ターゲット
	targeted, err := s.nextTargeted(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if targeted != nil {
		logger.Info("Next phrase selected", "source", model.SourceTargeted, "phrase_id", targeted.PhraseID.String())
		return targeted, nil
	}

	// 層2: グローバル (初心者ブースト適用)
	ceiling, err := s.effectiveCeiling(ctx, playerID)
	if err != nil {
		return nil, err
	}
	phrases, err := s.phraseRepo.FindEligibleGlobal(ctx, s.db, playerID, ceiling, s.cfg.App.SelectionLimit)
	if err != nil {
		logger.Error("Failed to query eligible global phrases", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フレーズの取得に失敗しました。", "", err)
	}
	if len(phrases) > 0 {
		resp := s.toResponse(ctx, phrases[0], model.SourceGlobal)
		logger.Info("Next phrase selected", "source", model.SourceGlobal, "phrase_id", resp.PhraseID.String(), "ceiling", ceiling)
		return resp, nil
	}

	// 層3: スキップフォールバック。ターゲットもグローバルも尽きたプレイヤーを
	// 手ぶらにしないため、後回しにしたものを再提示する。
	fallback, err := s.phraseRepo.FindSkipFallback(ctx, s.db, playerID, s.cfg.App.SelectionLimit)
	if err != nil {
		logger.Error("Failed to query skip fallback phrases", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フレーズの取得に失敗しました。", "", err)
	}
	if len(fallback) > 0 {
		resp := s.toResponse(ctx, fallback[0], model.SourceFallback)
		logger.Info("Next phrase selected", "source", model.SourceFallback, "phrase_id", resp.PhraseID.String())
		return resp, nil
	}

	// 全層が空: エラーではなく正当な空状態
	logger.Info("No phrase available for player")
	return nil, nil
}

func (s *selectionService) PhraseBatch(ctx context.Context, playerID uuid.UUID, limit int) ([]*model.NextPhraseResponse, error) {
	logger := middleware.GetLogger(ctx).With("player_id", playerID.String())

	if limit <= 0 {
		limit = s.cfg.App.SelectionLimit
	}
	if limit > s.cfg.App.BatchLimit {
		limit = s.cfg.App.BatchLimit
	}

	batch := make([]*model.NextPhraseResponse, 0, limit)

	// ターゲット分を優先して詰める
	for len(batch) < limit {
		targeted, err := s.nextTargeted(ctx, playerID)
		if err != nil {
			return nil, err
		}
		if targeted == nil {
			break
		}
		batch = append(batch, targeted)
	}

	// 残りをグローバルで埋める
	if len(batch) < limit {
		ceiling, err := s.effectiveCeiling(ctx, playerID)
		if err != nil {
			return nil, err
		}
		phrases, err := s.phraseRepo.FindEligibleGlobal(ctx, s.db, playerID, ceiling, limit-len(batch))
		if err != nil {
			logger.Error("Failed to query eligible global phrases for batch", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フレーズの取得に失敗しました。", "", err)
		}
		for _, phrase := range phrases {
			batch = append(batch, s.toResponse(ctx, phrase, model.SourceGlobal))
		}
	}

	// 両層で1件も得られなかった場合のみフォールバックを使う
	if len(batch) == 0 {
		fallback, err := s.phraseRepo.FindSkipFallback(ctx, s.db, playerID, limit)
		if err != nil {
			logger.Error("Failed to query skip fallback phrases for batch", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フレーズの取得に失敗しました。", "", err)
		}
		for _, phrase := range fallback {
			batch = append(batch, s.toResponse(ctx, phrase, model.SourceFallback))
		}
	}

	logger.Info("Phrase batch selected", "count", len(batch))
	return batch, nil
}

// nextTargeted は未配信のターゲットアサインを1件取り出し、配信済みに
// マークして返します。なければ (nil, nil)。
func (s *selectionService) nextTargeted(ctx context.Context, playerID uuid.UUID) (*model.NextPhraseResponse, error) {
	logger := middleware.GetLogger(ctx)

	assignment, err := s.assignRepo.FindNextUndelivered(ctx, s.db, playerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		logger.Error("Failed to query targeted assignments", "error", err, "player_id", playerID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フレーズの取得に失敗しました。", "", err)
	}
	if assignment.Phrase == nil {
		// アサインはあるがフレーズ行がない。データ不整合なのでスキップ扱い。
		logger.Warn("Assignment with missing phrase row, skipping", "assignment_id", assignment.AssignmentID.String())
		return nil, nil
	}

	// 手渡した時点で配信済みに遷移する (false→true はちょうど1回)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.assignRepo.MarkDelivered(ctx, tx, assignment.PhraseID, playerID)
	})
	if err != nil {
		logger.Error("Failed to mark assignment delivered", "error", err, "assignment_id", assignment.AssignmentID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フレーズの配信記録に失敗しました。", "", err)
	}

	return s.toResponse(ctx, assignment.Phrase, model.SourceTargeted), nil
}

// effectiveCeiling はプレイヤーの難易度上限に初心者ブーストを適用します。
// 上限が閾値未満の新しいプレイヤーは、狭すぎるグローバルプールで飢えない
// よう広げた上限で引きます。
func (s *selectionService) effectiveCeiling(ctx context.Context, playerID uuid.UUID) (int, error) {
	player, err := s.playerRepo.FindByID(ctx, s.db, playerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return 0, model.NewAppError("PLAYER_NOT_FOUND", "プレイヤーが見つかりません。", "player_id", model.ErrNotFound)
		}
		return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "プレイヤーの取得に失敗しました。", "", err)
	}

	ceiling := player.SkillScore
	if ceiling < s.cfg.App.BeginnerBoostThreshold {
		ceiling = s.cfg.App.BeginnerBoostCeiling
	}
	return ceiling, nil
}

func (s *selectionService) toResponse(ctx context.Context, phrase *model.Phrase, source string) *model.NextPhraseResponse {
	return &model.NextPhraseResponse{
		PhraseID:        phrase.PhraseID,
		Content:         phrase.Content,
		Hint:            phrase.Hint,
		Language:        phrase.Language,
		DifficultyScore: phrase.DifficultyScore,
		Source:          source,
		SenderName:      resolveSenderName(ctx, s.db, s.playerRepo, phrase),
	}
}
