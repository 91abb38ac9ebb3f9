// internal/service/phrase_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go_5_phrase_pool/internal/config"
	"go_5_phrase_pool/internal/middleware"
	"go_5_phrase_pool/internal/model"
	"go_5_phrase_pool/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PhraseService はフレーズ作成 (マルチターゲット含む) とモデレーションを
// 受け持ちます。Phrase + Assignment の組の作成はこのサービスのみが行います。
type PhraseService interface {
	// CreatePhrase は検証→スコア計算→フレーズと全ターゲットのアサインを
	// 1トランザクションで作成します。途中で失敗した場合は何も永続化されません。
	// senderID が nil の場合はシステム/外部投稿扱いになります。
	CreatePhrase(ctx context.Context, senderID *uuid.UUID, req *model.CreatePhraseRequest) (*model.Phrase, error)
	GetPhrase(ctx context.Context, phraseID uuid.UUID) (*model.Phrase, error)
	// ApprovePhrase はモデレーションの承認ゲートを切り替えます。
	ApprovePhrase(ctx context.Context, phraseID uuid.UUID, approved bool) (*model.Phrase, error)
}

type phraseService struct {
	db         *gorm.DB
	phraseRepo repository.PhraseRepository
	assignRepo repository.AssignmentRepository
	playerRepo repository.PlayerRepository
	scorer     DifficultyScorer
	notifier   Notifier
	cfg        *config.Config
}

func NewPhraseService(db *gorm.DB, phraseRepo repository.PhraseRepository, assignRepo repository.AssignmentRepository, playerRepo repository.PlayerRepository, scorer DifficultyScorer, notifier Notifier, cfg *config.Config) PhraseService {
	return &phraseService{
		db:         db,
		phraseRepo: phraseRepo,
		assignRepo: assignRepo,
		playerRepo: playerRepo,
		scorer:     scorer,
		notifier:   notifier,
		cfg:        cfg,
	}
}

func (s *phraseService) CreatePhrase(ctx context.Context, senderID *uuid.UUID, req *model.CreatePhraseRequest) (*model.Phrase, error) {
	logger := middleware.GetLogger(ctx)

	// 1. 形状検証。違反は全件まとめて返す。
	content, hint, violations := ValidatePhrase(req.Content, req.Hint, s.cfg)
	if len(violations) > 0 {
		messages := make([]string, 0, len(violations))
		for _, v := range violations {
			messages = append(messages, v.Message)
		}
		appErr := model.NewAppError("VALIDATION_ERROR", strings.Join(messages, " "), "content", model.ErrInvalidInput)
		appErr.Details = violations
		return nil, appErr
	}

	language := req.Language
	if language == "" {
		language = model.LanguageEnglish
	}

	// 2. 送信者の実在確認と表示名の解決。優先順は resolveSenderName と
	//    同じ: 投稿者名 → プレイヤー名 → "System"。
	senderName := systemSenderName
	if senderID != nil {
		sender, err := s.playerRepo.FindByID(ctx, s.db, *senderID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return nil, model.NewAppError("PLAYER_NOT_FOUND", "送信者プレイヤーが見つかりません。", "sender_id", model.ErrNotFound)
			}
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "送信者の確認中にエラーが発生しました。", "", err)
		}
		senderName = sender.Name
	}
	if req.ContributorName != "" {
		senderName = req.ContributorName
	}

	// 3. 難易度スコアの計算。スコアラーの失敗で作成をブロックしてはならない:
	//    最小スコアに置き換えてログに残す。
	score, err := s.scorer.Score(content, language)
	if err != nil || score < config.MinDifficultyScore || score > config.MaxDifficultyScore {
		logger.Warn("Difficulty scorer failed, falling back to minimum score",
			"error", err,
			"returned_score", score,
			"content", content,
		)
		score = config.MinDifficultyScore
	}

	// ターゲットの重複を除去 (順序は維持し、priority に反映する)
	targetIDs := dedupeUUIDs(req.TargetIDs)

	phrase := &model.Phrase{
		PhraseID:          uuid.New(),
		Content:           content,
		Hint:              hint,
		Language:          language,
		DifficultyScore:   score,
		IsGlobal:          req.IsGlobal,
		IsApproved:        true, // 作成時点で可視。モデレーションは取り消しのみ行う。
		CreatedByPlayerID: senderID,
		ContributorName:   req.ContributorName,
	}

	// 4. フレーズと全アサインを単一トランザクションで作成する。
	//    一部のターゲットだけ挿入された状態は許されない。
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, targetID := range targetIDs {
			if _, err := s.playerRepo.FindByID(ctx, tx, targetID); err != nil {
				if errors.Is(err, model.ErrNotFound) {
					return model.NewAppError("TARGET_NOT_FOUND", "宛先プレイヤーが見つかりません。", "target_ids", model.ErrNotFound)
				}
				return model.NewAppError("INTERNAL_SERVER_ERROR", "宛先プレイヤーの確認中にエラーが発生しました。", "", err)
			}
		}

		if err := s.phraseRepo.Create(ctx, tx, phrase); err != nil {
			return model.NewAppError("INTERNAL_SERVER_ERROR", "フレーズの作成に失敗しました。", "", err)
		}

		now := time.Now()
		for i, targetID := range targetIDs {
			assignment := &model.Assignment{
				AssignmentID:   uuid.New(),
				PhraseID:       phrase.PhraseID,
				TargetPlayerID: targetID,
				Priority:       i,
				AssignedAt:     now,
			}
			if err := s.assignRepo.CreateIgnoreDuplicates(ctx, tx, assignment); err != nil {
				return model.NewAppError("INTERNAL_SERVER_ERROR", "フレーズの宛先登録に失敗しました。", "", err)
			}
		}
		return nil // コミット
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		logger.Error("Transaction failed for CreatePhrase", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フレーズの作成に失敗しました。", "", model.ErrInternalServer)
	}

	// 5. コミット後にのみ通知イベントを発行する。通知の失敗は作成の成否に
	//    影響しない (ログのみ)。
	for _, targetID := range targetIDs {
		tid := targetID
		event := model.PhraseEvent{
			PhraseID:       phrase.PhraseID,
			TargetPlayerID: &tid,
			SenderName:     senderName,
			CreatedAt:      phrase.CreatedAt,
		}
		if err := s.notifier.Notify(ctx, event); err != nil {
			logger.Warn("Failed to notify phrase target", "error", err, "target_player_id", tid.String())
		}
	}
	if phrase.IsGlobal {
		event := model.PhraseEvent{
			PhraseID:   phrase.PhraseID,
			SenderName: senderName,
			CreatedAt:  phrase.CreatedAt,
		}
		if err := s.notifier.Notify(ctx, event); err != nil {
			logger.Warn("Failed to notify global phrase publish", "error", err, "phrase_id", phrase.PhraseID.String())
		}
	}

	logger.Info("Phrase created",
		"phrase_id", phrase.PhraseID.String(),
		"difficulty_score", phrase.DifficultyScore,
		"target_count", len(targetIDs),
		"is_global", phrase.IsGlobal,
	)
	return phrase, nil
}

func (s *phraseService) GetPhrase(ctx context.Context, phraseID uuid.UUID) (*model.Phrase, error) {
	phrase, err := s.phraseRepo.FindByID(ctx, s.db, phraseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PHRASE_NOT_FOUND", "フレーズが見つかりません。", "phrase_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フレーズの取得に失敗しました。", "", err)
	}
	return phrase, nil
}

func (s *phraseService) ApprovePhrase(ctx context.Context, phraseID uuid.UUID, approved bool) (*model.Phrase, error) {
	var updated *model.Phrase

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.phraseRepo.SetApproved(ctx, tx, phraseID, approved); err != nil {
			return err
		}
		var err error
		updated, err = s.phraseRepo.FindByID(ctx, tx, phraseID)
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PHRASE_NOT_FOUND", "フレーズが見つかりません。", "phrase_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "承認状態の更新に失敗しました。", "", err)
	}
	return updated, nil
}

const systemSenderName = "System"

// resolveSenderName はフレーズの送信者表示名を決定します。
// 優先順: 保存された投稿者名 → 作成プレイヤー名の参照 → "System"。
func resolveSenderName(ctx context.Context, db *gorm.DB, playerRepo repository.PlayerRepository, phrase *model.Phrase) string {
	if phrase.ContributorName != "" {
		return phrase.ContributorName
	}
	if phrase.CreatedByPlayerID != nil {
		if player, err := playerRepo.FindByID(ctx, db, *phrase.CreatedByPlayerID); err == nil {
			return player.Name
		}
	}
	return systemSenderName
}

// dedupeUUIDs は順序を維持したまま重複IDを除去します。
func dedupeUUIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	result := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}
