// internal/service/tracker_service.go
package service

import (
	"context"
	"errors"
	"time"

	"go_5_phrase_pool/internal/middleware"
	"go_5_phrase_pool/internal/model"
	"go_5_phrase_pool/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackerService は完了/スキップの記録を冪等に受け付けます。
// CompletionRecord / SkipRecord への書き込みはこのサービスのみが行います。
//
// (player, phrase) ごとの状態遷移:
//
//	UNSEEN → (skip) → SKIPPED → (complete) → COMPLETED [終端]
//	UNSEEN → (complete) → COMPLETED [終端]
//
// COMPLETED 到達後の skip/complete 呼び出しは冪等な no-op になります。
type TrackerService interface {
	// Complete は完了を記録します。既に記録済みの場合はエラーではなく
	// AlreadyRecorded=true を返します (ネットワーク再送が前提のため、
	// 二重加点は起こさず、失敗としても扱わない)。
	Complete(ctx context.Context, playerID, phraseID uuid.UUID, req *model.CompletePhraseRequest) (*model.TrackResult, error)
	// Skip はスキップ (削除ではなく繰り延べ) を記録し、対応するアサインが
	// あれば配信済みにします (スキップは配信の一形態: 見た上で見送っている)。
	Skip(ctx context.Context, playerID, phraseID uuid.UUID) (*model.TrackResult, error)
}

type trackerService struct {
	db             *gorm.DB
	phraseRepo     repository.PhraseRepository
	assignRepo     repository.AssignmentRepository
	completionRepo repository.CompletionRepository
	skipRepo       repository.SkipRepository
}

func NewTrackerService(db *gorm.DB, phraseRepo repository.PhraseRepository, assignRepo repository.AssignmentRepository, completionRepo repository.CompletionRepository, skipRepo repository.SkipRepository) TrackerService {
	return &trackerService{
		db:             db,
		phraseRepo:     phraseRepo,
		assignRepo:     assignRepo,
		completionRepo: completionRepo,
		skipRepo:       skipRepo,
	}
}

func (s *trackerService) Complete(ctx context.Context, playerID, phraseID uuid.UUID, req *model.CompletePhraseRequest) (*model.TrackResult, error) {
	logger := middleware.GetLogger(ctx).With("player_id", playerID.String(), "phrase_id", phraseID.String())

	// 未知のphraseIdはバリデーションエラーとは別の Not Found として返す
	if _, err := s.phraseRepo.FindByID(ctx, s.db, phraseID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PHRASE_NOT_FOUND", "フレーズが見つかりません。", "phrase_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フレーズの確認中にエラーが発生しました。", "", err)
	}

	result := &model.TrackResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := &model.CompletionRecord{
			PlayerID:         playerID,
			PhraseID:         phraseID,
			Score:            req.Score,
			HintsUsed:        req.HintsUsed,
			CompletionTimeMs: req.CompletionTimeMs,
			CompletedAt:      time.Now(),
		}
		created, err := s.completionRepo.CreateIgnoreDuplicates(ctx, tx, record)
		if err != nil {
			return err
		}
		if !created {
			// 同一ペアの near-simultaneous な重複リクエストは conflict-ignore で
			// ちょうど1行に収束し、負けた側はここに来る。
			result.AlreadyRecorded = true
			return nil
		}

		// 初回記録時のみ: アサインを配信済みにし、利用回数を進める
		if err := s.assignRepo.MarkDelivered(ctx, tx, phraseID, playerID); err != nil {
			return err
		}
		return s.phraseRepo.IncrementUsage(ctx, tx, phraseID)
	})
	if err != nil {
		logger.Error("Transaction failed for Complete", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "完了の記録に失敗しました。", "", err)
	}

	logger.Info("Phrase completion recorded", "already_recorded", result.AlreadyRecorded)
	return result, nil
}

func (s *trackerService) Skip(ctx context.Context, playerID, phraseID uuid.UUID) (*model.TrackResult, error) {
	logger := middleware.GetLogger(ctx).With("player_id", playerID.String(), "phrase_id", phraseID.String())

	if _, err := s.phraseRepo.FindByID(ctx, s.db, phraseID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("PHRASE_NOT_FOUND", "フレーズが見つかりません。", "phrase_id", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "フレーズの確認中にエラーが発生しました。", "", err)
	}

	result := &model.TrackResult{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// COMPLETED は終端かつ排他: 完了後のスキップは何も起こさない
		completed, err := s.completionRepo.Exists(ctx, tx, playerID, phraseID)
		if err != nil {
			return err
		}
		if completed {
			result.AlreadyRecorded = true
			return nil
		}

		created, err := s.skipRepo.CreateIgnoreDuplicates(ctx, tx, &model.SkipRecord{
			PlayerID:  playerID,
			PhraseID:  phraseID,
			SkippedAt: time.Now(),
		})
		if err != nil {
			return err
		}
		if !created {
			result.AlreadyRecorded = true
			return nil
		}

		if err := s.assignRepo.MarkDelivered(ctx, tx, phraseID, playerID); err != nil {
			return err
		}
		return s.phraseRepo.IncrementUsage(ctx, tx, phraseID)
	})
	if err != nil {
		logger.Error("Transaction failed for Skip", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "スキップの記録に失敗しました。", "", err)
	}

	logger.Info("Phrase skip recorded", "already_recorded", result.AlreadyRecorded)
	return result, nil
}
