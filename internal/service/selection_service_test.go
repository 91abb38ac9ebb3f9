// internal/service/selection_service_test.go
package service

import (
	"testing"
	"time"

	"go_5_phrase_pool/internal/model"
	"go_5_phrase_pool/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_selectionService_NextPhrase_TargetedTier(t *testing.T) {
	ctx := testContext()
	db := setupTestDB(t)
	cfg := testPolicyConfig()

	playerID := uuid.New()
	senderID := uuid.New()

	// 難易度99のターゲット指定フレーズ。受信者の上限がどれだけ低くても届くこと
	// (ターゲット層は難易度・承認フィルタを適用しない)。
	phrase := &model.Phrase{
		PhraseID:          uuid.New(),
		Content:           "quixotic jazz fugue",
		Language:          model.LanguageEnglish,
		DifficultyScore:   99,
		IsApproved:        false, // 承認取消済みでもターゲット層では届く
		CreatedByPlayerID: &senderID,
	}
	assignment := &model.Assignment{
		AssignmentID:   uuid.New(),
		PhraseID:       phrase.PhraseID,
		TargetPlayerID: playerID,
		AssignedAt:     time.Now(),
		Phrase:         phrase,
	}

	mockPhraseRepo := new(mocks.PhraseRepository)
	mockAssignRepo := new(mocks.AssignmentRepository)
	mockPlayerRepo := new(mocks.PlayerRepository)

	mockAssignRepo.On("FindNextUndelivered", ctx, mock.AnythingOfType("*gorm.DB"), playerID).
		Return(assignment, nil).Once()
	// 手渡した時点で配信済みに遷移する
	mockAssignRepo.On("MarkDelivered", ctx, mock.AnythingOfType("*gorm.DB"), phrase.PhraseID, playerID).
		Return(nil).Once()
	mockPlayerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), senderID).
		Return(&model.Player{PlayerID: senderID, Name: "alice"}, nil).Once()

	svc := NewSelectionService(db, mockPhraseRepo, mockAssignRepo, mockPlayerRepo, cfg)
	resp, err := svc.NextPhrase(ctx, playerID)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, phrase.PhraseID, resp.PhraseID)
	assert.Equal(t, model.SourceTargeted, resp.Source)
	assert.Equal(t, "alice", resp.SenderName)
	assert.Equal(t, 99, resp.DifficultyScore)

	// ターゲット層で見つかった場合、グローバル/フォールバックには進まない
	mockPhraseRepo.AssertNotCalled(t, "FindEligibleGlobal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockPhraseRepo.AssertNotCalled(t, "FindSkipFallback", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockAssignRepo.AssertExpectations(t)
}

func Test_selectionService_NextPhrase_GlobalTier(t *testing.T) {
	ctx := testContext()
	db := setupTestDB(t)
	cfg := testPolicyConfig()

	playerID := uuid.New()

	tests := []struct {
		name        string
		skillScore  int
		wantCeiling int
	}{
		{
			name:        "正常系: 初心者ブースト (上限が閾値未満なら広げた上限で引く)",
			skillScore:  40,
			wantCeiling: cfg.App.BeginnerBoostCeiling,
		},
		{
			name:        "正常系: 閾値以上のプレイヤーは自分の上限のまま",
			skillScore:  80,
			wantCeiling: 80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			globalPhrase := &model.Phrase{
				PhraseID:        uuid.New(),
				Content:         "hello world",
				Language:        model.LanguageEnglish,
				DifficultyScore: 30,
				IsGlobal:        true,
				IsApproved:      true,
			}

			mockPhraseRepo := new(mocks.PhraseRepository)
			mockAssignRepo := new(mocks.AssignmentRepository)
			mockPlayerRepo := new(mocks.PlayerRepository)

			mockAssignRepo.On("FindNextUndelivered", ctx, mock.AnythingOfType("*gorm.DB"), playerID).
				Return(nil, model.ErrNotFound).Once()
			mockPlayerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), playerID).
				Return(&model.Player{PlayerID: playerID, Name: "dave", SkillScore: tt.skillScore}, nil).Once()
			// 期待する実効上限でグローバルプールが引かれること
			mockPhraseRepo.On("FindEligibleGlobal", ctx, mock.AnythingOfType("*gorm.DB"), playerID, tt.wantCeiling, cfg.App.SelectionLimit).
				Return([]*model.Phrase{globalPhrase}, nil).Once()

			svc := NewSelectionService(db, mockPhraseRepo, mockAssignRepo, mockPlayerRepo, cfg)
			resp, err := svc.NextPhrase(ctx, playerID)

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, model.SourceGlobal, resp.Source)
			assert.Equal(t, systemSenderName, resp.SenderName)
			mockPhraseRepo.AssertExpectations(t)
			mockPlayerRepo.AssertExpectations(t)
		})
	}
}

func Test_selectionService_NextPhrase_FallbackTier(t *testing.T) {
	ctx := testContext()
	db := setupTestDB(t)
	cfg := testPolicyConfig()

	playerID := uuid.New()
	skipped := &model.Phrase{
		PhraseID:        uuid.New(),
		Content:         "hello world",
		Language:        model.LanguageEnglish,
		DifficultyScore: 20,
		IsGlobal:        true,
		IsApproved:      true,
	}

	mockPhraseRepo := new(mocks.PhraseRepository)
	mockAssignRepo := new(mocks.AssignmentRepository)
	mockPlayerRepo := new(mocks.PlayerRepository)

	mockAssignRepo.On("FindNextUndelivered", ctx, mock.AnythingOfType("*gorm.DB"), playerID).
		Return(nil, model.ErrNotFound).Once()
	mockPlayerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), playerID).
		Return(&model.Player{PlayerID: playerID, Name: "dave", SkillScore: 80}, nil).Once()
	mockPhraseRepo.On("FindEligibleGlobal", ctx, mock.AnythingOfType("*gorm.DB"), playerID, 80, cfg.App.SelectionLimit).
		Return([]*model.Phrase{}, nil).Once()
	// ターゲットもグローバルも尽きたらスキップ済みを再提示する
	mockPhraseRepo.On("FindSkipFallback", ctx, mock.AnythingOfType("*gorm.DB"), playerID, cfg.App.SelectionLimit).
		Return([]*model.Phrase{skipped}, nil).Once()

	svc := NewSelectionService(db, mockPhraseRepo, mockAssignRepo, mockPlayerRepo, cfg)
	resp, err := svc.NextPhrase(ctx, playerID)

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, model.SourceFallback, resp.Source)
	mockPhraseRepo.AssertExpectations(t)
}

// 3層とも空なら (nil, nil)。エラーではなく正当な空状態。
func Test_selectionService_NextPhrase_AllTiersEmpty(t *testing.T) {
	ctx := testContext()
	db := setupTestDB(t)
	cfg := testPolicyConfig()

	playerID := uuid.New()

	mockPhraseRepo := new(mocks.PhraseRepository)
	mockAssignRepo := new(mocks.AssignmentRepository)
	mockPlayerRepo := new(mocks.PlayerRepository)

	mockAssignRepo.On("FindNextUndelivered", ctx, mock.AnythingOfType("*gorm.DB"), playerID).
		Return(nil, model.ErrNotFound).Once()
	mockPlayerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), playerID).
		Return(&model.Player{PlayerID: playerID, Name: "dave", SkillScore: 80}, nil).Once()
	mockPhraseRepo.On("FindEligibleGlobal", ctx, mock.AnythingOfType("*gorm.DB"), playerID, 80, cfg.App.SelectionLimit).
		Return([]*model.Phrase{}, nil).Once()
	mockPhraseRepo.On("FindSkipFallback", ctx, mock.AnythingOfType("*gorm.DB"), playerID, cfg.App.SelectionLimit).
		Return([]*model.Phrase{}, nil).Once()

	svc := NewSelectionService(db, mockPhraseRepo, mockAssignRepo, mockPlayerRepo, cfg)
	resp, err := svc.NextPhrase(ctx, playerID)

	assert.NoError(t, err)
	assert.Nil(t, resp)
}

func Test_selectionService_PhraseBatch(t *testing.T) {
	ctx := testContext()
	db := setupTestDB(t)
	cfg := testPolicyConfig()

	playerID := uuid.New()

	newAssignment := func(priority int) *model.Assignment {
		phrase := &model.Phrase{
			PhraseID:        uuid.New(),
			Content:         "hello world",
			Language:        model.LanguageEnglish,
			DifficultyScore: 10,
		}
		return &model.Assignment{
			AssignmentID:   uuid.New(),
			PhraseID:       phrase.PhraseID,
			TargetPlayerID: playerID,
			Priority:       priority,
			AssignedAt:     time.Now(),
			Phrase:         phrase,
		}
	}

	t.Run("正常系: ターゲット分が先、残りをグローバルで埋める", func(t *testing.T) {
		first := newAssignment(0)
		second := newAssignment(1)
		globalPhrase := &model.Phrase{
			PhraseID:        uuid.New(),
			Content:         "global pick",
			Language:        model.LanguageEnglish,
			DifficultyScore: 20,
			IsGlobal:        true,
			IsApproved:      true,
		}

		mockPhraseRepo := new(mocks.PhraseRepository)
		mockAssignRepo := new(mocks.AssignmentRepository)
		mockPlayerRepo := new(mocks.PlayerRepository)

		mockAssignRepo.On("FindNextUndelivered", ctx, mock.AnythingOfType("*gorm.DB"), playerID).
			Return(first, nil).Once()
		mockAssignRepo.On("FindNextUndelivered", ctx, mock.AnythingOfType("*gorm.DB"), playerID).
			Return(second, nil).Once()
		mockAssignRepo.On("FindNextUndelivered", ctx, mock.AnythingOfType("*gorm.DB"), playerID).
			Return(nil, model.ErrNotFound).Once()
		mockAssignRepo.On("MarkDelivered", ctx, mock.AnythingOfType("*gorm.DB"), first.PhraseID, playerID).
			Return(nil).Once()
		mockAssignRepo.On("MarkDelivered", ctx, mock.AnythingOfType("*gorm.DB"), second.PhraseID, playerID).
			Return(nil).Once()
		mockPlayerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), playerID).
			Return(&model.Player{PlayerID: playerID, Name: "dave", SkillScore: 80}, nil).Once()
		mockPhraseRepo.On("FindEligibleGlobal", ctx, mock.AnythingOfType("*gorm.DB"), playerID, 80, 3).
			Return([]*model.Phrase{globalPhrase}, nil).Once()

		svc := NewSelectionService(db, mockPhraseRepo, mockAssignRepo, mockPlayerRepo, cfg)
		batch, err := svc.PhraseBatch(ctx, playerID, 5)

		require.NoError(t, err)
		require.Len(t, batch, 3)
		assert.Equal(t, model.SourceTargeted, batch[0].Source)
		assert.Equal(t, first.PhraseID, batch[0].PhraseID)
		assert.Equal(t, model.SourceTargeted, batch[1].Source)
		assert.Equal(t, second.PhraseID, batch[1].PhraseID)
		assert.Equal(t, model.SourceGlobal, batch[2].Source)
		mockAssignRepo.AssertExpectations(t)
		mockPhraseRepo.AssertExpectations(t)
	})

	t.Run("正常系: limit は BatchLimit で頭打ちになる", func(t *testing.T) {
		mockPhraseRepo := new(mocks.PhraseRepository)
		mockAssignRepo := new(mocks.AssignmentRepository)
		mockPlayerRepo := new(mocks.PlayerRepository)

		mockAssignRepo.On("FindNextUndelivered", ctx, mock.AnythingOfType("*gorm.DB"), playerID).
			Return(nil, model.ErrNotFound).Once()
		mockPlayerRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), playerID).
			Return(&model.Player{PlayerID: playerID, Name: "dave", SkillScore: 80}, nil).Once()
		// limit=1000 を要求しても BatchLimit=25 に切り詰められること
		mockPhraseRepo.On("FindEligibleGlobal", ctx, mock.AnythingOfType("*gorm.DB"), playerID, 80, cfg.App.BatchLimit).
			Return([]*model.Phrase{}, nil).Once()
		mockPhraseRepo.On("FindSkipFallback", ctx, mock.AnythingOfType("*gorm.DB"), playerID, cfg.App.BatchLimit).
			Return([]*model.Phrase{}, nil).Once()

		svc := NewSelectionService(db, mockPhraseRepo, mockAssignRepo, mockPlayerRepo, cfg)
		batch, err := svc.PhraseBatch(ctx, playerID, 1000)

		require.NoError(t, err)
		assert.Empty(t, batch)
		mockPhraseRepo.AssertExpectations(t)
	})
}
