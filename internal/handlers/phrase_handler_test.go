// internal/handlers/phrase_handler_test.go
package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_5_phrase_pool/internal/model"
)

func TestPhraseAPI_Create(t *testing.T) {
	clearTables(t)
	server := httptest.NewServer(testRouter)
	defer server.Close()

	sender := createTestPlayer(t, "alice", 50)
	targetA := createTestPlayer(t, "bob", 1)
	targetB := createTestPlayer(t, "carol", 1)

	t.Run("正常系: グローバルフレーズの作成 (スコアは作成時に一度だけ計算)", func(t *testing.T) {
		body := sendRequest(t, server, httpRequestDetails{
			Method:   http.MethodPost,
			Path:     "/api/v1/phrases/",
			Body:     model.CreatePhraseRequest{Content: "quick brown fox", Hint: "animal clue", IsGlobal: true},
			PlayerID: &sender.PlayerID,
		}, http.StatusCreated)

		phrase := decodeBody[model.Phrase](t, body)
		assert.NotEqual(t, uuid.Nil, phrase.PhraseID)
		assert.Equal(t, "quick brown fox", phrase.Content)
		assert.True(t, phrase.IsGlobal)
		assert.True(t, phrase.IsApproved)
		assert.GreaterOrEqual(t, phrase.DifficultyScore, 1)
		assert.LessOrEqual(t, phrase.DifficultyScore, 100)
		require.NotNil(t, phrase.CreatedByPlayerID)
		assert.Equal(t, sender.PlayerID, *phrase.CreatedByPlayerID)
	})

	t.Run("正常系: 複数ターゲット指定 (全アサインが同時に作られる)", func(t *testing.T) {
		body := sendRequest(t, server, httpRequestDetails{
			Method: http.MethodPost,
			Path:   "/api/v1/phrases/",
			Body: model.CreatePhraseRequest{
				Content:   "hello world",
				TargetIDs: []uuid.UUID{targetA.PlayerID, targetB.PlayerID},
			},
			PlayerID: &sender.PlayerID,
		}, http.StatusCreated)

		phrase := decodeBody[model.Phrase](t, body)

		var assignments []model.Assignment
		require.NoError(t, testDB.Where("phrase_id = ?", phrase.PhraseID).Order("priority ASC").Find(&assignments).Error)
		require.Len(t, assignments, 2)
		assert.Equal(t, targetA.PlayerID, assignments[0].TargetPlayerID)
		assert.Equal(t, 0, assignments[0].Priority)
		assert.Equal(t, targetB.PlayerID, assignments[1].TargetPlayerID)
		assert.Equal(t, 1, assignments[1].Priority)
		assert.False(t, assignments[0].IsDelivered)
	})

	t.Run("異常系: 検証違反は全件返る", func(t *testing.T) {
		body := sendRequest(t, server, httpRequestDetails{
			Method:   http.MethodPost,
			Path:     "/api/v1/phrases/",
			Body:     model.CreatePhraseRequest{Content: "thisisaverylongword", Hint: "thisisaverylongword"},
			PlayerID: &sender.PlayerID,
		}, http.StatusBadRequest)

		errResp := decodeBody[model.APIErrorResponse](t, body)
		assert.Len(t, errResp.Details, 3)

		// 何も永続化されていないこと
		var count int64
		require.NoError(t, testDB.Model(&model.Phrase{}).Where("content = ?", "thisisaverylongword").Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})

	t.Run("異常系: 存在しない宛先が1つでもあれば全体が失敗する", func(t *testing.T) {
		var before int64
		require.NoError(t, testDB.Model(&model.Assignment{}).Count(&before).Error)

		sendRequest(t, server, httpRequestDetails{
			Method: http.MethodPost,
			Path:   "/api/v1/phrases/",
			Body: model.CreatePhraseRequest{
				Content:   "nice try though",
				TargetIDs: []uuid.UUID{targetA.PlayerID, uuid.New()},
			},
			PlayerID: &sender.PlayerID,
		}, http.StatusNotFound)

		var after int64
		require.NoError(t, testDB.Model(&model.Assignment{}).Count(&after).Error)
		assert.Equal(t, before, after, "部分的なアサイン挿入は許されない")
		var phraseCount int64
		require.NoError(t, testDB.Model(&model.Phrase{}).Where("content = ?", "nice try though").Count(&phraseCount).Error)
		assert.Equal(t, int64(0), phraseCount)
	})

	t.Run("異常系: 言語コードの不正は400", func(t *testing.T) {
		sendRequest(t, server, httpRequestDetails{
			Method:   http.MethodPost,
			Path:     "/api/v1/phrases/",
			Body:     map[string]interface{}{"content": "hello world", "language": "fr"},
			PlayerID: &sender.PlayerID,
		}, http.StatusBadRequest)
	})
}

func TestPhraseAPI_Get(t *testing.T) {
	clearTables(t)
	server := httptest.NewServer(testRouter)
	defer server.Close()

	player := createTestPlayer(t, "alice", 50)
	phrase := createTestPhrase(t, nil)

	t.Run("正常系: 取得成功", func(t *testing.T) {
		body := sendRequest(t, server, httpRequestDetails{
			Method:   http.MethodGet,
			Path:     "/api/v1/phrases/" + phrase.PhraseID.String(),
			PlayerID: &player.PlayerID,
		}, http.StatusOK)

		got := decodeBody[model.Phrase](t, body)
		assert.Equal(t, phrase.PhraseID, got.PhraseID)
		assert.Equal(t, phrase.Content, got.Content)
	})

	t.Run("異常系: 存在しないフレーズは404", func(t *testing.T) {
		sendRequest(t, server, httpRequestDetails{
			Method:   http.MethodGet,
			Path:     "/api/v1/phrases/" + uuid.NewString(),
			PlayerID: &player.PlayerID,
		}, http.StatusNotFound)
	})
}

func TestPhraseAPI_PatchApproval(t *testing.T) {
	clearTables(t)
	server := httptest.NewServer(testRouter)
	defer server.Close()

	moderator := createTestPlayer(t, "mod", 50)
	phrase := createTestPhrase(t, nil)

	boolPtr := func(v bool) *bool { return &v }

	t.Run("正常系: 承認の取り消しと再承認", func(t *testing.T) {
		body := sendRequest(t, server, httpRequestDetails{
			Method:   http.MethodPatch,
			Path:     "/api/v1/phrases/" + phrase.PhraseID.String() + "/approval",
			Body:     model.ApprovePhraseRequest{IsApproved: boolPtr(false)},
			PlayerID: &moderator.PlayerID,
		}, http.StatusOK)
		got := decodeBody[model.Phrase](t, body)
		assert.False(t, got.IsApproved)

		body = sendRequest(t, server, httpRequestDetails{
			Method:   http.MethodPatch,
			Path:     "/api/v1/phrases/" + phrase.PhraseID.String() + "/approval",
			Body:     model.ApprovePhraseRequest{IsApproved: boolPtr(true)},
			PlayerID: &moderator.PlayerID,
		}, http.StatusOK)
		got = decodeBody[model.Phrase](t, body)
		assert.True(t, got.IsApproved)
	})

	t.Run("異常系: is_approved なしは400", func(t *testing.T) {
		sendRequest(t, server, httpRequestDetails{
			Method:   http.MethodPatch,
			Path:     "/api/v1/phrases/" + phrase.PhraseID.String() + "/approval",
			Body:     map[string]interface{}{},
			PlayerID: &moderator.PlayerID,
		}, http.StatusBadRequest)
	})

	t.Run("異常系: 存在しないフレーズは404", func(t *testing.T) {
		sendRequest(t, server, httpRequestDetails{
			Method:   http.MethodPatch,
			Path:     "/api/v1/phrases/" + uuid.NewString() + "/approval",
			Body:     model.ApprovePhraseRequest{IsApproved: boolPtr(false)},
			PlayerID: &moderator.PlayerID,
		}, http.StatusNotFound)
	})
}
