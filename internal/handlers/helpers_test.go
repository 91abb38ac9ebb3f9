// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go_5_phrase_pool/internal/model"
)

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method   string
	Path     string
	Body     interface{}
	PlayerID *uuid.UUID // X-Player-ID ヘッダーに設定するプレイヤー (nilなら未設定)
}

// sendRequest はHTTPリクエストを送信し、ステータスコードのアサーションと
// レスポンスボディの読み取りを行います。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectedCode int) []byte {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")

	if details.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if details.PlayerID != nil {
		req.Header.Set("X-Player-ID", details.PlayerID.String())
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	assert.Equal(t, expectedCode, resp.StatusCode, "Status code mismatch. body: %s", string(respBodyBytes))

	return respBodyBytes
}

// decodeBody はレスポンスボディを指定の型にデコードします。
func decodeBody[T any](t *testing.T, body []byte) T {
	t.Helper()
	var result T
	require.NoError(t, json.Unmarshal(body, &result), "Failed to unmarshal response body: %s", string(body))
	return result
}

// clearTables は全テーブルのデータをクリアします (テスト間の独立性のため)。
func clearTables(t *testing.T) {
	t.Helper()
	for _, m := range []interface{}{
		&model.CompletionRecord{},
		&model.SkipRecord{},
		&model.Assignment{},
		&model.Phrase{},
		&model.Player{},
	} {
		err := testDB.Unscoped().Where("1 = 1").Delete(m).Error
		require.NoError(t, err, fmt.Sprintf("Failed to clear table for model %T", m))
	}
}

// createTestPlayer はテスト用のプレイヤーをDBに直接作成します。
func createTestPlayer(t *testing.T, name string, skillScore int) *model.Player {
	t.Helper()
	player := &model.Player{
		PlayerID:   uuid.New(),
		Name:       name,
		SkillScore: skillScore,
	}
	require.NoError(t, testDB.Create(player).Error, "Failed to create test player")
	return player
}

// createTestPhrase はテスト用のフレーズをDBに直接作成します。
func createTestPhrase(t *testing.T, mutate func(*model.Phrase)) *model.Phrase {
	t.Helper()
	phrase := &model.Phrase{
		PhraseID:        uuid.New(),
		Content:         "quick brown fox",
		Language:        model.LanguageEnglish,
		DifficultyScore: 10,
		IsGlobal:        true,
		IsApproved:      true,
	}
	if mutate != nil {
		mutate(phrase)
	}
	require.NoError(t, testDB.Create(phrase).Error, "Failed to create test phrase")
	return phrase
}
