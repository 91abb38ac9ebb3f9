// internal/service/phrase_validator_test.go
package service

import (
	"testing"

	"go_5_phrase_pool/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// デフォルトポリシー (検証: 2-6語 / 7文字 / ヒント300文字、選択: 初心者
// ブースト 50→75) のテスト用設定
func testPolicyConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.MinWords = config.DefaultMinWords
	cfg.App.MaxWords = config.DefaultMaxWords
	cfg.App.MaxWordLength = config.DefaultMaxWordLength
	cfg.App.MaxHintLength = config.DefaultMaxHintLength
	cfg.App.SelectionLimit = config.DefaultSelectionLimit
	cfg.App.BatchLimit = config.DefaultBatchLimit
	cfg.App.BeginnerBoostThreshold = config.DefaultBeginnerBoostThreshold
	cfg.App.BeginnerBoostCeiling = config.DefaultBeginnerBoostCeiling
	return cfg
}

func violationCodes(t *testing.T, content, hint string, cfg *config.Config) []string {
	t.Helper()
	_, _, details := ValidatePhrase(content, hint, cfg)
	result := make([]string, 0, len(details))
	for _, d := range details {
		result = append(result, d.Code)
	}
	return result
}

func Test_ValidatePhrase(t *testing.T) {
	cfg := testPolicyConfig()

	tests := []struct {
		name      string
		content   string
		hint      string
		wantCodes []string
	}{
		{
			name:      "正常系: 3語のフレーズとヒント",
			content:   "quick brown fox",
			hint:      "animal clue",
			wantCodes: nil,
		},
		{
			name:      "正常系: ヒントなし",
			content:   "hello world",
			hint:      "",
			wantCodes: nil,
		},
		{
			name:      "正常系: ハイフンとアポストロフィ",
			content:   "don't stop-go",
			hint:      "",
			wantCodes: nil,
		},
		{
			// ハイフンやアポストロフィも1文字として長さ上限に数える
			name:      "異常系: ハイフン入りで7文字を超える単語",
			content:   "don't stop-now",
			hint:      "",
			wantCodes: []string{"WORD_TOO_LONG"},
		},
		{
			name:      "正常系: Unicode文字 (スウェーデン語)",
			content:   "räv och älg",
			hint:      "",
			wantCodes: nil,
		},
		{
			name:      "異常系: 空のフレーズ",
			content:   "   ",
			hint:      "",
			wantCodes: []string{"CONTENT_EMPTY"},
		},
		{
			name:      "異常系: 1語のみ",
			content:   "alone",
			hint:      "",
			wantCodes: []string{"WORD_COUNT_OUT_OF_RANGE"},
		},
		{
			name:      "異常系: 7語",
			content:   "one two three four five six seven",
			hint:      "",
			wantCodes: []string{"WORD_COUNT_OUT_OF_RANGE"},
		},
		{
			name:      "異常系: 7文字を超える単語",
			content:   "thisisaverylongword test",
			hint:      "",
			wantCodes: []string{"WORD_TOO_LONG"},
		},
		{
			name:      "異常系: 使用できない文字",
			content:   "hello wor!d",
			hint:      "",
			wantCodes: []string{"WORD_INVALID_CHARS"},
		},
		{
			name:      "異常系: ヒントがフレーズ中の単語を再利用",
			content:   "quick brown fox",
			hint:      "brown",
			wantCodes: []string{"HINT_REUSES_CONTENT_WORD"},
		},
		{
			name:      "異常系: 大文字小文字を無視した単語再利用",
			content:   "quick brown fox",
			hint:      "A Brown thing",
			wantCodes: []string{"HINT_REUSES_CONTENT_WORD"},
		},
		{
			name:      "異常系: 複数の違反を全件返す",
			content:   "thisisaverylongword",
			hint:      "thisisaverylongword",
			wantCodes: []string{"WORD_COUNT_OUT_OF_RANGE", "WORD_TOO_LONG", "HINT_REUSES_CONTENT_WORD"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := violationCodes(t, tt.content, tt.hint, cfg)
			if tt.wantCodes == nil {
				assert.Empty(t, got)
			} else {
				assert.ElementsMatch(t, tt.wantCodes, got)
			}
		})
	}
}

func Test_ValidatePhrase_Normalizes(t *testing.T) {
	cfg := testPolicyConfig()

	content, hint, details := ValidatePhrase("  quick   brown \t fox ", "  animal clue  ", cfg)
	require.Empty(t, details)
	assert.Equal(t, "quick brown fox", content)
	assert.Equal(t, "animal clue", hint)
}

func Test_ValidatePhrase_HintLength(t *testing.T) {
	cfg := testPolicyConfig()
	cfg.App.MaxHintLength = 32 // 厳しい側のポリシーリビジョン

	longHint := "this hint is definitely much longer than the strict cap"
	got := violationCodes(t, "quick brown fox", longHint, cfg)
	assert.Contains(t, got, "HINT_TOO_LONG")
}

func Test_ValidatePhrase_StrictWordCountPolicy(t *testing.T) {
	// 2-4語の厳しい側のポリシーリビジョンでも定数の差し替えだけで動くこと
	cfg := testPolicyConfig()
	cfg.App.MaxWords = 4

	assert.Empty(t, violationCodes(t, "one two three four", "", cfg))
	assert.Contains(t, violationCodes(t, "one two three four five", "", cfg), "WORD_COUNT_OUT_OF_RANGE")
}
