// internal/service/phrase_validator.go
package service

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"go_5_phrase_pool/internal/config"
	"go_5_phrase_pool/internal/model"
)

// 単語に許可する文字: Unicode の文字/数字、ハイフン、アポストロフィ
var wordPattern = regexp.MustCompile(`^[\p{L}\p{N}'’-]+$`)

// ヒントの単語分割用 (許可文字以外が区切り)
var hintWordSplitter = regexp.MustCompile(`[^\p{L}\p{N}'’-]+`)

// ValidatePhrase はフレーズ本文とヒントの形状を検証します。副作用なしの
// 純粋な検証で、違反は途中で打ち切らず全件返します (呼び出し側が修正一覧を
// まとめて提示できるように)。戻り値は正規化済みの content / hint と違反一覧。
func ValidatePhrase(content, hint string, cfg *config.Config) (string, string, []model.ErrorDetail) {
	var details []model.ErrorDetail

	normContent := strings.Join(strings.Fields(content), " ")
	normHint := strings.TrimSpace(hint)

	if normContent == "" {
		details = append(details, model.ErrorDetail{
			Code:    "CONTENT_EMPTY",
			Message: "フレーズを入力してください。",
			Field:   "content",
		})
		return normContent, normHint, details
	}

	words := strings.Fields(normContent)
	if len(words) < cfg.App.MinWords || len(words) > cfg.App.MaxWords {
		details = append(details, model.ErrorDetail{
			Code:    "WORD_COUNT_OUT_OF_RANGE",
			Message: fmt.Sprintf("フレーズは%d〜%d語で入力してください。", cfg.App.MinWords, cfg.App.MaxWords),
			Field:   "content",
		})
	}

	for _, word := range words {
		if !wordPattern.MatchString(word) {
			details = append(details, model.ErrorDetail{
				Code:    "WORD_INVALID_CHARS",
				Message: fmt.Sprintf("単語「%s」に使用できない文字が含まれています。", word),
				Field:   "content",
			})
			continue
		}
		if utf8.RuneCountInString(word) > cfg.App.MaxWordLength {
			details = append(details, model.ErrorDetail{
				Code:    "WORD_TOO_LONG",
				Message: fmt.Sprintf("単語「%s」は%d文字以下にしてください。", word, cfg.App.MaxWordLength),
				Field:   "content",
			})
		}
	}

	if normHint != "" {
		if utf8.RuneCountInString(normHint) > cfg.App.MaxHintLength {
			details = append(details, model.ErrorDetail{
				Code:    "HINT_TOO_LONG",
				Message: fmt.Sprintf("ヒントは%d文字以下にしてください。", cfg.App.MaxHintLength),
				Field:   "hint",
			})
		}

		// ヒントがフレーズ中の単語をそのまま含むと答えが漏れるため、
		// 単語単位 (大文字小文字無視) での再利用を禁止する。
		contentWords := make(map[string]bool, len(words))
		for _, word := range words {
			contentWords[strings.ToLower(word)] = true
		}
		for _, hintWord := range hintWordSplitter.Split(normHint, -1) {
			if hintWord == "" {
				continue
			}
			if contentWords[strings.ToLower(hintWord)] {
				details = append(details, model.ErrorDetail{
					Code:    "HINT_REUSES_CONTENT_WORD",
					Message: fmt.Sprintf("ヒントにフレーズ中の単語「%s」を使用することはできません。", hintWord),
					Field:   "hint",
				})
			}
		}
	}

	return normContent, normHint, details
}
