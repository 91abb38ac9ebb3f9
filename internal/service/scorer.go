// internal/service/scorer.go
package service

import (
	"strings"
	"unicode"

	"go_5_phrase_pool/internal/config"
	"go_5_phrase_pool/internal/model"
)

// DifficultyScorer はフレーズ本文から難易度 (1-100) を計算する外部コラボレータの
// 契約です。決定的・純粋で、同じ入力には常に同じ値を返さなければなりません。
// スコアは作成時に一度だけ計算され、以後再計算されません。
type DifficultyScorer interface {
	Score(content string, language model.Language) (int, error)
}

// letterRarityScorer は文字の希少度合計に基づくデフォルト実装です。
type letterRarityScorer struct{}

func NewLetterRarityScorer() DifficultyScorer {
	return &letterRarityScorer{}
}

// 文字ごとの希少度。頻出文字ほど低く、希少文字ほど高い。
var letterRarity = map[rune]int{
	'a': 1, 'e': 1, 'i': 1, 'o': 1, 'u': 1,
	'l': 1, 'n': 1, 's': 1, 't': 1, 'r': 1,
	'd': 2, 'g': 2,
	'b': 3, 'c': 3, 'm': 3, 'p': 3,
	'f': 4, 'h': 4, 'v': 4, 'w': 4, 'y': 4,
	'k': 5,
	'j': 8, 'x': 8,
	'q': 10, 'z': 10,
	// スウェーデン語の追加文字
	'å': 4, 'ä': 4, 'ö': 4,
}

func (s *letterRarityScorer) Score(content string, language model.Language) (int, error) {
	var rarity, letters int
	for _, r := range strings.ToLower(content) {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			continue
		}
		letters++
		if v, ok := letterRarity[r]; ok {
			rarity += v
		} else {
			rarity += 3
		}
	}

	wordCount := len(strings.Fields(content))
	score := rarity + letters + 3*(wordCount-1)

	if score < config.MinDifficultyScore {
		score = config.MinDifficultyScore
	}
	if score > config.MaxDifficultyScore {
		score = config.MaxDifficultyScore
	}
	return score, nil
}
