// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "PhrasePool"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort = ":8080"
	DefaultLogLevel   = "info"

	// フレーズ検証ポリシー。単語数の上限やヒント長はリビジョンにより
	// 2-6語/300文字 と 2-4語/32文字 の二系統が存在するため、ここは
	// 名前付き定数にして設定ファイルで上書きできるようにしている。
	DefaultMinWords      = 2
	DefaultMaxWords      = 6
	DefaultMaxWordLength = 7
	DefaultMaxHintLength = 300

	// 選択エンジンのポリシー
	DefaultSelectionLimit         = 10
	DefaultBatchLimit             = 25
	DefaultBeginnerBoostThreshold = 50 // この難易度上限未満のプレイヤーは初心者扱い
	DefaultBeginnerBoostCeiling   = 75 // 初心者に適用する広げた上限

	DefaultNotifyChannel = "phrase_events"
)

// 難易度スコアの値域 (スコアラー契約)
const (
	MinDifficultyScore = 1
	MaxDifficultyScore = 100
)
