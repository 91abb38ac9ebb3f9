// internal/service/notifier.go
package service

import (
	"context"

	"go_5_phrase_pool/internal/middleware"
	"go_5_phrase_pool/internal/model"
)

// Notifier はフレーズ作成/公開のイベントをトランスポート層に渡す通知
// コラボレータです。リポジトリへの書き込みがコミットした後にのみ呼ばれ、
// 失敗してもフレーズ作成自体は成功として扱われます (呼び出し側でログのみ)。
type Notifier interface {
	Notify(ctx context.Context, event model.PhraseEvent) error
}

// LogNotifier は通知をログに出力するだけの実装です (開発用・Redis未設定時)。
type LogNotifier struct{}

func (n *LogNotifier) Notify(ctx context.Context, event model.PhraseEvent) error {
	logger := middleware.GetLogger(ctx)
	target := "global"
	if event.TargetPlayerID != nil {
		target = event.TargetPlayerID.String()
	}
	logger.Info("--- Phrase event (LogNotifier) ---",
		"phrase_id", event.PhraseID.String(),
		"target", target,
		"sender_name", event.SenderName,
	)
	return nil
}
