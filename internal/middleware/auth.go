// internal/middleware/auth.go
package middleware

import (
	"context"
	"net/http"

	"go_5_phrase_pool/internal/model"
	"go_5_phrase_pool/internal/webutil"

	"github.com/google/uuid"
)

// PlayerAuthenticator は X-Player-ID ヘッダーの値が実在するプレイヤーか
// 検証します。セッション/トークン管理は外部コラボレータの責務のため、
// ここではIDの実在チェックのみを行います。
type PlayerAuthenticator interface {
	Authenticate(ctx context.Context, playerID uuid.UUID) error
}

// PlayerAuthMiddleware は X-Player-ID ヘッダーからプレイヤーIDを抽出・検証し、
// コンテキストに設定するミドルウェアです。
func PlayerAuthMiddleware(authenticator PlayerAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := GetLogger(r.Context())

			playerIDStr := r.Header.Get("X-Player-ID")
			if playerIDStr == "" {
				logger.Warn("Player auth failed: X-Player-ID header missing")
				appErr := model.NewAppError("UNAUTHORIZED", "X-Player-IDヘッダーが必要です。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			playerID, err := uuid.Parse(playerIDStr)
			if err != nil {
				logger.Warn("Player auth failed: Invalid X-Player-ID format", "player_id_str", playerIDStr)
				appErr := model.NewAppError("UNAUTHORIZED", "X-Player-IDの形式が正しくありません。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			if err := authenticator.Authenticate(r.Context(), playerID); err != nil {
				logger.Warn("Player auth failed: Unknown player", "player_id", playerID.String(), "error", err)
				appErr := model.NewAppError("UNAUTHORIZED", "プレイヤーが見つかりません。", "", model.ErrForbidden)
				webutil.HandleError(w, logger, appErr)
				return
			}

			ctx := context.WithValue(r.Context(), model.PlayerIDKey, playerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DevPlayerContextMiddleware は開発時用ミドルウェアです。
// X-Player-ID ヘッダーからUUIDを抽出し、DBでの存在チェックなしに
// コンテキストに設定します。
func DevPlayerContextMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := GetLogger(r.Context())

		playerIDStr := r.Header.Get("X-Player-ID")
		playerID, err := uuid.Parse(playerIDStr)
		if err != nil {
			logger.Warn("[DEV AUTH] Failed: missing or invalid X-Player-ID header", "player_id_str", playerIDStr)
			appErr := model.NewAppError("UNAUTHORIZED", "X-Player-IDヘッダーが必要です。", "", model.ErrForbidden)
			webutil.HandleError(w, logger, appErr)
			return
		}

		ctx := context.WithValue(r.Context(), model.PlayerIDKey, playerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPlayerIDFromContext はコンテキストから認証済みプレイヤーIDを取得します。
func GetPlayerIDFromContext(ctx context.Context) (uuid.UUID, error) {
	value, ok := ctx.Value(model.PlayerIDKey).(uuid.UUID)
	if !ok {
		// ミドルウェアが正しく適用されていない場合の内部エラー
		return uuid.Nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コンテキストからプレイヤー情報を取得できませんでした。", "", model.ErrInternalServer)
	}
	return value, nil
}
