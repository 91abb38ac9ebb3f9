// internal/handlers/play_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go_5_phrase_pool/internal/middleware"
	"go_5_phrase_pool/internal/model"
	"go_5_phrase_pool/internal/service"
	"go_5_phrase_pool/internal/webutil"

	"github.com/go-playground/validator/v10"
)

// PlayHandler はプレイ中のフレーズ取得・完了・スキップを受け持つハンドラ
type PlayHandler struct {
	selection service.SelectionService
	tracker   service.TrackerService
	logger    *slog.Logger
}

func NewPlayHandler(selection service.SelectionService, tracker service.TrackerService, logger *slog.Logger) *PlayHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayHandler{
		selection: selection,
		tracker:   tracker,
		logger:    logger,
	}
}

// GetNextPhrase は「次のフレーズ」1件を返すハンドラ。
// 3層すべてが空の場合は 204 No Content を返します (エラーではない)。
func (h *PlayHandler) GetNextPhrase(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetNextPhrase"))

	playerID, err := middleware.GetPlayerIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("player_id", playerID.String()))

	phrase, err := h.selection.NextPhrase(r.Context(), playerID)
	if err != nil {
		logger.Error("Error selecting next phrase in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if phrase == nil {
		// 正当な空状態
		w.WriteHeader(http.StatusNoContent)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, phrase, logger)
}

// GetPhraseBatch はクライアント先読み用のフレーズ一覧を返すハンドラ
func (h *PlayHandler) GetPhraseBatch(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetPhraseBatch"))

	playerID, err := middleware.GetPlayerIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("player_id", playerID.String()))

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			appErr := model.NewAppError("INVALID_URL_PARAM", "limitの形式が正しくありません。", "limit", model.ErrInvalidInput)
			webutil.HandleError(w, logger, appErr)
			return
		}
	}

	batch, err := h.selection.PhraseBatch(r.Context(), playerID, limit)
	if err != nil {
		logger.Error("Error selecting phrase batch in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if batch == nil {
		batch = []*model.NextPhraseResponse{}
	}

	webutil.RespondWithJSON(w, http.StatusOK, batch, logger)
}

// PostComplete はフレーズ完了の報告を記録するハンドラ。
// 重複報告は 200 + already_recorded=true の成功として返します。
func (h *PlayHandler) PostComplete(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostComplete"))

	playerID, err := middleware.GetPlayerIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("player_id", playerID.String()))

	phraseID, ok := parsePhraseID(w, r, logger)
	if !ok {
		return
	}

	var req model.CompletePhraseRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()))
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	result, err := h.tracker.Complete(r.Context(), playerID, phraseID, &req)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Phrase not found for completion", slog.String("phrase_id", phraseID.String()))
		} else {
			logger.Error("Error recording completion in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// PostSkip はフレーズのスキップを記録するハンドラ
func (h *PlayHandler) PostSkip(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostSkip"))

	playerID, err := middleware.GetPlayerIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("player_id", playerID.String()))

	phraseID, ok := parsePhraseID(w, r, logger)
	if !ok {
		return
	}

	result, err := h.tracker.Skip(r.Context(), playerID, phraseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Phrase not found for skip", slog.String("phrase_id", phraseID.String()))
		} else {
			logger.Error("Error recording skip in service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}
