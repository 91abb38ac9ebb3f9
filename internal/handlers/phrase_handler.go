// internal/handlers/phrase_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_phrase_pool/internal/middleware"
	"go_5_phrase_pool/internal/model"
	"go_5_phrase_pool/internal/service"
	"go_5_phrase_pool/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type PhraseHandler struct {
	service service.PhraseService
	logger  *slog.Logger
}

func NewPhraseHandler(s service.PhraseService, logger *slog.Logger) *PhraseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PhraseHandler{
		service: s,
		logger:  logger,
	}
}

// PostPhrase は新しいフレーズを作成するためのハンドラ。
// ターゲット指定とグローバル公開は同時に指定できます。
func (h *PhraseHandler) PostPhrase(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostPhrase"))

	playerID, err := middleware.GetPlayerIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("player_id", playerID.String()))

	var req model.CreatePhraseRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.Any("errors", validationErrors.Error()), slog.Any("request", req))
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	phrase, err := h.service.CreatePhrase(r.Context(), &playerID, &req)
	if err != nil {
		logger.Error("Error creating phrase in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Phrase created successfully",
		slog.String("phrase_id", phrase.PhraseID.String()),
		slog.Int("difficulty_score", phrase.DifficultyScore),
	)
	webutil.RespondWithJSON(w, http.StatusCreated, phrase, logger)
}

// GetPhrase は特定のフレーズを取得するためのハンドラ
func (h *PhraseHandler) GetPhrase(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetPhrase"))

	phraseID, ok := parsePhraseID(w, r, logger)
	if !ok {
		return
	}

	phrase, err := h.service.GetPhrase(r.Context(), phraseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Phrase not found in service", slog.String("phrase_id", phraseID.String()))
		} else {
			logger.Error("Error getting phrase from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, phrase, logger)
}

// PatchApproval はモデレーションの承認ゲートを切り替えるためのハンドラ
func (h *PhraseHandler) PatchApproval(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchApproval"))

	phraseID, ok := parsePhraseID(w, r, logger)
	if !ok {
		return
	}

	var req model.ApprovePhraseRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}
	if req.IsApproved == nil {
		appErr := model.NewAppError("VALIDATION_ERROR", "is_approvedは必須項目です。", "is_approved", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	phrase, err := h.service.ApprovePhrase(r.Context(), phraseID, *req.IsApproved)
	if err != nil {
		logger.Error("Error updating phrase approval in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Phrase approval updated", slog.String("phrase_id", phraseID.String()), slog.Bool("is_approved", *req.IsApproved))
	webutil.RespondWithJSON(w, http.StatusOK, phrase, logger)
}

// parsePhraseID はURLパラメータから phrase_id を取り出すヘルパー
func parsePhraseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, bool) {
	phraseIDStr := chi.URLParam(r, "phrase_id")
	phraseID, err := uuid.Parse(phraseIDStr)
	if err != nil {
		logger.Warn("Invalid phrase ID format in URL", slog.String("phrase_id_str", phraseIDStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "phrase_idの形式が正しくありません。", "phrase_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return uuid.Nil, false
	}
	return phraseID, true
}
