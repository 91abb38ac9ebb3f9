// internal/handlers/player_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"go_5_phrase_pool/internal/model"
	"go_5_phrase_pool/internal/service"
	"go_5_phrase_pool/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type PlayerHandler struct {
	service service.PlayerService
	logger  *slog.Logger
}

func NewPlayerHandler(s service.PlayerService, logger *slog.Logger) *PlayerHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayerHandler{
		service: s,
		logger:  logger,
	}
}

// RegisterPlayer は新しいプレイヤーを登録するためのハンドラ
func (h *PlayerHandler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "RegisterPlayer"))

	var req model.RegisterPlayerRequest
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

	player, err := h.service.RegisterPlayer(r.Context(), &req)
	if err != nil {
		logger.Error("Error registering player in service", slog.Any("error", err), slog.String("name", req.Name))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Player registered successfully", slog.String("player_id", player.PlayerID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, toPlayerResponse(player), logger)
}

// GetPlayer は特定のプレイヤー情報を取得するためのハンドラ
func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetPlayer"))

	playerIDStr := chi.URLParam(r, "player_id")
	playerID, err := uuid.Parse(playerIDStr)
	if err != nil {
		logger.Warn("Invalid player ID format in URL", slog.String("player_id_str", playerIDStr))
		appErr := model.NewAppError("INVALID_URL_PARAM", "player_idの形式が正しくありません。", "player_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	player, err := h.service.GetPlayer(r.Context(), playerID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Player not found in service", slog.String("player_id", playerID.String()))
		} else {
			logger.Error("Error getting player from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, toPlayerResponse(player), logger)
}

func toPlayerResponse(player *model.Player) *model.PlayerResponse {
	return &model.PlayerResponse{
		PlayerID:   player.PlayerID,
		Name:       player.Name,
		SkillScore: player.SkillScore,
		CreatedAt:  player.CreatedAt,
	}
}
