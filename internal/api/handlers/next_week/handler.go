package next_week

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	apiModels "github.com/m04kA/SMC-SlotService/internal/api/models"
	selectionService "github.com/m04kA/SMC-SlotService/internal/service/selection"
)

const (
	msgMissingSessionID = "идентификатор сессии обязателен"
	msgUnauthorized     = "не удалось определить пользователя"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	service SelectionService
	logger  Logger
}

func NewHandler(service SelectionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/week/next
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sessionID := vars["sessionId"]
	if sessionID == "" {
		h.logger.Warn("POST /sessions/{id}/week/next - Missing session ID")
		handlers.RespondBadRequest(w, msgMissingSessionID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/week/next - Missing user ID in context: session=%s", sessionID)
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	state, err := h.service.NextWeek(r.Context(), sessionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, selectionService.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/week/next - Invalid input: session=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /sessions/{id}/week/next - Failed: session=%s, user_id=%d, error=%v",
				sessionID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/week/next - Week advanced: session=%s, week_offset=%d",
		sessionID, state.WeekOffset)
	handlers.RespondJSON(w, http.StatusOK, apiModels.FromSelectionState(state))
}
