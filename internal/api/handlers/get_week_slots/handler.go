package get_week_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	generateWeekSlots "github.com/m04kA/SMC-SlotService/internal/usecase/generate_week_slots"
)

const (
	msgMissingSessionID = "идентификатор сессии обязателен"
	msgUnauthorized     = "не удалось определить пользователя"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	useCase GenerateWeekSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateWeekSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/sessions/{sessionId}/week
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sessionID := vars["sessionId"]
	if sessionID == "" {
		h.logger.Warn("GET /sessions/{id}/week - Missing session ID")
		handlers.RespondBadRequest(w, msgMissingSessionID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("GET /sessions/{id}/week - Missing user ID in context: session=%s", sessionID)
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &generateWeekSlots.Request{
		SessionID: sessionID,
		UserID:    userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateWeekSlots.ErrInvalidInput):
			h.logger.Warn("GET /sessions/{id}/week - Invalid input: session=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /sessions/{id}/week - Failed to generate week: session=%s, user_id=%d, error=%v",
				sessionID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /sessions/{id}/week - Week generated: session=%s, week_offset=%d, days=%d",
		sessionID, result.WeekOffset, len(result.Week.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
