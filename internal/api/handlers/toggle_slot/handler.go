package toggle_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SlotService/internal/api/handlers"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	toggleSlot "github.com/m04kA/SMC-SlotService/internal/usecase/toggle_slot"
)

const (
	msgMissingSessionID   = "идентификатор сессии обязателен"
	msgUnauthorized       = "не удалось определить пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgSlotNotFound       = "временной слот не найден в выбранном дне"
	msgLimitReached       = "достигнут лимит выбранных временных диапазонов"
	msgInsufficientSlots  = "недостаточно свободных последовательных слотов"
)

type Handler struct {
	useCase ToggleSlotUseCase
	logger  Logger
}

func NewHandler(useCase ToggleSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/selection/toggle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	sessionID := vars["sessionId"]
	if sessionID == "" {
		h.logger.Warn("POST /sessions/{id}/selection/toggle - Missing session ID")
		handlers.RespondBadRequest(w, msgMissingSessionID)
		return
	}

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.logger.Warn("POST /sessions/{id}/selection/toggle - Missing user ID in context: session=%s", sessionID)
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req ToggleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/selection/toggle - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(sessionID, userID)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/selection/toggle - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, toggleSlot.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/selection/toggle - Invalid input: session=%s, error=%v", sessionID, err)
			handlers.RespondBadRequest(w, msgInvalidDateOrTime)

		case errors.Is(err, toggleSlot.ErrSlotNotFound):
			h.logger.Warn("POST /sessions/{id}/selection/toggle - Slot not found: session=%s, date=%s, time=%s",
				sessionID, req.Date, req.StartTime)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, toggleSlot.ErrSelectionLimitReached):
			h.logger.Warn("POST /sessions/{id}/selection/toggle - Selection limit reached: session=%s", sessionID)
			handlers.RespondConflict(w, msgLimitReached)

		case errors.Is(err, toggleSlot.ErrInsufficientConsecutiveSlots):
			h.logger.Warn("POST /sessions/{id}/selection/toggle - Insufficient consecutive slots: session=%s, date=%s, time=%s",
				sessionID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgInsufficientSlots)

		default:
			h.logger.Error("POST /sessions/{id}/selection/toggle - Failed to toggle slot: session=%s, user_id=%d, error=%v",
				sessionID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/selection/toggle - Toggled: session=%s, action=%s, ranges=%d",
		sessionID, result.Action, len(result.Ranges))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
