package toggle_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	cartClient "github.com/m04kA/SMC-SlotService/internal/integrations/cartservice"
	"github.com/m04kA/SMC-SlotService/internal/slotgen"
	"github.com/m04kA/SMC-SlotService/pkg/ptr"
)

// Сообщения, сохраняемые в last_error сессии (показываются пользователю)
const (
	msgInvalidSlot = "некорректный временной слот"
	msgLimitFmt    = "можно выбрать не более %d временных диапазонов"
	// Сообщение обязано называть количество слотов и длительность,
	// чтобы пользователь понимал, почему конкретное время начала отклонено
	msgInsufficientFmt = "недостаточно свободных последовательных слотов: требуется %d слотов (%d мин)"
)

// UseCase use case переключения выбора слота
//
// Повторный toggle по якорю существующего диапазона убирает весь диапазон;
// иначе от выбранного слота собирается диапазон из N последовательных
// свободных слотов, где N выводится из суммарной длительности услуг корзины.
// Все ожидаемые отказы (лимит, нехватка слотов, устаревший слот) не ломают
// состояние: выбор остается прежним, а сообщение сохраняется в last_error.
type UseCase struct {
	sessionRepo   SessionRepository
	selectionRepo SelectionRepository
	cartClient    CartServiceClient
	txManager     TransactionManager
	genConfig     domain.SlotGenerationConfig
	maxRanges     int
	timeProvider  slotgen.TimeProvider
	dayRandFor    func(sessionID string) slotgen.DayRand
	metrics       Metrics
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	selectionRepo SelectionRepository,
	cartClient CartServiceClient,
	txManager TransactionManager,
	genConfig domain.SlotGenerationConfig,
	maxRanges int,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:   sessionRepo,
		selectionRepo: selectionRepo,
		cartClient:    cartClient,
		txManager:     txManager,
		genConfig:     genConfig,
		maxRanges:     maxRanges,
		timeProvider:  &slotgen.RealTimeProvider{},
		dayRandFor:    slotgen.SeededDayRand,
		logger:        logger,
	}
}

// WithMetrics включает учет бизнес-метрик
func (uc *UseCase) WithMetrics(m Metrics) *UseCase {
	uc.metrics = m
	return uc
}

// WithTimeProvider подменяет провайдер времени (для тестирования)
func (uc *UseCase) WithTimeProvider(tp slotgen.TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithDayRand подменяет фабрику источников случайности (для тестирования)
func (uc *UseCase) WithDayRand(dayRandFor func(sessionID string) slotgen.DayRand) *UseCase {
	uc.dayRandFor = dayRandFor
	return uc
}

// Execute выполняет use case переключения слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ToggleSlot: session=%s, user=%d, date=%s, time=%s",
		req.SessionID, req.UserID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ToggleSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем (или создаем) сессию
	if _, err := uc.sessionRepo.GetOrCreate(ctx, req.SessionID, req.UserID); err != nil {
		uc.logger.Error("ToggleSlot: failed to get session %s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	// 3. Вычисляем количество слотов под длительность услуг корзины
	totalDuration := uc.resolveServiceDuration(ctx, req.UserID)
	slotsNeeded := domain.SlotsNeeded(totalDuration, uc.genConfig.SlotWidthMinutes)

	// 4. Регенерируем слоты дня: календарь не хранится, а засев по паре
	// (сессия, дата) гарантирует ту же картину занятости, что видел пользователь
	now := uc.timeProvider.Now()
	day, err := slotgen.GenerateDaySlots(req.Date, totalDuration, uc.genConfig, now, uc.dayRandFor(req.SessionID)(req.Date))
	if err != nil {
		if errors.Is(err, slotgen.ErrInvalidInput) {
			uc.logger.Warn("ToggleSlot: generator rejected input: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("ToggleSlot: failed to generate day slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate day slots: %v", ErrInternal, err)
	}

	// 5. Ищем слот по точному времени начала
	slotIndex := day.FindSlotIndex(req.StartTime)
	if slotIndex == -1 {
		uc.logger.Warn("ToggleSlot: slot %s not found on %s (session=%s)",
			req.StartTime, req.Date.Format(domain.DateFormat), req.SessionID)
		return nil, uc.reject(ctx, req.SessionID, msgInvalidSlot, ErrSlotNotFound)
	}

	var resp *Response
	var rejection error

	// 6. Переключение выполняется атомарно: удаление/проверка лимита/вставка
	// и запись last_error происходят в одной сериализуемой транзакции.
	// Ожидаемые отказы не возвращают ошибку из транзакции: запись last_error
	// должна зафиксироваться, а откатывать при отказе нечего
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Повторный toggle по якорю убирает весь диапазон
		removed, err := uc.selectionRepo.DeleteByAnchor(txCtx, req.SessionID, req.Date, req.StartTime)
		if err != nil {
			return fmt.Errorf("%w: failed to delete range: %v", ErrInternal, err)
		}
		if removed {
			if err := uc.sessionRepo.SetLastError(txCtx, req.SessionID, nil); err != nil {
				return fmt.Errorf("%w: failed to clear last error: %v", ErrInternal, err)
			}
			resp = &Response{Action: ActionRemoved}
			return nil
		}

		// 6.2. Проверяем лимит диапазонов
		count, err := uc.selectionRepo.CountBySession(txCtx, req.SessionID)
		if err != nil {
			return fmt.Errorf("%w: failed to count ranges: %v", ErrInternal, err)
		}
		if count >= uc.maxRanges {
			msg := fmt.Sprintf(msgLimitFmt, uc.maxRanges)
			if err := uc.sessionRepo.SetLastError(txCtx, req.SessionID, ptr.Ptr(msg)); err != nil {
				return fmt.Errorf("%w: failed to set last error: %v", ErrInternal, err)
			}
			rejection = fmt.Errorf("%w: %s", ErrSelectionLimitReached, msg)
			return nil
		}

		// 6.3. Собираем N последовательных свободных слотов, начиная с выбранного
		rangeSlots, ok := collectConsecutive(day.Slots, slotIndex, slotsNeeded)
		if !ok {
			msg := fmt.Sprintf(msgInsufficientFmt, slotsNeeded, totalDuration)
			if err := uc.sessionRepo.SetLastError(txCtx, req.SessionID, ptr.Ptr(msg)); err != nil {
				return fmt.Errorf("%w: failed to set last error: %v", ErrInternal, err)
			}
			rejection = fmt.Errorf("%w: %s", ErrInsufficientConsecutiveSlots, msg)
			return nil
		}

		// 6.4. Создаем диапазон: фиксация атомарна, частично выбранных диапазонов не бывает
		rng := &domain.SelectedTimeRange{
			Date:             day.Date,
			DayName:          day.DayName,
			StartTime:        rangeSlots[0].StartTime,
			EndTime:          rangeSlots[len(rangeSlots)-1].EndTime,
			AnchorTime:       rangeSlots[0].StartTime,
			SlotCount:        slotsNeeded,
			SlotWidthMinutes: uc.genConfig.SlotWidthMinutes,
			Slots:            rangeSlots,
		}

		created, err := uc.selectionRepo.Create(txCtx, req.SessionID, rng)
		if err != nil {
			return fmt.Errorf("%w: failed to create range: %v", ErrInternal, err)
		}

		if err := uc.sessionRepo.SetLastError(txCtx, req.SessionID, nil); err != nil {
			return fmt.Errorf("%w: failed to clear last error: %v", ErrInternal, err)
		}

		resp = &Response{Action: ActionAdded, Range: created}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rejection != nil {
		if uc.metrics != nil {
			switch {
			case errors.Is(rejection, ErrSelectionLimitReached):
				uc.metrics.IncToggleRejection("limit_reached")
			case errors.Is(rejection, ErrInsufficientConsecutiveSlots):
				uc.metrics.IncToggleRejection("insufficient_slots")
			}
		}
		uc.logger.Warn("ToggleSlot: session=%s rejected: %v", req.SessionID, rejection)
		return nil, rejection
	}

	if uc.metrics != nil {
		switch resp.Action {
		case ActionAdded:
			uc.metrics.IncRangeSelected()
		case ActionRemoved:
			uc.metrics.IncRangeRemoved()
		}
	}

	// 7. Возвращаем актуальный список диапазонов
	ranges, err := uc.selectionRepo.ListBySession(ctx, req.SessionID)
	if err != nil {
		uc.logger.Error("ToggleSlot: failed to list ranges for session %s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to list ranges: %v", ErrInternal, err)
	}
	resp.Ranges = ranges

	uc.logger.Info("ToggleSlot: session=%s, action=%s, ranges=%d", req.SessionID, resp.Action, len(ranges))
	return resp, nil
}

// reject сохраняет сообщение в last_error сессии и возвращает ошибку
// Ожидаемые отказы не меняют выбранные диапазоны
func (uc *UseCase) reject(ctx context.Context, sessionID, msg string, cause error) error {
	if err := uc.sessionRepo.SetLastError(ctx, sessionID, ptr.Ptr(msg)); err != nil {
		uc.logger.Error("ToggleSlot: failed to set last error for session %s: %v", sessionID, err)
		return fmt.Errorf("%w: failed to set last error: %v", ErrInternal, err)
	}
	if uc.metrics != nil {
		uc.metrics.IncToggleRejection("slot_not_found")
	}
	return fmt.Errorf("%w: %s", cause, msg)
}

// collectConsecutive собирает count последовательных свободных слотов начиная с index
// Возвращает false, если слотов не хватает до конца дня или хотя бы один занят
func collectConsecutive(slots []domain.TimeSlot, index, count int) ([]domain.TimeSlot, bool) {
	if index+count > len(slots) {
		return nil, false
	}

	result := make([]domain.TimeSlot, 0, count)
	for i := index; i < index+count; i++ {
		if slots[i].Status != domain.SlotAvailable {
			return nil, false
		}
		result = append(result, slots[i])
	}

	return result, true
}

// resolveServiceDuration получает длительность услуг из корзины
// Пустая корзина и недоступность CartService дают длительность по умолчанию
func (uc *UseCase) resolveServiceDuration(ctx context.Context, userID int64) int {
	cart, err := uc.cartClient.GetCartWithGracefulDegradation(ctx, userID)
	if err != nil {
		if errors.Is(err, cartClient.ErrCartNotFound) {
			uc.logger.Info("ToggleSlot: no cart for user=%d, using default duration", userID)
		} else {
			uc.logger.Warn("ToggleSlot: cart degraded for user=%d, using default duration: %v", userID, err)
		}
		return domain.DefaultServiceDurationMinutes
	}

	if cart.IsEmpty() {
		return domain.DefaultServiceDurationMinutes
	}

	return cart.TotalDurationMinutes()
}
