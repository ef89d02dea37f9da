package generate_week_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	cartClient "github.com/m04kA/SMC-SlotService/internal/integrations/cartservice"
	"github.com/m04kA/SMC-SlotService/internal/slotgen"
)

// UseCase use case для генерации текущей недели слотов сессии
//
// Неделя пересчитывается при каждом запросе: календарь слотов нигде не
// хранится, персистятся только выбранные диапазоны. Источник случайности
// засеивается парой (сессия, дата), поэтому в рамках одной сессии картина
// занятости стабильна между запросом недели и выбором слота.
type UseCase struct {
	sessionRepo   SessionRepository
	selectionRepo SelectionRepository
	cartClient    CartServiceClient
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
	genConfig domain.SlotGenerationConfig,
	maxRanges int,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:   sessionRepo,
		selectionRepo: selectionRepo,
		cartClient:    cartClient,
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

// Execute выполняет use case генерации недели слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateWeekSlots: session=%s, user=%d", req.SessionID, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateWeekSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем (или создаем) сессию планирования
	session, err := uc.sessionRepo.GetOrCreate(ctx, req.SessionID, req.UserID)
	if err != nil {
		uc.logger.Error("GenerateWeekSlots: failed to get session %s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	// 3. Получаем суммарную длительность услуг из корзины
	totalDuration := uc.resolveServiceDuration(ctx, req.UserID)

	// 4. Генерируем неделю по смещению сессии
	now := uc.timeProvider.Now()
	week, err := slotgen.GenerateWeekSlots(
		session.WeekOffset,
		totalDuration,
		uc.genConfig,
		now,
		uc.dayRandFor(req.SessionID),
	)
	if err != nil {
		if errors.Is(err, slotgen.ErrInvalidInput) {
			uc.logger.Warn("GenerateWeekSlots: generator rejected input: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GenerateWeekSlots: failed to generate week: %v", err)
		return nil, fmt.Errorf("%w: failed to generate week: %v", ErrInternal, err)
	}

	if uc.metrics != nil {
		uc.metrics.IncSlotWeekGenerated()
	}

	// 5. Получаем выбранные диапазоны (могут относиться к другим неделям)
	ranges, err := uc.selectionRepo.ListBySession(ctx, req.SessionID)
	if err != nil {
		uc.logger.Error("GenerateWeekSlots: failed to list ranges for session %s: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to list ranges: %v", ErrInternal, err)
	}

	// 6. Помечаем слоты недели, входящие в выбранные диапазоны
	markSelectedSlots(week, ranges)

	uc.logger.Info("GenerateWeekSlots: session=%s, week_offset=%d, days=%d, duration=%d min, ranges=%d",
		req.SessionID, session.WeekOffset, len(week.Days), totalDuration, len(ranges))

	return &Response{
		Week:                 week,
		WeekOffset:           session.WeekOffset,
		SelectedDate:         session.SelectedDate,
		LastError:            session.LastError,
		TotalServiceDuration: totalDuration,
		SlotsNeeded:          domain.SlotsNeeded(totalDuration, uc.genConfig.SlotWidthMinutes),
		Ranges:               ranges,
		CanSelectMore:        len(ranges) < uc.maxRanges,
		HasAllRanges:         len(ranges) >= uc.maxRanges,
	}, nil
}

// markSelectedSlots проставляет флаг Selected слотам недели,
// попавшим в один из выбранных диапазонов сессии
func markSelectedSlots(week *domain.WeekSlots, ranges []*domain.SelectedTimeRange) {
	if len(ranges) == 0 {
		return
	}
	for d := range week.Days {
		day := &week.Days[d]
		for i := range day.Slots {
			if domain.RangesContainSlot(ranges, day.Date, day.Slots[i].StartTime) {
				day.Slots[i].Selected = true
			}
		}
	}
}

// resolveServiceDuration получает длительность услуг из корзины
// Пустая корзина и недоступность CartService дают длительность по умолчанию
func (uc *UseCase) resolveServiceDuration(ctx context.Context, userID int64) int {
	cart, err := uc.cartClient.GetCartWithGracefulDegradation(ctx, userID)
	if err != nil {
		if errors.Is(err, cartClient.ErrCartNotFound) {
			uc.logger.Info("GenerateWeekSlots: no cart for user=%d, using default duration", userID)
		} else {
			uc.logger.Warn("GenerateWeekSlots: cart degraded for user=%d, using default duration: %v", userID, err)
		}
		return domain.DefaultServiceDurationMinutes
	}

	if cart.IsEmpty() {
		return domain.DefaultServiceDurationMinutes
	}

	return cart.TotalDurationMinutes()
}
