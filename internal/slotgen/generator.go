package slotgen

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/ptr"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// GenerateDaySlots генерирует все слоты одного дня с разметкой доступности
//
// Статус каждого слота вычисляется в два прохода:
//  1. Базовый: слот помечается full, если день попадает в окно минимального
//     срока до записи, либо случайно с вероятностью FullSlotRatio/100.
//  2. Производный: базово свободный слот понижается до unavailable, если за
//     ним (включая его самого) нет serviceDuration/width последовательных
//     базово свободных слотов в пределах дня.
//
// Производный проход читает снимок базовых статусов, а не уже измененные
// слоты: понижение слота не должно каскадно понижать предыдущие слоты.
func GenerateDaySlots(
	date time.Time,
	serviceDurationMinutes int,
	cfg domain.SlotGenerationConfig,
	now time.Time,
	rnd RandSource,
) (*domain.DaySlots, error) {
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if serviceDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: service duration must be positive, got %d", ErrInvalidInput, serviceDurationMinutes)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if rnd == nil {
		return nil, fmt.Errorf("%w: rand source is required", ErrInvalidInput)
	}

	dayStart := domain.DayStart(date)
	isWithinLeadTime := dayStart.Sub(now) < time.Duration(cfg.MinLeadTimeHours)*time.Hour

	slots, err := buildBaselineSlots(dayStart, cfg, isWithinLeadTime, rnd)
	if err != nil {
		return nil, err
	}

	applyConsecutiveSlotsCheck(slots, serviceDurationMinutes, cfg.SlotWidthMinutes)

	hasAvailable := false
	for i := range slots {
		if slots[i].Status == domain.SlotAvailable {
			hasAvailable = true
			break
		}
	}

	return &domain.DaySlots{
		Date:              dayStart,
		DayName:           domain.DayName(dayStart),
		Slots:             slots,
		HasAvailableSlots: hasAvailable,
		IsWithinLeadTime:  isWithinLeadTime,
	}, nil
}

// buildBaselineSlots разбивает рабочее окно на слоты фиксированной ширины
// и назначает базовые статусы
func buildBaselineSlots(
	dayStart time.Time,
	cfg domain.SlotGenerationConfig,
	isWithinLeadTime bool,
	rnd RandSource,
) ([]domain.TimeSlot, error) {
	windowStart := cfg.StartHour * 60
	windowEnd := cfg.EndHour * 60

	slots := make([]domain.TimeSlot, 0, (windowEnd-windowStart)/cfg.SlotWidthMinutes)

	for minute := windowStart; minute+cfg.SlotWidthMinutes <= windowEnd; minute += cfg.SlotWidthMinutes {
		startTime, err := types.NewTimeStringFromMinutes(minute)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		endTime, err := types.NewTimeStringFromMinutes(minute + cfg.SlotWidthMinutes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		slot := domain.TimeSlot{
			Date:      dayStart,
			StartTime: startTime,
			EndTime:   endTime,
			Status:    domain.SlotAvailable,
		}

		// Правило 1: короткий срок до записи закрывает весь день
		if isWithinLeadTime {
			slot.Status = domain.SlotFull
			slot.Reason = ptr.Ptr(domain.ReasonLeadTimeTooShort)
		} else if rnd.Float64()*100 < float64(cfg.FullSlotRatio) {
			// Правило 2: часть слотов случайно помечается занятыми (эффект популярности)
			slot.Status = domain.SlotFull
			slot.Reason = ptr.Ptr(domain.ReasonSlotReserved)
		}

		slots = append(slots, slot)
	}

	return slots, nil
}

// applyConsecutiveSlotsCheck понижает базово свободные слоты, за которыми нет
// достаточного количества последовательных базово свободных слотов
//
// Проверка читает снимок исходных статусов: каждый слот оценивается против
// исходной картины доступности независимо от уже выполненных понижений.
// Переполнение за последний слот дня считается нехваткой (перенос диапазона
// на следующий день не поддерживается).
func applyConsecutiveSlotsCheck(slots []domain.TimeSlot, serviceDurationMinutes, slotWidthMinutes int) {
	slotsNeeded := domain.SlotsNeeded(serviceDurationMinutes, slotWidthMinutes)

	baseline := make([]domain.SlotStatus, len(slots))
	for i := range slots {
		baseline[i] = slots[i].Status
	}

	for i := range slots {
		if baseline[i] != domain.SlotAvailable {
			continue
		}

		hasEnough := true
		for j := 0; j < slotsNeeded; j++ {
			next := i + j
			if next >= len(slots) || baseline[next] != domain.SlotAvailable {
				hasEnough = false
				break
			}
		}

		if !hasEnough {
			slots[i].Status = domain.SlotUnavailable
			slots[i].Reason = ptr.Ptr(fmt.Sprintf(
				"пересечение: требуется %d последовательных свободных слотов", slotsNeeded))
		}
	}
}

// GenerateWeekSlots генерирует неделю слотов
//
// Неделя начинается с понедельника недели today + weekOffset*7.
// Суббота и воскресенье пропускаются, если включено ExcludeWeekends.
func GenerateWeekSlots(
	weekOffset int,
	serviceDurationMinutes int,
	cfg domain.SlotGenerationConfig,
	now time.Time,
	dayRand DayRand,
) (*domain.WeekSlots, error) {
	if weekOffset < 0 {
		return nil, fmt.Errorf("%w: week offset must be non-negative, got %d", ErrInvalidInput, weekOffset)
	}
	if dayRand == nil {
		return nil, fmt.Errorf("%w: day rand factory is required", ErrInvalidInput)
	}

	weekStart := startOfWeek(now.AddDate(0, 0, weekOffset*7))
	weekEnd := weekStart.AddDate(0, 0, 6)

	days := make([]domain.DaySlots, 0, 7)
	for i := 0; i < 7; i++ {
		dayDate := weekStart.AddDate(0, 0, i)

		if cfg.ExcludeWeekends && (dayDate.Weekday() == time.Saturday || dayDate.Weekday() == time.Sunday) {
			continue
		}

		daySlots, err := GenerateDaySlots(dayDate, serviceDurationMinutes, cfg, now, dayRand(dayDate))
		if err != nil {
			return nil, err
		}

		days = append(days, *daySlots)
	}

	return &domain.WeekSlots{
		WeekOffset: weekOffset,
		StartDate:  weekStart,
		EndDate:    weekEnd,
		Days:       days,
	}, nil
}

// startOfWeek возвращает понедельник недели, в которую попадает дата
func startOfWeek(t time.Time) time.Time {
	dayStart := domain.DayStart(t)
	weekday := dayStart.Weekday()
	if weekday == time.Sunday {
		return dayStart.AddDate(0, 0, -6)
	}
	return dayStart.AddDate(0, 0, -int(weekday-time.Monday))
}
