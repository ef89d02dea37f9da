package selection

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotService/internal/service/selection/models"
)

// Service сервис управления навигацией по календарю и состоянием выбора
//
// Выбранные диапазоны переживают навигацию по неделям и смену дня:
// сбрасывает их только ResetSelection (и toggle по якорю диапазона)
type Service struct {
	sessionRepo   SessionRepository
	selectionRepo SelectionRepository
	maxRanges     int
	logger        Logger
}

// NewService создает новый экземпляр сервиса выбора
func NewService(
	sessionRepo SessionRepository,
	selectionRepo SelectionRepository,
	maxRanges int,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:   sessionRepo,
		selectionRepo: selectionRepo,
		maxRanges:     maxRanges,
		logger:        logger,
	}
}

// NextWeek переходит на следующую неделю
// Сбрасывает выбранный день и последнюю ошибку, диапазоны сохраняются
func (s *Service) NextWeek(ctx context.Context, sessionID string, userID int64) (*models.SelectionState, error) {
	s.logger.Info("NextWeek: session=%s, user=%d", sessionID, userID)

	if err := validateSession(sessionID, userID); err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetOrCreate(ctx, sessionID, userID)
	if err != nil {
		s.logger.Error("NextWeek: failed to get session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	newOffset := session.WeekOffset + 1
	if err := s.sessionRepo.SetNavigation(ctx, sessionID, newOffset); err != nil {
		s.logger.Error("NextWeek: failed to save navigation for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to save navigation: %v", ErrInternal, err)
	}

	s.logger.Info("NextWeek: session=%s, week_offset=%d", sessionID, newOffset)
	return s.stateAfterNavigation(ctx, sessionID, newOffset)
}

// PreviousWeek переходит на предыдущую неделю
// Нижняя граница - текущая реальная неделя: на смещении 0 операция ничего не делает
func (s *Service) PreviousWeek(ctx context.Context, sessionID string, userID int64) (*models.SelectionState, error) {
	s.logger.Info("PreviousWeek: session=%s, user=%d", sessionID, userID)

	if err := validateSession(sessionID, userID); err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetOrCreate(ctx, sessionID, userID)
	if err != nil {
		s.logger.Error("PreviousWeek: failed to get session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if session.WeekOffset == 0 {
		s.logger.Info("PreviousWeek: session=%s already at current week", sessionID)
		return s.GetSelection(ctx, sessionID, userID)
	}

	newOffset := session.WeekOffset - 1
	if err := s.sessionRepo.SetNavigation(ctx, sessionID, newOffset); err != nil {
		s.logger.Error("PreviousWeek: failed to save navigation for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to save navigation: %v", ErrInternal, err)
	}

	s.logger.Info("PreviousWeek: session=%s, week_offset=%d", sessionID, newOffset)
	return s.stateAfterNavigation(ctx, sessionID, newOffset)
}

// SelectDay выбирает день в текущей неделе
// Не требует наличия свободных слотов в дне и не трогает выбранные диапазоны
func (s *Service) SelectDay(ctx context.Context, sessionID string, userID int64, date time.Time) (*models.SelectionState, error) {
	s.logger.Info("SelectDay: session=%s, user=%d, date=%s", sessionID, userID, date.Format("2006-01-02"))

	if err := validateSession(sessionID, userID); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if _, err := s.sessionRepo.GetOrCreate(ctx, sessionID, userID); err != nil {
		s.logger.Error("SelectDay: failed to get session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if err := s.sessionRepo.SetSelectedDate(ctx, sessionID, date); err != nil {
		s.logger.Error("SelectDay: failed to save selected date for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to save selected date: %v", ErrInternal, err)
	}

	return s.GetSelection(ctx, sessionID, userID)
}

// GetSelection возвращает текущее состояние выбора сессии
func (s *Service) GetSelection(ctx context.Context, sessionID string, userID int64) (*models.SelectionState, error) {
	if err := validateSession(sessionID, userID); err != nil {
		return nil, err
	}

	session, err := s.sessionRepo.GetOrCreate(ctx, sessionID, userID)
	if err != nil {
		s.logger.Error("GetSelection: failed to get session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	ranges, err := s.selectionRepo.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("GetSelection: failed to list ranges for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to list ranges: %v", ErrInternal, err)
	}

	return models.FromSession(session, ranges, s.maxRanges), nil
}

// ResetSelection полностью сбрасывает выбор сессии
// Удаляет все диапазоны, сбрасывает выбранный день и последнюю ошибку
// Смещение недели не меняется
func (s *Service) ResetSelection(ctx context.Context, sessionID string, userID int64) (*models.SelectionState, error) {
	s.logger.Info("ResetSelection: session=%s, user=%d", sessionID, userID)

	if err := validateSession(sessionID, userID); err != nil {
		return nil, err
	}

	if _, err := s.sessionRepo.GetOrCreate(ctx, sessionID, userID); err != nil {
		s.logger.Error("ResetSelection: failed to get session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	if err := s.selectionRepo.DeleteBySession(ctx, sessionID); err != nil {
		s.logger.Error("ResetSelection: failed to delete ranges for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to delete ranges: %v", ErrInternal, err)
	}

	if err := s.sessionRepo.ClearSelectionState(ctx, sessionID); err != nil {
		s.logger.Error("ResetSelection: failed to clear state for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to clear state: %v", ErrInternal, err)
	}

	return s.GetSelection(ctx, sessionID, userID)
}

// stateAfterNavigation собирает состояние после смены недели без повторного
// чтения сессии (SetNavigation уже сбросил выбранный день и ошибку)
func (s *Service) stateAfterNavigation(ctx context.Context, sessionID string, weekOffset int) (*models.SelectionState, error) {
	ranges, err := s.selectionRepo.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("stateAfterNavigation: failed to list ranges for session %s: %v", sessionID, err)
		return nil, fmt.Errorf("%w: failed to list ranges: %v", ErrInternal, err)
	}

	return &models.SelectionState{
		SessionID:     sessionID,
		WeekOffset:    weekOffset,
		Ranges:        ranges,
		CanSelectMore: len(ranges) < s.maxRanges,
		HasAllRanges:  len(ranges) >= s.maxRanges,
	}, nil
}

func validateSession(sessionID string, userID int64) error {
	if sessionID == "" {
		return fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}
	if userID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	return nil
}
