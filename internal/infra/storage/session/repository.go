package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotService/pkg/txmanager"
)

const sessionColumns = "id, session_id, user_id, week_offset, selected_date, last_error, created_at, updated_at"

// Repository репозиторий для работы с сессиями планирования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySessionID получает сессию по внешнему идентификатору
func (r *Repository) GetBySessionID(ctx context.Context, sessionID string) (*domain.PlannerSession, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"session_id",
		"user_id",
		"week_offset",
		"selected_date",
		"last_error",
		"created_at",
		"updated_at",
	).
		From("planner_sessions").
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySessionID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSession(executor.QueryRowContext(ctx, query, args...))
}

// GetOrCreate получает сессию или создает новую с состоянием по умолчанию
// Повторное создание той же сессии другим запросом не считается ошибкой
func (r *Repository) GetOrCreate(ctx context.Context, sessionID string, userID int64) (*domain.PlannerSession, error) {
	existing, err := r.GetBySessionID(ctx, sessionID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}

	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("planner_sessions").
		Columns("session_id", "user_id", "week_offset").
		Values(sessionID, userID, 0).
		Suffix("RETURNING " + sessionColumns).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := r.scanSession(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return created, nil
	}

	// Гонка с параллельным созданием: перечитываем существующую запись
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return r.GetBySessionID(ctx, sessionID)
	}

	return nil, err
}

// SetNavigation сохраняет смещение недели
// Сбрасывает выбранный день и последнюю ошибку (выбранные диапазоны не трогает)
func (r *Repository) SetNavigation(ctx context.Context, sessionID string, weekOffset int) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("planner_sessions").
		Set("week_offset", weekOffset).
		Set("selected_date", nil).
		Set("last_error", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetNavigation - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetNavigation")
}

// SetSelectedDate сохраняет выбранный день и сбрасывает последнюю ошибку
func (r *Repository) SetSelectedDate(ctx context.Context, sessionID string, date time.Time) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("planner_sessions").
		Set("selected_date", domain.DayStart(date)).
		Set("last_error", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetSelectedDate - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetSelectedDate")
}

// SetLastError сохраняет последнюю ошибку выбора слота (nil очищает ошибку)
func (r *Repository) SetLastError(ctx context.Context, sessionID string, lastError *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("planner_sessions").
		Set("last_error", lastError).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetLastError - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "SetLastError")
}

// ClearSelectionState сбрасывает выбранный день и последнюю ошибку
// Смещение недели не меняется
func (r *Repository) ClearSelectionState(ctx context.Context, sessionID string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("planner_sessions").
		Set("selected_date", nil).
		Set("last_error", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearSelectionState - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "ClearSelectionState")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *Repository) scanSession(row *sql.Row) (*domain.PlannerSession, error) {
	var session domain.PlannerSession
	var selectedDate sql.NullTime
	var lastError sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&session.ID,
		&session.SessionID,
		&session.UserID,
		&session.WeekOffset,
		&selectedDate,
		&lastError,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan session: %v", ErrScanRow, err)
	}

	if selectedDate.Valid {
		session.SelectedDate = &selectedDate.Time
	}
	if lastError.Valid {
		session.LastError = &lastError.String
	}
	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return &session, nil
}
