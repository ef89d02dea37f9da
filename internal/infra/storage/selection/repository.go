package selection

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SlotService/internal/domain"
	"github.com/m04kA/SMC-SlotService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SlotService/pkg/txmanager"
	"github.com/m04kA/SMC-SlotService/pkg/types"
)

// Repository репозиторий для работы с выбранными диапазонами слотов
// Хранит только границы диапазонов: сами слоты восстанавливаются при чтении,
// календарь слотов никогда не персистится
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория диапазонов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый выбранный диапазон
func (r *Repository) Create(ctx context.Context, sessionID string, rng *domain.SelectedTimeRange) (*domain.SelectedTimeRange, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("selected_ranges").
		Columns(
			"session_id",
			"range_date",
			"day_name",
			"start_time",
			"end_time",
			"anchor_time",
			"slot_count",
			"slot_width_minutes",
		).
		Values(
			sessionID,
			domain.DayStart(rng.Date),
			rng.DayName,
			rng.StartTime,
			rng.EndTime,
			rng.AnchorTime,
			rng.SlotCount,
			rng.SlotWidthMinutes,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rng.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rng.CreatedAt = createdAt.Time

	return rng, nil
}

// ListBySession получает все выбранные диапазоны сессии в порядке выбора
func (r *Repository) ListBySession(ctx context.Context, sessionID string) ([]*domain.SelectedTimeRange, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"range_date",
		"day_name",
		"start_time",
		"end_time",
		"anchor_time",
		"slot_count",
		"slot_width_minutes",
		"created_at",
	).
		From("selected_ranges").
		Where(squirrel.Eq{"session_id": sessionID}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySession - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySession - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ranges := make([]*domain.SelectedTimeRange, 0)
	for rows.Next() {
		var rng domain.SelectedTimeRange
		var createdAt sql.NullTime

		err := rows.Scan(
			&rng.ID,
			&rng.Date,
			&rng.DayName,
			&rng.StartTime,
			&rng.EndTime,
			&rng.AnchorTime,
			&rng.SlotCount,
			&rng.SlotWidthMinutes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBySession - scan row: %v", ErrScanRow, err)
		}

		rng.CreatedAt = createdAt.Time

		// Восстанавливаем слоты из границ диапазона
		if err := rng.ExpandSlots(); err != nil {
			return nil, fmt.Errorf("%w: ListBySession - expand slots: %v", ErrScanRow, err)
		}

		ranges = append(ranges, &rng)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBySession - rows error: %v", ErrScanRow, err)
	}

	return ranges, nil
}

// CountBySession возвращает количество выбранных диапазонов сессии
// Атомарность проверки лимита обеспечивает сериализуемая транзакция
func (r *Repository) CountBySession(ctx context.Context, sessionID string) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("selected_ranges").
		Where(squirrel.Eq{"session_id": sessionID})

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBySession - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBySession - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// DeleteByAnchor удаляет диапазон по якорю (date, anchorTime)
// Возвращает true, если диапазон существовал и был удален
func (r *Repository) DeleteByAnchor(ctx context.Context, sessionID string, date time.Time, anchorTime types.TimeString) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("selected_ranges").
		Where(squirrel.Eq{
			"session_id":  sessionID,
			"range_date":  domain.DayStart(date),
			"anchor_time": anchorTime,
		}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: DeleteByAnchor - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: DeleteByAnchor - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: DeleteByAnchor - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// DeleteBySession удаляет все выбранные диапазоны сессии
func (r *Repository) DeleteBySession(ctx context.Context, sessionID string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("selected_ranges").
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBySession - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteBySession - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
