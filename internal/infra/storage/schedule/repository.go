package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/ParkBookingService/internal/domain"
	"github.com/m04kA/ParkBookingService/pkg/dbmetrics"
	"github.com/m04kA/ParkBookingService/pkg/psqlbuilder"
	"github.com/m04kA/ParkBookingService/pkg/types"
)

// scheduleColumns колонки расписания вместе со слагом активности
var scheduleColumns = []string{
	"s.id",
	"s.activity_id",
	"a.slug",
	"s.start_time",
	"s.end_time",
	"s.number_of_seats",
	"s.min_number_of_seats",
	"s.max_number_of_seats",
	"s.created_at",
	"s.updated_at",
}

// Repository репозиторий расписаний активностей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое расписание
func (r *Repository) Create(ctx context.Context, schedule *domain.ActivitySchedule) (*domain.ActivitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("activity_schedules").
		Columns(
			"activity_id",
			"start_time",
			"end_time",
			"number_of_seats",
			"min_number_of_seats",
			"max_number_of_seats",
		).
		Values(
			schedule.ActivityID,
			schedule.StartTime,
			schedule.EndTime,
			schedule.NumberOfSeats,
			schedule.MinNumberOfSeats,
			schedule.MaxNumberOfSeats,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// GetByID получает расписание по ID вместе со слагом активности
// Внутри транзакции строка расписания блокируется (FOR UPDATE), чтобы
// параллельные бронирования на одно расписание выполнялись последовательно
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ActivitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGetByIDQuery(id, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	schedule, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan schedule: %v", ErrScanRow, err)
	}

	return schedule, nil
}

// ListByActivity получает все расписания активности, упорядоченные по времени начала
func (r *Repository) ListByActivity(ctx context.Context, activityID int64) ([]*domain.ActivitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("activity_schedules s").
		Join("activities a ON a.id = s.activity_id").
		Where(squirrel.Eq{"s.activity_id": activityID}).
		OrderBy("s.start_time ASC", "s.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByActivity - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByActivity - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.ActivitySchedule, 0)
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByActivity - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByActivity - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// Update обновляет окно и вместимость расписания
func (r *Repository) Update(ctx context.Context, schedule *domain.ActivitySchedule) (*domain.ActivitySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("activity_schedules").
		Set("start_time", schedule.StartTime).
		Set("end_time", schedule.EndTime).
		Set("number_of_seats", schedule.NumberOfSeats).
		Set("min_number_of_seats", schedule.MinNumberOfSeats).
		Set("max_number_of_seats", schedule.MaxNumberOfSeats).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": schedule.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// Delete удаляет расписание
// Корректировки мест удаляются каскадно (ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("activity_schedules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

func buildGetByIDQuery(id int64, lock bool) (string, []interface{}, error) {
	builder := psqlbuilder.Select(scheduleColumns...).
		From("activity_schedules s").
		Join("activities a ON a.id = s.activity_id").
		Where(squirrel.Eq{"s.id": id})

	if lock {
		builder = builder.Suffix("FOR UPDATE OF s")
	}

	return builder.ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*domain.ActivitySchedule, error) {
	var schedule domain.ActivitySchedule
	var endTime types.TimeString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&schedule.ID,
		&schedule.ActivityID,
		&schedule.ActivitySlug,
		&schedule.StartTime,
		&endTime,
		&schedule.NumberOfSeats,
		&schedule.MinNumberOfSeats,
		&schedule.MaxNumberOfSeats,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if !endTime.IsZero() {
		schedule.EndTime = &endTime
	}
	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}
