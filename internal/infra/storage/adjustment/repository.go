package adjustment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/m04kA/ParkBookingService/internal/domain"
	"github.com/m04kA/ParkBookingService/pkg/dbmetrics"
	"github.com/m04kA/ParkBookingService/pkg/psqlbuilder"
)

// foreignKeyViolation код ошибки PostgreSQL при нарушении внешнего ключа
const foreignKeyViolation = "23503"

var adjustmentColumns = []string{
	"id",
	"activity_schedule_id",
	"adjusted_seats",
	"start_date",
	"end_date",
	"reason",
	"user_id",
	"created_at",
	"updated_at",
}

// Repository журнал корректировок мест
// Записи не удаляются: журнал используется как история изменений вместимости
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория корректировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет корректировку в журнал
func (r *Repository) Create(ctx context.Context, adj *domain.SeatsAdjustment) (*domain.SeatsAdjustment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("seats_adjustments").
		Columns(
			"activity_schedule_id",
			"adjusted_seats",
			"start_date",
			"end_date",
			"reason",
			"user_id",
		).
		Values(
			adj.ActivityScheduleID,
			adj.AdjustedSeats,
			domain.FormatDate(adj.StartDate),
			domain.FormatDate(adj.EndDate),
			adj.Reason,
			adj.UserID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&adj.ID,
		&createdAt,
		&updatedAt,
	)

	if isForeignKeyViolation(err) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	adj.CreatedAt = createdAt.Time
	adj.UpdatedAt = updatedAt.Time

	return adj, nil
}

// GetByID получает корректировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SeatsAdjustment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(adjustmentColumns...).
		From("seats_adjustments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	adj, err := scanAdjustment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdjustmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan adjustment: %v", ErrScanRow, err)
	}

	return adj, nil
}

// Update изменяет корректировку; updated_at обновляется и влияет на выбор активной корректировки
func (r *Repository) Update(ctx context.Context, adj *domain.SeatsAdjustment) (*domain.SeatsAdjustment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("seats_adjustments").
		Set("adjusted_seats", adj.AdjustedSeats).
		Set("start_date", domain.FormatDate(adj.StartDate)).
		Set("end_date", domain.FormatDate(adj.EndDate)).
		Set("reason", adj.Reason).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": adj.ID}).
		Suffix("RETURNING activity_schedule_id, user_id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&adj.ActivityScheduleID,
		&adj.UserID,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdjustmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	adj.CreatedAt = createdAt.Time
	adj.UpdatedAt = updatedAt.Time

	return adj, nil
}

// ListActive получает корректировки расписания, действующие на дату
// Диапазоны могут пересекаться, сортировка: сначала последние измененные
func (r *Repository) ListActive(ctx context.Context, scheduleID int64, date time.Time) ([]domain.SeatsAdjustment, error) {
	query, args, err := buildListActiveQuery(scheduleID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "ListActive", query, args)
}

// List получает историю корректировок расписания с фильтром по периоду
func (r *Repository) List(ctx context.Context, filter domain.AdjustmentsFilter) ([]domain.SeatsAdjustment, error) {
	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "List", query, args)
}

func (r *Repository) query(ctx context.Context, op string, query string, args []interface{}) ([]domain.SeatsAdjustment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	adjustments := make([]domain.SeatsAdjustment, 0)
	for rows.Next() {
		adj, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		adjustments = append(adjustments, *adj)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return adjustments, nil
}

func buildListActiveQuery(scheduleID int64, date time.Time) (string, []interface{}, error) {
	day := domain.FormatDate(date)

	return psqlbuilder.Select(adjustmentColumns...).
		From("seats_adjustments").
		Where(squirrel.Eq{"activity_schedule_id": scheduleID}).
		Where(squirrel.LtOrEq{"start_date": day}).
		Where(squirrel.GtOrEq{"end_date": day}).
		OrderBy("updated_at DESC", "id DESC").
		ToSql()
}

func buildListQuery(filter domain.AdjustmentsFilter) (string, []interface{}, error) {
	builder := psqlbuilder.Select(adjustmentColumns...).
		From("seats_adjustments").
		Where(squirrel.Eq{"activity_schedule_id": filter.ActivityScheduleID})

	// Пересечение диапазона корректировки с периодом [From, To]
	if filter.From != nil {
		builder = builder.Where(squirrel.GtOrEq{"end_date": domain.FormatDate(*filter.From)})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.LtOrEq{"start_date": domain.FormatDate(*filter.To)})
	}

	return builder.OrderBy("updated_at DESC", "id DESC").ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAdjustment(row rowScanner) (*domain.SeatsAdjustment, error) {
	var adj domain.SeatsAdjustment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&adj.ID,
		&adj.ActivityScheduleID,
		&adj.AdjustedSeats,
		&adj.StartDate,
		&adj.EndDate,
		&adj.Reason,
		&adj.UserID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	adj.CreatedAt = createdAt.Time
	adj.UpdatedAt = updatedAt.Time

	return &adj, nil
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation
}
