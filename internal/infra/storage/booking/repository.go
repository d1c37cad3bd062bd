package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/ParkBookingService/internal/domain"
	"github.com/m04kA/ParkBookingService/pkg/dbmetrics"
	"github.com/m04kA/ParkBookingService/pkg/psqlbuilder"
)

var activityColumns = []string{
	"ba.id",
	"ba.booking_id",
	"ba.activity_id",
	"ba.activity_schedule_id",
	"ba.start_time",
	"ba.end_time",
	"ba.number_of_seats",
	"ba.number_of_adults",
	"ba.number_of_children",
	"ba.created_at",
}

// Repository репозиторий для работы с бронированиями и их позициями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе с позициями
// Должен вызываться внутри транзакции: бронирование и позиции сохраняются атомарно
// вместе с проверкой свободных мест
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns("user_id", "status", "notes").
		Values(booking.UserID, booking.Status, booking.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	for i := range booking.Activities {
		item := &booking.Activities[i]
		item.BookingID = booking.ID

		if err := r.createActivity(ctx, executor, item); err != nil {
			return nil, err
		}
	}

	return booking, nil
}

func (r *Repository) createActivity(ctx context.Context, executor DBExecutor, item *domain.BookingActivity) error {
	query, args, err := psqlbuilder.Insert("booking_activities").
		Columns(
			"booking_id",
			"activity_id",
			"activity_schedule_id",
			"start_time",
			"end_time",
			"number_of_seats",
			"number_of_adults",
			"number_of_children",
		).
		Values(
			item.BookingID,
			item.ActivityID,
			item.ActivityScheduleID,
			item.StartTime,
			item.EndTime,
			item.NumberOfSeats,
			item.NumberOfAdults,
			item.NumberOfChildren,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: createActivity - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID, &createdAt); err != nil {
		return fmt.Errorf("%w: createActivity - execute insert: %v", ErrExecQuery, err)
	}
	item.CreatedAt = createdAt.Time

	return nil
}

// GetByID получает бронирование по ID вместе с позициями
// Внутри транзакции строка бронирования блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "user_id", "status", "notes", "created_at", "updated_at").
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.UserID,
		&booking.Status,
		&booking.Notes,
		&createdAt,
		&updatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	query, args, err = psqlbuilder.Select(activityColumns...).
		From("booking_activities ba").
		Where(squirrel.Eq{"ba.booking_id": id}).
		OrderBy("ba.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build activities query: %v", ErrBuildQuery, err)
	}

	booking.Activities, err = r.queryActivities(ctx, executor, "GetByID", query, args)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

// ListByUser получает бронирования пользователя с позициями, новые первыми
// status опционален
func (r *Repository) ListByUser(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListByUserQuery(userID, status)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	byID := make(map[int64]*domain.Booking)
	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.Status,
			&booking.Notes,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByUser - scan booking: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time
		booking.Activities = make([]domain.BookingActivity, 0)
		bookings = append(bookings, &booking)
		byID[booking.ID] = &booking
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByUser - rows error: %v", ErrScanRow, err)
	}

	if len(bookings) == 0 {
		return bookings, nil
	}

	ids := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}

	query, args, err = psqlbuilder.Select(activityColumns...).
		From("booking_activities ba").
		Where(squirrel.Eq{"ba.booking_id": ids}).
		OrderBy("ba.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build activities query: %v", ErrBuildQuery, err)
	}

	items, err := r.queryActivities(ctx, executor, "ListByUser", query, args)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if booking, ok := byID[item.BookingID]; ok {
			booking.Activities = append(booking.Activities, item)
		}
	}

	return bookings, nil
}

func buildListByUserQuery(userID int64, status *domain.BookingStatus) (string, []interface{}, error) {
	selectBuilder := psqlbuilder.Select("id", "user_id", "status", "notes", "created_at", "updated_at").
		From("bookings").
		Where(squirrel.Eq{"user_id": userID})

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*status)})
	}

	return selectBuilder.OrderBy("created_at DESC", "id DESC").ToSql()
}

// UpdateStatus изменяет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// ListCommittedDemand получает позиции бронирований, занимающие места активности в окне
// Учитываются только бронирования в статусах filter.Statuses, пересечение окон включительное:
// start_time <= windowEnd AND end_time >= windowStart
func (r *Repository) ListCommittedDemand(ctx context.Context, filter domain.DemandFilter) ([]domain.BookingActivity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildCommittedDemandQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCommittedDemand - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryActivities(ctx, executor, "ListCommittedDemand", query, args)
}

func buildCommittedDemandQuery(filter domain.DemandFilter) (string, []interface{}, error) {
	statuses := make([]string, len(filter.Statuses))
	for i, s := range filter.Statuses {
		statuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(activityColumns...).
		From("booking_activities ba").
		Join("bookings b ON b.id = ba.booking_id").
		Where(squirrel.Eq{"ba.activity_id": filter.ActivityID}).
		Where(squirrel.Eq{"b.status": statuses}).
		Where(squirrel.LtOrEq{"ba.start_time": filter.Window.End}).
		Where(squirrel.GtOrEq{"ba.end_time": filter.Window.Start})

	if filter.ExcludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.id": *filter.ExcludeBookingID})
	}

	return selectBuilder.OrderBy("ba.id ASC").ToSql()
}

func (r *Repository) queryActivities(ctx context.Context, executor DBExecutor, op string, query string, args []interface{}) ([]domain.BookingActivity, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	items := make([]domain.BookingActivity, 0)
	for rows.Next() {
		var item domain.BookingActivity
		var createdAt sql.NullTime

		err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.ActivityID,
			&item.ActivityScheduleID,
			&item.StartTime,
			&item.EndTime,
			&item.NumberOfSeats,
			&item.NumberOfAdults,
			&item.NumberOfChildren,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		item.CreatedAt = createdAt.Time
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return items, nil
}
