package update_booking_status

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/ParkBookingService/internal/domain"
	"github.com/m04kA/ParkBookingService/pkg/types"
)

// ownerStatuses статусы, которые владелец может выставить сам
// Остальные переходы (оплата, отклонение) выполняет администратор
var ownerStatuses = map[domain.BookingStatus]bool{
	domain.StatusInProgress: true,
	domain.StatusConfirmed:  true,
	domain.StatusCancelled:  true,
}

// validateRequest валидирует входные данные и возвращает новый статус
func validateRequest(req *Request) (domain.BookingStatus, error) {
	if req.BookingID <= 0 {
		return "", fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return "", fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	status := domain.BookingStatus(req.Status)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	return status, nil
}

// checkAccess владелец меняет статус своего бронирования в пределах ownerStatuses
func checkAccess(booking *domain.Booking, req *Request, next domain.BookingStatus) error {
	if req.IsAdmin {
		return nil
	}
	if booking.UserID != req.UserID || !ownerStatuses[next] {
		return ErrAccessDenied
	}
	return nil
}

// scheduleDemand расписание и дата, на которые претендуют позиции бронирования
type scheduleDemand struct {
	scheduleID int64
	date       time.Time
}

// groupDemand собирает пары расписание/дата позиций в часовом поясе парка
// Позиции без расписания (расписание удалено) не проверяются
func groupDemand(items []domain.BookingActivity, loc *time.Location) []scheduleDemand {
	index := make(map[string]bool)
	groups := make([]scheduleDemand, 0)

	for i := range items {
		item := &items[i]
		if item.ActivityScheduleID == nil {
			continue
		}

		date := types.DateOnly(item.StartTime.In(loc))
		key := fmt.Sprintf("%d/%s", *item.ActivityScheduleID, domain.FormatDate(date))

		if index[key] {
			continue
		}
		index[key] = true
		groups = append(groups, scheduleDemand{scheduleID: *item.ActivityScheduleID, date: date})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].scheduleID != groups[j].scheduleID {
			return groups[i].scheduleID < groups[j].scheduleID
		}
		return groups[i].date.Before(groups[j].date)
	})

	return groups
}
