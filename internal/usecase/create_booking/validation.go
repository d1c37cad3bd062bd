package create_booking

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/ParkBookingService/internal/domain"
	"github.com/m04kA/ParkBookingService/pkg/types"
)

// slotKey расписание и дата, на которые претендуют позиции
type slotKey struct {
	scheduleID int64
	day        string
}

// parsedItem позиция с разобранной датой
type parsedItem struct {
	ItemRequest
	date time.Time
	key  slotKey
}

// seats количество мест позиции
func (p parsedItem) seats() int {
	demand := domain.BookingActivity{
		NumberOfSeats:    p.NumberOfSeats,
		NumberOfAdults:   p.NumberOfAdults,
		NumberOfChildren: p.NumberOfChildren,
	}
	return demand.SeatCount()
}

// validateRequest валидирует входные данные запроса и возвращает статус бронирования
func validateRequest(req *Request) (domain.BookingStatus, error) {
	if req.UserID <= 0 {
		return "", fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	status := domain.StatusDraft
	if req.Status != "" {
		status = domain.BookingStatus(req.Status)
	}
	if status != domain.StatusDraft && status != domain.StatusConfirmed {
		return "", fmt.Errorf("%w: status must be draft or confirmed", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return "", fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if len(req.Items) == 0 {
		return "", fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}
	if len(req.Items) > domain.MaxItemsPerBooking {
		return "", fmt.Errorf("%w: at most %d items allowed", ErrInvalidInput, domain.MaxItemsPerBooking)
	}

	return status, nil
}

// parseItems разбирает даты позиций в часовом поясе парка и проверяет количество мест
func parseItems(items []ItemRequest, loc *time.Location, now time.Time) ([]parsedItem, error) {
	today := types.DateOnly(now.In(loc))
	parsed := make([]parsedItem, 0, len(items))

	for i, item := range items {
		if item.ScheduleID <= 0 {
			return nil, fmt.Errorf("%w: items[%d].scheduleId must be positive", ErrInvalidInput, i)
		}

		date, err := types.ParseDate(item.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("%w: items[%d].date must be in YYYY-MM-DD format", ErrInvalidInput, i)
		}
		if date.Before(today) {
			return nil, fmt.Errorf("%w: items[%d].date %s is in the past", ErrInvalidDate, i, item.Date)
		}

		if item.NumberOfSeats != nil && *item.NumberOfSeats < 0 {
			return nil, fmt.Errorf("%w: items[%d].numberOfSeats must not be negative", ErrInvalidInput, i)
		}
		if item.NumberOfAdults < 0 || item.NumberOfChildren < 0 {
			return nil, fmt.Errorf("%w: items[%d] headcount must not be negative", ErrInvalidInput, i)
		}

		p := parsedItem{
			ItemRequest: item,
			date:        date,
			key:         slotKey{scheduleID: item.ScheduleID, day: domain.FormatDate(date)},
		}

		seats := p.seats()
		if seats <= 0 {
			return nil, fmt.Errorf("%w: items[%d] must request at least one seat", ErrInvalidInput, i)
		}
		if seats > domain.MaxSeatsPerItem {
			return nil, fmt.Errorf("%w: items[%d] requests more than %d seats", ErrInvalidInput, i, domain.MaxSeatsPerItem)
		}

		parsed = append(parsed, p)
	}

	return parsed, nil
}

// groupSlots возвращает пары расписание/дата, на которые претендуют позиции
// Ключи отсортированы, чтобы строки расписаний блокировались в одном порядке
func groupSlots(items []parsedItem) []slotKey {
	seen := make(map[slotKey]bool)
	keys := make([]slotKey, 0)

	for _, item := range items {
		if !seen[item.key] {
			seen[item.key] = true
			keys = append(keys, item.key)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].scheduleID != keys[j].scheduleID {
			return keys[i].scheduleID < keys[j].scheduleID
		}
		return keys[i].day < keys[j].day
	})

	return keys
}
