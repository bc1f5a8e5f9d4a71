package engine

import (
	"time"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// Project re-keys bookings by the entity selected with groupBy.
//
// Room and staff modes key by the booking's own reference. Location mode joins
// through rooms; bookings whose room is unknown are dropped.
func Project(bookings []*domain.Booking, groupBy domain.GroupBy, rooms []domain.Room) map[int64][]*domain.Booking {
	result := make(map[int64][]*domain.Booking)

	var locationByRoom map[int64]int64
	if groupBy == domain.GroupByLocation {
		locationByRoom = make(map[int64]int64, len(rooms))
		for _, room := range rooms {
			locationByRoom[room.ID] = room.LocationID
		}
	}

	for _, booking := range bookings {
		switch groupBy {
		case domain.GroupByRoom:
			result[booking.RoomID] = append(result[booking.RoomID], booking)
		case domain.GroupByStaff:
			result[booking.StaffID] = append(result[booking.StaffID], booking)
		case domain.GroupByLocation:
			locationID, ok := locationByRoom[booking.RoomID]
			if !ok {
				continue
			}
			result[locationID] = append(result[locationID], booking)
		}
	}

	return result
}

// InCell reports whether a booking is shown in a grid cell of the given day:
// it must start on that day and overlap the cell.
func InCell(booking *domain.Booking, day time.Time, cell domain.Interval) bool {
	loc := day.Location()
	if !StartOfDay(booking.Start, loc).Equal(StartOfDay(day, loc)) {
		return false
	}
	return booking.End.After(cell.Start) && booking.Start.Before(cell.End)
}

// Cells places bookings into the slot columns of one day; index i holds the
// bookings visible in slots[i]
func Cells(bookings []*domain.Booking, day time.Time, slots []domain.Interval) [][]*domain.Booking {
	cells := make([][]*domain.Booking, len(slots))
	for i, slot := range slots {
		cells[i] = make([]*domain.Booking, 0)
		for _, booking := range bookings {
			if InCell(booking, day, slot) {
				cells[i] = append(cells[i], booking)
			}
		}
	}
	return cells
}
