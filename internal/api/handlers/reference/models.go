package reference

import (
	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// Request модели

// CreateLocationRequest тело POST /locations
type CreateLocationRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// CreateRoomRequest тело POST /rooms
type CreateRoomRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	LocationID int64  `json:"locationId" validate:"required,gt=0"`
}

// UpsertStaffRequest тело PUT /staff; терапевт ищется по email
type UpsertStaffRequest struct {
	Name   string  `json:"name" validate:"required,max=200"`
	Email  string  `json:"email" validate:"required,email"`
	Color  *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Active *bool   `json:"active,omitempty"` // По умолчанию true
}

// ToDomain конвертирует запрос в терапевта
func (r *UpsertStaffRequest) ToDomain() domain.StaffMember {
	email := r.Email
	member := domain.StaffMember{
		Name:   r.Name,
		Email:  &email,
		Color:  r.Color,
		Active: true,
	}
	if r.Active != nil {
		member.Active = *r.Active
	}
	return member
}

// Response модели

// LocationResponse локация
type LocationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// RoomResponse комната
type RoomResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	LocationID int64  `json:"locationId"`
}

// StaffResponse терапевт
type StaffResponse struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Email  *string `json:"email,omitempty"`
	Color  *string `json:"color,omitempty"`
	Active bool    `json:"active"`
}

func fromLocation(l domain.Location) LocationResponse {
	return LocationResponse{ID: l.ID, Name: l.Name}
}

func fromRoom(r domain.Room) RoomResponse {
	return RoomResponse{ID: r.ID, Name: r.Name, LocationID: r.LocationID}
}

func fromStaff(s domain.StaffMember) StaffResponse {
	return StaffResponse{
		ID:     s.ID,
		Name:   s.DisplayName(),
		Email:  s.Email,
		Color:  s.Color,
		Active: s.Active,
	}
}
