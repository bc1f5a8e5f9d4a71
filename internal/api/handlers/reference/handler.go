package reference

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomScheduler/internal/api/handlers"
	referenceService "github.com/m04kA/SMC-RoomScheduler/internal/service/reference"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidQuery       = "некорректные параметры запроса"
	msgInvalidInput       = "некорректные данные справочника"
	msgLocationNotFound   = "локация не найдена"
	msgAlreadyExists      = "запись с таким именем уже существует"
)

// Handler обслуживает справочники: локации, комнаты, терапевтов
type Handler struct {
	service ReferenceService
	logger  Logger
}

func NewHandler(service ReferenceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListLocations GET /api/v1/locations
func (h *Handler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.service.ListLocations(r.Context())
	if err != nil {
		h.logger.Error("GET /locations - Failed to list locations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := make([]LocationResponse, 0, len(locations))
	for _, location := range locations {
		response = append(response, fromLocation(location))
	}
	handlers.RespondJSON(w, http.StatusOK, response)
}

// CreateLocation POST /api/v1/locations
func (h *Handler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var req CreateLocationRequest
	if !h.decode(w, r, "POST /locations", &req) {
		return
	}

	location, err := h.service.CreateLocation(r.Context(), req.Name)
	if err != nil {
		h.respondServiceError(w, "POST /locations", err)
		return
	}

	h.logger.Info("POST /locations - Location created: location_id=%d", location.ID)
	handlers.RespondJSON(w, http.StatusCreated, fromLocation(*location))
}

// ListRooms GET /api/v1/rooms?locationId=
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	locationID, err := handlers.QueryInt64(r.URL.Query(), "locationId")
	if err != nil {
		h.logger.Warn("GET /rooms - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	rooms, err := h.service.ListRooms(r.Context(), locationID)
	if err != nil {
		h.logger.Error("GET /rooms - Failed to list rooms: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		response = append(response, fromRoom(room))
	}
	handlers.RespondJSON(w, http.StatusOK, response)
}

// CreateRoom POST /api/v1/rooms
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if !h.decode(w, r, "POST /rooms", &req) {
		return
	}

	room, err := h.service.CreateRoom(r.Context(), req.Name, req.LocationID)
	if err != nil {
		h.respondServiceError(w, "POST /rooms", err)
		return
	}

	h.logger.Info("POST /rooms - Room created: room_id=%d, location_id=%d", room.ID, room.LocationID)
	handlers.RespondJSON(w, http.StatusCreated, fromRoom(*room))
}

// ListStaff GET /api/v1/staff?includeInactive=
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	includeInactive, err := handlers.QueryBool(r.URL.Query(), "includeInactive")
	if err != nil {
		h.logger.Warn("GET /staff - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	staff, err := h.service.ListStaff(r.Context(), includeInactive)
	if err != nil {
		h.logger.Error("GET /staff - Failed to list staff: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := make([]StaffResponse, 0, len(staff))
	for _, member := range staff {
		response = append(response, fromStaff(member))
	}
	handlers.RespondJSON(w, http.StatusOK, response)
}

// UpsertStaff PUT /api/v1/staff
func (h *Handler) UpsertStaff(w http.ResponseWriter, r *http.Request) {
	var req UpsertStaffRequest
	if !h.decode(w, r, "PUT /staff", &req) {
		return
	}

	member, err := h.service.UpsertStaff(r.Context(), req.ToDomain())
	if err != nil {
		h.respondServiceError(w, "PUT /staff", err)
		return
	}

	h.logger.Info("PUT /staff - Staff saved: staff_id=%d, active=%t", member.ID, member.Active)
	handlers.RespondJSON(w, http.StatusOK, fromStaff(*member))
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string, v interface{}) bool {
	if err := handlers.DecodeJSON(r, v); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		if msg, ok := handlers.ValidationMessage(err); ok {
			handlers.RespondBadRequest(w, msg)
			return false
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	return true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, referenceService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)
	case errors.Is(err, referenceService.ErrLocationNotFound):
		h.logger.Warn("%s - Location not found: %v", route, err)
		handlers.RespondNotFound(w, msgLocationNotFound)
	case errors.Is(err, referenceService.ErrAlreadyExists):
		h.logger.Warn("%s - Already exists: %v", route, err)
		handlers.RespondConflict(w, msgAlreadyExists)
	default:
		h.logger.Error("%s - Service error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
