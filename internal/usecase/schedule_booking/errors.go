package schedule_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("schedule_booking: invalid input data")

	// ErrInvalidRecurrence возвращается, когда повторение нельзя развернуть
	ErrInvalidRecurrence = errors.New("schedule_booking: invalid recurrence")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("schedule_booking: room not found")

	// ErrStaffNotFound возвращается, когда терапевт не найден
	ErrStaffNotFound = errors.New("schedule_booking: staff member not found")

	// ErrStaffInactive возвращается, когда терапевт деактивирован
	ErrStaffInactive = errors.New("schedule_booking: staff member is inactive")

	// ErrStore возвращается при ошибке хранилища; уже созданные вхождения остаются
	ErrStore = errors.New("schedule_booking: store error")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("schedule_booking: internal error")
)
