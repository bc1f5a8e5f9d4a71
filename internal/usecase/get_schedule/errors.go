package get_schedule

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_schedule: invalid input data")

	// ErrLocationNotFound возвращается, когда локация из фильтра не найдена
	ErrLocationNotFound = errors.New("get_schedule: location not found")

	// ErrRoomNotFound возвращается, когда комната из фильтра не найдена в выбранной локации
	ErrRoomNotFound = errors.New("get_schedule: room not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_schedule: internal error")
)
