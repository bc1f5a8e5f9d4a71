package get_utilization

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_utilization: invalid input data")

	// ErrRoomNotFound возвращается, когда комната из фильтра не найдена в выбранной области
	ErrRoomNotFound = errors.New("get_utilization: room not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_utilization: internal error")
)
