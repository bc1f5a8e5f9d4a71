package reference

import "errors"

var (
	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("reference: location not found")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("reference: room not found")

	// ErrStaffNotFound возвращается, когда терапевт не найден
	ErrStaffNotFound = errors.New("reference: staff member not found")

	// ErrAlreadyExists возвращается, когда запись с таким именем уже есть
	ErrAlreadyExists = errors.New("reference: already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reference: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reference: internal error")
)
