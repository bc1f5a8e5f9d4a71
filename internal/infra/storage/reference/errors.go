package reference

import "errors"

var (
	// ErrLocationNotFound возвращается, когда локация не найдена
	ErrLocationNotFound = errors.New("reference.repository: location not found")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("reference.repository: room not found")

	// ErrStaffNotFound возвращается, когда терапевт не найден
	ErrStaffNotFound = errors.New("reference.repository: staff member not found")

	// ErrAlreadyExists возвращается при нарушении уникальности имени
	ErrAlreadyExists = errors.New("reference.repository: already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reference.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reference.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reference.repository: failed to scan row")
)
