package vehicle

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("vehicle.repository: vehicle not found")

	// ErrDuplicateVehicle возвращается, когда у клиента уже есть автомобиль с этим номером
	ErrDuplicateVehicle = errors.New("vehicle.repository: vehicle already exists")

	ErrBuildQuery = errors.New("vehicle.repository: failed to build query")
	ErrExecQuery  = errors.New("vehicle.repository: failed to execute query")
	ErrScanRow    = errors.New("vehicle.repository: failed to scan row")
)
