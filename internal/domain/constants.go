package domain

const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Ограничения на входные данные
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxRescheduleReasonLength   = 500
	MaxAdminNotesLength         = 500
	MaxBlockReasonLength        = 200
	MaxNameLength               = 200
	MaxServiceNameLength        = 200
	MinRegistrationLength       = 2
	MaxRegistrationLength       = 10
)

// Номер бронирования: DT-XXXXXXXX
const (
	ReferencePrefix      = "DT-"
	ReferenceLength      = 8
	MaxReferenceAttempts = 5
)

// Ограничения шаблона расписания
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 480
	MaxCapacityPerSlot     = 50
)
