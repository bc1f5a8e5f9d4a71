package domain

// Default configuration values
const (
	DefaultSlotMinutes  = 30
	DefaultScheduleDays = 1
	DefaultTimezone     = "UTC"
)

// Business validation constants
const (
	MinSlotMinutes     = 5
	MaxSlotMinutes     = 240
	MaxScheduleDays    = 14
	MaxUtilizationDays = 366
	MaxNotesLength     = 1000
	MaxNameLength      = 200

	// MaxOccurrences bounds a single recurring request (about five years weekly)
	MaxOccurrences = 260
)

// Time format constants
const (
	TimeFormat     = "15:04"            // HH:MM
	DateFormat     = "2006-01-02"       // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04" // local wall-clock, as entered in forms
)
