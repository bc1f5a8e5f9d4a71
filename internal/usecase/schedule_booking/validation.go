package schedule_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-RoomScheduler/internal/domain"
)

// validateRequest проверяет поля запроса и подставляет значения по умолчанию
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomId is required", ErrInvalidInput)
	}
	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffId is required", ErrInvalidInput)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	if !req.End.After(req.Start) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	if req.Notes != nil {
		notes := strings.TrimSpace(*req.Notes)
		if utf8.RuneCountInString(notes) > domain.MaxNotesLength {
			return fmt.Errorf("%w: notes are longer than %d characters", ErrInvalidInput, domain.MaxNotesLength)
		}
		if notes == "" {
			req.Notes = nil
		} else {
			req.Notes = &notes
		}
	}

	if req.Policy == "" {
		req.Policy = domain.PolicySkip
	}
	if !req.Policy.IsValid() {
		return fmt.Errorf("%w: unknown conflict policy %q", ErrInvalidInput, req.Policy)
	}

	if req.Cadence == "" {
		req.Cadence = domain.CadenceNone
	}
	if !req.Cadence.IsValid() {
		return fmt.Errorf("%w: unknown cadence %q", ErrInvalidRecurrence, req.Cadence)
	}

	return nil
}
