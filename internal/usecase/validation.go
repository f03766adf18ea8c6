package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/xavierca1/leadfocus/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateTrackActionInput(input TrackActionInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.LeadID) == "" {
		errs = append(errs, ValidationError{"lead_id", "is required"})
	}

	if strings.TrimSpace(input.ActionType) == "" {
		errs = append(errs, ValidationError{"action_type", "is required"})
	} else if !entity.ValidActionType(input.ActionType) {
		errs = append(errs, ValidationError{"action_type", "must be one of contacted, viewed, added_to_focus, generated_outreach"})
	}

	return errs
}

func ValidateFocusDate(date string) []ValidationError {
	if _, err := time.Parse(entity.FocusDateLayout, date); err != nil {
		return []ValidationError{{"focus_date", "must be a valid date (YYYY-MM-DD)"}}
	}
	return nil
}

func validationFailure(errs []ValidationError) *Error {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Field+" ("+e.Message+")")
	}
	return NewError(KindValidation, "validation failed: "+strings.Join(msgs, ", "))
}
