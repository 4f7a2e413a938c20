package api

import (
	"fmt"

	"github.com/Stitchbit30/BattleLog/internal/apperr"
	"github.com/Stitchbit30/BattleLog/internal/camp/program"
)

// ParseDateField parses a request date, reporting a bad value against field.
// An empty value yields fallback.
func ParseDateField(field, raw string, fallback program.Date) (program.Date, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := program.ParseDate(raw)
	if err != nil {
		return program.Date{}, apperr.NewValidationError(field, fmt.Errorf("must be a date in YYYY-MM-DD format, got [%s]", raw))
	}
	return d, nil
}
