package profiles

import (
	"errors"
	"fmt"
	"time"

	"github.com/Stitchbit30/BattleLog/internal/apperr"
	"github.com/Stitchbit30/BattleLog/internal/camp/program"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrProfileNotFound = fmt.Errorf("profile %w", apperr.ErrNotFound)

type Profile struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	Weight          string       `json:"weight"`
	Height          string       `json:"height"`
	Belt            string       `json:"belt"`
	StartDate       program.Date `json:"startDate"`
	CompetitionDate program.Date `json:"competitionDate"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// NewProfile is the create payload; dates arrive as raw strings so a bad format is
// reported against its field instead of failing the whole JSON decode.
type NewProfile struct {
	Name            string `json:"name"`
	Weight          string `json:"weight"`
	Height          string `json:"height"`
	Belt            string `json:"belt"`
	StartDate       string `json:"startDate"`
	CompetitionDate string `json:"competitionDate"`
}

func (np NewProfile) Validate() error {
	err := validation.ValidateStruct(&np,
		validation.Field(&np.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&np.Weight, validation.Required, validation.Length(1, 50)),
		validation.Field(&np.Height, validation.Required, validation.Length(1, 50)),
		validation.Field(&np.Belt, validation.Required, validation.Length(1, 50)),
		validation.Field(&np.StartDate, validation.Required, validation.Date(program.DateLayout)),
		validation.Field(&np.CompetitionDate, validation.Required, validation.Date(program.DateLayout)),
	)
	if err != nil {
		return apperr.FromValidation(err)
	}
	return checkDateOrder(program.MustParseDate(np.StartDate), program.MustParseDate(np.CompetitionDate))
}

// ToProfile assumes Validate passed.
func (np NewProfile) ToProfile(createdAt time.Time) Profile {
	return Profile{
		Name:            np.Name,
		Weight:          np.Weight,
		Height:          np.Height,
		Belt:            np.Belt,
		StartDate:       program.MustParseDate(np.StartDate),
		CompetitionDate: program.MustParseDate(np.CompetitionDate),
		CreatedAt:       createdAt,
	}
}

// Patch is a partial profile update; nil fields are left untouched.
type Patch struct {
	Name            *string `json:"name,omitempty"`
	Weight          *string `json:"weight,omitempty"`
	Height          *string `json:"height,omitempty"`
	Belt            *string `json:"belt,omitempty"`
	StartDate       *string `json:"startDate,omitempty"`
	CompetitionDate *string `json:"competitionDate,omitempty"`
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Weight == nil && p.Height == nil && p.Belt == nil &&
		p.StartDate == nil && p.CompetitionDate == nil
}

func (p Patch) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&p.Weight, validation.NilOrNotEmpty, validation.Length(1, 50)),
		validation.Field(&p.Height, validation.NilOrNotEmpty, validation.Length(1, 50)),
		validation.Field(&p.Belt, validation.NilOrNotEmpty, validation.Length(1, 50)),
		validation.Field(&p.StartDate, validation.NilOrNotEmpty, validation.Date(program.DateLayout)),
		validation.Field(&p.CompetitionDate, validation.NilOrNotEmpty, validation.Date(program.DateLayout)),
	)
	return apperr.FromValidation(err)
}

// Apply merges the patch over p. The patch must be valid.
func (p Patch) Apply(profile Profile) (Profile, error) {
	if p.Name != nil {
		profile.Name = *p.Name
	}
	if p.Weight != nil {
		profile.Weight = *p.Weight
	}
	if p.Height != nil {
		profile.Height = *p.Height
	}
	if p.Belt != nil {
		profile.Belt = *p.Belt
	}
	if p.StartDate != nil {
		profile.StartDate = program.MustParseDate(*p.StartDate)
	}
	if p.CompetitionDate != nil {
		profile.CompetitionDate = program.MustParseDate(*p.CompetitionDate)
	}
	if err := checkDateOrder(profile.StartDate, profile.CompetitionDate); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func checkDateOrder(start, competition program.Date) error {
	if competition.Before(start) {
		return apperr.NewValidationError("competitionDate", errors.New("must not be before startDate"))
	}
	return nil
}
