package dailylogs

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Stitchbit30/BattleLog/internal/apperr"
	"github.com/Stitchbit30/BattleLog/internal/camp/program"
	programapi "github.com/Stitchbit30/BattleLog/internal/camp/program/api"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var ErrLogNotFound = fmt.Errorf("log %w", apperr.ErrNotFound)

type SleepQuality string

const (
	SleepQualityPoor      SleepQuality = "Poor"
	SleepQualityFair      SleepQuality = "Fair"
	SleepQualityGood      SleepQuality = "Good"
	SleepQualityExcellent SleepQuality = "Excellent"
)

var SleepQualities = []SleepQuality{
	SleepQualityPoor,
	SleepQualityFair,
	SleepQualityGood,
	SleepQualityExcellent,
}

func (q SleepQuality) IsValid() bool {
	return slices.Contains(SleepQualities, q)
}

func (q SleepQuality) Validate() error {
	if !q.IsValid() {
		return errors.New("must be one of Poor, Fair, Good, Excellent")
	}
	return nil
}

// Key addresses exactly one log.
type Key struct {
	ProfileID int
	Date      program.Date
}

func (k Key) String() string {
	return fmt.Sprintf("%d@%s", k.ProfileID, k.Date)
}

type DailyLog struct {
	ID             int           `json:"id"`
	ProfileID      int           `json:"profileId"`
	Date           program.Date  `json:"date"`
	CompletedItems []string      `json:"completedItems"`
	JournalEntry   string        `json:"journalEntry"`
	Weight         *string       `json:"weight"`
	Mood           *int          `json:"mood"`
	SleepHours     *string       `json:"sleepHours"`
	SleepQuality   *SleepQuality `json:"sleepQuality"`
	HRV            *string       `json:"hrv"`
	RestingHR      *string       `json:"restingHR"`
	ActiveCalories *string       `json:"activeCalories"`
	DailyFocus     *string       `json:"dailyFocus"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// Empty is the view of a key nobody has written yet. It is never persisted as is.
func Empty(key Key) DailyLog {
	return DailyLog{
		ProfileID:      key.ProfileID,
		Date:           key.Date,
		CompletedItems: []string{},
		JournalEntry:   "",
	}
}

func (l DailyLog) Key() Key {
	return Key{ProfileID: l.ProfileID, Date: l.Date}
}

func (l DailyLog) HasItem(itemID string) bool {
	return slices.Contains(l.CompletedItems, itemID)
}

// Patch is a partial log write; nil fields are "not provided" and keep their stored value.
// CompletedItems, when provided, replaces the whole set.
type Patch struct {
	CompletedItems *[]string     `json:"completedItems,omitempty"`
	JournalEntry   *string       `json:"journalEntry,omitempty"`
	Weight         *string       `json:"weight,omitempty"`
	Mood           *int          `json:"mood,omitempty"`
	SleepHours     *string       `json:"sleepHours,omitempty"`
	SleepQuality   *SleepQuality `json:"sleepQuality,omitempty"`
	HRV            *string       `json:"hrv,omitempty"`
	RestingHR      *string       `json:"restingHR,omitempty"`
	ActiveCalories *string       `json:"activeCalories,omitempty"`
	DailyFocus     *string       `json:"dailyFocus,omitempty"`
}

func (p Patch) IsEmpty() bool {
	return p.CompletedItems == nil && p.JournalEntry == nil && p.Weight == nil && p.Mood == nil &&
		p.SleepHours == nil && p.SleepQuality == nil && p.HRV == nil && p.RestingHR == nil &&
		p.ActiveCalories == nil && p.DailyFocus == nil
}

func (p Patch) Validate() error {
	err := validation.ValidateStruct(&p,
		validation.Field(&p.CompletedItems, validation.By(validItemIDs)),
		validation.Field(&p.JournalEntry, validation.Length(0, 20000)),
		validation.Field(&p.Weight, validation.Length(0, 50)),
		validation.Field(&p.Mood, validation.By(validMood)),
		validation.Field(&p.SleepHours, validation.Length(0, 50)),
		validation.Field(&p.SleepQuality),
		validation.Field(&p.HRV, validation.Length(0, 50)),
		validation.Field(&p.RestingHR, validation.Length(0, 50)),
		validation.Field(&p.ActiveCalories, validation.Length(0, 50)),
		validation.Field(&p.DailyFocus, validation.Length(0, 500)),
	)
	return apperr.FromValidation(err)
}

func validItemIDs(value any) error {
	items, _ := value.(*[]string)
	if items == nil {
		return nil
	}
	for _, item := range *items {
		if item == "" || len(item) > 64 {
			return errors.New("item ids must be 1 to 64 characters long")
		}
	}
	return nil
}

// ozzo's Min/Max treat 0 as empty, so the mood range is checked by hand.
func validMood(value any) error {
	mood, _ := value.(*int)
	if mood == nil {
		return nil
	}
	if *mood < 1 || *mood > 5 {
		return errors.New("must be between 1 and 5")
	}
	return nil
}

// Normalized returns a copy with CompletedItems deduplicated. The copy shares no
// slice with p.
func (p Patch) Normalized() Patch {
	if p.CompletedItems != nil {
		items := DedupeItems(*p.CompletedItems)
		p.CompletedItems = &items
	}
	return p
}

// Apply shallow-merges the provided fields over l and stamps the write time.
func (p Patch) Apply(l DailyLog, now time.Time) DailyLog {
	if p.CompletedItems != nil {
		l.CompletedItems = DedupeItems(*p.CompletedItems)
	}
	if p.JournalEntry != nil {
		l.JournalEntry = *p.JournalEntry
	}
	if p.Weight != nil {
		l.Weight = ptr(*p.Weight)
	}
	if p.Mood != nil {
		l.Mood = ptr(*p.Mood)
	}
	if p.SleepHours != nil {
		l.SleepHours = ptr(*p.SleepHours)
	}
	if p.SleepQuality != nil {
		l.SleepQuality = ptr(*p.SleepQuality)
	}
	if p.HRV != nil {
		l.HRV = ptr(*p.HRV)
	}
	if p.RestingHR != nil {
		l.RestingHR = ptr(*p.RestingHR)
	}
	if p.ActiveCalories != nil {
		l.ActiveCalories = ptr(*p.ActiveCalories)
	}
	if p.DailyFocus != nil {
		l.DailyFocus = ptr(*p.DailyFocus)
	}
	if l.CompletedItems == nil {
		l.CompletedItems = []string{}
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	return l
}

// DedupeItems drops repeated ids, keeping the first occurrence. Never returns nil.
func DedupeItems(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	deduped := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		deduped = append(deduped, item)
	}
	return deduped
}

// ToggledItems removes itemID from items when present and appends it otherwise.
// items is not modified.
func ToggledItems(items []string, itemID string) []string {
	toggled := make([]string, 0, len(items)+1)
	removed := false
	for _, item := range items {
		if item == itemID {
			removed = true
			continue
		}
		toggled = append(toggled, item)
	}
	if !removed {
		toggled = append(toggled, itemID)
	}
	return toggled
}

// UpsertRequest is the body of POST /logs: the key plus any subset of log fields.
type UpsertRequest struct {
	ProfileID int    `json:"profileId"`
	Date      string `json:"date"`
	Patch
}

func (r UpsertRequest) Key() (Key, error) {
	if r.ProfileID <= 0 {
		return Key{}, apperr.NewValidationError("profileId", errors.New("must be a positive integer"))
	}
	if r.Date == "" {
		return Key{}, apperr.NewValidationError("date", errors.New("cannot be blank"))
	}
	date, err := programapi.ParseDateField("date", r.Date, program.Date{})
	if err != nil {
		return Key{}, err
	}
	return Key{ProfileID: r.ProfileID, Date: date}, nil
}

type ToggleRequest struct {
	ItemID string `json:"itemId"`
}

func ptr[T any](v T) *T {
	return &v
}
