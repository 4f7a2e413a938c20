package program

import "fmt"

const (
	Weeks       = 12
	DaysPerWeek = 7
	TotalDays   = Weeks * DaysPerWeek
)

// DailySchedule is the checklist of one weekday. Items are identified by their
// position in the category list, see ItemID.
type DailySchedule struct {
	DayOffset int      `json:"dayOffset" yaml:"dayOffset"` // 0 = Monday
	Training  []string `json:"training" yaml:"training"`
	Nutrition []string `json:"nutrition" yaml:"nutrition"`
	Recovery  []string `json:"recovery" yaml:"recovery"`
	Notes     string   `json:"notes" yaml:"notes"`
}

type WeeklyPhase struct {
	WeekNumber int                        `json:"weekNumber" yaml:"weekNumber"`
	PhaseName  string                     `json:"phaseName" yaml:"phaseName"`
	Focus      string                     `json:"focus" yaml:"focus"`
	Schedule   [DaysPerWeek]DailySchedule `json:"schedule" yaml:"schedule"`
}

// Definition is the whole camp, indexed 0..11 (week number - 1).
type Definition [Weeks]WeeklyPhase

// Week returns the phase for a 1-based week number.
func (def *Definition) Week(weekNumber int) (*WeeklyPhase, bool) {
	if weekNumber < 1 || weekNumber > Weeks {
		return nil, false
	}
	return &def[weekNumber-1], true
}

// Day returns the schedule entry with the given day offset.
func (wp *WeeklyPhase) Day(dayOffset int) (*DailySchedule, bool) {
	for i := range wp.Schedule {
		if wp.Schedule[i].DayOffset == dayOffset {
			return &wp.Schedule[i], true
		}
	}
	return nil, false
}

// Validate checks week numbering and that each week has exactly one entry per day offset.
func (def *Definition) Validate() error {
	for i := range def {
		wp := &def[i]
		if wp.WeekNumber != i+1 {
			return fmt.Errorf("week at index %d has week number %d", i, wp.WeekNumber)
		}
		var seen [DaysPerWeek]bool
		for _, ds := range wp.Schedule {
			if ds.DayOffset < 0 || ds.DayOffset >= DaysPerWeek {
				return fmt.Errorf("week %d: day offset %d out of range", wp.WeekNumber, ds.DayOffset)
			}
			if seen[ds.DayOffset] {
				return fmt.Errorf("week %d: duplicate day offset %d", wp.WeekNumber, ds.DayOffset)
			}
			seen[ds.DayOffset] = true
		}
	}
	return nil
}

func (ds DailySchedule) clone() DailySchedule {
	ds.Training = append([]string(nil), ds.Training...)
	ds.Nutrition = append([]string(nil), ds.Nutrition...)
	ds.Recovery = append([]string(nil), ds.Recovery...)
	return ds
}

func (wp WeeklyPhase) clone() WeeklyPhase {
	for i := range wp.Schedule {
		wp.Schedule[i] = wp.Schedule[i].clone()
	}
	return wp
}
