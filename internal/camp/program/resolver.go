package program

// Status tells where a date falls relative to the camp window.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ResolvedDay is the schedule position of a calendar date. Outside the camp
// window Phase and Day are nil and both numbers are 0; Status tells which side.
type ResolvedDay struct {
	Date       Date           `json:"date"`
	Status     Status         `json:"status"`
	Phase      *WeeklyPhase   `json:"phase"`
	Day        *DailySchedule `json:"daySchedule"`
	DayNumber  int            `json:"dayNumber"`  // 1-based camp day
	WeekNumber int            `json:"weekNumber"` // 1-based camp week
}

func (rd ResolvedDay) InRange() bool {
	return rd.Status == StatusInProgress
}

// Items is the day's checklist, empty outside the camp window.
func (rd ResolvedDay) Items() []CheckItem {
	if rd.Day == nil {
		return []CheckItem{}
	}
	return rd.Day.Items()
}

// ValidItemIDs returns the set of item identities a log for this day may complete.
func (rd ResolvedDay) ValidItemIDs() map[string]struct{} {
	items := rd.Items()
	ids := make(map[string]struct{}, len(items))
	for _, item := range items {
		ids[item.ID] = struct{}{}
	}
	return ids
}

// Resolve maps target to its camp week and day, counting whole calendar days from start
// (start is camp day 1). It is pure: def is read, never modified.
func Resolve(def *Definition, start, target Date) ResolvedDay {
	diff := target.DaysSince(start)
	switch {
	case diff < 0:
		return ResolvedDay{Date: target, Status: StatusNotStarted}
	case diff >= TotalDays:
		return ResolvedDay{Date: target, Status: StatusCompleted}
	}

	weekIndex := diff / DaysPerWeek
	dayIndex := diff % DaysPerWeek

	phase := def[weekIndex].clone()
	day, ok := phase.Day(dayIndex)
	if !ok {
		// only reachable with a Definition that fails Validate
		return ResolvedDay{Date: target, Status: StatusCompleted}
	}
	dayCopy := day.clone()

	return ResolvedDay{
		Date:       target,
		Status:     StatusInProgress,
		Phase:      &phase,
		Day:        &dayCopy,
		DayNumber:  diff + 1,
		WeekNumber: weekIndex + 1,
	}
}

// WeekDates returns the 7 calendar dates of the camp week containing target,
// or nil when target is outside the camp window.
func WeekDates(start, target Date) []Date {
	diff := target.DaysSince(start)
	if diff < 0 || diff >= TotalDays {
		return nil
	}
	weekStart := start.AddDays(diff / DaysPerWeek * DaysPerWeek)
	dates := make([]Date, DaysPerWeek)
	for i := range dates {
		dates[i] = weekStart.AddDays(i)
	}
	return dates
}
