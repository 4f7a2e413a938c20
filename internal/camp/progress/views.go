package progress

import (
	"github.com/Stitchbit30/BattleLog/internal/camp/dailylogs"
	"github.com/Stitchbit30/BattleLog/internal/camp/program"
)

type ChecklistItem struct {
	program.CheckItem
	Completed bool `json:"completed"`
}

// TodayView is the dashboard of one date: where it sits in the camp and what got done.
type TodayView struct {
	Resolved          program.ResolvedDay `json:"resolved"`
	Log               *dailylogs.DailyLog `json:"log"`
	Items             []ChecklistItem     `json:"items"`
	CompletedCount    int                 `json:"completedCount"`
	TotalCount        int                 `json:"totalCount"`
	CompletionPercent int                 `json:"completionPercent"`
}

type DayStatus string

const (
	DayPending    DayStatus = "pending"
	DayInProgress DayStatus = "in-progress"
	DayCompleted  DayStatus = "completed"
)

type WeekDay struct {
	Date           program.Date           `json:"date"`
	DayNumber      int                    `json:"dayNumber"`
	Weekday        string                 `json:"weekday"`
	Schedule       *program.DailySchedule `json:"schedule"`
	TotalCount     int                    `json:"totalCount"`
	CompletedCount int                    `json:"completedCount"`
	Status         DayStatus              `json:"status"`
	IsRest         bool                   `json:"isRest"`
	IsToday        bool                   `json:"isToday"`
}

// WeekView lists the program week containing a date. Days is empty outside the camp window.
type WeekView struct {
	WeekNumber int            `json:"weekNumber"`
	PhaseName  string         `json:"phaseName"`
	Focus      string         `json:"focus"`
	Status     program.Status `json:"status"`
	Days       []WeekDay      `json:"days"`
}

type DayCount struct {
	Date      program.Date `json:"date"`
	Weekday   string       `json:"weekday"`
	Completed int          `json:"completed"`
}

type Summary struct {
	ProfileID            int            `json:"profileId"`
	Name                 string         `json:"name"`
	Date                 program.Date   `json:"date"`
	Status               program.Status `json:"status"`
	CurrentDay           int            `json:"currentDay"`
	CurrentWeek          int            `json:"currentWeek"`
	PhaseName            string         `json:"phaseName"`
	DaysUntilCompetition int            `json:"daysUntilCompetition"`
	TotalSessions        int            `json:"totalSessions"`
	LoggedDays           int            `json:"loggedDays"`
	Last7Days            []DayCount     `json:"last7Days"`
	AvgSleepHours        *float64       `json:"avgSleepHours"`
	AvgHRV               *float64       `json:"avgHrv"`
	AvgRestingHR         *float64       `json:"avgRestingHR"`
	LatestWeight         *string        `json:"latestWeight"`
}
