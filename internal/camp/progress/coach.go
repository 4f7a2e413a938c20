package progress

import (
	"context"
	"slices"
	"strings"

	"github.com/Stitchbit30/BattleLog/internal/camp/dailylogs"
	"github.com/Stitchbit30/BattleLog/internal/camp/profiles"
	"github.com/Stitchbit30/BattleLog/internal/camp/program"
	"github.com/Stitchbit30/BattleLog/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const (
	complianceWindowDays = 7
	atRiskCompliance     = 80
	staleCheckInDays     = 3
	trendDays            = 30
	maxJournalEntries    = 30
	rosterLoadLimit      = 8
)

type AthleteStatus string

const (
	AthleteOnTrack  AthleteStatus = "on_track"
	AthleteAtRisk   AthleteStatus = "at_risk"
	AthletePeaking  AthleteStatus = "peaking"
	AthleteInactive AthleteStatus = "inactive"
)

// AthleteSummary is one roster row of the coach view.
type AthleteSummary struct {
	ProfileID   int            `json:"profileId"`
	Name        string         `json:"name"`
	Belt        string         `json:"belt"`
	Weight      string         `json:"weight"`
	CampStatus  program.Status `json:"campStatus"`
	CurrentWeek int            `json:"currentWeek"`
	Status      AthleteStatus  `json:"status"`
	// Compliance is the share of scheduled items completed over the camp days of the
	// 7 days before the date. Nil when none of those days were camp days.
	Compliance    *int          `json:"compliance"`
	AvgSleepHours *float64      `json:"avgSleepHours"`
	LastCheckIn   *program.Date `json:"lastCheckIn"`
}

type Roster struct {
	Date            program.Date     `json:"date"`
	AthleteCount    int              `json:"athleteCount"`
	AttentionNeeded int              `json:"attentionNeeded"`
	AvgCompliance   *int             `json:"avgCompliance"`
	Athletes        []AthleteSummary `json:"athletes"`
}

type HealthPoint struct {
	Date      program.Date `json:"date"`
	Sleep     *float64     `json:"sleep"`
	HRV       *float64     `json:"hrv"`
	RestingHR *float64     `json:"restingHR"`
}

type JournalEntry struct {
	Date program.Date `json:"date"`
	Text string       `json:"text"`
	Mood *int         `json:"mood"`
}

// AthleteDetail is the coach's page for one athlete: the roster row plus the
// last 30 days of health metrics and the newest journal entries.
type AthleteDetail struct {
	AthleteSummary
	HealthTrends   []HealthPoint  `json:"healthTrends"`
	JournalEntries []JournalEntry `json:"journalEntries"`
}

// Roster summarizes every profile as of today, in profile list order.
func (s *Service) Roster(ctx context.Context, today program.Date) (_ *Roster, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.roster")
	span.SetAttributes(attribute.String("date", today.String()))
	defer func() { endSpan(span, err) }()

	list, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}

	athletes := make([]AthleteSummary, len(list))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rosterLoadLimit)
	for i := range list {
		g.Go(func() error {
			logs, err := s.logs.ListByProfile(gctx, list[i].ID)
			if err != nil {
				return err
			}
			athletes[i] = s.athleteSummary(&list[i], logsByDate(logs), today)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	roster := &Roster{
		Date:         today,
		AthleteCount: len(athletes),
		Athletes:     athletes,
	}
	compliance := 0
	withCompliance := 0
	for _, a := range athletes {
		if a.Status == AthleteAtRisk {
			roster.AttentionNeeded++
		}
		if a.Compliance != nil {
			compliance += *a.Compliance
			withCompliance++
		}
	}
	if withCompliance > 0 {
		avg := percent(compliance, withCompliance*100)
		roster.AvgCompliance = &avg
	}
	return roster, nil
}

func (s *Service) Athlete(ctx context.Context, profileID int, today program.Date) (_ *AthleteDetail, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.athlete")
	span.SetAttributes(attribute.Int("profile.id", profileID), attribute.String("date", today.String()))
	defer func() { endSpan(span, err) }()

	profile, byDate, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}

	detail := &AthleteDetail{
		AthleteSummary: s.athleteSummary(profile, byDate, today),
		HealthTrends:   make([]HealthPoint, 0, trendDays),
		JournalEntries: []JournalEntry{},
	}
	for i := trendDays - 1; i >= 0; i-- {
		d := today.AddDays(-i)
		point := HealthPoint{Date: d}
		if l, ok := byDate[d]; ok {
			point.Sleep = parseMetric(l.SleepHours)
			point.HRV = parseMetric(l.HRV)
			point.RestingHR = parseMetric(l.RestingHR)
		}
		detail.HealthTrends = append(detail.HealthTrends, point)
	}

	for _, l := range byDate {
		if strings.TrimSpace(l.JournalEntry) == "" || today.Before(l.Date) {
			continue
		}
		detail.JournalEntries = append(detail.JournalEntries, JournalEntry{Date: l.Date, Text: l.JournalEntry, Mood: l.Mood})
	}
	slices.SortFunc(detail.JournalEntries, func(a, b JournalEntry) int {
		return b.Date.Time().Compare(a.Date.Time())
	})
	if len(detail.JournalEntries) > maxJournalEntries {
		detail.JournalEntries = detail.JournalEntries[:maxJournalEntries]
	}

	return detail, nil
}

func (s *Service) athleteSummary(profile *profiles.Profile, byDate map[program.Date]dailylogs.DailyLog, today program.Date) AthleteSummary {
	resolved := program.Resolve(&s.def, profile.StartDate, today)
	summary := AthleteSummary{
		ProfileID:   profile.ID,
		Name:        profile.Name,
		Belt:        profile.Belt,
		Weight:      profile.Weight,
		CampStatus:  resolved.Status,
		CurrentWeek: resolved.WeekNumber,
		Compliance:  s.compliance(profile.StartDate, byDate, today),
	}

	var sleep average
	for d, l := range byDate {
		if today.Before(d) {
			continue
		}
		if summary.LastCheckIn == nil || summary.LastCheckIn.Before(d) {
			checkIn := d
			summary.LastCheckIn = &checkIn
		}
		if today.DaysSince(d) < complianceWindowDays {
			sleep.add(l.SleepHours)
		}
	}
	summary.AvgSleepHours = sleep.value()
	summary.Status = athleteStatus(resolved, summary.Compliance, summary.LastCheckIn, profile.StartDate, today)
	return summary
}

// compliance covers the 7 days before today; today is still being logged.
func (s *Service) compliance(start program.Date, byDate map[program.Date]dailylogs.DailyLog, today program.Date) *int {
	scheduled, done := 0, 0
	for i := 1; i <= complianceWindowDays; i++ {
		d := today.AddDays(-i)
		day := program.Resolve(&s.def, start, d)
		if day.Day == nil {
			continue
		}
		scheduled += day.Day.TotalItems()
		if l, ok := byDate[d]; ok {
			done += countValid(l, day.Day)
		}
	}
	if scheduled == 0 {
		return nil
	}
	p := percent(done, scheduled)
	return &p
}

// athleteStatus flags athletes in camp that fall behind or stop logging. Days
// before the first log count from the camp start.
func athleteStatus(resolved program.ResolvedDay, compliance *int, lastCheckIn *program.Date, start, today program.Date) AthleteStatus {
	if resolved.Status != program.StatusInProgress {
		return AthleteInactive
	}
	lastSeen := start
	if lastCheckIn != nil && lastSeen.Before(*lastCheckIn) {
		lastSeen = *lastCheckIn
	}
	if (compliance != nil && *compliance < atRiskCompliance) || today.DaysSince(lastSeen) > staleCheckInDays {
		return AthleteAtRisk
	}
	if resolved.Phase != nil && resolved.Phase.PhaseName == program.PhasePeaking.Name {
		return AthletePeaking
	}
	return AthleteOnTrack
}

func logsByDate(logs []dailylogs.DailyLog) map[program.Date]dailylogs.DailyLog {
	byDate := make(map[program.Date]dailylogs.DailyLog, len(logs))
	for _, l := range logs {
		byDate[l.Date] = l
	}
	return byDate
}
