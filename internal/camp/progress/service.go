package progress

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Stitchbit30/BattleLog/internal/apperr"
	"github.com/Stitchbit30/BattleLog/internal/camp/dailylogs"
	"github.com/Stitchbit30/BattleLog/internal/camp/profiles"
	"github.com/Stitchbit30/BattleLog/internal/camp/program"
	"github.com/Stitchbit30/BattleLog/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=progress_test

type profilesReader interface {
	Get(ctx context.Context, id int) (*profiles.Profile, error)
	List(ctx context.Context) ([]profiles.Profile, error)
}

type logsReader interface {
	GetOrEmpty(ctx context.Context, key dailylogs.Key) (*dailylogs.DailyLog, error)
	ListByProfile(ctx context.Context, profileID int) ([]dailylogs.DailyLog, error)
}

// Service combines a profile, its logs and the program into read-only views.
type Service struct {
	profiles profilesReader
	logs     logsReader
	def      program.Definition
	nowFunc  func() time.Time
}

func NewService(profiles profilesReader, logs logsReader, def program.Definition) *Service {
	return &Service{
		profiles: profiles,
		logs:     logs,
		def:      def,
		nowFunc:  time.Now,
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *Service) today() program.Date {
	return program.DateOf(s.nowFunc())
}

// Schedule resolves date against the profile's camp start.
func (s *Service) Schedule(ctx context.Context, profileID int, date program.Date) (_ *program.ResolvedDay, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.schedule")
	defer func() { endSpan(span, err) }()

	profile, err := s.profiles.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}

	resolved := program.Resolve(&s.def, profile.StartDate, date)
	return &resolved, nil
}

func (s *Service) Today(ctx context.Context, profileID int, date program.Date) (_ *TodayView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.today")
	span.SetAttributes(attribute.Int("profile.id", profileID), attribute.String("date", date.String()))
	defer func() { endSpan(span, err) }()

	var (
		profile  *profiles.Profile
		dailyLog *dailylogs.DailyLog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profile, err = s.profiles.Get(gctx, profileID)
		return err
	})
	g.Go(func() (err error) {
		dailyLog, err = s.logs.GetOrEmpty(gctx, dailylogs.Key{ProfileID: profileID, Date: date})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resolved := program.Resolve(&s.def, profile.StartDate, date)
	view := &TodayView{
		Resolved: resolved,
		Log:      dailyLog,
		Items:    []ChecklistItem{},
	}
	for _, item := range resolved.Items() {
		done := dailyLog.HasItem(item.ID)
		if done {
			view.CompletedCount++
		}
		view.Items = append(view.Items, ChecklistItem{CheckItem: item, Completed: done})
	}
	view.TotalCount = len(view.Items)
	view.CompletionPercent = percent(view.CompletedCount, view.TotalCount)

	return view, nil
}

func (s *Service) Week(ctx context.Context, profileID int, date program.Date) (_ *WeekView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.week")
	span.SetAttributes(attribute.Int("profile.id", profileID), attribute.String("date", date.String()))
	defer func() { endSpan(span, err) }()

	profile, logsByDate, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}

	resolved := program.Resolve(&s.def, profile.StartDate, date)
	view := &WeekView{
		WeekNumber: resolved.WeekNumber,
		Status:     resolved.Status,
		Days:       []WeekDay{},
	}
	if resolved.Phase != nil {
		view.PhaseName = resolved.Phase.PhaseName
		view.Focus = resolved.Phase.Focus
	}

	today := s.today()
	for _, d := range program.WeekDates(profile.StartDate, date) {
		day := program.Resolve(&s.def, profile.StartDate, d)
		entry := WeekDay{
			Date:      d,
			DayNumber: day.DayNumber,
			Weekday:   d.Weekday().String()[:3],
			Schedule:  day.Day,
			IsToday:   d.Equal(today),
		}
		if day.Day != nil {
			entry.TotalCount = day.Day.TotalItems()
			entry.IsRest = day.Day.IsRestDay()
			if l, ok := logsByDate[d]; ok {
				entry.CompletedCount = countValid(l, day.Day)
			}
		}
		entry.Status = dayStatus(entry.CompletedCount, entry.TotalCount)
		view.Days = append(view.Days, entry)
	}

	return view, nil
}

func (s *Service) Summary(ctx context.Context, profileID int, today program.Date) (_ *Summary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.progress.summary")
	span.SetAttributes(attribute.Int("profile.id", profileID), attribute.String("date", today.String()))
	defer func() { endSpan(span, err) }()

	profile, logsByDate, err := s.load(ctx, profileID)
	if err != nil {
		return nil, err
	}

	resolved := program.Resolve(&s.def, profile.StartDate, today)
	summary := &Summary{
		ProfileID:            profile.ID,
		Name:                 profile.Name,
		Date:                 today,
		Status:               resolved.Status,
		CurrentDay:           resolved.DayNumber,
		CurrentWeek:          resolved.WeekNumber,
		DaysUntilCompetition: profile.CompetitionDate.DaysSince(today),
		LoggedDays:           len(logsByDate),
		Last7Days:            make([]DayCount, 0, 7),
	}
	if resolved.Phase != nil {
		summary.PhaseName = resolved.Phase.PhaseName
	}

	for i := 6; i >= 0; i-- {
		d := today.AddDays(-i)
		count := DayCount{Date: d, Weekday: d.Weekday().String()[:3]}
		if l, ok := logsByDate[d]; ok {
			count.Completed = len(l.CompletedItems)
		}
		summary.Last7Days = append(summary.Last7Days, count)
	}

	var sleep, hrv, restingHR average
	var latestWeightDate program.Date
	for d, l := range logsByDate {
		if len(l.CompletedItems) > 0 {
			summary.TotalSessions++
		}
		sleep.add(l.SleepHours)
		hrv.add(l.HRV)
		restingHR.add(l.RestingHR)
		if l.Weight != nil && strings.TrimSpace(*l.Weight) != "" && !d.Before(latestWeightDate) {
			weight := *l.Weight
			summary.LatestWeight = &weight
			latestWeightDate = d
		}
	}
	summary.AvgSleepHours = sleep.value()
	summary.AvgHRV = hrv.value()
	summary.AvgRestingHR = restingHR.value()

	return summary, nil
}

// Report renders the summary as the plain-text message a fighter sends their coach.
func (s *Service) Report(ctx context.Context, profileID int, today program.Date) (string, error) {
	summary, err := s.Summary(ctx, profileID, today)
	if err != nil {
		return "", err
	}
	return FormatReport(summary), nil
}

func FormatReport(summary *Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CAMP REPORT - %s\n", summary.Name)
	fmt.Fprintf(&b, "Week Status: %d Active Days\n\n", summary.TotalSessions)
	b.WriteString("LAST 7 DAYS:\n")
	for _, day := range summary.Last7Days {
		fmt.Fprintf(&b, "%s: %d items\n", day.Weekday, day.Completed)
	}
	b.WriteString("\nSent via Camp Tracker")
	return b.String()
}

// load fetches the profile and all of its logs concurrently, logs keyed by date.
func (s *Service) load(ctx context.Context, profileID int) (*profiles.Profile, map[program.Date]dailylogs.DailyLog, error) {
	var (
		profile *profiles.Profile
		logs    []dailylogs.DailyLog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		profile, err = s.profiles.Get(gctx, profileID)
		return err
	})
	g.Go(func() (err error) {
		logs, err = s.logs.ListByProfile(gctx, profileID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return profile, logsByDate(logs), nil
}

// countValid counts completed ids that belong to the day's checklist.
func countValid(l dailylogs.DailyLog, day *program.DailySchedule) int {
	n := 0
	for _, id := range l.CompletedItems {
		if day.HasItem(id) {
			n++
		}
	}
	return n
}

func dayStatus(completed, total int) DayStatus {
	switch {
	case total > 0 && completed >= total:
		return DayCompleted
	case completed > 0:
		return DayInProgress
	default:
		return DayPending
	}
}

func percent(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

// average accumulates metrics stored as free text; values that do not parse are skipped.
type average struct {
	sum   float64
	count int
}

func (a *average) add(raw *string) {
	v := parseMetric(raw)
	if v == nil {
		return
	}
	a.sum += *v
	a.count++
}

// parseMetric reads a free text metric as a number, nil when it is not one.
func parseMetric(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (a *average) value() *float64 {
	if a.count == 0 {
		return nil
	}
	v := math.Round(a.sum/float64(a.count)*10) / 10
	return &v
}
