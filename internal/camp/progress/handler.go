package progress

import (
	"context"
	"net/http"
	"time"

	"github.com/Stitchbit30/BattleLog/internal/apperr"
	"github.com/Stitchbit30/BattleLog/internal/camp/program"
	programapi "github.com/Stitchbit30/BattleLog/internal/camp/program/api"
	"github.com/Stitchbit30/BattleLog/internal/telemetry/tracing"
	"github.com/Stitchbit30/BattleLog/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progress_test

type service interface {
	Schedule(ctx context.Context, profileID int, date program.Date) (*program.ResolvedDay, error)
	Today(ctx context.Context, profileID int, date program.Date) (*TodayView, error)
	Week(ctx context.Context, profileID int, date program.Date) (*WeekView, error)
	Summary(ctx context.Context, profileID int, today program.Date) (*Summary, error)
	Report(ctx context.Context, profileID int, today program.Date) (string, error)
	Roster(ctx context.Context, today program.Date) (*Roster, error)
	Athlete(ctx context.Context, profileID int, today program.Date) (*AthleteDetail, error)
}

type Handler struct {
	service service
	nowFunc func() time.Time
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
		nowFunc: time.Now,
	}
}

const profileNotFoundMsg = "profile not found"

// target reads the profile id and the optional ?date=, which defaults to the server's local date.
func (h *Handler) target(r *http.Request) (int, program.Date, error) {
	profileID, err := pkg.PathVarInt(r, "id")
	if err != nil {
		return 0, program.Date{}, apperr.NewValidationError("id", err)
	}
	date, err := h.date(r)
	if err != nil {
		return 0, program.Date{}, err
	}
	return profileID, date, nil
}

func (h *Handler) date(r *http.Request) (program.Date, error) {
	return programapi.ParseDateField("date", r.URL.Query().Get("date"), program.DateOf(h.nowFunc()))
}

func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.schedule")
	defer span.End()

	profileID, date, err := h.target(r)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	resolved, err := h.service.Schedule(ctx, profileID, date)
	if err != nil {
		apperr.WriteHTTPError(w, err, profileNotFoundMsg)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, resolved)
}

func (h *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.today")
	defer span.End()

	profileID, date, err := h.target(r)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	view, err := h.service.Today(ctx, profileID, date)
	if err != nil {
		apperr.WriteHTTPError(w, err, profileNotFoundMsg)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.week")
	defer span.End()

	profileID, date, err := h.target(r)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	view, err := h.service.Week(ctx, profileID, date)
	if err != nil {
		apperr.WriteHTTPError(w, err, profileNotFoundMsg)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.summary")
	defer span.End()

	profileID, date, err := h.target(r)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	summary, err := h.service.Summary(ctx, profileID, date)
	if err != nil {
		apperr.WriteHTTPError(w, err, profileNotFoundMsg)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, summary)
}

func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.report")
	defer span.End()

	profileID, date, err := h.target(r)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	report, err := h.service.Report(ctx, profileID, date)
	if err != nil {
		apperr.WriteHTTPError(w, err, profileNotFoundMsg)
		return
	}

	pkg.WriteTextResponseOK(w, report)
}

func (h *Handler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.roster")
	defer span.End()

	date, err := h.date(r)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	roster, err := h.service.Roster(ctx, date)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, roster)
}

func (h *Handler) HandleAthlete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.athlete")
	defer span.End()

	profileID, date, err := h.target(r)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	detail, err := h.service.Athlete(ctx, profileID, date)
	if err != nil {
		apperr.WriteHTTPError(w, err, profileNotFoundMsg)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, detail)
}
