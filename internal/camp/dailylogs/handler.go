package dailylogs

import (
	"context"
	"net/http"

	"github.com/Stitchbit30/BattleLog/internal/apperr"
	"github.com/Stitchbit30/BattleLog/internal/camp/program"
	programapi "github.com/Stitchbit30/BattleLog/internal/camp/program/api"
	"github.com/Stitchbit30/BattleLog/internal/telemetry/tracing"
	"github.com/Stitchbit30/BattleLog/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=dailylogs_test

type service interface {
	Get(ctx context.Context, key Key) (*DailyLog, error)
	ListByProfile(ctx context.Context, profileID int) ([]DailyLog, error)
	Upsert(ctx context.Context, key Key, patch Patch) (*DailyLog, error)
	Patch(ctx context.Context, key Key, patch Patch) (*DailyLog, error)
	ToggleItem(ctx context.Context, key Key, itemID string) (*DailyLog, error)
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

const logNotFoundMsg = "log not found"

func keyFromPath(r *http.Request) (Key, error) {
	profileID, err := pkg.PathVarInt(r, "profileId")
	if err != nil {
		return Key{}, apperr.NewValidationError("profileId", err)
	}
	rawDate, err := pkg.PathVar(r, "date")
	if err != nil {
		return Key{}, apperr.NewValidationError("date", err)
	}
	date, err := programapi.ParseDateField("date", rawDate, program.Date{})
	if err != nil {
		return Key{}, err
	}
	return Key{ProfileID: profileID, Date: date}, nil
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylogs.list")
	defer span.End()

	profileID, err := pkg.PathVarInt(r, "profileId")
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error(), "profileId")
		return
	}

	logs, err := h.service.ListByProfile(ctx, profileID)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, logs)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylogs.get")
	defer span.End()

	key, err := keyFromPath(r)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	dailyLog, err := h.service.Get(ctx, key)
	if err != nil {
		apperr.WriteHTTPError(w, err, logNotFoundMsg)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, dailyLog)
}

func (h *Handler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylogs.upsert")
	defer span.End()

	var req UpsertRequest
	if err := pkg.DecodeJSONBody(r, &req); err != nil {
		log.Errorf("upsert log: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	key, err := req.Key()
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	dailyLog, err := h.service.Upsert(ctx, key, req.Patch)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	log.Tracef("log %s upserted", key)
	pkg.WriteJSON(w, http.StatusOK, dailyLog)
}

func (h *Handler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylogs.patch")
	defer span.End()

	key, err := keyFromPath(r)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	var patch Patch
	if err := pkg.DecodeJSONBody(r, &patch); err != nil {
		log.Errorf("patch log %s: %s", key, err)
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	dailyLog, err := h.service.Patch(ctx, key, patch)
	if err != nil {
		apperr.WriteHTTPError(w, err, logNotFoundMsg)
		return
	}

	pkg.WriteJSON(w, http.StatusOK, dailyLog)
}

func (h *Handler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dailylogs.toggle")
	defer span.End()

	key, err := keyFromPath(r)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	var req ToggleRequest
	if err := pkg.DecodeJSONBody(r, &req); err != nil {
		log.Errorf("toggle item on log %s: %s", key, err)
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	dailyLog, err := h.service.ToggleItem(ctx, key, req.ItemID)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, dailyLog)
}
