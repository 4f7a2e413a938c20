package profiles

import (
	"context"
	"net/http"

	"github.com/Stitchbit30/BattleLog/internal/apperr"
	"github.com/Stitchbit30/BattleLog/internal/telemetry/tracing"
	"github.com/Stitchbit30/BattleLog/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=profiles_test

type service interface {
	Create(ctx context.Context, newProfile NewProfile) (*Profile, error)
	Get(ctx context.Context, id int) (*Profile, error)
	List(ctx context.Context) ([]Profile, error)
	Patch(ctx context.Context, id int, patch Patch) (*Profile, error)
	Delete(ctx context.Context, id int) error
}

type Handler struct {
	service service
}

func NewHandler(service service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.create")
	defer span.End()

	var newProfile NewProfile
	if err := pkg.DecodeJSONBody(r, &newProfile); err != nil {
		log.Errorf("create profile: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	profile, err := h.service.Create(ctx, newProfile)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	log.Debugf("new profile created: %d", profile.ID)
	pkg.WriteJSON(w, http.StatusCreated, profile)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.get")
	defer span.End()

	id, err := pkg.PathVarInt(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error(), "id")
		return
	}

	profile, err := h.service.Get(ctx, id)
	if err != nil {
		apperr.WriteHTTPError(w, err, "profile not found")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.list")
	defer span.End()

	profiles, err := h.service.List(ctx)
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, profiles)
}

func (h *Handler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.patch")
	defer span.End()

	id, err := pkg.PathVarInt(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error(), "id")
		return
	}

	var patch Patch
	if err := pkg.DecodeJSONBody(r, &patch); err != nil {
		log.Errorf("patch profile %d: %s", id, err)
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error(), "")
		return
	}

	profile, err := h.service.Patch(ctx, id, patch)
	if err != nil {
		apperr.WriteHTTPError(w, err, "profile not found")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profiles.delete")
	defer span.End()

	id, err := pkg.PathVarInt(r, "id")
	if err != nil {
		pkg.WriteJSONError(w, http.StatusBadRequest, err.Error(), "id")
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		apperr.WriteHTTPError(w, err, "profile not found")
		return
	}

	log.Printf("profile %d deleted with all its logs", id)
	w.WriteHeader(http.StatusNoContent)
}
