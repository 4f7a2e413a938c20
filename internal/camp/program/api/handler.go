// Package api serves the camp program over HTTP.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Stitchbit30/BattleLog/internal/apperr"
	"github.com/Stitchbit30/BattleLog/internal/camp/program"
	"github.com/Stitchbit30/BattleLog/internal/telemetry/tracing"
	"github.com/Stitchbit30/BattleLog/pkg"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	oneDay               = 60 * 60 * 24
	resolvedCacheExpire  = oneDay
	resolvedCacheSizeMiB = 8
)

// Handler serves the static program and date resolution. Resolution is pure, so
// encoded results are kept in an in-process cache keyed by (start, date).
type Handler struct {
	def         program.Definition
	programJSON []byte
	cache       *freecache.Cache
	nowFunc     func() time.Time
}

func NewHandler(def program.Definition) (*Handler, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("invalid program: %w", err)
	}
	programJSON, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal program: %w", err)
	}

	megabyte := 1024 * 1024
	return &Handler{
		def:         def,
		programJSON: programJSON,
		cache:       freecache.NewCache(resolvedCacheSizeMiB * megabyte),
		nowFunc:     time.Now,
	}, nil
}

func (h *Handler) HandleGetProgram(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.get")
	defer span.End()

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, h.programJSON)
}

func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.resolve")
	defer span.End()

	query := r.URL.Query()
	rawStart := query.Get("start")
	if rawStart == "" {
		pkg.WriteJSONError(w, http.StatusBadRequest, "start date is required", "start")
		return
	}
	start, err := ParseDateField("start", rawStart, program.Date{})
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}
	date, err := ParseDateField("date", query.Get("date"), program.DateOf(h.nowFunc()))
	if err != nil {
		apperr.WriteHTTPError(w, err, "")
		return
	}

	cacheKey := []byte(fmt.Sprintf("resolve::%s::%s", start, date))
	if resolvedJSON, err := h.cache.Get(cacheKey); err == nil {
		log.Tracef("resolved day %s found in cache", cacheKey)
		pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resolvedJSON)
		return
	}

	resolved := program.Resolve(&h.def, start, date)
	resolvedJSON, err := json.Marshal(resolved)
	if err != nil {
		log.Errorf("marshal resolved day %s: %s", cacheKey, err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error", "")
		return
	}
	if err := h.cache.Set(cacheKey, resolvedJSON, resolvedCacheExpire); err != nil {
		log.Errorf("failed to cache resolved day %s: %s", cacheKey, err)
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, resolvedJSON)
}
