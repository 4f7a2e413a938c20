package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/Stitchbit30/BattleLog/internal/telemetry/metrics"
	"github.com/Stitchbit30/BattleLog/pkg"

	log "github.com/sirupsen/logrus"
)

func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				log.Errorf("http: panic serving %s [%s]: %v\n%s",
					req.URL.Path, RequestIDFromContext(req.Context()), r, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				pkg.WriteJSONError(respWriter, http.StatusInternalServerError, "internal server error", "")
			}()

			next.ServeHTTP(respWriter, req)
		})
	}
}
