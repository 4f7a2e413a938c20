package apperr

import (
	"errors"
	"net/http"

	"github.com/Stitchbit30/BattleLog/pkg"

	log "github.com/sirupsen/logrus"
)

// WriteHTTPError maps err onto a status code and a JSON error body.
// notFoundMsg is used for ErrNotFound so callers can say what was missing.
// Unexpected errors are logged and hidden behind a generic message.
func WriteHTTPError(w http.ResponseWriter, err error, notFoundMsg string) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		pkg.WriteJSONError(w, http.StatusBadRequest, ve.Err.Error(), ve.Field)
	case errors.Is(err, ErrNotFound):
		if notFoundMsg == "" {
			notFoundMsg = "not found"
		}
		pkg.WriteJSONError(w, http.StatusNotFound, notFoundMsg, "")
	case errors.Is(err, ErrReferential):
		pkg.WriteJSONError(w, http.StatusUnprocessableEntity, "profile does not exist", "profileId")
	default:
		log.Errorf("internal error: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error", "")
	}
}
