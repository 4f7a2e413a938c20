package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

var (
	ErrInvalidContentType = errors.New("invalid content type")
	ErrMissingPathVar     = errors.New("missing path variable")
)

// PathVarInt reads a positive integer mux path variable.
func PathVarInt(r *http.Request, name string) (int, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingPathVar, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s [%s]", name, raw)
	}
	return v, nil
}

// PathVar reads a mux path variable that must be present.
func PathVar(r *http.Request, name string) (string, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingPathVar, name)
	}
	return raw, nil
}

// DecodeJSONBody checks the request content type and decodes the body into v.
func DecodeJSONBody(r *http.Request, v any) error {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return ErrInvalidContentType
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("unmarshal json body: %w", err)
	}
	return nil
}
