package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/Olprog59/go-fromagerie/internal/app"
	"github.com/Olprog59/go-fromagerie/internal/service"
)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

// Handler is a container for application dependencies that are required by HTTP handlers.
// It gives handlers access to services and configuration.
type Handler struct {
	container *app.Container
}

// NewHandler creates and returns a new Handler instance.
func NewHandler(container *app.Container) *Handler {
	return &Handler{container: container}
}

// ErrorResponse is a helper function for sending standardized JSON error responses.
// It writes the specified HTTP status code and a body of the form {"error": message}.
func ErrorResponse(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"error": message,
	})
}

// jsonResponse sends data as JSON with the given status code.
func jsonResponse(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// decodeJSON reads exactly one JSON object into dst. Unknown fields, trailing
// data and bodies over maxBodyBytes are rejected.
// Lit exactement un objet JSON dans dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) (int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return http.StatusRequestEntityTooLarge, fmt.Errorf("request body must not exceed %d bytes", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return http.StatusBadRequest, errors.New("request body must not be empty")
		default:
			return http.StatusBadRequest, fmt.Errorf("invalid JSON body: %s", err.Error())
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return http.StatusBadRequest, errors.New("request body must contain a single JSON object")
	}
	return 0, nil
}

// statusFor maps a service error category to its HTTP status / Associe une catégorie d'erreur au statut HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// serviceError writes err using its category / Écrit err selon sa catégorie
func serviceError(w http.ResponseWriter, err error) {
	ErrorResponse(w, err.Error(), statusFor(err))
}
