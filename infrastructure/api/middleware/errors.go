package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/hwrest/restarea/application/service"
	"github.com/hwrest/restarea/infrastructure/api/jsonapi"
)

// StatusFor maps an error onto an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes a JSON:API formatted error response. Server errors are
// logged; client errors are not.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status := StatusFor(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request error",
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
		}
		detail = "internal error"
	}
	WriteStatus(w, r, status, detail)
}

// WriteStatus writes a JSON:API error document for status.
func WriteStatus(w http.ResponseWriter, r *http.Request, status int, detail string) {
	e := jsonapi.NewError(strconv.Itoa(status), http.StatusText(status), detail)
	e.ID = middleware.GetReqID(r.Context())
	writeDocument(w, status, jsonapi.NewErrorResponse(e))
}

// WriteJSON writes a JSON:API document.
func WriteJSON(w http.ResponseWriter, status int, doc *jsonapi.Document) {
	writeDocument(w, status, doc)
}

func writeDocument(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", jsonapi.MediaType)
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// NotFound is a router fallback that answers with a JSON:API 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteStatus(w, r, http.StatusNotFound, "no route for "+r.Method+" "+r.URL.Path)
}

// MethodNotAllowed is a router fallback that answers with a JSON:API 405.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteStatus(w, r, http.StatusMethodNotAllowed, r.Method+" is not supported on "+r.URL.Path)
}
