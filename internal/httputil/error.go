package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	internalServerError(w, msg, err, false)
}

// InternalServerErrorDetail also echoes err to the client. Only for debug builds.
func InternalServerErrorDetail(w http.ResponseWriter, msg string, err error) {
	internalServerError(w, msg, err, true)
}

func internalServerError(w http.ResponseWriter, msg string, err error, detail bool) {
	slog.Error(msg, "error", err)
	body := errorBody{Error: "internal server error"}
	if detail && err != nil {
		body.Detail = err.Error()
	}
	WriteJSON(w, http.StatusInternalServerError, body)
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	warn("bad request", msg, err)
	WriteJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	warn("not found", msg, err)
	WriteJSON(w, http.StatusNotFound, errorBody{Error: msg})
}

func Conflict(w http.ResponseWriter, msg string, err error) {
	warn("conflict", msg, err)
	WriteJSON(w, http.StatusConflict, errorBody{Error: msg})
}

func warn(kind, msg string, err error) {
	if err != nil {
		slog.Warn(kind, "message", msg, "error", err)
	} else {
		slog.Warn(kind, "message", msg)
	}
}
