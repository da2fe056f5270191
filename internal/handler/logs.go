package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"applogs/internal/logger"
)

// EmitRequest is the POST /api/logs body.
type EmitRequest struct {
	Logger  string         `json:"logger"`
	Level   string         `json:"level"`
	Message string         `json:"message"`
	Attrs   map[string]any `json:"attrs"`
}

// EmitResponse reports whether the record passed the session minimum level.
type EmitResponse struct {
	Status  string `json:"status"`
	Emitted bool   `json:"emitted"`
}

// ValidationError holds details about an invalid emit request.
type ValidationError struct {
	Details []ValidationDetail `json:"details"`
}

// ValidationDetail describes a single validation failure.
type ValidationDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// loggerNameRe bounds client-supplied logger names and attribute keys.
var loggerNameRe = regexp.MustCompile(`^[A-Za-z0-9._-]{1,64}$`)

func hasControl(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

func (req EmitRequest) validate() (slog.Level, error) {
	var details []ValidationDetail
	switch {
	case req.Message == "":
		details = append(details, ValidationDetail{Field: "message", Reason: "message is required"})
	case hasControl(req.Message):
		details = append(details, ValidationDetail{Field: "message", Reason: "message must not contain control characters"})
	}

	if req.Logger != "" && !loggerNameRe.MatchString(req.Logger) {
		details = append(details, ValidationDetail{Field: "logger", Reason: "logger must be 1-64 characters of A-Z a-z 0-9 . _ -"})
	}

	level := slog.LevelInfo
	if req.Level != "" {
		l, err := logger.ParseLevel(req.Level)
		if err != nil {
			details = append(details, ValidationDetail{Field: "level", Reason: err.Error()})
		}
		level = l
	}

	for k := range req.Attrs {
		if !loggerNameRe.MatchString(k) {
			details = append(details, ValidationDetail{Field: "attrs", Reason: fmt.Sprintf("invalid attribute key %q", k)})
		}
	}

	if len(details) > 0 {
		return level, &ValidationError{Details: details}
	}
	return level, nil
}

func (h *Handler) emitLog(w http.ResponseWriter, r *http.Request) {
	var req EmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	level, err := req.validate()
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   "validation failed",
				"details": ve.Details,
			})
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	keys := make([]string, 0, len(req.Attrs))
	for k := range req.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		args = append(args, slog.Any(k, req.Attrs[k]))
	}

	// Client names are not registered; a fresh handle per request keeps the
	// registry bounded by the names the process itself uses.
	lg := h.logs.Unregistered(req.Logger)
	emitted := lg.Enabled(r.Context(), level)
	lg.Log(r.Context(), level, req.Message, args...)

	writeJSON(w, http.StatusOK, EmitResponse{Status: "ok", Emitted: emitted})
}
