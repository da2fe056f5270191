package handler

import (
	"net/http"
	"time"
)

// SessionInfo is the JSON view of the current log session.
type SessionInfo struct {
	Started  time.Time `json:"started"`
	Stamp    string    `json:"stamp"`
	FileName string    `json:"file_name"`
	Dir      string    `json:"dir"`
	Path     string    `json:"path"`
	Format   string    `json:"format"`
	Level    string    `json:"level"`
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	s := h.logs.Session()
	writeJSON(w, http.StatusOK, SessionInfo{
		Started:  s.Started,
		Stamp:    s.Stamp,
		FileName: s.FileName,
		Dir:      s.Dir,
		Path:     s.Path,
		Format:   s.Format,
		Level:    s.LevelName(),
	})
}
