package http

import (
	"net/http"

	"messbook/internal/log"
)

func (s *Server) handleGetLanguage(w http.ResponseWriter, r *http.Request) {
	lang, err := s.svc.Language(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Read language failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "read language failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"language": lang})
}

func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Language != "en" && req.Language != "bn" {
		writeError(w, http.StatusUnprocessableEntity, "language must be 'en' or 'bn'")
		return
	}
	if err := s.svc.SetLanguage(r.Context(), req.Language); err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Set language failed", log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "set language failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"language": req.Language})
}
