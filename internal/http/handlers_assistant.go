package http

import (
	"errors"
	"net/http"

	"messbook/internal/assistant"
	"messbook/internal/log"
	"messbook/internal/services"
)

// handleAssistantParse sends free text to the assistant and returns the
// structured proposal. Nothing is written; the client confirms separately.
func (s *Server) handleAssistantParse(w http.ResponseWriter, r *http.Request) {
	if s.parser == nil {
		writeError(w, http.StatusServiceUnavailable, "assistant not configured")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text := sanitizeInput(req.Text)
	if text == "" {
		writeError(w, http.StatusUnprocessableEntity, "empty text")
		return
	}

	proposal, err := s.parser.Parse(r.Context(), text, s.svc.Snapshot().Members)
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Assistant parse failed", log.FieldError, err)
		switch {
		case errors.Is(err, assistant.ErrUnparseable):
			writeError(w, http.StatusUnprocessableEntity, "could not understand the input")
		default:
			writeError(w, http.StatusBadGateway, "assistant unavailable")
		}
		return
	}
	writeJSON(w, http.StatusOK, proposal)
}

// handleAssistantConfirm applies a proposal the user accepted. The proposal
// comes back from the client verbatim, possibly edited.
func (s *Server) handleAssistantConfirm(w http.ResponseWriter, r *http.Request) {
	var proposal assistant.Proposal
	if err := decodeJSON(r, &proposal); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.svc.ApplyProposal(r.Context(), &proposal)
	if err != nil {
		if errors.Is(err, services.ErrProposalRejected) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "apply proposal failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}
