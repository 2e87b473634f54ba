package http

import (
	"net/http"

	"messbook/internal/core"
	"messbook/internal/stats"
)

type mealEntryDTO struct {
	Date      string  `json:"date"`
	MemberID  string  `json:"memberId,omitempty"`
	Breakfast bool    `json:"breakfast"`
	Lunch     bool    `json:"lunch"`
	Dinner    bool    `json:"dinner"`
	Units     float64 `json:"units"`
}

// handleMealDay returns the attendance entries for one date, one per member
// (a single anonymous entry in single mode). Dates never toggled show the
// all-attended default.
func (s *Server) handleMealDay(w http.ResponseWriter, r *http.Request) {
	date, err := core.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid or missing date")
		return
	}

	snap := s.svc.Snapshot()
	memberIDs := []string{""}
	if snap.Mode == core.ModeShared {
		memberIDs = memberIDs[:0]
		for _, m := range snap.Members {
			memberIDs = append(memberIDs, m.ID)
		}
	}

	weights := snap.Weights()
	out := make([]mealEntryDTO, 0, len(memberIDs))
	for _, id := range memberIDs {
		entry := snap.MealEntryFor(date, id)
		out = append(out, mealEntryDTO{
			Date:      date.String(),
			MemberID:  id,
			Breakfast: entry.Breakfast,
			Lunch:     entry.Lunch,
			Dinner:    entry.Dinner,
			Units:     entry.Units(weights),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleToggleMeal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date     string `json:"date"`
		MemberID string `json:"memberId"`
		Meal     string `json:"meal"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := core.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}
	meal, err := core.ParseMealType(req.Meal)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "unknown meal type")
		return
	}

	entry, err := s.svc.ToggleMeal(r.Context(), date, req.MemberID, meal)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	snap := s.svc.Snapshot()
	writeJSON(w, http.StatusOK, mealEntryDTO{
		Date:      date.String(),
		MemberID:  req.MemberID,
		Breakfast: entry.Breakfast,
		Lunch:     entry.Lunch,
		Dinner:    entry.Dinner,
		Units:     stats.UnitsOn(snap, date, req.MemberID),
	})
}
