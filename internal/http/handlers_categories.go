package http

import (
	"net/http"
	"strings"

	"messbook/internal/report"
)

// selectionFromQuery builds the category filter from the "categories"
// parameter. Absent or empty means no filter at all, not "match nothing".
func selectionFromQuery(r *http.Request) report.CategorySelection {
	raw := strings.TrimSpace(r.URL.Query().Get("categories"))
	if raw == "" {
		return report.CategorySelection{}
	}
	var names []string
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return report.NewCategorySelection(names)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	snap := s.svc.Snapshot()
	if snap.Categories == nil {
		snap.Categories = []string{}
	}
	writeJSON(w, http.StatusOK, snap.Categories)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	name := sanitizeInput(req.Name)
	if name == "" {
		writeError(w, http.StatusUnprocessableEntity, "empty category name")
		return
	}
	if err := s.svc.AddCategory(r.Context(), name); err != nil {
		writeError(w, http.StatusInternalServerError, "add category failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"name": name})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteCategory(r.Context(), r.PathValue("name")); err != nil {
		writeError(w, http.StatusInternalServerError, "delete category failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OldName string `json:"oldName"`
		NewName string `json:"newName"`
		Cascade bool   `json:"cascade"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	newName := sanitizeInput(req.NewName)
	if req.OldName == "" || newName == "" {
		writeError(w, http.StatusUnprocessableEntity, "both oldName and newName are required")
		return
	}
	if err := s.svc.RenameCategory(r.Context(), req.OldName, newName, req.Cascade); err != nil {
		writeError(w, http.StatusInternalServerError, "rename category failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
