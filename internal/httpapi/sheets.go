package httpapi

import (
	"net/http"
	"strings"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/notify"
)

func (a *API) handleSheets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	rec := notify.NewRecorder()
	screen := a.service.Sheets(rec, nil)
	state := listStateFrom(r)
	screen.SetSearch(state.search)
	screen.SetPage(state.page)

	var sheet domain.SpecSheet
	if r.Method == http.MethodPost {
		if err := decodeJSON(r, &sheet); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
			return
		}
	}

	if err := screen.Mount(r.Context()); err != nil {
		writeScreen(w, r, 0, rec, nil, err, nil)
		return
	}
	if r.Method == http.MethodGet {
		writeScreen(w, r, http.StatusOK, rec, screen.View(), nil, nil)
		return
	}

	err := screen.Save(r.Context(), sheet, false)
	writeScreen(w, r, http.StatusCreated, rec, screen.View(), err, nil)
}

func (a *API) handleSheetActions(w http.ResponseWriter, r *http.Request) {
	trimmed := pathTail(r.URL.Path, "/api/v1/fichas/")
	if trimmed == "" {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
		return
	}

	parts := strings.Split(trimmed, "/")
	id := domain.ID(strings.TrimSpace(parts[0]))
	action := ""
	switch len(parts) {
	case 1:
	case 2:
		action = parts[1]
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
		return
	}
	if id == "" || (action != "" && action != "estado") {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
		return
	}

	allowed := r.Method == http.MethodGet || r.Method == http.MethodPut || r.Method == http.MethodDelete
	if action == "estado" {
		allowed = r.Method == http.MethodPatch
	}
	if !allowed {
		writeMethodNotAllowed(w)
		return
	}

	rec := notify.NewRecorder()
	answer := &notify.Answer{Yes: confirmed(r)}
	screen := a.service.Sheets(rec, answer)
	state := listStateFrom(r)
	screen.SetSearch(state.search)
	screen.SetPage(state.page)

	var sheet domain.SpecSheet
	if r.Method == http.MethodPut {
		if err := decodeJSON(r, &sheet); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
			return
		}
		sheet.ID = id
	}

	if err := screen.Mount(r.Context()); err != nil {
		writeScreen(w, r, 0, rec, nil, err, nil)
		return
	}

	var err error
	switch {
	case action == "estado":
		err = screen.Toggle(r.Context(), id)
	case r.Method == http.MethodGet:
		detail, detailErr := screen.Detail(r.Context(), id)
		if detailErr != nil {
			writeScreen(w, r, 0, rec, nil, detailErr, nil)
			return
		}
		writeScreen(w, r, http.StatusOK, rec, detail, nil, nil)
		return
	case r.Method == http.MethodPut:
		err = screen.Save(r.Context(), sheet, true)
	default:
		err = screen.Delete(r.Context(), id)
	}
	writeScreen(w, r, http.StatusOK, rec, screen.View(), err, answer)
}

func containsSlash(s string) bool {
	return strings.Contains(s, "/")
}
