package httpapi

import (
	"net/http"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/domain"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/notify"
)

func (a *API) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeMethodNotAllowed(w)
		return
	}

	rec := notify.NewRecorder()
	screen := a.service.Users(rec, nil)
	state := listStateFrom(r)
	screen.SetSearch(state.search)
	screen.SetPage(state.page)

	var user domain.User
	if r.Method == http.MethodPost {
		if err := decodeJSON(r, &user); err != nil {
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

	err := screen.Save(r.Context(), user, false)
	writeScreen(w, r, http.StatusCreated, rec, screen.View(), err, nil)
}

func (a *API) handleUserActions(w http.ResponseWriter, r *http.Request) {
	id := pathTail(r.URL.Path, "/api/v1/usuarios/")
	if id == "" || containsSlash(id) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "not found"})
		return
	}
	if r.Method != http.MethodPut && r.Method != http.MethodDelete {
		writeMethodNotAllowed(w)
		return
	}

	rec := notify.NewRecorder()
	answer := &notify.Answer{Yes: confirmed(r)}
	screen := a.service.Users(rec, answer)
	state := listStateFrom(r)
	screen.SetSearch(state.search)
	screen.SetPage(state.page)

	var user domain.User
	if r.Method == http.MethodPut {
		if err := decodeJSON(r, &user); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid payload"})
			return
		}
		user.ID = domain.ID(id)
	}

	if err := screen.Mount(r.Context()); err != nil {
		writeScreen(w, r, 0, rec, nil, err, nil)
		return
	}

	var err error
	if r.Method == http.MethodPut {
		err = screen.Save(r.Context(), user, true)
	} else {
		err = screen.Delete(r.Context(), domain.ID(id))
	}
	writeScreen(w, r, http.StatusOK, rec, screen.View(), err, answer)
}
