package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/notify"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/service"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/validation"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/xid"
)

const sessionHeader = "X-Session-ID"

// screenResponse is what every screen endpoint returns: the rendered view
// plus the notifications the action raised.
type screenResponse struct {
	View          any                   `json:"view,omitempty"`
	Notifications []notify.Notification `json:"notifications"`
	Prompt        *notify.Prompt        `json:"prompt,omitempty"`
	Errors        validation.Errors     `json:"errors,omitempty"`
	Error         string                `json:"error,omitempty"`
}

func writeScreen(w http.ResponseWriter, r *http.Request, status int, rec *notify.Recorder, view any, err error, answer *notify.Answer) {
	resp := screenResponse{View: view, Notifications: rec.Notifications()}
	if err != nil {
		status = statusFor(err)
		resp.Error = publicMessage(r, status, err)

		var invalid *service.ValidationError
		if errors.As(err, &invalid) {
			resp.Errors = invalid.Fields
		}
		if errors.Is(err, service.ErrNotConfirmed) && answer != nil {
			resp.Prompt = answer.Prompt
		}
	}
	writeJSON(w, status, resp)
}

// listState is the search term and page carried on every list request so
// a mutation answers with the list as the caller was viewing it.
type listState struct {
	search string
	page   int
}

func listStateFrom(r *http.Request) listState {
	page := 1
	if parsed, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("page"))); err == nil && parsed > 0 {
		page = parsed
	}
	return listState{search: r.URL.Query().Get("search"), page: page}
}

func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}

// sessionFrom reads the report session, minting a new one when the header
// is missing or malformed. The id is always echoed back.
func sessionFrom(w http.ResponseWriter, r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(sessionHeader))
	if !xid.ValidSession(id) {
		id = xid.Session()
	}
	w.Header().Set(sessionHeader, id)
	return id
}
