package httpapi

import (
	"net/http"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/backend"
	"github.com/MiguelTdea/28Julio-Delicrem-master/internal/service"
)

// dashboardClaims is the subset of the backend's session token the
// dashboard reads. Signature checks stay with the backend.
type dashboardClaims struct {
	jwtlib.RegisteredClaims
	Email string `json:"email"`
}

// forwardAuth passes the caller's bearer token through to the backend and
// names the actor for the audit trail.
func (a *API) forwardAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorization := strings.TrimSpace(r.Header.Get("Authorization"))
		if !strings.HasPrefix(strings.ToLower(authorization), "bearer ") {
			next(w, r)
			return
		}

		token := strings.TrimSpace(authorization[len("Bearer "):])
		ctx := backend.WithBearer(r.Context(), token)
		if actor := actorFromToken(token); actor != "" {
			ctx = service.WithActor(ctx, actor)
		}
		next(w, r.WithContext(ctx))
	}
}

func actorFromToken(token string) string {
	claims := &dashboardClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	if claims.Email != "" {
		return claims.Email
	}
	return claims.Subject
}
