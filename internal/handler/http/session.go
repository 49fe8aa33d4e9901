package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/hr-dashboard-go/internal/domain/user"
	"github.com/cmlabs-hris/hr-dashboard-go/internal/handler/http/response"
)

// sessionOrFail returns the caller's session or writes 401.
func sessionOrFail(w http.ResponseWriter, r *http.Request) (user.Session, bool) {
	session, ok := user.SessionFromContext(r.Context())
	if !ok {
		response.HandleError(w, user.ErrSessionMissing)
		return user.Session{}, false
	}
	return session, true
}

// queryInt reads a positive integer query parameter, 0 when absent or invalid.
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
