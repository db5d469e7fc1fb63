package listview

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

// SessionHeader carries the dashboard session key on list requests and
// responses.
const SessionHeader = "X-Session-ID"

// SessionID extracts the dashboard session key carried by list requests.
// An absent key means stateless browsing with default view state.
func SessionID(r *http.Request) string {
	if id := r.Header.Get(SessionHeader); id != "" {
		return id
	}
	return r.URL.Query().Get("session")
}

// EnsureSession returns the request's session key, minting a fresh UUID when
// the client sent none. The key is echoed on the response so the client can
// carry it forward.
func EnsureSession(w http.ResponseWriter, r *http.Request) string {
	id := SessionID(r)
	if id == "" {
		id = uuid.NewString()
	}
	w.Header().Set(SessionHeader, id)
	return id
}

// Apply folds request query parameters into a state using the controller
// transition rules: search and categorical filters reset to page one, sort
// toggles or switches column, and page accepts "next", "prev" or an explicit
// 1-based number. Parameters that are absent leave the state untouched.
func Apply(st State, q url.Values, filterNames []string) State {
	if q.Has("search") {
		st = st.WithSearch(q.Get("search"))
	}
	for _, name := range filterNames {
		if q.Has(name) {
			st = st.WithFilter(name, q.Get(name))
		}
	}
	if q.Has("sort") {
		st = st.WithSort(q.Get("sort"))
	}
	if q.Has("page") {
		switch v := q.Get("page"); v {
		case "next":
			st = st.Next()
		case "prev":
			st = st.Prev()
		default:
			if n, err := strconv.Atoi(v); err == nil && n >= 1 {
				st.Page = n
			}
		}
	}
	return st
}
