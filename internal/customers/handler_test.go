package customers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight-bi/northlight/internal/listview"
	"github.com/northlight-bi/northlight/internal/shared"
)

func newTestHandler(t *testing.T, repo Repository) *Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(testWriter{t}, nil))
	svc := NewService(repo, 12, 5000)
	return NewHandler(logger, svc, listview.NewStore(client, time.Minute))
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

type listPayload struct {
	Rows  []Customer        `json:"rows"`
	Meta  shared.Pagination `json:"meta"`
	State listview.State    `json:"state"`
}

func doList(t *testing.T, h *Handler, session, query string) listPayload {
	t.Helper()
	r := chi.NewRouter()
	h.MountRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/customers"+query, nil)
	if session != "" {
		req.Header.Set(listview.SessionHeader, session)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var payload listPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestListPersistsStateAcrossRequests(t *testing.T) {
	h := newTestHandler(t, &mockRepository{rows: directoryRows()})

	first := doList(t, h, "session-1", "?search=berlin")
	require.Len(t, first.Rows, 1)
	assert.Equal(t, "ALFKI", first.Rows[0].ID)
	assert.Equal(t, 1, first.State.Total)

	// A bare follow-up request in the same session keeps the search.
	second := doList(t, h, "session-1", "")
	assert.Equal(t, "berlin", second.State.Search)
	require.Len(t, second.Rows, 1)

	// A different session starts from the default state.
	fresh := doList(t, h, "session-2", "")
	assert.Empty(t, fresh.State.Search)
	assert.Len(t, fresh.Rows, 3)
}

func TestListCountryChangeResetsCityFilter(t *testing.T) {
	h := newTestHandler(t, &mockRepository{rows: directoryRows()})

	st := doList(t, h, "session-1", "?country=Germany&city=Berlin")
	assert.Equal(t, "Berlin", st.State.Filters[FilterCity])
	require.Len(t, st.Rows, 1)

	st = doList(t, h, "session-1", "?country=Mexico")
	assert.Equal(t, listview.All, st.State.Filters[FilterCity])
	require.Len(t, st.Rows, 1)
	assert.Equal(t, "ANATR", st.Rows[0].ID)
}

func TestShowUnknownCustomerIs404(t *testing.T) {
	h := newTestHandler(t, &mockRepository{detailErr: shared.ErrNotFound})
	r := chi.NewRouter()
	h.MountRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/customers/NOPE", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
