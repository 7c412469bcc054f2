package admission

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
	httperr "github.com/rendezvous-lab/rendezvous/internal/core/errors"
	"github.com/rendezvous-lab/rendezvous/internal/core/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(f *fixture) http.Handler {
	r := chi.NewRouter()
	NewHandler(f.ctrl).RegisterRoutes(r)
	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) httperr.ErrorResponse {
	t.Helper()
	var resp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandler_Create(t *testing.T) {
	f := newFixture(t)
	f.events.EXPECT().EventByID(mock.Anything, "evt-1").Return(publishedEvent(5, true), nil).Once()
	f.users.EXPECT().ShortProfile(mock.Anything, "user-9").Return(v1.UserShort{ID: "user-9"}, nil).Once()

	w := serve(newTestRouter(f), http.MethodPost, "/users/user-9/requests?eventId=evt-1", "")
	require.Equal(t, http.StatusCreated, w.Code)

	var req v1.Request
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &req))
	assert.Equal(t, "evt-1", req.EventID)
	assert.Equal(t, "user-9", req.RequesterID)
	assert.Equal(t, v1.RequestPending, req.Status)
}

func TestHandler_Create_ErrorMapping(t *testing.T) {
	t.Run("missing eventId", func(t *testing.T) {
		f := newFixture(t)
		w := serve(newTestRouter(f), http.MethodPost, "/users/user-9/requests", "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, httperr.HttpBadRequestError, decodeErr(t, w).ErrorType)
	})

	t.Run("duplicate", func(t *testing.T) {
		f := newFixture(t)
		f.seedPending(t, 1)
		f.events.EXPECT().EventByID(mock.Anything, "evt-1").Return(publishedEvent(5, true), nil).Once()
		f.users.EXPECT().ShortProfile(mock.Anything, "user-1").Return(v1.UserShort{ID: "user-1"}, nil).Once()

		w := serve(newTestRouter(f), http.MethodPost, "/users/user-1/requests?eventId=evt-1", "")
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, httperr.HttpDuplicateError, decodeErr(t, w).ErrorType)
	})

	t.Run("missing event", func(t *testing.T) {
		f := newFixture(t)
		f.events.EXPECT().EventByID(mock.Anything, "evt-1").Return(nil, storage.ErrNotFound).Once()

		w := serve(newTestRouter(f), http.MethodPost, "/users/user-1/requests?eventId=evt-1", "")
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, httperr.HttpConflictError, decodeErr(t, w).ErrorType)
	})
}

func TestHandler_UpdateStatuses(t *testing.T) {
	f := newFixture(t)
	f.seedPending(t, 3)
	f.events.EXPECT().EventByOwner(mock.Anything, "evt-1", "owner").Return(publishedEvent(2, true), nil).Once()

	body := `{"request_ids":["r1","r2","r3"],"status":"CONFIRMED"}`
	w := serve(newTestRouter(f), http.MethodPatch, "/users/owner/events/evt-1/requests", body)
	require.Equal(t, http.StatusOK, w.Code)

	var res v1.StatusUpdateResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, []string{"r1", "r2"}, requestIDs(res.ConfirmedRequests))
	assert.Equal(t, []string{"r3"}, requestIDs(res.RejectedRequests))
}

func TestHandler_UpdateStatuses_InvalidJSON(t *testing.T) {
	f := newFixture(t)
	w := serve(newTestRouter(f), http.MethodPatch, "/users/owner/events/evt-1/requests", `{"request_ids":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, httperr.HttpInvalidJsonError, decodeErr(t, w).ErrorType)
}

func TestHandler_CancelAndList(t *testing.T) {
	f := newFixture(t)
	f.seedPending(t, 1)
	router := newTestRouter(f)

	w := serve(router, http.MethodPatch, "/users/user-1/requests/r1/cancel", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodGet, "/users/user-1/requests", "")
	require.Equal(t, http.StatusOK, w.Code)
	var reqs []v1.Request
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reqs))
	require.Len(t, reqs, 1)
	assert.Equal(t, v1.RequestCanceled, reqs[0].Status)

	w = serve(router, http.MethodGet, "/users/nobody/requests", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandler_ConfirmedCounts(t *testing.T) {
	f := newFixture(t)
	f.seedPending(t, 2)
	require.NoError(t, f.store.UpdateStatus(t.Context(), "r1", v1.RequestPending, v1.RequestConfirmed))

	w := serve(newTestRouter(f), http.MethodGet, "/internal/requests/confirmed?eventIds=evt-1,evt-2", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"event_id":"evt-1","count":1}]`, w.Body.String())
}
