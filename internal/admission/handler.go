package admission

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	v1 "github.com/rendezvous-lab/rendezvous/internal/api/v1"
	httperr "github.com/rendezvous-lab/rendezvous/internal/core/errors"
)

const maxBodyBytes = 1 << 20

// Handler exposes the Controller over HTTP.
type Handler struct {
	ctrl *Controller
}

// NewHandler constructs a Handler.
func NewHandler(ctrl *Controller) *Handler {
	return &Handler{ctrl: ctrl}
}

// RegisterRoutes mounts the request-service routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users/{userID}", func(r chi.Router) {
		r.Get("/requests", h.ListOwn)
		r.Post("/requests", h.Create)
		r.Patch("/requests/{requestID}/cancel", h.Cancel)
		r.Get("/events/{eventID}/requests", h.ListForEvent)
		r.Patch("/events/{eventID}/requests", h.UpdateStatuses)
	})
	r.Get("/internal/requests/confirmed", h.ConfirmedCounts)
}

// Create handles POST /users/{userID}/requests?eventId=...
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("eventId")
	if eventID == "" {
		writeError(w, httperr.BadRequestf("eventId query parameter is required"))
		return
	}

	req, err := h.ctrl.Create(r.Context(), chi.URLParam(r, "userID"), eventID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// ListOwn handles GET /users/{userID}/requests
func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.ctrl.ListByRequester(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(reqs))
}

// Cancel handles PATCH /users/{userID}/requests/{requestID}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	req, err := h.ctrl.Cancel(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "requestID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// ListForEvent handles GET /users/{userID}/events/{eventID}/requests
func (h *Handler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.ctrl.ListByEvent(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "eventID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(reqs))
}

// UpdateStatuses handles PATCH /users/{userID}/events/{eventID}/requests
func (h *Handler) UpdateStatuses(w http.ResponseWriter, r *http.Request) {
	var upd v1.StatusUpdate
	if err := decodeJSON(r, &upd); err != nil {
		writeJSON(w, http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid JSON: " + err.Error(),
		})
		return
	}

	result, err := h.ctrl.BatchUpdate(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "eventID"), upd)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ConfirmedCounts handles GET /internal/requests/confirmed?eventIds=a,b
func (h *Handler) ConfirmedCounts(w http.ResponseWriter, r *http.Request) {
	ids := splitIDs(r.URL.Query()["eventIds"])

	counts, err := h.ctrl.ConfirmedCounts(r.Context(), ids)
	if err != nil {
		writeError(w, err)
		return
	}

	body := make([]v1.ConfirmedCount, 0, len(counts))
	for id, n := range counts {
		body = append(body, v1.ConfirmedCount{EventID: id, Count: n})
	}
	sort.Slice(body, func(i, j int) bool { return body[i].EventID < body[j].EventID })
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, body := httperr.Response(err)
	if status == http.StatusInternalServerError {
		slog.Error("[Admission] Request failed", "error", err)
	}
	writeJSON(w, status, body)
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

// splitIDs accepts both repeated parameters and comma-separated values.
func splitIDs(values []string) []string {
	var ids []string
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func nonNil(reqs []*v1.Request) []*v1.Request {
	if reqs == nil {
		return []*v1.Request{}
	}
	return reqs
}
