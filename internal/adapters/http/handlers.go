package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nde-labs/campusecho/internal/application"
	"github.com/nde-labs/campusecho/internal/domain"
)

// Handler exposes the trust and moderation engine over HTTP.
type Handler struct {
	service *application.Service
	logger  *slog.Logger
}

func NewHandler(service *application.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req application.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}
	resp, err := h.service.RegisterUser(r.Context(), req)
	if err != nil {
		mapDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

// GetOwnProfile resolves the profile of the authenticated caller.
func (h *Handler) GetOwnProfile(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}
	resp, err := h.service.GetUserProfile(r.Context(), actorID)
	if err != nil {
		mapDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseUUIDParam(w, r, "user_id")
	if !ok {
		return
	}
	resp, err := h.service.GetUserProfile(r.Context(), userID)
	if err != nil {
		mapDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req application.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}
	resp, err := h.service.CreatePost(r.Context(), actorID, req)
	if err != nil {
		mapDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) ListFeed(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.ListPublishedFeed(r.Context())
	if err != nil {
		mapDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, ok := parseUUIDParam(w, r, "post_id")
	if !ok {
		return
	}
	resp, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		mapDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) CastVote(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}
	postID, ok := parseUUIDParam(w, r, "post_id")
	if !ok {
		return
	}
	var req application.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}
	resp, err := h.service.CastVote(r.Context(), actorID, postID, req)
	if err != nil {
		mapDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}
	postID, ok := parseUUIDParam(w, r, "post_id")
	if !ok {
		return
	}
	var req application.SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "malformed request body")
		return
	}
	resp, err := h.service.SubmitReport(r.Context(), actorID, postID, req)
	if err != nil {
		mapDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, resp)
}

func (h *Handler) ConfirmReport(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}
	reportID, ok := parseUUIDParam(w, r, "report_id")
	if !ok {
		return
	}
	resp, err := h.service.ConfirmReport(r.Context(), actorID, reportID)
	if err != nil {
		mapDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) RejectReport(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}
	reportID, ok := parseUUIDParam(w, r, "report_id")
	if !ok {
		return
	}
	resp, err := h.service.RejectReport(r.Context(), actorID, reportID)
	if err != nil {
		mapDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) PromoteToDelegate(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireActor(w, r)
	if !ok {
		return
	}
	targetID, ok := parseUUIDParam(w, r, "user_id")
	if !ok {
		return
	}
	resp, err := h.service.PromoteToDelegate(r.Context(), actorID, targetID)
	if err != nil {
		mapDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, resp)
}

func (h *Handler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SyncAllSources(r.Context())
	if err != nil {
		mapDomainError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, result)
}

func requireActor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	actorID, ok := actorFromContext(r.Context())
	if !ok {
		mapDomainError(w, domain.ErrUnauthorized)
		return uuid.Nil, false
	}
	return actorID, true
}

func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
