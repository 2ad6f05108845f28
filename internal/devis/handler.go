package devis

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/webigo-agency/webigo-backend/pkg/logging"
)

// Handler handles HTTP requests for quote submissions
type Handler struct {
	pipeline *Pipeline
	repo     Repository
	logger   *logging.Logger
}

// NewHandler creates a new submissions handler
func NewHandler(pipeline *Pipeline, repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		pipeline: pipeline,
		repo:     repo,
		logger:   logger,
	}
}

type submissionResponse struct {
	Message   string `json:"message"`
	EmailSent bool   `json:"emailSent"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// CreateSubmission handles POST /api/devis requests
func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req SubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode request", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Corps de requête invalide."})
		return
	}

	result, err := h.pipeline.Process(r.Context(), &req)
	if err != nil {
		if IsValidationError(err) {
			h.logger.Info("submission rejected", "error", err)
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Tous les champs requis ne sont pas remplis."})
			return
		}
		// Persistence failure: generic message, cause stays server-side.
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Une erreur est survenue lors de l'enregistrement de votre demande."})
		return
	}

	writeJSON(w, http.StatusCreated, submissionResponse{
		Message:   result.Message,
		EmailSent: result.EmailSent,
		ImageURL:  result.ImageURL,
	})
}

// ListSubmissionsResponse is the response for listing submissions
type ListSubmissionsResponse struct {
	Devis  []*Submission `json:"devis"`
	Count  int           `json:"count"`
	Offset int           `json:"offset"`
	Limit  int           `json:"limit"`
}

// ListSubmissions handles GET /admin/devis requests
func (h *Handler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Limit:  50,
		Offset: 0,
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	subs, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list submissions", "error", err)
		http.Error(w, "failed to list submissions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, ListSubmissionsResponse{
		Devis:  subs,
		Count:  len(subs),
		Offset: filter.Offset,
		Limit:  filter.Limit,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
