package questions

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/quizcraft/backend/internal/attempts"
	"github.com/quizcraft/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.StartQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.ExamID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "exam_id is required"})
		return
	}

	resp, err := h.service.StartQuiz(r.Context(), userID, req)
	if err != nil {
		log.Printf("[handler] StartQuiz error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to start quiz"})
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	attemptID := mux.Vars(r)["id"]

	var req models.RecordAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	err := h.service.RecordAnswer(r.Context(), userID, attemptID, req)
	switch {
	case errors.Is(err, attempts.ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Attempt not found"})
	case errors.Is(err, attempts.ErrAlreadySubmitted):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Attempt already submitted"})
	case errors.Is(err, ErrAttemptOwnership):
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Not your attempt"})
	case err != nil:
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}
	attemptID := mux.Vars(r)["id"]

	resp, err := h.service.SubmitQuiz(r.Context(), userID, attemptID)
	switch {
	case errors.Is(err, attempts.ErrNotFound):
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Attempt not found"})
		return
	case errors.Is(err, attempts.ErrAlreadySubmitted):
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Attempt already submitted"})
		return
	case errors.Is(err, ErrAttemptOwnership):
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Not your attempt"})
		return
	case err != nil:
		log.Printf("[handler] SubmitQuiz error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit quiz"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid question ID"})
		return
	}

	question, err := h.service.GetQuestion(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
		return
	}

	writeJSON(w, http.StatusOK, question)
}

// ── Rating Handlers ─────────────────────────────────────

func (h *Handler) GetRatings(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.GetRatings(r.Context(), userID)
	if err != nil {
		log.Printf("[handler] GetRatings error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get ratings"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetRatingBreakdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	breakdown, err := h.service.GetRatingBreakdown(r.Context(), userID)
	if err != nil {
		log.Printf("[handler] GetRatingBreakdown error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to compute breakdown"})
		return
	}

	writeJSON(w, http.StatusOK, breakdown)
}

// ── Admin Handlers ──────────────────────────────────────

func (h *Handler) GetBankStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetBankStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to get bank stats"})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) Recalibrate(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.RecalibrateDifficulty(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Recalibration failed: " + err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
