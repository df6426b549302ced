package httpapi

import (
	"encoding/json"
	"errors"
	"expvar"
	"net/http"

	"github.com/SamMurshed/MedQT/internal/predict"
	"github.com/SamMurshed/MedQT/internal/store"
	"github.com/SamMurshed/MedQT/internal/triage"
)

type Handler struct {
	triage *triage.Service
}

type admitRequest struct {
	Symptoms     []string `json:"symptoms"`
	OtherSymptom string   `json:"other_symptom"`
}

type errorResponse struct {
	RequestID string        `json:"request_id"`
	Error     responseError `json:"error"`
}

type responseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewHandler(triageService *triage.Service) *Handler {
	return &Handler{triage: triageService}
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/metrics", expvar.Handler())
	mux.HandleFunc("/api/admissions", h.handleAdmit)
	mux.HandleFunc("/api/queue/status", h.handleQueueStatus)
	return mux
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleAdmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	requestID := requestIDFromRequest(r)
	patientID, ok := patientFromContext(r.Context())
	if !ok {
		writeError(w, requestID, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	var req admitRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, requestID, http.StatusBadRequest, "invalid_json", "invalid JSON payload")
		return
	}

	appointment, err := h.triage.Admit(r.Context(), patientID, triage.AdmitInput{
		Symptoms:     req.Symptoms,
		OtherSymptom: req.OtherSymptom,
	})
	if err != nil {
		status, code, msg := mapError(err)
		writeError(w, requestID, status, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, appointment)
}

func (h *Handler) handleQueueStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	requestID := requestIDFromRequest(r)
	patientID, ok := patientFromContext(r.Context())
	if !ok {
		writeError(w, requestID, http.StatusUnauthorized, "unauthorized", "missing session")
		return
	}

	status, err := h.triage.QueueStatus(r.Context(), patientID)
	if err != nil {
		httpStatus, code, msg := mapError(err)
		writeError(w, requestID, httpStatus, code, msg)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

func mapError(err error) (int, string, string) {
	switch {
	case errors.Is(err, predict.ErrMalformed):
		return http.StatusBadGateway, "prediction_invalid", "prediction service returned an invalid response"
	case errors.Is(err, predict.ErrUnavailable):
		return http.StatusBadGateway, "prediction_unavailable", "prediction service unavailable"
	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable, "store_unavailable", "appointment store unavailable"
	default:
		return http.StatusInternalServerError, "internal_error", "internal server error"
	}
}

func writeError(w http.ResponseWriter, requestID string, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		RequestID: requestID,
		Error: responseError{
			Code:    code,
			Message: message,
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}
