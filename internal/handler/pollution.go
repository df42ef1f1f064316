package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ecowatch/pollution-api/internal/model"
	"github.com/ecowatch/pollution-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// PollutionHandler handles HTTP requests for pollution report operations.
type PollutionHandler struct {
	service *service.PollutionService
}

// NewPollutionHandler creates a new PollutionHandler.
func NewPollutionHandler(svc *service.PollutionService) *PollutionHandler {
	return &PollutionHandler{service: svc}
}

func isPollutionValidationError(err error) bool {
	return errors.Is(err, service.ErrTitleRequired) ||
		errors.Is(err, service.ErrTitleInvalid) ||
		errors.Is(err, service.ErrLocationInvalid) ||
		errors.Is(err, service.ErrPollutionTypeInvalid) ||
		errors.Is(err, service.ErrLatitudeOutOfRange) ||
		errors.Is(err, service.ErrLongitudeOutOfRange) ||
		errors.Is(err, service.ErrImageURLInvalid) ||
		errors.Is(err, service.ErrDescriptionTooLong) ||
		errors.Is(err, service.ErrTitleFilterInvalid) ||
		errors.Is(err, service.ErrInvalidPollutionID)
}

// HandleCreate handles POST /api/pollution requests.
func (h *PollutionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.PollutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid request body"))
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		if isPollutionValidationError(err) {
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, messageResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// HandleList handles GET /api/pollution requests, with an optional ?nom=
// title filter.
func (h *PollutionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	reports, err := h.service.List(r.Context(), r.URL.Query().Get("nom"))
	if err != nil {
		if isPollutionValidationError(err) {
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, messageResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, reports)
}

// HandleGetByID handles GET /api/pollution/{id} requests.
func (h *PollutionHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case isPollutionValidationError(err):
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		case errors.Is(err, service.ErrPollutionNotFound):
			writeJSON(w, http.StatusNotFound, messageResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, messageResponse(err.Error()))
		}
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// HandleUpdate handles PUT /api/pollution/{id} requests. A missing record
// and an empty body produce the same informational message.
func (h *PollutionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.PollutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		if isPollutionValidationError(err) {
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, messageResponse(err.Error()))
		return
	}

	if updated {
		writeJSON(w, http.StatusOK, messageResponse("pollution updated successfully"))
	} else {
		writeJSON(w, http.StatusOK, messageResponse("could not update pollution: not found or empty request body"))
	}
}

// HandleDelete handles DELETE /api/pollution/{id} requests.
func (h *PollutionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isPollutionValidationError(err) {
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, messageResponse(err.Error()))
		return
	}

	if deleted {
		writeJSON(w, http.StatusOK, messageResponse("pollution deleted successfully"))
	} else {
		writeJSON(w, http.StatusOK, messageResponse("could not delete pollution: not found"))
	}
}

// HandleDeleteAll handles DELETE /api/pollution requests.
func (h *PollutionHandler) HandleDeleteAll(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.DeleteAll(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, messageResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, messageResponse(fmt.Sprintf("%d pollutions deleted successfully", count)))
}
