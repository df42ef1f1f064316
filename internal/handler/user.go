package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ecowatch/pollution-api/internal/model"
	"github.com/ecowatch/pollution-api/internal/service"
	"github.com/go-chi/chi/v5"
)

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

func isUserValidationError(err error) bool {
	return errors.Is(err, service.ErrMissingFields) ||
		errors.Is(err, service.ErrLastNameInvalid) ||
		errors.Is(err, service.ErrFirstNameInvalid) ||
		errors.Is(err, service.ErrLoginInvalid) ||
		errors.Is(err, service.ErrPasswordInvalid) ||
		errors.Is(err, service.ErrPasswordRequired) ||
		errors.Is(err, service.ErrInvalidUserID) ||
		errors.Is(err, service.ErrNameFilterInvalid) ||
		errors.Is(err, service.ErrFirstNameFilterInvalid)
}

// HandleCreate handles POST /api/users signup requests.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid request body"))
		return
	}

	user, err := h.service.Create(r.Context(), req)
	if err != nil {
		switch {
		case isUserValidationError(err):
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		case errors.Is(err, service.ErrLoginTaken):
			writeJSON(w, http.StatusConflict, messageResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, messageResponse(err.Error()))
		}
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// HandleList handles GET /api/users requests, with an optional ?nom= last
// name filter.
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context(), r.URL.Query().Get("nom"))
	if err != nil {
		if isUserValidationError(err) {
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, messageResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// HandleSearch handles GET /api/users/search requests with independent
// optional ?nom= and ?prenom= filters.
func (h *UserHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.service.Search(r.Context(), q.Get("nom"), q.Get("prenom"))
	if err != nil {
		if isUserValidationError(err) {
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, messageResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// HandleGetByID handles GET /api/users/{id} requests.
func (h *UserHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleGetByLogin handles GET /api/users/login/{login} requests.
func (h *UserHandler) HandleGetByLogin(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetByLogin(r.Context(), chi.URLParam(r, "login"))
	if err != nil {
		h.writeLookupError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) writeLookupError(w http.ResponseWriter, err error) {
	switch {
	case isUserValidationError(err):
		writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
	case errors.Is(err, service.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, messageResponse(err.Error()))
	}
}

// HandleUpdate handles PUT and PATCH /api/users/{id} requests. A missing
// record and an empty body produce the same informational message.
func (h *UserHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid request body"))
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		switch {
		case isUserValidationError(err):
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		case errors.Is(err, service.ErrLoginTaken):
			writeJSON(w, http.StatusConflict, messageResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, messageResponse(err.Error()))
		}
		return
	}

	if updated {
		writeJSON(w, http.StatusOK, messageResponse("user updated successfully"))
	} else {
		writeJSON(w, http.StatusOK, messageResponse("could not update user: not found or empty request body"))
	}
}

// HandleDelete handles DELETE /api/users/{id} requests.
func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isUserValidationError(err) {
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, messageResponse(err.Error()))
		return
	}

	if deleted {
		writeJSON(w, http.StatusOK, messageResponse("user deleted successfully"))
	} else {
		writeJSON(w, http.StatusOK, messageResponse("could not delete user: not found"))
	}
}

// HandleCheckLogin handles GET /api/users/check/login/{login} requests.
func (h *UserHandler) HandleCheckLogin(w http.ResponseWriter, r *http.Request) {
	available, err := h.service.CheckLogin(r.Context(), chi.URLParam(r, "login"))
	if err != nil {
		if isUserValidationError(err) {
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, messageResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, model.AvailabilityResponse{Available: available})
}

// HandleLogin handles POST /api/users/auth/login requests.
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid request body"))
		return
	}

	resp, err := h.service.Authenticate(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLoginInvalid), errors.Is(err, service.ErrPasswordRequired):
			writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			writeJSON(w, http.StatusNotFound, messageResponse(err.Error()))
		case errors.Is(err, service.ErrWrongPassword):
			writeJSON(w, http.StatusUnauthorized, messageResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, messageResponse(err.Error()))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
