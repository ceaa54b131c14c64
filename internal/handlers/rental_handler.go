package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"rentloBack/internal/models"
	"rentloBack/internal/repositories"
	"rentloBack/internal/services"
)

type RentalHandler struct {
	Service *services.RentalService
}

func (h *RentalHandler) SendRentalRequest(w http.ResponseWriter, r *http.Request) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Handle    string  `json:"handle"`
		PostID    int     `json:"postId"`
		StartDate string  `json:"startDate"`
		EndDate   string  `json:"endDate"`
		TotalCost float64 `json:"totalCost"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	act := models.RentalActivity{
		Renter:    handle,
		Owner:     req.Handle,
		PostID:    req.PostID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		TotalCost: req.TotalCost,
	}
	created, err := h.Service.SendRentalRequest(r.Context(), act)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (h *RentalHandler) GetRentalRequests(w http.ResponseWriter, r *http.Request) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	views, err := h.Service.GetRentalRequests(r.Context(), handle)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *RentalHandler) GetRentalActivities(w http.ResponseWriter, r *http.Request) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	views, err := h.Service.GetRentalActivities(r.Context(), handle)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *RentalHandler) ApproveRentalRequest(w http.ResponseWriter, r *http.Request) {
	handle, requestID, ok := h.requestParams(w, r)
	if !ok {
		return
	}

	err := h.Service.ApproveRentalRequest(r.Context(), requestID, handle)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, struct{}{})
	case errors.Is(err, repositories.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, "Request not found")
	case errors.Is(err, services.ErrNotRequestOwner):
		writeError(w, http.StatusForbidden, "Unauthorized access")
	case errors.Is(err, services.ErrAlreadyApproved):
		writeError(w, http.StatusBadRequest, "Request already approved")
	default:
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}

func (h *RentalHandler) RemoveRentalRequest(w http.ResponseWriter, r *http.Request) {
	handle, requestID, ok := h.requestParams(w, r)
	if !ok {
		return
	}

	err := h.Service.RemoveRentalRequest(r.Context(), requestID, handle)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, struct{}{})
	case errors.Is(err, repositories.ErrRequestNotFound):
		writeError(w, http.StatusNotFound, "Request not found")
	case errors.Is(err, services.ErrApprovedImmutable):
		writeError(w, http.StatusBadRequest, "Cant reject/delete an approved request")
	case errors.Is(err, services.ErrNotParticipant):
		writeError(w, http.StatusForbidden, "Unauthorized access")
	default:
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}

func (h *RentalHandler) requestParams(w http.ResponseWriter, r *http.Request) (string, int, bool) {
	handle, ok := handleFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return "", 0, false
	}
	requestID, err := strconv.Atoi(r.URL.Query().Get(":requestId"))
	if err != nil || requestID <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid request ID")
		return "", 0, false
	}
	return handle, requestID, true
}
