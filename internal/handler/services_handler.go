package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/omkar-s8203/pune-home-circle/internal/models"
	"github.com/omkar-s8203/pune-home-circle/internal/service"
)

type serviceRequestPayload struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required"`
	Address   string `json:"address"`
	Message   string `json:"message"`
}

type updateRequestPayload struct {
	Status     string `json:"status" validate:"required"`
	AdminNotes string `json:"adminNotes"`
}

func (h *Handlers) ListActiveServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.Services.ListActive(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, services, http.StatusOK)
}

func (h *Handlers) AdminListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.Services.ListAllServices(r.Context(), identityFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, services, http.StatusOK)
}

func (h *Handlers) CreateService(w http.ResponseWriter, r *http.Request) {
	var svc models.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Services.CreateService(r.Context(), identityFrom(r), &svc); err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, svc, http.StatusCreated)
}

func (h *Handlers) UpdateService(w http.ResponseWriter, r *http.Request) {
	var svc models.Service
	if err := json.NewDecoder(r.Body).Decode(&svc); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	svc.ID = mux.Vars(r)["id"]

	if err := h.Services.UpdateService(r.Context(), identityFrom(r), &svc); err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, svc, http.StatusOK)
}

func (h *Handlers) DeleteService(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Services.DeleteService(r.Context(), identityFrom(r), id); err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "service deleted"}, http.StatusOK)
}

// CreateServiceRequest takes inquiries from visitors; login is optional and
// only used to link the request to an account when present.
func (h *Handlers) CreateServiceRequest(w http.ResponseWriter, r *http.Request) {
	serviceID := mux.Vars(r)["id"]

	var payload serviceRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	input := service.ServiceRequestInput{
		ServiceID: serviceID,
		Name:      payload.Name,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Address:   payload.Address,
		Message:   payload.Message,
	}
	if ident := identityFrom(r); ident.IsAuthenticated() {
		input.UserID = ident.UserID
	}

	request, err := h.Services.CreateRequest(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, request, http.StatusCreated)
}

func (h *Handlers) ListServiceRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Services.ListRequests(r.Context(), identityFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, requests, http.StatusOK)
}

func (h *Handlers) UpdateServiceRequest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload updateRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Services.UpdateRequest(r.Context(), identityFrom(r), id, payload.Status, payload.AdminNotes); err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "request updated"}, http.StatusOK)
}

func (h *Handlers) DeleteServiceRequest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Services.DeleteRequest(r.Context(), identityFrom(r), id); err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "request deleted"}, http.StatusOK)
}

func (h *Handlers) GetSponsorSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Services.GetSponsorSettings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, settings, http.StatusOK)
}

func (h *Handlers) UpdateSponsorSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.SponsorSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Services.UpdateSponsorSettings(r.Context(), identityFrom(r), &settings); err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, settings, http.StatusOK)
}
