package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/omkar-s8203/pune-home-circle/internal/models"
)

type rejectPayload struct {
	Reason string `json:"reason" validate:"required"`
}

type resolveReportPayload struct {
	AdminNotes string `json:"adminNotes"`
}

type blockContactPayload struct {
	Email  string `json:"email" validate:"omitempty,email"`
	Phone  string `json:"phone"`
	Reason string `json:"reason"`
}

// AdminListProperties returns every listing regardless of status. The optional
// status query parameter narrows to one moderation state.
func (h *Handlers) AdminListProperties(w http.ResponseWriter, r *http.Request) {
	var status *models.PropertyStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.PropertyStatus(raw)
		if s != models.PropertyStatusPending && s != models.PropertyStatusApproved && s != models.PropertyStatusRejected {
			writeError(w, "unknown status "+raw, http.StatusBadRequest)
			return
		}
		status = &s
	}

	properties, err := h.Property.ListAll(r.Context(), identityFrom(r), status, filterFromQuery(r))
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, properties, http.StatusOK)
}

func (h *Handlers) ApproveProperty(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Property.Approve(r.Context(), identityFrom(r), id); err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "property approved"}, http.StatusOK)
}

func (h *Handlers) RejectProperty(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload rejectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Property.Reject(r.Context(), identityFrom(r), id, payload.Reason); err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "property rejected"}, http.StatusOK)
}

func (h *Handlers) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Admin.Stats(r.Context(), identityFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, stats, http.StatusOK)
}

func (h *Handlers) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Report.List(r.Context(), identityFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, reports, http.StatusOK)
}

func (h *Handlers) ReviewReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Report.MarkReviewed(r.Context(), identityFrom(r), id); err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "report marked reviewed"}, http.StatusOK)
}

func (h *Handlers) ResolveReport(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var payload resolveReportPayload
	if r.Body != nil {
		// notes are optional, a bare resolve is fine
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	if err := h.Report.Resolve(r.Context(), identityFrom(r), id, payload.AdminNotes); err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "report resolved"}, http.StatusOK)
}

func (h *Handlers) ListBlockedContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Blocklist.List(r.Context(), identityFrom(r))
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, contacts, http.StatusOK)
}

func (h *Handlers) BlockContact(w http.ResponseWriter, r *http.Request) {
	var payload blockContactPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	contact, err := h.Blocklist.Block(r.Context(), identityFrom(r), payload.Email, payload.Phone, payload.Reason)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, contact, http.StatusCreated)
}

func (h *Handlers) UnblockContact(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Blocklist.Unblock(r.Context(), identityFrom(r), id); err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "contact unblocked"}, http.StatusOK)
}
