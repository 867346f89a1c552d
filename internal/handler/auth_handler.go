package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/omkar-s8203/pune-home-circle/internal/service"
)

type registerPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName" validate:"required"`
}

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshPayload struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	Role         string `json:"role"`
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var payload registerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, err := h.Auth.Register(r.Context(), service.RegisterRequest{
		Email:    payload.Email,
		Password: payload.Password,
		FullName: payload.FullName,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, profile, http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Validate.Struct(payload); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	profile, access, refresh, err := h.Auth.Login(r.Context(), payload.Email, payload.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       profile.ID,
		Email:        profile.Email,
		Role:         string(h.Auth.ResolveRole(profile.Email)),
	}, http.StatusOK)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var payload refreshPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if payload.RefreshToken == "" {
		writeError(w, "refreshToken is required", http.StatusBadRequest)
		return
	}

	profile, access, refresh, err := h.Auth.RefreshTokens(r.Context(), payload.RefreshToken)
	if err != nil {
		respondError(w, err)
		return
	}

	writeSuccess(w, tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       profile.ID,
		Email:        profile.Email,
		Role:         string(h.Auth.ResolveRole(profile.Email)),
	}, http.StatusOK)
}

// Me echoes the identity the token resolved to, so the frontend can gate its
// admin views without decoding the token itself.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	ident := identityFrom(r)
	writeSuccess(w, map[string]string{
		"userId": ident.UserID,
		"email":  ident.Email,
		"role":   string(ident.Role),
	}, http.StatusOK)
}
