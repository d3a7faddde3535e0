package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nolongerevil/frontend/internal/registration"
)

// deviceResponse is one element of the device listing. CreatedAt is a
// millisecond epoch, matching what the vendor UI's Date constructor
// expects.
type deviceResponse struct {
	Serial    string `json:"serial"`
	CreatedAt int64  `json:"createdAt"`
}

// registerRequest is the POST /api/register body.
type registerRequest struct {
	Code   string `json:"code"`
	UserID string `json:"userId"`
}

// registerResponse is the POST /api/register result. Business-rule
// rejections come back as 200 with Success false rather than an HTTP
// error status.
type registerResponse struct {
	Success bool   `json:"success"`
	Serial  string `json:"serial,omitempty"`
	Message string `json:"message"`
}

// notClaimableMessage is the single message all rejection causes collapse
// to. Which cause applied is logged server-side only.
const notClaimableMessage = "Invalid, expired, or already claimed entry key"

// handleListDevices returns the user's registered devices, newest first.
//
// An explicit ?userId= query overrides the configured default identity.
func (s *Server) handleListDevices(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = s.defaultUserID
	}

	devices, err := s.registration.Devices(r.Context(), userID)
	if err != nil {
		s.logger.Error("fetching devices", "error", err, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to fetch devices")
		return
	}

	resp := make([]deviceResponse, 0, len(devices))
	for _, d := range devices {
		resp = append(resp, deviceResponse{
			Serial:    d.Serial,
			CreatedAt: d.CreatedAt.UnixMilli(),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleRegister claims an entry code and records device ownership.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Code == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields: code, userId")
		return
	}

	serial, err := s.registration.ClaimAndRegister(r.Context(), req.Code, req.UserID)
	switch {
	case errors.Is(err, registration.ErrInvalidCode):
		writeError(w, http.StatusBadRequest,
			"Invalid entry code format. Must be exactly 7 alphanumeric characters.")
		return
	case errors.Is(err, registration.ErrKeyNotClaimable):
		writeJSON(w, http.StatusOK, registerResponse{
			Success: false,
			Message: notClaimableMessage,
		})
		return
	case err != nil:
		s.logger.Error("registering device", "error", err, "user_id", req.UserID)
		writeError(w, http.StatusInternalServerError, "Failed to register device")
		return
	}

	writeJSON(w, http.StatusOK, registerResponse{
		Success: true,
		Serial:  serial,
		Message: fmt.Sprintf("Device %s registered to %s", serial, req.UserID),
	})
}

// handleDeleteDevice removes the user's ownership of a serial.
func (s *Server) handleDeleteDevice(w http.ResponseWriter, r *http.Request) {
	serial := chi.URLParam(r, "serial")
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		userID = s.defaultUserID
	}

	removed, err := s.registration.Remove(r.Context(), userID, serial)
	if err != nil {
		s.logger.Error("deleting device", "error", err, "serial", serial, "user_id", userID)
		writeError(w, http.StatusInternalServerError, "Failed to delete device")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": removed})
}
