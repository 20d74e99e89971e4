package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/partydeck/monikers-server/internal/service"
)

type SessionHandler struct {
	authService *service.AuthService
}

func NewSessionHandler(authService *service.AuthService) *SessionHandler {
	return &SessionHandler{authService: authService}
}

type CreateSessionRequest struct {
	Name     string `json:"name"`
	PlayerID string `json:"playerId"`
}

type SessionResponse struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}

// Create mints a guest session. Clients keep playerId and token locally and
// present the same playerId to renew the token after expiry.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.authService.CreateGuestSession(req.Name, req.PlayerID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidName) {
			http.Error(w, "Name is required", http.StatusBadRequest)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := SessionResponse{
		PlayerID: session.PlayerID,
		Name:     session.Name,
		Token:    session.Token,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
