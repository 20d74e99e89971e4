package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/partydeck/monikers-server/internal/game"
	"github.com/partydeck/monikers-server/internal/service"
)

type RoomHandler struct {
	registry       *game.Registry
	historyService *service.HistoryService
}

func NewRoomHandler(registry *game.Registry, historyService *service.HistoryService) *RoomHandler {
	return &RoomHandler{
		registry:       registry,
		historyService: historyService,
	}
}

// Get returns the current scrubbed snapshot of a live room. Read-only; rooms
// are only ever created through the websocket join flow.
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	room := h.registry.Get(code)
	if room == nil {
		http.Error(w, "Room not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(room.Snapshot())
}

// ListMatches returns recent finished games, newest first.
func (h *RoomHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	records, err := h.historyService.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("ERROR [room.ListMatches]: %v", err)
		http.Error(w, "Failed to list matches", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}
