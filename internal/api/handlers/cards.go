package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/partydeck/monikers-server/internal/domain"
	"github.com/partydeck/monikers-server/internal/service"
)

type CardHandler struct {
	catalogService *service.CatalogService
}

func NewCardHandler(catalogService *service.CatalogService) *CardHandler {
	return &CardHandler{catalogService: catalogService}
}

type CardsResponse struct {
	Cards []domain.Card `json:"cards"`
}

func (h *CardHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	cards, err := h.catalogService.GetAllCards(r.Context())
	if err != nil {
		log.Printf("ERROR [cards.GetAll]: %v", err)
		http.Error(w, "Failed to get cards", http.StatusInternalServerError)
		return
	}

	resp := CardsResponse{Cards: make([]domain.Card, len(cards))}
	for i, c := range cards {
		resp.Cards[i] = *c
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
