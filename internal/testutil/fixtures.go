package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/partydeck/monikers-server/internal/domain"
	"gorm.io/gorm"
)

// Cards builds n distinct card fixtures with ids derived from the prefix
func Cards(prefix string, n int) []domain.Card {
	cards := make([]domain.Card, n)
	for i := range cards {
		cards[i] = domain.Card{
			ID:          fmt.Sprintf("%s-%02d", prefix, i+1),
			Name:        fmt.Sprintf("Card %s %02d", prefix, i+1),
			Description: fmt.Sprintf("Test card %s %02d", prefix, i+1),
		}
	}
	return cards
}

// SeedCards inserts card fixtures directly into the catalog
func SeedCards(t *testing.T, db *gorm.DB, cards []domain.Card) {
	t.Helper()

	for i := range cards {
		if err := db.WithContext(context.Background()).Create(&cards[i]).Error; err != nil {
			t.Fatalf("failed to seed card %s: %v", cards[i].ID, err)
		}
	}
}

// SessionFixture is a minted guest session for driving the API in tests
type SessionFixture struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Token    string `json:"token"`
}

// CreateSession mints a guest session through the HTTP API
func CreateSession(t *testing.T, ts *TestServer, name string) *SessionFixture {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"name": name})
	resp, err := http.Post(ts.APIURL("/session"), "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected session status: %d", resp.StatusCode)
	}

	var session SessionFixture
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("failed to decode session response: %v", err)
	}
	return &session
}
