package service

import (
	"context"

	"github.com/partydeck/monikers-server/internal/domain"
	"github.com/partydeck/monikers-server/internal/repository"
)

// CatalogService serves the static card pool players draft from. The game
// engine never reads the catalog; clients fetch it for the drafting screen
// and submit their picks over the wire.
type CatalogService struct {
	cardRepo repository.CardRepository
}

func NewCatalogService(cardRepo repository.CardRepository) *CatalogService {
	return &CatalogService{cardRepo: cardRepo}
}

func (s *CatalogService) GetAllCards(ctx context.Context) ([]*domain.Card, error) {
	return s.cardRepo.GetAll(ctx)
}

// SeedDefaultCards installs the built-in pool when the catalog is empty.
func (s *CatalogService) SeedDefaultCards(ctx context.Context) (int, error) {
	count, err := s.cardRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	if err := s.cardRepo.UpsertMany(ctx, defaultCardPool()); err != nil {
		return 0, err
	}
	return len(defaultCardPool()), nil
}

func defaultCardPool() []*domain.Card {
	return []*domain.Card{
		{ID: "c001", Name: "Sherlock Holmes", Description: "Fictional detective with a famous address"},
		{ID: "c002", Name: "Marie Curie", Description: "Two-time Nobel laureate in physics and chemistry"},
		{ID: "c003", Name: "A Rubber Duck", Description: "Bathtub companion and debugging confidant"},
		{ID: "c004", Name: "The Mona Lisa", Description: "Smiles at millions of tourists every year"},
		{ID: "c005", Name: "Napoleon Bonaparte", Description: "Short on patience, long on conquests"},
		{ID: "c006", Name: "A Black Hole", Description: "Nothing escapes it, not even light"},
		{ID: "c007", Name: "William Shakespeare", Description: "To describe or not to describe"},
		{ID: "c008", Name: "The Loch Ness Monster", Description: "Scotland's most photographed blur"},
		{ID: "c009", Name: "Cleopatra", Description: "Last pharaoh of Egypt"},
		{ID: "c010", Name: "A Traffic Jam", Description: "Everyone is in it, nobody wants to be"},
		{ID: "c011", Name: "Albert Einstein", Description: "Relatively famous physicist"},
		{ID: "c012", Name: "The Tooth Fairy", Description: "Pays cash for baby teeth"},
		{ID: "c013", Name: "Leonardo da Vinci", Description: "Painter, inventor, notorious notebook keeper"},
		{ID: "c014", Name: "A Sneeze", Description: "Blessed by strangers worldwide"},
		{ID: "c015", Name: "Genghis Khan", Description: "Built the largest contiguous land empire"},
		{ID: "c016", Name: "The Bermuda Triangle", Description: "Where ships and planes allegedly vanish"},
		{ID: "c017", Name: "Frida Kahlo", Description: "Painter of unflinching self-portraits"},
		{ID: "c018", Name: "A Monday Morning", Description: "The least popular time of the week"},
		{ID: "c019", Name: "Isaac Newton", Description: "Gravity's most famous observer"},
		{ID: "c020", Name: "The Great Wall of China", Description: "Very long, not actually visible from space"},
		{ID: "c021", Name: "Joan of Arc", Description: "Teenage military leader and saint"},
		{ID: "c022", Name: "A Wi-Fi Password", Description: "The first thing guests ask for"},
		{ID: "c023", Name: "Charles Darwin", Description: "Voyaged on the Beagle, changed biology"},
		{ID: "c024", Name: "The Eiffel Tower", Description: "Iron lattice that Parisians once hated"},
	}
}
