package game

import (
	"fmt"
	"testing"

	"github.com/partydeck/monikers-server/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeck(n int) deck {
	d := make(deck, n)
	for i := range d {
		d[i] = domain.Card{ID: fmt.Sprintf("c%02d", i+1)}
	}
	return d
}

func TestDeck_DrawTakesFromBack(t *testing.T) {
	d := testDeck(3)

	card, ok := d.draw()
	require.True(t, ok)
	assert.Equal(t, "c03", card.ID)
	assert.Len(t, d, 2)

	card, ok = d.draw()
	require.True(t, ok)
	assert.Equal(t, "c02", card.ID)
}

func TestDeck_DrawFromEmpty(t *testing.T) {
	var d deck
	_, ok := d.draw()
	assert.False(t, ok)
}

func TestDeck_RequeuePutsCardInFront(t *testing.T) {
	d := testDeck(2)
	d.requeue(domain.Card{ID: "back"})

	require.Len(t, d, 3)
	assert.Equal(t, "back", d[0].ID)

	// The requeued card is the last one drawn.
	var drawn []string
	for {
		card, ok := d.draw()
		if !ok {
			break
		}
		drawn = append(drawn, card.ID)
	}
	assert.Equal(t, []string{"c02", "c01", "back"}, drawn)
}

func TestDeck_Contains(t *testing.T) {
	d := testDeck(2)
	assert.True(t, d.contains("c01"))
	assert.False(t, d.contains("c99"))
}

func TestShuffled_PreservesCardsAndSource(t *testing.T) {
	source := make([]domain.Card, 0, 20)
	for i := 0; i < 20; i++ {
		source = append(source, domain.Card{ID: fmt.Sprintf("c%02d", i+1)})
	}
	original := append([]domain.Card(nil), source...)

	d := shuffled(source)

	assert.Equal(t, original, source, "the source order must be untouched")
	assert.ElementsMatch(t, original, []domain.Card(d), "shuffling keeps the multiset")
}
