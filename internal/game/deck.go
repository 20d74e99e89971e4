package game

import (
	"math/rand"

	"github.com/partydeck/monikers-server/internal/domain"
)

// deck is a double-ended queue of cards. Cards are drawn from the back;
// passed or timed-out cards go back on the front so they are drawn last
// among the cards currently queued.
type deck []domain.Card

func (d *deck) draw() (domain.Card, bool) {
	if len(*d) == 0 {
		return domain.Card{}, false
	}
	card := (*d)[len(*d)-1]
	*d = (*d)[:len(*d)-1]
	return card, true
}

func (d *deck) requeue(card domain.Card) {
	*d = append(deck{card}, *d...)
}

func (d deck) contains(id string) bool {
	for _, c := range d {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (d deck) shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// shuffled returns a fresh shuffled deck over the given cards, leaving the
// source slice untouched.
func shuffled(cards []domain.Card) deck {
	d := make(deck, len(cards))
	copy(d, cards)
	d.shuffle()
	return d
}
