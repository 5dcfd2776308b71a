package model

import (
	"errors"
	"fmt"
	"sort"
)

// DeckSize is the number of card entities in the registry.
const DeckSize = 52

// ErrInvariant is wrapped by every violation reported by Check.
var ErrInvariant = errors.New("board invariant violated")

// BoardState is the card registry: the canonical list of all 52 card
// entities and their logical attributes.
//
// The registry enforces nothing. Callers (the rule engine and the move
// resolver) keep the invariants; Check audits them.
type BoardState struct {
	cards []*Card
}

// NewBoardState creates the 52 card entities in suit-major order, all in the
// stock and face down.
func NewBoardState() *BoardState {
	b := &BoardState{cards: make([]*Card, 0, DeckSize)}
	for _, s := range Suits {
		for r := Ace; r <= King; r++ {
			b.cards = append(b.cards, &Card{
				ID:   CardID(len(b.cards)),
				Suit: s,
				Rank: r,
			})
		}
	}
	b.Reset()
	return b
}

// Reset returns every card to the undealt state: stock, face down, ordered by
// identity. Suit and rank are left for the next shuffle to overwrite.
func (b *BoardState) Reset() {
	for i, c := range b.cards {
		c.Zone = StockZone()
		c.Order = i
		c.FaceDown = true
		c.Clickable = false
		c.Dragging = false
		c.Prev = Vec3{}
		c.Target = Vec3{}
		c.Pos = Vec3{}
		c.Sprite = FaceDownKey
	}
}

// Cards returns every card in registry order. The slice is shared; callers
// must not reorder it.
func (b *BoardState) Cards() []*Card {
	return b.cards
}

// Card returns the card with the given ID, or nil if not found.
func (b *BoardState) Card(id CardID) *Card {
	for _, c := range b.cards {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// InZone returns the cards in zone z in registry order.
func (b *BoardState) InZone(z Zone) []*Card {
	var out []*Card
	for _, c := range b.cards {
		if c.Zone == z {
			out = append(out, c)
		}
	}
	return out
}

// Pile returns the cards in zone z sorted by ascending Order.
func (b *BoardState) Pile(z Zone) []*Card {
	out := b.InZone(z)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Top returns the highest-order card of zone z, or nil if the zone is empty.
func (b *BoardState) Top(z Zone) *Card {
	var top *Card
	for _, c := range b.cards {
		if c.Zone == z && (top == nil || c.Order > top.Order) {
			top = c
		}
	}
	return top
}

// Count returns the number of cards in zone z.
func (b *BoardState) Count(z Zone) int {
	n := 0
	for _, c := range b.cards {
		if c.Zone == z {
			n++
		}
	}
	return n
}

// Connected returns the run stacked on top of card id: the cards of the same
// tableau pile with a strictly greater order, sorted by order. Cards outside
// the tableau have no connected run.
func (b *BoardState) Connected(id CardID) []*Card {
	target := b.Card(id)
	if target == nil || !target.Zone.IsTableau() {
		return nil
	}
	var out []*Card
	for _, c := range b.cards {
		if c.Zone == target.Zone && c.Order > target.Order {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// CountFaceDown returns the number of face-down cards in tableau pile i.
func (b *BoardState) CountFaceDown(pile int) int {
	n := 0
	for _, c := range b.cards {
		if c.Zone.IsTableau() && c.Zone.Pile() == pile && c.FaceDown {
			n++
		}
	}
	return n
}

// CountFaceUp returns the number of face-up cards in tableau pile i.
func (b *BoardState) CountFaceUp(pile int) int {
	n := 0
	for _, c := range b.cards {
		if c.Zone.IsTableau() && c.Zone.Pile() == pile && !c.FaceDown {
			n++
		}
	}
	return n
}

// Check audits the settled-state invariants: 52 unique (suit, rank) cards,
// contiguous tableau orders with a face-up top, foundations holding exactly
// ranks 1..k of their own suit.
func (b *BoardState) Check() error {
	if len(b.cards) != DeckSize {
		return fmt.Errorf("%w: %d cards in registry", ErrInvariant, len(b.cards))
	}
	seen := make(map[[2]int]bool, DeckSize)
	for _, c := range b.cards {
		key := [2]int{int(c.Suit), int(c.Rank)}
		if seen[key] {
			return fmt.Errorf("%w: duplicate card %s", ErrInvariant, c)
		}
		seen[key] = true
	}

	for i := 0; i < NumPiles; i++ {
		pile := b.Pile(TableauZone(i))
		for want, c := range pile {
			if c.Order != want {
				return fmt.Errorf("%w: tableau%d order %d at position %d", ErrInvariant, i, c.Order, want)
			}
		}
		if n := len(pile); n > 0 && pile[n-1].FaceDown {
			return fmt.Errorf("%w: tableau%d top card is face down", ErrInvariant, i)
		}
	}

	for _, s := range Suits {
		for i, c := range b.Pile(FoundationZone(s)) {
			if c.Suit != s {
				return fmt.Errorf("%w: %s on foundation %s", ErrInvariant, c, s)
			}
			if c.Rank != Rank(i+1) || c.Order != i+1 {
				return fmt.Errorf("%w: foundation %s position %d holds %s", ErrInvariant, s, i+1, c)
			}
		}
	}
	return nil
}
