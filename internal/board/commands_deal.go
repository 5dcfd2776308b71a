package board

import (
	"errors"
	"fmt"
	"math/rand"

	"solitaire/internal/model"
)

// ErrBadPermutation is returned by PrepareWith for anything that is not a
// permutation of 0..51.
var ErrBadPermutation = errors.New("invalid deck permutation")

const tableauCards = model.NumPiles * (model.NumPiles + 1) / 2

// Prepare shuffles the 52 (suit, rank) pairs with rng and stacks them face
// down in the stock.
func (t *Table) Prepare(rng *rand.Rand) {
	perm := make([]int, model.DeckSize)
	for i := range perm {
		perm[i] = i
	}
	rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	// A shuffled 0..51 is always a valid permutation.
	_ = t.PrepareWith(perm)
}

// PrepareWith stacks the deck in the stock using a fixed permutation.
// perm[i] selects the face of the card at stock order i, encoded suit-major
// as suit*13 + (rank-1).
func (t *Table) PrepareWith(perm []int) error {
	if len(perm) != model.DeckSize {
		return fmt.Errorf("%w: %d entries", ErrBadPermutation, len(perm))
	}
	seen := make([]bool, model.DeckSize)
	for _, p := range perm {
		if p < 0 || p >= model.DeckSize || seen[p] {
			return fmt.Errorf("%w: entry %d", ErrBadPermutation, p)
		}
		seen[p] = true
	}

	t.Reset()
	for i, c := range t.State.Cards() {
		c.Suit = model.Suit(perm[i] / 13)
		c.Rank = model.Rank(perm[i]%13 + 1)
		c.Zone = model.StockZone()
		c.Order = i
		c.FaceDown = true
		c.Clickable = true
		c.Target = t.Layout.StockPosition(i)
		c.Pos = c.Target
		c.Prev = c.Target
		c.Sprite = model.FaceDownKey
	}
	return nil
}

// Deal moves the first 28 stock cards onto the tableau: pile i receives i+1
// cards at orders 0..i and only the last of them is face up. The remaining
// stock is re-packed to orders 0..23. Deal returns false if the stock does
// not hold a full undealt deck.
func (t *Table) Deal() bool {
	stock := t.State.Pile(model.StockZone())
	if len(stock) != model.DeckSize {
		return false
	}

	k := 0
	for pile := 0; pile < model.NumPiles; pile++ {
		z := model.TableauZone(pile)
		for order := 0; order <= pile; order++ {
			c := stock[k]
			k++
			c.Zone = z
			c.Order = order
			c.FaceDown = order != pile
			c.Clickable = order == pile
			if !c.FaceDown {
				t.refreshSprite(c)
			}
		}
		t.adjust(z)
	}

	for i, c := range stock[tableauCards:] {
		c.Order = i
		c.Target = t.Layout.StockPosition(i)
	}

	t.emit(Event{Kind: EventDealt})
	return true
}
