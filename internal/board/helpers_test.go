package board

import (
	"testing"

	"solitaire/internal/config"
	"solitaire/internal/model"

	"github.com/stretchr/testify/require"
)

func newTestTable(d model.Difficulty) *Table {
	return NewTable(config.Default(), d)
}

// find returns the entity currently showing suit s and rank r.
func find(t *testing.T, st *model.BoardState, s model.Suit, r model.Rank) *model.Card {
	t.Helper()
	for _, c := range st.Cards() {
		if c.Suit == s && c.Rank == r {
			return c
		}
	}
	require.FailNow(t, "card not found", "%s %d", s, r)
	return nil
}

// put moves a card into z at order. Face-up cards are clickable.
func put(t *testing.T, tb *Table, s model.Suit, r model.Rank, z model.Zone, order int, faceDown bool) *model.Card {
	t.Helper()
	c := find(t, tb.State, s, r)
	c.Zone = z
	c.Order = order
	c.FaceDown = faceDown
	c.Clickable = !faceDown
	return c
}

// fillFoundation stacks ranks 1..upTo of s on its foundation.
func fillFoundation(t *testing.T, tb *Table, s model.Suit, upTo model.Rank) {
	t.Helper()
	for r := model.Ace; r <= upTo; r++ {
		put(t, tb, s, r, model.FoundationZone(s), int(r), false)
	}
}

func identityPerm() []int {
	perm := make([]int, model.DeckSize)
	for i := range perm {
		perm[i] = i
	}
	return perm
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
