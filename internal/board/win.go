package board

import "solitaire/internal/model"

// IsCleared reports whether nothing is left hidden: the stock is empty, no
// tableau card is face down, the waste fits the visible fan and, when drawing
// more than one card, holds at most one card. A cleared game can be finished
// without further decisions.
func IsCleared(state *model.BoardState, drawCount, maxWastes int) bool {
	if state.Count(model.StockZone()) > 0 {
		return false
	}
	for i := 0; i < model.NumPiles; i++ {
		if state.CountFaceDown(i) > 0 {
			return false
		}
	}
	waste := state.Count(model.WasteZone())
	if waste > maxWastes {
		return false
	}
	if drawCount > 1 && waste > 1 {
		return false
	}
	return true
}

// celebrate moves every card onto its suit's foundation in rank order.
func (t *Table) celebrate() {
	for _, c := range t.State.Cards() {
		c.Zone = model.FoundationZone(c.Suit)
		c.Order = int(c.Rank)
		c.FaceDown = false
		c.Clickable = false
		c.Dragging = false
		c.Target = t.Layout.FoundationPosition(c.Suit, c.Order)
		// Clear runs after the sprite drain.
		c.Sprite = c.FaceKey()
	}
	t.drag = dragState{}
	t.emit(Event{Kind: EventCleared})
}
