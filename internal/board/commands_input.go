package board

import (
	"solitaire/internal/model"
)

// ClickCard auto-moves a clicked card to the best legal destination:
//   - stock: draw
//   - waste: own foundation, else the first accepting pile
//   - tableau: own foundation when nothing sits on the card, else the first
//     accepting pile
//   - foundation: the first accepting pile
//
// Clicks are ignored while a drag is in progress. ClickCard reports whether
// anything was scheduled; an enqueued move is resolved by the next Step.
func (t *Table) ClickCard(id model.CardID) bool {
	if t.drag.dragging {
		return false
	}
	c := t.State.Card(id)
	if c == nil || !c.Clickable {
		return false
	}
	if c.Zone.IsStock() {
		return t.ClickStock()
	}
	if !t.movable(c) {
		return false
	}

	run := t.State.Connected(id)
	t.snapshot(c, run)

	if !c.Zone.IsFoundation() && len(run) == 0 && t.Rules.CanStackOnFoundation(t.State, c) {
		t.Enqueue(t.toFoundation(c))
		return true
	}
	pile, order, ok := t.Rules.FirstTableau(t.State, c)
	if !ok {
		return false
	}
	if c.Zone.IsTableau() {
		t.lift(c)
		for _, r := range run {
			t.lift(r)
		}
	}
	t.Enqueue(MoveIntent{Card: id, Dest: model.TableauZone(pile), Order: order})
	return true
}

// snapshot records the resting position of a card and its run so a rejected
// move can send them back.
func (t *Table) snapshot(c *model.Card, run []*model.Card) {
	c.Prev = c.Target
	for _, r := range run {
		r.Prev = r.Target
	}
}

// members returns the card followed by its connected run.
func (t *Table) members(c *model.Card) []*model.Card {
	return append([]*model.Card{c}, t.State.Connected(c.ID)...)
}

// DragStart picks up a card (and its run). Stock cards, face-down cards and
// cards buried under other waste or foundation cards cannot be dragged.
func (t *Table) DragStart(id model.CardID) bool {
	c := t.State.Card(id)
	if c == nil || !c.Clickable || c.Zone.IsStock() || !t.movable(c) {
		return false
	}
	t.snapshot(c, t.State.Connected(id))
	t.drag = dragState{active: true, card: id, zone: c.Zone}
	return true
}

// DragDelta moves the dragged card and its run by (dx, dy), raising them
// above the table. The drag only counts as one once the card has travelled
// farther than the drag threshold from where it was picked up.
func (t *Table) DragDelta(id model.CardID, dx, dy float64) bool {
	if !t.drag.active || t.drag.card != id {
		return false
	}
	c := t.State.Card(id)
	if c == nil {
		return false
	}

	members := t.members(c)
	for _, m := range members {
		m.Pos.X += dx
		m.Pos.Y += dy
		m.Pos.Z = t.dragZ + float64(m.Order)
		m.Target = m.Pos
	}

	if !t.drag.dragging && c.Pos.XY().Distance(c.Prev.XY()) > t.threshold {
		t.drag.dragging = true
		for _, m := range members {
			m.Dragging = true
		}
	}
	return true
}

// DragEnd drops the dragged card where it is displayed. The card's box is
// hit-tested against its suit's foundation and then the tableau piles; the
// first legal target receives a move intent. Otherwise the card and its run
// are sent back to where the drag started. A card that changed zone while
// held is let go where the layout already put it.
func (t *Table) DragEnd(id model.CardID) bool {
	if !t.drag.active || t.drag.card != id {
		return false
	}
	from := t.drag.zone
	t.drag = dragState{}

	c := t.State.Card(id)
	if c == nil {
		return false
	}
	if c.Zone != from {
		for _, m := range t.members(c) {
			m.Dragging = false
		}
		return false
	}

	if in, ok := t.dropTarget(c); ok {
		t.Enqueue(in)
		return true
	}
	t.rollback(c)
	return false
}

func (t *Table) dropTarget(c *model.Card) (MoveIntent, bool) {
	box := t.Layout.CardBox(c.Pos)
	overFoundation := box.Intersects(t.Layout.FoundationDropArea(c.Suit))

	switch c.Zone.Kind() {
	case model.KindWaste:
		if overFoundation && t.Rules.CanStackOnFoundation(t.State, c) {
			return t.toFoundation(c), true
		}
	case model.KindTableau:
		// Over the foundation only the foundation is tried.
		if overFoundation {
			if len(t.State.Connected(c.ID)) == 0 && t.Rules.CanStackOnFoundation(t.State, c) {
				return t.toFoundation(c), true
			}
			return MoveIntent{}, false
		}
	}

	for i := 0; i < model.NumPiles; i++ {
		if c.Zone.IsTableau() && c.Zone.Pile() == i {
			continue
		}
		if !box.Intersects(t.Layout.PileDropArea(i)) {
			continue
		}
		if order, ok := t.Rules.CanStackOnTableau(t.State, i, c); ok {
			return MoveIntent{Card: c.ID, Dest: model.TableauZone(i), Order: order}, true
		}
	}
	return MoveIntent{}, false
}

func (t *Table) toFoundation(c *model.Card) MoveIntent {
	return MoveIntent{Card: c.ID, Dest: model.FoundationZone(c.Suit), Order: int(c.Rank)}
}
