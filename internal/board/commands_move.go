package board

import (
	"solitaire/internal/model"
)

// moveShape classifies a (source, destination) pair into one of the moves a
// player can make by hand. Stock and waste recycling use their own flows.
func moveShape(src, dst model.Zone) (MoveStep, bool) {
	switch {
	case src.IsWaste() && dst.IsTableau():
		return StepWasteToTableau, true
	case src.IsWaste() && dst.IsFoundation():
		return StepWasteToFoundation, true
	case src.IsTableau() && dst.IsTableau() && src.Pile() != dst.Pile():
		return StepTableauToTableau, true
	case src.IsTableau() && dst.IsFoundation():
		return StepTableauToFoundation, true
	case src.IsFoundation() && dst.IsTableau():
		return StepFoundationToTableau, true
	}
	return 0, false
}

// resolveMove commits or rejects one move intent.
//
// Legality is re-derived here: the intent's order is a hint from the input
// layer and the rule engine's landing order wins. On rejection the card and
// its run go back to their Prev snapshot and nothing else changes.
func (t *Table) resolveMove(in MoveIntent) {
	card := t.State.Card(in.Card)
	if card == nil {
		return
	}

	src := card.Zone
	step, ok := moveShape(src, in.Dest)
	if !ok || !t.movable(card) {
		t.rollback(card)
		return
	}

	run := t.State.Connected(card.ID)
	order, legal := t.landing(card, in.Dest, len(run))
	if !legal {
		t.rollback(card)
		return
	}

	if in.Dest.IsFoundation() {
		if top := t.State.Top(in.Dest); top != nil {
			top.Clickable = false
		}
	}

	card.Zone = in.Dest
	card.Order = order
	card.Dragging = false
	card.Clickable = true
	t.lift(card)
	if in.Dest.IsFoundation() {
		card.Target = t.Layout.FoundationPosition(card.Suit, order)
	}
	for i, c := range run {
		c.Zone = in.Dest
		c.Order = order + i + 1
		c.Dragging = false
		t.lift(c)
	}

	t.emitMove(step, card.ID)

	switch {
	case src.IsTableau():
		t.reveal(src.Pile())
	case src.IsWaste():
		t.q.fillWaste = append(t.q.fillWaste, FillWaste{})
	case src.IsFoundation():
		if top := t.State.Top(src); top != nil {
			top.Clickable = true
		}
	}

	t.adjust(src)
	t.adjust(in.Dest)

	if in.Dest.IsFoundation() && IsCleared(t.State, t.difficulty.DrawCount(), t.maxWastes) {
		t.q.clears = append(t.q.clears, ClearRequest{})
	}
}

// landing returns the order card would take in dst.
func (t *Table) landing(card *model.Card, dst model.Zone, runLen int) (int, bool) {
	if dst.IsFoundation() {
		if runLen > 0 || dst.Suit() != card.Suit || !t.Rules.CanStackOnFoundation(t.State, card) {
			return 0, false
		}
		return int(card.Rank), true
	}
	return t.Rules.CanStackOnTableau(t.State, dst.Pile(), card)
}

// reveal turns the new top of tableau pile i face up.
func (t *Table) reveal(i int) {
	top := t.State.Top(model.TableauZone(i))
	if top == nil || !top.FaceDown {
		return
	}
	top.FaceDown = false
	top.Clickable = true
	t.refreshSprite(top)
	t.emit(Event{
		Kind:  EventScore,
		Step:  StepTableauReveal,
		Delta: StepTableauReveal.Points(t.scoring),
		Card:  top.ID,
	})
}

// rollback sends card and its connected run back to the pre-move snapshot.
func (t *Table) rollback(card *model.Card) {
	card.Target = card.Prev
	card.Dragging = false
	for _, c := range t.State.Connected(card.ID) {
		c.Target = c.Prev
		c.Dragging = false
	}
}
