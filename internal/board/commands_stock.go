package board

import (
	"solitaire/internal/model"
)

// ClickStock draws up to the difficulty's draw count from the bottom of the
// stock onto the waste. It returns false when the stock is empty or a card
// is held.
func (t *Table) ClickStock() bool {
	if t.drag.active {
		return false
	}
	stock := t.State.Pile(model.StockZone())
	if len(stock) == 0 {
		return false
	}

	n := t.difficulty.DrawCount()
	if n > len(stock) {
		n = len(stock)
	}
	drawn := stock[:n]

	next := 0
	if top := t.State.Top(model.WasteZone()); top != nil {
		next = top.Order + 1
	}
	for i, c := range drawn {
		c.Zone = model.WasteZone()
		c.Order = next + i
		c.FaceDown = false
		t.refreshSprite(c)
	}

	t.reflowWaste()
	for _, c := range drawn {
		t.q.zs = append(t.q.zs, UpdateZ{Card: c.ID, Z: c.Target.Z})
	}

	t.emitMove(StepStockToWaste, drawn[n-1].ID)
	return true
}

// reflowWaste re-lays the waste by recency. The newest MaxWastes cards take
// orders 0..k-1 in draw order and fan down from the waste anchor; older cards
// take negative orders and rest hidden under the first slot. Only the newest
// card is clickable.
func (t *Table) reflowWaste() {
	waste := t.State.Pile(model.WasteZone())
	hidden := len(waste) - t.maxWastes
	if hidden < 0 {
		hidden = 0
	}
	for i, c := range waste {
		c.Order = i - hidden
		c.Clickable = i == len(waste)-1
		c.Target = t.Layout.WastePosition(c.Order, float64(i))
	}
}

// ClickStockBase recycles the whole waste back into an exhausted stock, face
// down, keeping draw order so the oldest waste card is drawn first again. It
// returns false when the stock still holds cards, the waste is empty or a
// card is held.
func (t *Table) ClickStockBase() bool {
	if t.drag.active {
		return false
	}
	if t.State.Count(model.StockZone()) > 0 {
		return false
	}
	waste := t.State.Pile(model.WasteZone())
	if len(waste) == 0 {
		return false
	}

	for i, c := range waste {
		c.Zone = model.StockZone()
		c.Order = i
		c.FaceDown = true
		c.Clickable = true
		c.Target = t.Layout.StockPosition(i)
		t.refreshSprite(c)
	}

	t.emitMove(StepWasteToStock, waste[len(waste)-1].ID)
	return true
}
