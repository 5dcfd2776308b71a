package board

import (
	"solitaire/internal/config"
	"solitaire/internal/model"
)

// Table owns the card registry of one game together with the rule engine,
// layout and the deferred request queues that connect them.
//
// A Table is not safe for concurrent use. Callers feed it input, then call
// Step to drain the queues and collect the resulting notifications.
type Table struct {
	State  *model.BoardState
	Layout *Layout
	Rules  *Validator

	scoring    config.Scoring
	maxWastes  int
	dragZ      float64
	threshold  float64
	difficulty model.Difficulty

	q      queues
	events []Event
	drag   dragState
}

type dragState struct {
	active   bool
	card     model.CardID
	zone     model.Zone
	dragging bool
}

// NewTable creates a table with an undealt deck.
func NewTable(cfg *config.Config, d model.Difficulty) *Table {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Table{
		State:      model.NewBoardState(),
		Layout:     NewLayout(cfg.Layout),
		Rules:      NewValidator(),
		scoring:    cfg.Scoring,
		maxWastes:  cfg.Layout.MaxWastes,
		dragZ:      cfg.Layout.DragZ,
		threshold:  cfg.Layout.DragThreshold,
		difficulty: d,
	}
}

// Difficulty returns the draw mode in effect.
func (t *Table) Difficulty() model.Difficulty { return t.difficulty }

// SetDifficulty changes the draw mode. Callers only do this between games.
func (t *Table) SetDifficulty(d model.Difficulty) { t.difficulty = d }

// Dragging reports whether a drag has moved past the threshold.
func (t *Table) Dragging() bool { return t.drag.dragging }

// Reset returns every card to the undealt state and drops pending work.
func (t *Table) Reset() {
	t.State.Reset()
	t.q.reset()
	t.events = nil
	t.drag = dragState{}
}

// Enqueue schedules a move for the next Step.
func (t *Table) Enqueue(in MoveIntent) {
	t.q.intents = append(t.q.intents, in)
}

// Pending reports the queued requests.
func (t *Table) Pending() Pending {
	return t.q.pending()
}

// Step drains the deferred queues in a fixed order (move intents, waste
// refill, pile layout, z-order, sprite, clear) and returns the notifications
// produced since the previous Step. Each request is handled at most once.
func (t *Table) Step() []Event {
	for len(t.q.intents) > 0 {
		intents := t.q.intents
		t.q.intents = nil
		for _, in := range intents {
			t.resolveMove(in)
		}
	}

	if len(t.q.fillWaste) > 0 {
		t.q.fillWaste = nil
		t.reflowWaste()
	}

	if len(t.q.adjust) > 0 {
		var done [model.NumPiles]bool
		for _, a := range t.q.adjust {
			if a.Pile < 0 || a.Pile >= model.NumPiles || done[a.Pile] {
				continue
			}
			done[a.Pile] = true
			t.layoutPile(a.Pile)
		}
		t.q.adjust = nil
	}

	for _, u := range t.q.zs {
		// Stale requests after a reset are dropped.
		if c := t.State.Card(u.Card); c != nil {
			c.Pos.Z = u.Z
		}
	}
	t.q.zs = nil

	for _, u := range t.q.sprites {
		if c := t.State.Card(u.Card); c != nil {
			c.Sprite = c.FaceKey()
		}
	}
	t.q.sprites = nil

	if len(t.q.clears) > 0 {
		t.q.clears = nil
		t.celebrate()
	}

	events := t.events
	t.events = nil
	return events
}

func (t *Table) emit(e Event) {
	t.events = append(t.events, e)
}

func (t *Table) emitMove(step MoveStep, card model.CardID) {
	t.emit(Event{Kind: EventMove, Step: step, Delta: step.Points(t.scoring), Card: card})
}

func (t *Table) refreshSprite(c *model.Card) {
	t.q.sprites = append(t.q.sprites, UpdateSprite{Card: c.ID})
}

func (t *Table) lift(c *model.Card) {
	t.q.zs = append(t.q.zs, UpdateZ{Card: c.ID, Z: t.dragZ + float64(c.Order)})
}

func (t *Table) adjust(z model.Zone) {
	if z.IsTableau() {
		t.q.adjust = append(t.q.adjust, AdjustPile{Pile: z.Pile()})
	}
}

// layoutPile recomputes the targets of every card in tableau pile i.
func (t *Table) layoutPile(i int) {
	fd := t.State.CountFaceDown(i)
	fu := t.State.CountFaceUp(i)
	for _, c := range t.State.Pile(model.TableauZone(i)) {
		c.Target = t.Layout.PilePosition(i, c.Order, fd, fu)
	}
}

// CardView is the read-only render state of one card.
type CardView struct {
	ID        model.CardID `json:"id"`
	Zone      model.Zone   `json:"zone"`
	Order     int          `json:"order"`
	Pos       model.Vec3   `json:"pos"`
	Face      string       `json:"face"`
	Visible   bool         `json:"visible"`
	Clickable bool         `json:"clickable"`
}

// Views snapshots every card for a renderer. Waste cards pushed out of the
// visible fan are reported with Visible false.
func (t *Table) Views() []CardView {
	cards := t.State.Cards()
	out := make([]CardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, CardView{
			ID:        c.ID,
			Zone:      c.Zone,
			Order:     c.Order,
			Pos:       c.Pos,
			Face:      c.Sprite,
			Visible:   !(c.Zone.IsWaste() && c.Order < 0),
			Clickable: c.Clickable,
		})
	}
	return out
}

// LegalTargets lists every zone the card could legally move to right now.
// It is a pure query for hover hints.
func (t *Table) LegalTargets(id model.CardID) []model.Zone {
	c := t.State.Card(id)
	if c == nil || c.FaceDown || !t.movable(c) {
		return nil
	}
	var out []model.Zone
	if !c.Zone.IsFoundation() && len(t.State.Connected(id)) == 0 && t.Rules.CanStackOnFoundation(t.State, c) {
		out = append(out, model.FoundationZone(c.Suit))
	}
	for i := 0; i < model.NumPiles; i++ {
		if c.Zone.IsTableau() && c.Zone.Pile() == i {
			continue
		}
		if _, ok := t.Rules.CanStackOnTableau(t.State, i, c); ok {
			out = append(out, model.TableauZone(i))
		}
	}
	return out
}

// movable reports whether c may be picked up from its zone: any face-up
// tableau card, or the top of the waste or of a foundation.
func (t *Table) movable(c *model.Card) bool {
	switch c.Zone.Kind() {
	case model.KindTableau:
		return !c.FaceDown
	case model.KindWaste, model.KindFoundation:
		top := t.State.Top(c.Zone)
		return top != nil && top.ID == c.ID
	default:
		return false
	}
}
