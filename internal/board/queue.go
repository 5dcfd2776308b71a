package board

import "solitaire/internal/model"

// MoveIntent asks the resolver to move Card (and its connected run) to Dest
// at Order. It is consumed exactly once by the next Step.
type MoveIntent struct {
	Card  model.CardID
	Dest  model.Zone
	Order int
}

// AdjustPile asks for a full re-layout of tableau pile Pile.
type AdjustPile struct {
	Pile int
}

// UpdateZ pushes a draw order to a card's displayed position ahead of its
// animation, so cards in flight draw above resting ones.
type UpdateZ struct {
	Card model.CardID
	Z    float64
}

// UpdateSprite refreshes the image key of a card whose face state changed.
type UpdateSprite struct {
	Card model.CardID
}

// FillWaste re-flows the visible waste fan after a waste card left.
type FillWaste struct{}

// ClearRequest lays every card out on its foundation after a win.
type ClearRequest struct{}

// queues holds the deferred work produced during one step.
type queues struct {
	intents   []MoveIntent
	fillWaste []FillWaste
	adjust    []AdjustPile
	zs        []UpdateZ
	sprites   []UpdateSprite
	clears    []ClearRequest
}

func (q *queues) reset() {
	*q = queues{}
}

// Pending reports how many requests of each kind await the next Step.
type Pending struct {
	Intents   int `json:"intents"`
	FillWaste int `json:"fillWaste"`
	Adjust    int `json:"adjust"`
	Z         int `json:"z"`
	Sprites   int `json:"sprites"`
	Clears    int `json:"clears"`
}

func (q *queues) pending() Pending {
	return Pending{
		Intents:   len(q.intents),
		FillWaste: len(q.fillWaste),
		Adjust:    len(q.adjust),
		Z:         len(q.zs),
		Sprites:   len(q.sprites),
		Clears:    len(q.clears),
	}
}
