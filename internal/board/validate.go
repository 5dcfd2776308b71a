package board

import (
	"solitaire/internal/model"
)

// Validator decides whether a card may legally land on a pile.
// Its checks are pure reads of the registry and are safe to call
// speculatively, e.g. to highlight drop targets while hovering.
type Validator struct{}

// NewValidator creates a new rule validator.
func NewValidator() *Validator {
	return &Validator{}
}

// CanStackOnTableau reports whether card may be placed on tableau pile
// `pile` and, if so, the order it would land at.
//
// An empty pile accepts only a King at order 0. Otherwise the candidate must
// be the opposite color of the pile's top card and exactly one rank lower; it
// lands at the current pile size.
func (v *Validator) CanStackOnTableau(state *model.BoardState, pile int, card *model.Card) (int, bool) {
	z, ok := model.ParseTableau(pile)
	if !ok || card == nil {
		return 0, false
	}

	cards := state.Pile(z)
	if len(cards) == 0 {
		if card.Rank == model.King {
			return 0, true
		}
		return 0, false
	}

	top := cards[len(cards)-1]
	if top.ID == card.ID {
		return 0, false
	}
	if card.Color() != top.Color() && card.Rank == top.Rank-1 {
		return len(cards), true
	}
	return 0, false
}

// CanStackOnFoundation reports whether card may be placed on its suit's
// foundation: an Ace on an empty foundation, otherwise the next rank up.
func (v *Validator) CanStackOnFoundation(state *model.BoardState, card *model.Card) bool {
	if card == nil {
		return false
	}
	top := state.Top(model.FoundationZone(card.Suit))
	if top == nil {
		return card.Rank == model.Ace
	}
	return top.Suit == card.Suit && card.Rank == top.Rank+1
}

// FirstTableau returns the lowest pile index that accepts card, skipping the
// pile the card already sits in.
func (v *Validator) FirstTableau(state *model.BoardState, card *model.Card) (pile, order int, ok bool) {
	for i := 0; i < model.NumPiles; i++ {
		if card.Zone.IsTableau() && card.Zone.Pile() == i {
			continue
		}
		if o, legal := v.CanStackOnTableau(state, i, card); legal {
			return i, o, true
		}
	}
	return 0, 0, false
}
