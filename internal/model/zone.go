package model

import (
	"encoding/json"
	"fmt"
)

// NumPiles is the number of tableau piles.
const NumPiles = 7

// ZoneKind tags the variant held by a Zone.
type ZoneKind int

const (
	KindStock ZoneKind = iota
	KindWaste
	KindTableau
	KindFoundation
)

// Zone is the logical location of a card: Stock, Waste, Tableau(pile) or
// Foundation(suit). The fields are unexported so a zone can only be built
// through the constructors below; a Stock zone never carries a pile index and
// a Tableau zone never carries a suit.
type Zone struct {
	kind ZoneKind
	pile int
	suit Suit
}

// StockZone is the face-down draw pile.
func StockZone() Zone { return Zone{kind: KindStock} }

// WasteZone holds the cards drawn from the stock.
func WasteZone() Zone { return Zone{kind: KindWaste} }

// TableauZone returns the tableau pile with index i. It panics when i is
// outside 0..NumPiles-1; use ParseTableau for untrusted input.
func TableauZone(i int) Zone {
	z, ok := ParseTableau(i)
	if !ok {
		panic(fmt.Sprintf("tableau index out of range: %d", i))
	}
	return z
}

// ParseTableau is the checked form of TableauZone.
func ParseTableau(i int) (Zone, bool) {
	if i < 0 || i >= NumPiles {
		return Zone{}, false
	}
	return Zone{kind: KindTableau, pile: i}, true
}

// FoundationZone returns the foundation for suit s.
func FoundationZone(s Suit) Zone { return Zone{kind: KindFoundation, suit: s} }

func (z Zone) Kind() ZoneKind { return z.kind }

// Pile returns the tableau index. Only meaningful when Kind is KindTableau.
func (z Zone) Pile() int { return z.pile }

// Suit returns the foundation suit. Only meaningful when Kind is KindFoundation.
func (z Zone) Suit() Suit { return z.suit }

func (z Zone) IsStock() bool      { return z.kind == KindStock }
func (z Zone) IsWaste() bool      { return z.kind == KindWaste }
func (z Zone) IsTableau() bool    { return z.kind == KindTableau }
func (z Zone) IsFoundation() bool { return z.kind == KindFoundation }

func (z Zone) String() string {
	switch z.kind {
	case KindStock:
		return "stock"
	case KindWaste:
		return "waste"
	case KindTableau:
		return fmt.Sprintf("tableau%d", z.pile)
	case KindFoundation:
		return "foundation_" + z.suit.String()
	default:
		return "unknown"
	}
}

// ParseZone is the inverse of Zone.String.
func ParseZone(s string) (Zone, error) {
	switch s {
	case "stock":
		return StockZone(), nil
	case "waste":
		return WasteZone(), nil
	}
	var i int
	if _, err := fmt.Sscanf(s, "tableau%d", &i); err == nil {
		if z, ok := ParseTableau(i); ok {
			return z, nil
		}
	}
	for _, suit := range Suits {
		if s == "foundation_"+suit.String() {
			return FoundationZone(suit), nil
		}
	}
	return Zone{}, fmt.Errorf("unknown zone %q", s)
}

func (z Zone) MarshalJSON() ([]byte, error) {
	return json.Marshal(z.String())
}

func (z *Zone) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseZone(s)
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}
