package board

import (
	"fmt"

	"solitaire/internal/config"
	"solitaire/internal/model"
)

// MoveStep tags a performed move with its shape.
type MoveStep int

const (
	StepStockToWaste MoveStep = iota
	StepWasteToStock
	StepWasteToTableau
	StepWasteToFoundation
	StepTableauToTableau
	StepTableauToFoundation
	StepFoundationToTableau
	StepTableauReveal
)

func (s MoveStep) String() string {
	switch s {
	case StepStockToWaste:
		return "stock_to_waste"
	case StepWasteToStock:
		return "waste_to_stock"
	case StepWasteToTableau:
		return "waste_to_tableau"
	case StepWasteToFoundation:
		return "waste_to_foundation"
	case StepTableauToTableau:
		return "tableau_to_tableau"
	case StepTableauToFoundation:
		return "tableau_to_foundation"
	case StepFoundationToTableau:
		return "foundation_to_tableau"
	case StepTableauReveal:
		return "tableau_reveal"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// MarshalText encodes the step by name.
func (s MoveStep) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *MoveStep) UnmarshalText(b []byte) error {
	for v := StepStockToWaste; v <= StepTableauReveal; v++ {
		if v.String() == string(b) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("unknown move step %q", b)
}

// Points returns the score delta for s under the given table.
func (s MoveStep) Points(sc config.Scoring) int {
	switch s {
	case StepStockToWaste:
		return sc.StockToWaste
	case StepWasteToStock:
		return sc.WasteToStock
	case StepWasteToTableau:
		return sc.WasteToTableau
	case StepWasteToFoundation:
		return sc.WasteToFoundation
	case StepTableauToTableau:
		return sc.TableauToTableau
	case StepTableauToFoundation:
		return sc.TableauToFoundation
	case StepFoundationToTableau:
		return sc.FoundationToTableau
	case StepTableauReveal:
		return sc.TableauReveal
	}
	return 0
}

// EventKind classifies a notification produced by a table step.
type EventKind int

const (
	// EventMove is one performed move. It counts toward the move counter and
	// carries the move's score delta.
	EventMove EventKind = iota
	// EventScore is a score change that is not a move (tableau reveal).
	EventScore
	// EventCleared fires once when the game is won.
	EventCleared
	// EventDealt fires when the tableau has been dealt.
	EventDealt
)

func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventScore:
		return "score"
	case EventCleared:
		return "cleared"
	case EventDealt:
		return "dealt"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// MarshalText encodes the kind by name.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *EventKind) UnmarshalText(b []byte) error {
	for v := EventMove; v <= EventDealt; v++ {
		if v.String() == string(b) {
			*k = v
			return nil
		}
	}
	return fmt.Errorf("unknown event kind %q", b)
}

// Event is a notification routed by the caller to score, audio and
// telemetry listeners.
type Event struct {
	Kind  EventKind    `json:"kind"`
	Step  MoveStep     `json:"step"`
	Delta int          `json:"delta"`
	Card  model.CardID `json:"card"`
}

func (e Event) String() string {
	switch e.Kind {
	case EventMove, EventScore:
		return fmt.Sprintf("%s %s %+d card=%d", e.Kind, e.Step, e.Delta, e.Card)
	default:
		return e.Kind.String()
	}
}
