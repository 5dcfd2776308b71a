package game

import "fmt"

// Cue is a sound the audio collaborator should play.
type Cue int

const (
	CueMove Cue = iota
	CueStockReturn
	CueDeal
)

func (c Cue) String() string {
	switch c {
	case CueMove:
		return "move"
	case CueStockReturn:
		return "stock_return"
	case CueDeal:
		return "deal"
	default:
		return fmt.Sprintf("cue(%d)", int(c))
	}
}

// MarshalText encodes the cue by name.
func (c Cue) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cue) UnmarshalText(b []byte) error {
	for _, v := range []Cue{CueMove, CueStockReturn, CueDeal} {
		if v.String() == string(b) {
			*c = v
			return nil
		}
	}
	return fmt.Errorf("unknown cue %q", b)
}

// AudioListener receives a cue for every performed move. Reveals are silent.
type AudioListener interface {
	PlayCue(Cue)
}

// ScoreListener is told the running score and move count after they change.
type ScoreListener interface {
	ScoreChanged(score, moves int)
}

// AudioFunc adapts a plain function to AudioListener.
type AudioFunc func(Cue)

func (f AudioFunc) PlayCue(c Cue) { f(c) }

// ScoreFunc adapts a plain function to ScoreListener.
type ScoreFunc func(score, moves int)

func (f ScoreFunc) ScoreChanged(score, moves int) { f(score, moves) }
