package game

import "fmt"

// Phase is the screen-level state of a session.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseSelectDifficulty
	PhasePrepare
	PhaseDeal
	PhasePlay
	PhaseNewGame
	PhaseGameClear
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSelectDifficulty:
		return "select_difficulty"
	case PhasePrepare:
		return "prepare"
	case PhaseDeal:
		return "deal"
	case PhasePlay:
		return "play"
	case PhaseNewGame:
		return "new_game"
	case PhaseGameClear:
		return "game_clear"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	for v := PhaseLoading; v <= PhaseGameClear; v++ {
		if v.String() == string(b) {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

// SessionRepository holds the live sessions of a server.
type SessionRepository interface {
	Get(id string) (*Session, bool)
	GetOrCreate(id string, create func(id string) *Session) *Session
	Put(s *Session)
	Delete(id string) bool
	List() []*Session
}
