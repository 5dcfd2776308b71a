package ops

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"solitaire/internal/board"
	"solitaire/internal/config"
	"solitaire/internal/game"
	"solitaire/internal/model"
)

// Result summarizes one auto-played game.
type Result struct {
	Seed       int64            `json:"seed"`
	Difficulty model.Difficulty `json:"-"`
	Cleared    bool             `json:"cleared"`
	Score      int              `json:"score"`
	Moves      int              `json:"moves"`
	Steps      int              `json:"steps"`
	Stalled    bool             `json:"stalled"`
}

func (r Result) String() string {
	outcome := "stuck"
	switch {
	case r.Cleared:
		outcome = "cleared"
	case !r.Stalled:
		outcome = "out of steps"
	}
	return fmt.Sprintf("seed=%d difficulty=%s %s score=%d moves=%d steps=%d",
		r.Seed, r.Difficulty, outcome, r.Score, r.Moves, r.Steps)
}

// NewSeededSession deals a game whose shuffle is fixed by seed.
func NewSeededSession(cfg *config.Config, seed int64, d model.Difficulty, log *zap.Logger) *game.Session {
	s := game.NewSession(fmt.Sprintf("seed-%d", seed), game.Options{
		Config: cfg,
		Rand:   rand.New(rand.NewSource(seed)),
		Logger: log,
	})
	s.StartNewGame(d)
	return s
}

// Simulate plays a dealt session with a greedy click-only strategy for at
// most maxSteps clicks. It stops early once the game is cleared or a full
// pass through the stock makes no progress.
func Simulate(s *game.Session, maxSteps int) Result {
	res := Result{Difficulty: s.Difficulty()}
	draws := 0
	for res.Steps < maxSteps && s.Phase() == game.PhasePlay {
		snap := s.Snapshot()
		if id, ok := productiveClick(s, snap); ok {
			if len(s.ClickCard(id, model.ButtonPrimary)) == 0 {
				res.Stalled = true
				break
			}
			res.Steps++
			draws = 0
			continue
		}

		stock, waste := 0, 0
		stockCard := model.CardID(-1)
		for _, c := range snap.Cards {
			switch {
			case c.Zone.IsStock():
				stock++
				stockCard = c.ID
			case c.Zone.IsWaste():
				waste++
			}
		}
		if draws > (stock+waste)/s.Difficulty().DrawCount()+1 {
			res.Stalled = true
			break
		}

		var events []board.Event
		if stock > 0 {
			events = s.ClickCard(stockCard, model.ButtonPrimary)
		} else {
			events = s.ClickStockPile(model.ButtonPrimary)
		}
		if len(events) == 0 {
			res.Stalled = true
			break
		}
		res.Steps++
		draws++
	}

	res.Cleared = s.Phase() == game.PhaseGameClear
	res.Score = s.Score()
	res.Moves = s.Moves()
	return res
}

// productiveClick picks a card whose auto-move makes progress: the waste
// top, a pile top that fits its foundation, or a face-up card that uncovers
// a face-down card or empties a pile for a king.
func productiveClick(s *game.Session, snap game.Snapshot) (model.CardID, bool) {
	faceDownBelow := make(map[model.Zone]map[int]bool)
	tops := make(map[model.Zone]int)
	for _, c := range snap.Cards {
		if !c.Zone.IsTableau() {
			continue
		}
		if c.Face == model.FaceDownKey {
			if faceDownBelow[c.Zone] == nil {
				faceDownBelow[c.Zone] = make(map[int]bool)
			}
			faceDownBelow[c.Zone][c.Order] = true
		}
		if c.Order >= tops[c.Zone] {
			tops[c.Zone] = c.Order
		}
	}

	for _, c := range snap.Cards {
		if !c.Clickable || !c.Visible || c.Face == model.FaceDownKey {
			continue
		}
		switch {
		case c.Zone.IsWaste():
		case c.Zone.IsTableau():
			top := c.Order == tops[c.Zone]
			uncovers := faceDownBelow[c.Zone][c.Order-1]
			frees := c.Order == 0 && rankOf(c.Face) != model.King
			if !uncovers && !frees && !(top && hasFoundation(s.LegalTargets(c.ID))) {
				continue
			}
		default:
			continue
		}
		if len(s.LegalTargets(c.ID)) > 0 {
			return c.ID, true
		}
	}
	return 0, false
}

func hasFoundation(zones []model.Zone) bool {
	for _, z := range zones {
		if z.IsFoundation() {
			return true
		}
	}
	return false
}

// rankOf reads the rank back out of a face key such as "spade_13".
func rankOf(face string) model.Rank {
	i := strings.LastIndexByte(face, '_')
	if i < 0 {
		return 0
	}
	n, err := strconv.Atoi(face[i+1:])
	if err != nil {
		return 0
	}
	return model.Rank(n)
}
