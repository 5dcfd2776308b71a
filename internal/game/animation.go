package game

import (
	"solitaire/internal/config"
	"solitaire/internal/model"
)

// Animator moves each card's displayed position toward its target.
type Animator struct {
	lerp float64
	snap float64
}

func NewAnimator(cfg config.AnimationConfig) *Animator {
	return &Animator{lerp: cfg.Lerp, snap: cfg.Snap}
}

// Tick advances every resting card one interpolation step and returns how
// many are still travelling. A card within the snap distance of its target
// lands on it exactly, draw order included. Dragged cards are left where the
// input layer put them.
func (a *Animator) Tick(cards []*model.Card) int {
	moving := 0
	for _, c := range cards {
		if c.Dragging {
			continue
		}
		if a.step(c) {
			moving++
		}
	}
	return moving
}

func (a *Animator) step(c *model.Card) bool {
	if c.Pos.XY().Distance(c.Target.XY()) <= a.snap {
		c.Pos = c.Target
		return false
	}

	c.Pos.X += (c.Target.X - c.Pos.X) * a.lerp
	c.Pos.Y += (c.Target.Y - c.Pos.Y) * a.lerp
	if c.Pos.XY().Distance(c.Target.XY()) <= a.snap {
		c.Pos = c.Target
		return false
	}
	return true
}
