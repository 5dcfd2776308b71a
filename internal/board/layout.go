package board

import (
	"math"

	"solitaire/internal/config"
	"solitaire/internal/model"
)

// Layout computes target coordinates for every zone from the fixed table
// geometry. All methods are pure.
type Layout struct {
	cfg config.LayoutConfig
}

// NewLayout builds a layout from validated geometry.
func NewLayout(cfg config.LayoutConfig) *Layout {
	return &Layout{cfg: cfg}
}

// CardHalfSize is half the card extent, used for hit boxes.
func (l *Layout) CardHalfSize() model.Vec2 {
	return model.Vec2{X: l.cfg.CardWidth / 2, Y: l.cfg.CardHeight / 2}
}

// StockPosition returns the stock slot with draw order z.
func (l *Layout) StockPosition(order int) model.Vec3 {
	return model.Vec3{X: l.cfg.Stock.X, Y: l.cfg.Stock.Y, Z: float64(order)}
}

// WastePosition returns the slot of a visible waste card. Visible orders run
// 0..MaxWastes-1 fanning downward; hidden cards (negative order) sit under
// slot 0.
func (l *Layout) WastePosition(order int, z float64) model.Vec3 {
	if order < 0 {
		order = 0
	}
	return model.Vec3{
		X: l.cfg.Waste.X,
		Y: l.cfg.Waste.Y - float64(order)*l.cfg.WasteOffsetY,
		Z: z,
	}
}

// FoundationPosition returns the foundation slot for suit s with draw order z.
func (l *Layout) FoundationPosition(s model.Suit, order int) model.Vec3 {
	p := l.cfg.Foundations[int(s)]
	return model.Vec3{X: p.X, Y: p.Y, Z: float64(order)}
}

// PilePosition returns the target of the card at `order` in tableau pile
// `pile` holding numFaceDown face-down cards under numFaceUp face-up ones.
//
// Consecutive cards are spaced by PileOffsetY. When the fanned pile would not
// fit the drop area height, the face-down spacing is shrunk first and, if the
// pile still overflows, the face-up spacing; both are clamped to
// [PileOffsetYMin, PileOffsetY].
func (l *Layout) PilePosition(pile, order, numFaceDown, numFaceUp int) model.Vec3 {
	downGap, upGap := l.pileGaps(numFaceDown, numFaceUp)

	anchor := l.cfg.Piles[pile]
	pos := model.Vec3{X: anchor.X, Y: anchor.Y, Z: float64(order)}
	for i := 0; i < numFaceDown+numFaceUp && i < order; i++ {
		if i < numFaceDown {
			pos.Y -= downGap
		} else {
			pos.Y -= upGap
		}
	}
	return pos
}

func (l *Layout) pileGaps(numFaceDown, numFaceUp int) (down, up float64) {
	offset := l.cfg.PileOffsetY
	down, up = offset, offset
	height := l.cfg.PileDropTop - l.cfg.PileDropBottom

	over := l.cfg.CardHeight + float64(numFaceDown+numFaceUp)*offset - height
	if over <= 0 {
		return down, up
	}

	if numFaceDown > 0 {
		down = clamp(offset-math.Ceil(over/float64(numFaceDown)), l.cfg.PileOffsetYMin, offset)
	}

	upGaps := numFaceUp - 1
	if upGaps <= 0 {
		return down, up
	}
	over = l.cfg.CardHeight + float64(numFaceDown)*down + float64(upGaps)*up - height
	if over > 0 {
		up = clamp(offset-math.Ceil(over/float64(upGaps)), l.cfg.PileOffsetYMin, offset)
	}
	return down, up
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// PileDropArea is the hit box of tableau pile i: one card wide and spanning
// the full display height.
func (l *Layout) PileDropArea(i int) model.Rect {
	p := l.cfg.Piles[i]
	half := l.cfg.CardWidth / 2
	return model.Rect{
		Min: model.Vec2{X: p.X - half, Y: l.cfg.PileDropBottom},
		Max: model.Vec2{X: p.X + half, Y: l.cfg.PileDropTop},
	}
}

// FoundationDropArea is the card-sized hit box of the foundation for s.
func (l *Layout) FoundationDropArea(s model.Suit) model.Rect {
	p := l.cfg.Foundations[int(s)]
	return model.RectAround(model.Vec2{X: p.X, Y: p.Y}, l.CardHalfSize())
}

// StockArea is the card-sized hit box of the stock base.
func (l *Layout) StockArea() model.Rect {
	return model.RectAround(model.Vec2{X: l.cfg.Stock.X, Y: l.cfg.Stock.Y}, l.CardHalfSize())
}

// CardBox is the hit box of a card displayed at pos.
func (l *Layout) CardBox(pos model.Vec3) model.Rect {
	return model.RectAround(pos.XY(), l.CardHalfSize())
}

// Areas lists every fixed rectangle a renderer or input layer needs for hit
// testing, keyed by zone name.
func (l *Layout) Areas() map[string]model.Rect {
	out := make(map[string]model.Rect, model.NumPiles+len(model.Suits)+1)
	out[model.StockZone().String()] = l.StockArea()
	for i := 0; i < model.NumPiles; i++ {
		out[model.TableauZone(i).String()] = l.PileDropArea(i)
	}
	for _, s := range model.Suits {
		out[model.FoundationZone(s).String()] = l.FoundationDropArea(s)
	}
	return out
}
