package board

import (
	"testing"

	"solitaire/internal/config"
	"solitaire/internal/model"

	"github.com/stretchr/testify/assert"
)

func testLayout() *Layout {
	return NewLayout(config.Default().Layout)
}

func TestPilePosition_NoOverflowUsesFullOffset(t *testing.T) {
	l := testLayout()

	assert.Equal(t, model.Vec3{X: -193, Y: 62, Z: 0}, l.PilePosition(0, 0, 3, 1))
	assert.Equal(t, model.Vec3{X: -193, Y: 14, Z: 3}, l.PilePosition(0, 3, 3, 1))
	assert.Equal(t, model.Vec3{X: 191, Y: 62 - 6*16, Z: 6}, l.PilePosition(6, 6, 6, 1))
}

func TestPilePosition_ShrinksFaceDownFirst(t *testing.T) {
	l := testLayout()

	// 13 cards overflow by 28: face-down gap drops to 16-ceil(28/6)=11 and
	// the pile then fits.
	pos := l.PilePosition(1, 12, 6, 7)
	assert.Equal(t, 62.0-6*11-6*16, pos.Y)
	assert.Equal(t, 62.0-5*11, l.PilePosition(1, 5, 6, 7).Y)
}

func TestPilePosition_NoFaceDownSkipsFirstPhase(t *testing.T) {
	l := testLayout()

	// 13 face-up cards: overflow 12 spread over 12 gaps.
	pos := l.PilePosition(2, 12, 0, 13)
	assert.Equal(t, 62.0-12*15, pos.Y)
}

func TestPilePosition_ShrinksBothAndClamps(t *testing.T) {
	l := testLayout()

	// 18 cards: face-down gap clamps at the minimum 6, face-up gap then
	// shrinks to 16-ceil(32/11)=13.
	pos := l.PilePosition(3, 17, 6, 12)
	assert.Equal(t, 62.0-6*6-11*13, pos.Y)
	assert.Equal(t, 17.0, pos.Z)
}

func TestPilePosition_SingleFaceUpNeverShrinksFaceUp(t *testing.T) {
	l := testLayout()

	// Overflowing pile of face-down cards with one face-up card on top.
	pos := l.PilePosition(0, 12, 12, 1)
	assert.Equal(t, 62.0-12*13, pos.Y)
}

func TestWasteAndFoundationPositions(t *testing.T) {
	l := testLayout()

	assert.Equal(t, model.Vec3{X: -258, Y: 1, Z: 4}, l.WastePosition(0, 4))
	assert.Equal(t, model.Vec3{X: -258, Y: -31, Z: 9}, l.WastePosition(2, 9))
	assert.Equal(t, model.Vec3{X: -258, Y: 1, Z: 0}, l.WastePosition(-3, 0), "hidden cards sit under the first slot")

	assert.Equal(t, model.Vec3{X: 257, Y: 62, Z: 1}, l.FoundationPosition(model.Heart, 1))
	assert.Equal(t, model.Vec3{X: 257, Y: -118, Z: 13}, l.FoundationPosition(model.Spade, 13))
	assert.Equal(t, model.Vec3{X: -258, Y: 63, Z: 7}, l.StockPosition(7))
}

func TestDropAreas(t *testing.T) {
	l := testLayout()

	pile := l.PileDropArea(0)
	assert.Equal(t, model.Vec2{X: -212, Y: -144}, pile.Min)
	assert.Equal(t, model.Vec2{X: -174, Y: 88}, pile.Max)
	assert.Equal(t, 232.0, pile.Height())

	f := l.FoundationDropArea(model.Diamond)
	assert.Equal(t, model.Vec2{X: 238, Y: -24}, f.Min)
	assert.Equal(t, model.Vec2{X: 276, Y: 28}, f.Max)

	areas := l.Areas()
	assert.Len(t, areas, 12)
	assert.Equal(t, l.StockArea(), areas["stock"])
	assert.Equal(t, l.PileDropArea(6), areas["tableau6"])
}
