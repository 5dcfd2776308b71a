package game

import (
	"testing"
	"time"

	"solitaire/internal/board"
	"solitaire/internal/config"
	"solitaire/internal/model"
	"solitaire/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cueLog struct{ cues []Cue }

func (l *cueLog) PlayCue(c Cue) { l.cues = append(l.cues, c) }

func identityPerm() []int {
	perm := make([]int, model.DeckSize)
	for i := range perm {
		perm[i] = i
	}
	return perm
}

func newSessionForTest(t *testing.T) (*Session, *FakeClock, *cueLog, *telemetry.MemoryRepository) {
	t.Helper()
	clock := NewFakeClock(time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC))
	cues := &cueLog{}
	tele := telemetry.NewMemoryRepositoryWithClock(clock.Now, 0)
	s := NewSession("t1", Options{
		Config:    config.Default(),
		Clock:     clock,
		Audio:     cues,
		Telemetry: tele,
	})
	return s, clock, cues, tele
}

func countZone(snap Snapshot, z model.Zone) int {
	n := 0
	for _, c := range snap.Cards {
		if c.Zone == z {
			n++
		}
	}
	return n
}

func TestSession_PhaseSequence(t *testing.T) {
	s, _, cues, _ := newSessionForTest(t)
	assert.Equal(t, PhaseLoading, s.Phase())
	assert.False(t, s.SelectDifficulty(model.Hard), "still loading")

	require.True(t, s.Loaded())
	assert.Equal(t, PhaseSelectDifficulty, s.Phase())

	require.True(t, s.SelectDifficulty(model.Hard))
	assert.Equal(t, PhasePrepare, s.Phase())
	assert.False(t, s.BeginDealToTableau(), "must shuffle first")

	require.True(t, s.BeginShuffleAndDeal())
	assert.Equal(t, PhaseDeal, s.Phase())

	require.True(t, s.BeginDealToTableau())
	assert.Equal(t, PhasePlay, s.Phase())
	assert.Equal(t, model.Hard, s.Difficulty())
	assert.Equal(t, []Cue{CueDeal}, cues.cues)
	assert.NoError(t, s.Check())

	snap := s.Snapshot()
	assert.Equal(t, 28, countZone(snap, model.TableauZone(0))+countZone(snap, model.TableauZone(1))+
		countZone(snap, model.TableauZone(2))+countZone(snap, model.TableauZone(3))+
		countZone(snap, model.TableauZone(4))+countZone(snap, model.TableauZone(5))+
		countZone(snap, model.TableauZone(6)))
	assert.Equal(t, 24, countZone(snap, model.StockZone()))
}

func TestSession_EasyStockClickScoresNothing(t *testing.T) {
	s, _, cues, tele := newSessionForTest(t)
	require.NoError(t, s.StartNewGameWith(model.Easy, identityPerm()))

	// The first stock card after the deal has ID 28.
	events := s.ClickCard(model.CardID(28), model.ButtonPrimary)
	require.Len(t, events, 1)
	assert.Equal(t, board.StepStockToWaste, events[0].Step)

	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 1, s.Moves())
	assert.Equal(t, []Cue{CueDeal, CueMove}, cues.cues)
	assert.Equal(t, []Cue{CueMove}, s.LastCues())

	snap := s.Snapshot()
	assert.Equal(t, 1, countZone(snap, model.WasteZone()))
	for _, c := range snap.Cards {
		if c.Zone.IsWaste() {
			assert.True(t, c.Clickable)
			assert.NotEqual(t, model.FaceDownKey, c.Face)
		}
	}

	moved, err := tele.GetEvents(time.Time{}, []telemetry.EventType{telemetry.EventCardMoved})
	require.NoError(t, err)
	assert.Len(t, moved, 1)
}

func TestSession_RecycleScoreClampsAtZero(t *testing.T) {
	s, _, cues, _ := newSessionForTest(t)
	require.NoError(t, s.StartNewGameWith(model.Hard, identityPerm()))

	var seen []int
	s.scores = ScoreFunc(func(score, moves int) { seen = append(seen, score) })

	for i := 0; i < 8; i++ {
		require.NotEmpty(t, s.ClickCard(model.CardID(28+3*i), model.ButtonPrimary))
	}
	events := s.ClickStockPile(model.ButtonPrimary)
	require.Len(t, events, 1)
	assert.Equal(t, -100, events[0].Delta)

	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 9, s.Moves())
	assert.Equal(t, CueStockReturn, cues.cues[len(cues.cues)-1])
	assert.Len(t, seen, 9)
}

func TestSession_IgnoresInputOutsidePlay(t *testing.T) {
	s, _, _, _ := newSessionForTest(t)
	assert.Nil(t, s.ClickCard(0, model.ButtonPrimary), "loading")
	assert.Nil(t, s.ClickStockPile(model.ButtonPrimary))
	assert.False(t, s.DragStart(0, model.ButtonPrimary))

	require.NoError(t, s.StartNewGameWith(model.Easy, identityPerm()))
	assert.Nil(t, s.ClickCard(28, model.ButtonSecondary), "secondary button")
	assert.False(t, s.DragStart(6, model.ButtonMiddle))

	require.True(t, s.ClickNewGame(model.ButtonPrimary))
	assert.Nil(t, s.ClickCard(28, model.ButtonPrimary), "confirming new game")
	assert.Equal(t, 0, s.Moves())
}

func TestSession_NewGameConfirmAndCancel(t *testing.T) {
	s, _, _, _ := newSessionForTest(t)
	require.NoError(t, s.StartNewGameWith(model.Easy, identityPerm()))
	require.NotEmpty(t, s.ClickCard(28, model.ButtonPrimary))

	assert.False(t, s.ClickNewGame(model.ButtonSecondary))
	require.True(t, s.ClickNewGame(model.ButtonPrimary))
	assert.Equal(t, PhaseNewGame, s.Phase())
	assert.False(t, s.ClickNewGame(model.ButtonPrimary), "only acts during play")

	require.True(t, s.CancelNewGame())
	assert.Equal(t, PhasePlay, s.Phase())
	assert.Equal(t, 1, s.Moves(), "cancel keeps the game")
	assert.False(t, s.CancelNewGame())

	require.True(t, s.ClickNewGame(model.ButtonPrimary))
	require.True(t, s.SelectDifficulty(model.Hard))
	assert.Equal(t, 0, s.Moves())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 52, countZone(s.Snapshot(), model.StockZone()))
}

func TestSession_ElapsedTime(t *testing.T) {
	s, clock, _, _ := newSessionForTest(t)
	assert.Equal(t, time.Duration(0), s.Elapsed())

	s.StartNewGame(model.Easy)
	clock.Advance(time.Hour + 2*time.Minute + 3*time.Second)
	assert.Equal(t, "1:02:03", s.Snapshot().Elapsed)
}

func TestSession_ClearFreezesTimerAndPhase(t *testing.T) {
	s, clock, _, tele := newSessionForTest(t)
	require.NoError(t, s.StartNewGameWith(model.Easy, identityPerm()))

	// Identity deck: card 12 is the king of hearts.
	for _, c := range s.table.State.Cards() {
		c.FaceDown = false
		c.Clickable = true
		if c.ID == 12 {
			c.Zone = model.WasteZone()
			c.Order = 0
			continue
		}
		c.Zone = model.FoundationZone(c.Suit)
		c.Order = int(c.Rank)
	}

	clock.Advance(90 * time.Second)
	events := s.ClickCard(12, model.ButtonPrimary)
	require.Len(t, events, 2)
	assert.Equal(t, board.EventCleared, events[1].Kind)

	assert.Equal(t, PhaseGameClear, s.Phase())
	assert.Equal(t, 10, s.Score())
	clock.Advance(time.Hour)
	assert.Equal(t, 90*time.Second, s.Elapsed())
	assert.NoError(t, s.Check())

	cleared, err := tele.GetEvents(time.Time{}, []telemetry.EventType{telemetry.EventGameCleared})
	require.NoError(t, err)
	assert.Len(t, cleared, 1)

	require.True(t, s.SelectDifficulty(model.Easy), "a cleared game can start over")
}

func TestSession_DragThroughSession(t *testing.T) {
	s, _, _, _ := newSessionForTest(t)
	require.NoError(t, s.StartNewGameWith(model.Easy, identityPerm()))
	for s.Tick() > 0 {
	}

	// Pile 1 top is card 2 (three of hearts); dragging it nowhere bounces.
	require.True(t, s.DragStart(2, model.ButtonPrimary))
	require.True(t, s.DragDelta(2, 0, -400, model.ButtonPrimary))
	assert.True(t, s.Snapshot().Dragging)
	assert.Nil(t, s.DragEnd(2, model.ButtonPrimary))
	assert.False(t, s.Snapshot().Dragging)

	for s.Tick() > 0 {
	}
	var pos model.Vec3
	for _, c := range s.Snapshot().Cards {
		if c.ID == 2 {
			pos = c.Pos
		}
	}
	assert.Equal(t, s.table.Layout.PilePosition(1, 1, 1, 1), pos)
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0:00:00", FormatElapsed(0))
	assert.Equal(t, "0:00:59", FormatElapsed(59*time.Second+900*time.Millisecond))
	assert.Equal(t, "0:10:00", FormatElapsed(10*time.Minute))
	assert.Equal(t, "12:34:56", FormatElapsed(12*time.Hour+34*time.Minute+56*time.Second))
	assert.Equal(t, "0:00:00", FormatElapsed(-time.Second))
}
