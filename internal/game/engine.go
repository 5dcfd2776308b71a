package game

import (
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"solitaire/internal/board"
	"solitaire/internal/config"
	"solitaire/internal/model"
	"solitaire/internal/telemetry"
)

// Options wires a Session to its collaborators. Zero fields get defaults.
type Options struct {
	Config    *config.Config
	Clock     Clock
	Rand      *rand.Rand
	Logger    *zap.Logger
	Audio     AudioListener
	Scores    ScoreListener
	Telemetry telemetry.Repository
}

// Session is one game of solitaire: the card table plus the phase, score,
// move counter and play timer around it.
//
// Every exported method takes the session lock, so one call is one atomic
// tick of the game.
type Session struct {
	mu sync.Mutex
	// cmdMu orders whole read-check-write commands. It is always taken
	// before mu.
	cmdMu sync.Mutex

	id    string
	cfg   *config.Config
	table *board.Table
	anim  *Animator

	phase      Phase
	difficulty model.Difficulty
	score      int
	moves      int
	startedAt  time.Time
	clearedAt  time.Time
	revision   int
	lastCues   []Cue

	clock  Clock
	rng    *rand.Rand
	log    *zap.Logger
	audio  AudioListener
	scores ScoreListener
	tele   telemetry.Repository
}

// NewSession creates a session in the Loading phase.
func NewSession(id string, opts Options) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	clock := opts.Clock
	if clock == nil {
		clock = RealClock{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(clock.Now().UnixNano()))
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	d, err := model.ParseDifficulty(cfg.Rules.Difficulty)
	if err != nil {
		d = model.Easy
	}

	return &Session{
		id:         id,
		cfg:        cfg,
		table:      board.NewTable(cfg, d),
		anim:       NewAnimator(cfg.Animation),
		phase:      PhaseLoading,
		difficulty: d,
		clock:      clock,
		rng:        rng,
		log:        logger.With(zap.String("session", id)),
		audio:      opts.Audio,
		scores:     opts.Scores,
		tele:       opts.Telemetry,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

func (s *Session) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moves
}

func (s *Session) Difficulty() model.Difficulty {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.difficulty
}

// Revision increases with every change to the logical game state.
func (s *Session) Revision() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// Atomically runs fn with no other Atomically call on s in between, so a
// revision check and the command it guards see the same game. fn may call
// any exported method of s.
func (s *Session) Atomically(fn func()) {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()
	fn()
}

// Elapsed is the play time of the current game. It stops when the game is
// cleared.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed()
}

func (s *Session) elapsed() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	if !s.clearedAt.IsZero() {
		return s.clearedAt.Sub(s.startedAt)
	}
	return s.clock.Now().Sub(s.startedAt)
}

// LastCues returns the sounds played by the most recent input call.
func (s *Session) LastCues() []Cue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Cue(nil), s.lastCues...)
}

// Loaded moves a fresh session on to difficulty selection.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseLoading {
		return false
	}
	s.setPhase(PhaseSelectDifficulty)
	return true
}

// SelectDifficulty fixes the draw mode for the next game and resets the
// table, score, moves and timer. It is accepted while choosing a difficulty,
// while confirming a new game and after a clear.
func (s *Session) SelectDifficulty(d model.Difficulty) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.phase {
	case PhaseSelectDifficulty, PhaseNewGame, PhaseGameClear:
	default:
		return false
	}
	s.selectDifficulty(d)
	return true
}

func (s *Session) selectDifficulty(d model.Difficulty) {
	s.difficulty = d
	s.table.SetDifficulty(d)
	s.table.Reset()
	s.score = 0
	s.moves = 0
	s.startedAt = time.Time{}
	s.clearedAt = time.Time{}
	s.lastCues = nil
	s.revision++
	s.notifyScore()
	s.record(telemetry.EventGameStarted, telemetry.EventMetadata{"difficulty": d.String()})
	s.log.Info("new game", zap.Stringer("difficulty", d))
	s.setPhase(PhasePrepare)
}

// BeginShuffleAndDeal shuffles the deck into the stock.
func (s *Session) BeginShuffleAndDeal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhasePrepare {
		return false
	}
	s.shuffle()
	return true
}

func (s *Session) shuffle() {
	s.table.Prepare(s.rng)
	s.revision++
	s.setPhase(PhaseDeal)
}

// BeginDealToTableau deals the tableau and starts play.
func (s *Session) BeginDealToTableau() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseDeal {
		return false
	}
	return s.deal()
}

func (s *Session) deal() bool {
	s.lastCues = nil
	if !s.table.Deal() {
		return false
	}
	s.apply(s.table.Step())
	s.startedAt = s.clock.Now()
	s.setPhase(PhasePlay)
	return true
}

// StartNewGame runs the whole setup sequence from any phase: difficulty,
// shuffle, deal.
func (s *Session) StartNewGame(d model.Difficulty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectDifficulty(d)
	s.shuffle()
	s.deal()
}

// StartNewGameWith is StartNewGame with a fixed deck permutation.
func (s *Session) StartNewGameWith(d model.Difficulty, perm []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectDifficulty(d)
	if err := s.table.PrepareWith(perm); err != nil {
		return err
	}
	s.setPhase(PhaseDeal)
	s.deal()
	return nil
}

// ClickNewGame asks to abandon the game in progress. Only acts during play.
func (s *Session) ClickNewGame(btn model.Button) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if btn != model.ButtonPrimary || s.phase != PhasePlay {
		return false
	}
	s.setPhase(PhaseNewGame)
	return true
}

// CancelNewGame returns to the game in progress.
func (s *Session) CancelNewGame() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseNewGame {
		return false
	}
	s.setPhase(PhasePlay)
	return true
}

func (s *Session) playable(btn model.Button) bool {
	return btn == model.ButtonPrimary && s.phase == PhasePlay
}

// ClickCard auto-moves a card, or draws when it is a stock card.
func (s *Session) ClickCard(id model.CardID, btn model.Button) []board.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playable(btn) {
		return nil
	}
	s.lastCues = nil
	if !s.table.ClickCard(id) {
		s.log.Debug("click ignored", zap.Int("card", int(id)))
		return nil
	}
	return s.step()
}

// DragStart picks up a card and its run.
func (s *Session) DragStart(id model.CardID, btn model.Button) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playable(btn) {
		return false
	}
	return s.table.DragStart(id)
}

// DragDelta moves the picked-up card by (dx, dy).
func (s *Session) DragDelta(id model.CardID, dx, dy float64, btn model.Button) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playable(btn) {
		return false
	}
	return s.table.DragDelta(id, dx, dy)
}

// DragEnd drops the picked-up card.
func (s *Session) DragEnd(id model.CardID, btn model.Button) []board.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playable(btn) {
		return nil
	}
	s.lastCues = nil
	if !s.table.DragEnd(id) {
		s.log.Debug("drop rejected", zap.Int("card", int(id)))
		s.revision++
		return nil
	}
	return s.step()
}

// ClickStockPile recycles the waste when the stock is exhausted.
func (s *Session) ClickStockPile(btn model.Button) []board.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playable(btn) {
		return nil
	}
	s.lastCues = nil
	if !s.table.ClickStockBase() {
		return nil
	}
	return s.step()
}

func (s *Session) step() []board.Event {
	events := s.table.Step()
	s.apply(events)
	s.revision++
	return events
}

// Tick advances the card animation one step and returns how many cards are
// still moving.
func (s *Session) Tick() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anim.Tick(s.table.State.Cards())
}

// apply routes table notifications to the counters and listeners.
func (s *Session) apply(events []board.Event) {
	changed := false
	for _, e := range events {
		switch e.Kind {
		case board.EventMove:
			s.moves++
			s.addScore(e.Delta)
			changed = true
			if e.Step == board.StepWasteToStock {
				s.playCue(CueStockReturn)
			} else {
				s.playCue(CueMove)
			}
			s.record(telemetry.EventCardMoved, telemetry.EventMetadata{
				"step":  e.Step.String(),
				"delta": e.Delta,
				"card":  int(e.Card),
			})
		case board.EventScore:
			s.addScore(e.Delta)
			changed = true
			s.record(telemetry.EventCardRevealed, telemetry.EventMetadata{
				"delta": e.Delta,
				"card":  int(e.Card),
			})
		case board.EventDealt:
			s.playCue(CueDeal)
			s.record(telemetry.EventDealt, nil)
		case board.EventCleared:
			s.clearedAt = s.clock.Now()
			s.log.Info("game cleared",
				zap.Int("score", s.score),
				zap.Int("moves", s.moves),
				zap.Duration("elapsed", s.elapsed()),
			)
			s.record(telemetry.EventGameCleared, telemetry.EventMetadata{
				"score":      s.score,
				"moves":      s.moves,
				"elapsed_ms": s.elapsed().Milliseconds(),
			})
			s.setPhase(PhaseGameClear)
		}
	}
	if changed {
		s.notifyScore()
	}
}

// addScore applies a delta, never letting the score drop below zero.
func (s *Session) addScore(delta int) {
	s.score += delta
	if s.score < 0 {
		s.score = 0
	}
}

func (s *Session) notifyScore() {
	if s.scores != nil {
		s.scores.ScoreChanged(s.score, s.moves)
	}
}

func (s *Session) playCue(c Cue) {
	s.lastCues = append(s.lastCues, c)
	if s.audio != nil {
		s.audio.PlayCue(c)
	}
}

func (s *Session) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	s.log.Info("phase changed", zap.Stringer("from", s.phase), zap.Stringer("to", p))
	s.record(telemetry.EventPhaseChanged, telemetry.EventMetadata{"from": s.phase.String(), "to": p.String()})
	s.phase = p
	s.revision++
}

func (s *Session) record(et telemetry.EventType, md telemetry.EventMetadata) {
	if s.tele == nil {
		return
	}
	if md == nil {
		md = telemetry.EventMetadata{}
	}
	md["session"] = s.id
	if err := s.tele.RecordEvent(et, md); err != nil {
		s.log.Warn("telemetry record failed", zap.String("type", string(et)), zap.Error(err))
	}
}

// Snapshot is the read-only view a renderer needs for one frame.
type Snapshot struct {
	ID         string                `json:"id"`
	Phase      Phase                 `json:"phase"`
	Difficulty string                `json:"difficulty"`
	Score      int                   `json:"score"`
	Moves      int                   `json:"moves"`
	Elapsed    string                `json:"elapsed"`
	Revision   int                   `json:"revision"`
	Dragging   bool                  `json:"dragging"`
	Cards      []board.CardView      `json:"cards"`
	Areas      map[string]model.Rect `json:"areas"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:         s.id,
		Phase:      s.phase,
		Difficulty: s.difficulty.String(),
		Score:      s.score,
		Moves:      s.moves,
		Elapsed:    FormatElapsed(s.elapsed()),
		Revision:   s.revision,
		Dragging:   s.table.Dragging(),
		Cards:      s.table.Views(),
		Areas:      s.table.Layout.Areas(),
	}
}

// LegalTargets lists where a card could legally go, for hover hints.
func (s *Session) LegalTargets(id model.CardID) []model.Zone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.LegalTargets(id)
}

// Check audits the registry invariants.
func (s *Session) Check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.State.Check()
}
