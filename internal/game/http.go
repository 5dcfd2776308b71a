package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"solitaire/internal/board"
	"solitaire/internal/model"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArgs        = errors.New("bad arguments")
)

// DefaultTableID is used when a request names no table.
const DefaultTableID = "default"

// maxTicksPerCommand caps the "tick" command so one request cannot hold a
// table for long.
const maxTicksPerCommand = 1000

// Handler handles table-related HTTP requests.
type Handler struct {
	repo       SessionRepository
	newSession func(id string) *Session
	log        *zap.Logger
}

// NewHandler creates a new table handler. newSession builds a session in the
// Loading phase for a fresh table ID.
func NewHandler(repo SessionRepository, newSession func(id string) *Session, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{repo: repo, newSession: newSession, log: log}
}

// create builds a session ready for difficulty selection.
func (h *Handler) create(id string) *Session {
	s := h.newSession(id)
	s.Loaded()
	return s
}

func (h *Handler) sessionFromRequest(r *http.Request) (*Session, bool) {
	id := r.URL.Query().Get("table")
	if id == "" {
		return h.repo.GetOrCreate(DefaultTableID, h.create), true
	}
	return h.repo.Get(id)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(out)
}

// GET /api/table/state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s, ok := h.sessionFromRequest(r)
	if !ok {
		writeErr(w, http.StatusNotFound, "table not found")
		return
	}
	writeJSON(w, http.StatusOK, s.Snapshot())
}

// NewTableRequest is the optional body of POST /api/table/new.
type NewTableRequest struct {
	Difficulty string `json:"difficulty,omitempty"`
}

// POST /api/table/new
func (h *Handler) NewTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req NewTableRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, http.StatusBadRequest, "invalid json")
			return
		}
	}

	s := h.create(uuid.NewString())
	if req.Difficulty != "" {
		d, err := model.ParseDifficulty(req.Difficulty)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		s.StartNewGame(d)
	}
	h.repo.Put(s)
	h.log.Info("table created", zap.String("table", s.ID()))

	writeJSON(w, http.StatusCreated, s.Snapshot())
}

// DELETE /api/table?table=<id>
func (h *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	id := r.URL.Query().Get("table")
	if id == "" || !h.repo.Delete(id) {
		writeErr(w, http.StatusNotFound, "table not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// CommandRequest is the request body for POST /api/table/cmd.
type CommandRequest struct {
	Cmd           string         `json:"cmd"`
	Args          map[string]any `json:"args"`
	ClientVersion string         `json:"clientVersion,omitempty"`
}

// CommandResponse is the response for POST /api/table/cmd.
type CommandResponse struct {
	OK         bool          `json:"ok"`
	NewVersion string        `json:"newVersion"`
	Result     any           `json:"result,omitempty"`
	Events     []board.Event `json:"events,omitempty"`
	Cues       []Cue         `json:"cues,omitempty"`
	State      *Snapshot     `json:"state,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// POST /api/table/cmd
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req CommandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}

	s, ok := h.sessionFromRequest(r)
	if !ok {
		writeErr(w, http.StatusNotFound, "table not found")
		return
	}

	var (
		resp   CommandResponse
		status = http.StatusOK
	)
	s.Atomically(func() {
		serverVersion := strconv.Itoa(s.Revision())
		if req.ClientVersion != "" && req.ClientVersion != serverVersion {
			status = http.StatusConflict
			resp = CommandResponse{
				OK:         false,
				NewVersion: serverVersion,
				Error:      "table version conflict",
			}
			return
		}

		result, events, err := h.executeCommand(s, req.Cmd, req.Args)
		if err != nil {
			h.log.Debug("command rejected", zap.String("cmd", req.Cmd), zap.Error(err))
			status = http.StatusBadRequest
			resp = CommandResponse{
				OK:    false,
				Error: err.Error(),
			}
			return
		}

		snap := s.Snapshot()
		resp = CommandResponse{
			OK:         true,
			NewVersion: strconv.Itoa(snap.Revision),
			Result:     result,
			Events:     events,
			Cues:       s.LastCues(),
			State:      &snap,
		}
	})
	writeJSON(w, status, resp)
}

// executeCommand dispatches the command to the session.
func (h *Handler) executeCommand(s *Session, cmd string, args map[string]any) (any, []board.Event, error) {
	switch cmd {
	case "game.new":
		return s.ClickNewGame(getButton(args)), nil, nil
	case "game.cancel_new":
		return s.CancelNewGame(), nil, nil
	case "game.select_difficulty":
		return h.cmdSelectDifficulty(s, args)
	case "card.click":
		id, err := getCardID(args)
		if err != nil {
			return nil, nil, err
		}
		events := s.ClickCard(id, getButton(args))
		return len(events) > 0, events, nil
	case "card.drag_start":
		id, err := getCardID(args)
		if err != nil {
			return nil, nil, err
		}
		return s.DragStart(id, getButton(args)), nil, nil
	case "card.drag":
		return h.cmdDrag(s, args)
	case "card.drag_end":
		id, err := getCardID(args)
		if err != nil {
			return nil, nil, err
		}
		events := s.DragEnd(id, getButton(args))
		return len(events) > 0, events, nil
	case "card.targets":
		id, err := getCardID(args)
		if err != nil {
			return nil, nil, err
		}
		return s.LegalTargets(id), nil, nil
	case "stock.click":
		events := s.ClickStockPile(getButton(args))
		return len(events) > 0, events, nil
	case "tick":
		n := getIntOr(args, "n", 1)
		if n < 1 || n > maxTicksPerCommand {
			return nil, nil, fmt.Errorf("%w: n must be between 1 and %d", ErrBadArgs, maxTicksPerCommand)
		}
		moving := 0
		for i := 0; i < n; i++ {
			moving = s.Tick()
		}
		return map[string]any{"moving": moving}, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
}

// game.select_difficulty { difficulty }
func (h *Handler) cmdSelectDifficulty(s *Session, args map[string]any) (any, []board.Event, error) {
	name, err := getString(args, "difficulty")
	if err != nil {
		return nil, nil, err
	}
	d, err := model.ParseDifficulty(name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBadArgs, err)
	}
	if !s.SelectDifficulty(d) {
		return false, nil, nil
	}
	s.BeginShuffleAndDeal()
	s.BeginDealToTableau()
	return true, nil, nil
}

// card.drag { card, dx, dy }
func (h *Handler) cmdDrag(s *Session, args map[string]any) (any, []board.Event, error) {
	id, err := getCardID(args)
	if err != nil {
		return nil, nil, err
	}
	dx, err := getFloat(args, "dx")
	if err != nil {
		return nil, nil, err
	}
	dy, err := getFloat(args, "dy")
	if err != nil {
		return nil, nil, err
	}
	return s.DragDelta(id, dx, dy, getButton(args)), nil, nil
}

// Helper to get string from args
func getString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%w: missing required field: %s", ErrBadArgs, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %s must be a string", ErrBadArgs, key)
	}
	return s, nil
}

// Helper to get a number from args (JSON numbers are float64)
func getFloat(args map[string]any, key string) (float64, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing required field: %s", ErrBadArgs, key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: field %s must be a number", ErrBadArgs, key)
	}
	return f, nil
}

// Helper to get optional int with default
func getIntOr(args map[string]any, key string, def int) int {
	v, ok := args[key]
	if !ok {
		return def
	}
	f, ok := v.(float64)
	if !ok {
		return def
	}
	return int(f)
}

func getCardID(args map[string]any) (model.CardID, error) {
	f, err := getFloat(args, "card")
	if err != nil {
		return 0, err
	}
	return model.CardID(f), nil
}

// getButton defaults to the primary button.
func getButton(args map[string]any) model.Button {
	return model.Button(getIntOr(args, "button", int(model.ButtonPrimary)))
}
