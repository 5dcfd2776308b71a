package serverapp

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"solitaire/internal/config"
	"solitaire/internal/game"
	"solitaire/internal/httpmw"
	"solitaire/internal/telemetry"
	"solitaire/ui/page"
)

type Options struct {
	Config    *config.Config
	Logger    *zap.Logger
	Sessions  *game.MemorySessionRepo
	Telemetry telemetry.Repository
	Clock     game.Clock
	// Seed fixes the shuffle of every new table when non-zero.
	Seed int64
}

// App is the assembled server: the HTTP handler plus the session store the
// animation ticker walks.
type App struct {
	Handler  http.Handler
	Sessions *game.MemorySessionRepo

	tickEvery time.Duration
}

// RunTicker advances every table's animation until ctx is done.
func (a *App) RunTicker(ctx context.Context) {
	game.RunTicker(ctx, a.Sessions, a.tickEvery)
}

func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Sessions == nil {
		opts.Sessions = game.NewMemorySessionRepo()
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.NewMemoryRepository()
	}
	if opts.Clock == nil {
		opts.Clock = game.RealClock{}
	}

	newSession := func(id string) *game.Session {
		seed := opts.Seed
		if seed == 0 {
			seed = opts.Clock.Now().UnixNano()
		}
		return game.NewSession(id, game.Options{
			Config:    opts.Config,
			Clock:     opts.Clock,
			Rand:      rand.New(rand.NewSource(seed)),
			Logger:    opts.Logger,
			Telemetry: opts.Telemetry,
		})
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "solitaire",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	tables := game.NewHandler(opts.Sessions, newSession, opts.Logger)
	mux.HandleFunc("/api/table/state", tables.GetState)
	mux.HandleFunc("/api/table/cmd", tables.Command)
	mux.HandleFunc("/api/table/new", tables.NewTable)
	mux.HandleFunc("/api/table", tables.DeleteTable)

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts.Config); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})

	mux.HandleFunc("/api/telemetry/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var since time.Time
		if raw := r.URL.Query().Get("since"); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "since must be RFC3339"})
				return
			}
			since = t
		}
		events, err := opts.Telemetry.GetEvents(since, nil)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
			return
		}
		stats, err := telemetry.CalculateStats(events, since)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, stats)
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		for _, s := range opts.Sessions.List() {
			if err := s.Check(); err != nil {
				opts.Logger.Error("table invariant broken", zap.String("table", s.ID()), zap.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, map[string]any{
					"ok":    false,
					"error": "table " + s.ID() + " is inconsistent",
				})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "solitaire",
			"tables":  len(opts.Sessions.List()),
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		var s *game.Session
		if id := r.URL.Query().Get("table"); id != "" {
			var ok bool
			if s, ok = opts.Sessions.Get(id); !ok {
				http.NotFound(w, r)
				return
			}
		} else {
			s = opts.Sessions.GetOrCreate(game.DefaultTableID, func(id string) *game.Session {
				s := newSession(id)
				s.Loaded()
				return s
			})
		}
		templ.Handler(page.TablePage(s.Snapshot())).ServeHTTP(w, r)
	})

	tick := time.Duration(opts.Config.Animation.TickMS) * time.Millisecond
	if tick <= 0 {
		tick = 30 * time.Millisecond
	}

	return &App{
		Handler: httpmw.Chain(
			mux,
			httpmw.WithRequestID,
			httpmw.WithAccessLog(opts.Logger),
			httpmw.WithRecover(opts.Logger),
		),
		Sessions:  opts.Sessions,
		tickEvery: tick,
	}, nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
