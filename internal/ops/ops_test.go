package ops

import (
	"bytes"
	"strings"
	"testing"

	"solitaire/internal/config"
	"solitaire/internal/game"
	"solitaire/internal/model"
)

func TestShortFace(t *testing.T) {
	cases := map[string]string{
		"heart_01":   "AH",
		"diamond_10": "TD",
		"club_12":    "QC",
		"spade_13":   "KS",
		"facedown":   "##",
		"joker":      "joker",
		"spade_99":   "spade_99",
	}
	for in, want := range cases {
		if got := shortFace(in); got != want {
			t.Fatalf("shortFace(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderTable_DealtLayout(t *testing.T) {
	s := game.NewSession("render", game.Options{Config: config.Default()})
	perm := make([]int, model.DeckSize)
	for i := range perm {
		perm[i] = i
	}
	if err := s.StartNewGameWith(model.Easy, perm); err != nil {
		t.Fatalf("deal: %v", err)
	}

	var buf bytes.Buffer
	if err := RenderTable(&buf, s.Snapshot()); err != nil {
		t.Fatalf("render: %v", err)
	}

	lines := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		lines[fields[0]] = strings.Join(fields[1:], " ")
	}

	if got := lines["stock"]; got != "24 cards" {
		t.Fatalf("stock line = %q", got)
	}
	if got := lines["tableau0"]; got != "AH" {
		t.Fatalf("tableau0 line = %q", got)
	}
	if got := lines["tableau6"]; got != "## ## ## ## ## ## 2C" {
		t.Fatalf("tableau6 line = %q", got)
	}
	if got := lines["waste"]; got != "" {
		t.Fatalf("waste line = %q", got)
	}
}

func TestSimulate_IsDeterministicAndConsistent(t *testing.T) {
	for _, d := range []model.Difficulty{model.Easy, model.Hard} {
		a := NewSeededSession(config.Default(), 42, d, nil)
		b := NewSeededSession(config.Default(), 42, d, nil)

		ra := Simulate(a, 500)
		rb := Simulate(b, 500)
		if ra != rb {
			t.Fatalf("%s: same seed gave %+v and %+v", d, ra, rb)
		}
		if ra.Steps > 500 {
			t.Fatalf("%s: ran %d steps past the cap", d, ra.Steps)
		}
		if ra.Moves != ra.Steps {
			t.Fatalf("%s: every click is one move, got moves=%d steps=%d", d, ra.Moves, ra.Steps)
		}
		if !ra.Cleared && !ra.Stalled && ra.Steps != 500 {
			t.Fatalf("%s: stopped early without a reason: %+v", d, ra)
		}
		if err := a.Check(); err != nil {
			t.Fatalf("%s: table invariants broken: %v", d, err)
		}
	}
}

func TestSimulate_StopsWhenNotPlaying(t *testing.T) {
	s := game.NewSession("idle", game.Options{})
	res := Simulate(s, 10)
	if res.Steps != 0 || res.Cleared {
		t.Fatalf("expected no steps on an undealt table, got %+v", res)
	}
}
