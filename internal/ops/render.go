package ops

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"solitaire/internal/board"
	"solitaire/internal/game"
	"solitaire/internal/model"
)

// RenderTable writes a text view of snap: one line per zone, cards in
// order, face-down cards as "##". Waste cards outside the visible fan are
// left out.
func RenderTable(w io.Writer, snap game.Snapshot) error {
	byZone := make(map[model.Zone][]board.CardView)
	for _, c := range snap.Cards {
		byZone[c.Zone] = append(byZone[c.Zone], c)
	}

	zones := []model.Zone{model.StockZone(), model.WasteZone()}
	for _, s := range model.Suits {
		zones = append(zones, model.FoundationZone(s))
	}
	for i := 0; i < model.NumPiles; i++ {
		zones = append(zones, model.TableauZone(i))
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "phase\t%s\n", snap.Phase)
	fmt.Fprintf(tw, "score\t%d (moves %d)\n", snap.Score, snap.Moves)
	for _, z := range zones {
		cards := byZone[z]
		sort.Slice(cards, func(i, j int) bool { return cards[i].Order < cards[j].Order })
		if z.IsStock() {
			fmt.Fprintf(tw, "%s\t%d cards\n", z, len(cards))
			continue
		}
		faces := make([]string, 0, len(cards))
		for _, c := range cards {
			if !c.Visible {
				continue
			}
			faces = append(faces, shortFace(c.Face))
		}
		fmt.Fprintf(tw, "%s\t%s\n", z, strings.Join(faces, " "))
	}
	return tw.Flush()
}

var suitLetters = map[string]string{
	"heart":   "H",
	"diamond": "D",
	"club":    "C",
	"spade":   "S",
}

var rankLetters = [...]string{"", "A", "2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K"}

// shortFace turns "heart_01" into "AH".
func shortFace(face string) string {
	if face == model.FaceDownKey {
		return "##"
	}
	i := strings.LastIndexByte(face, '_')
	r := rankOf(face)
	if i < 0 || r < model.Ace || r > model.King {
		return face
	}
	return rankLetters[r] + suitLetters[face[:i]]
}
