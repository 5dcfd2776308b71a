package page

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/a-h/templ"

	"solitaire/internal/board"
	"solitaire/internal/game"
	"solitaire/internal/model"
)

// TablePage renders a plain debug view of one table. Cards are grouped by
// zone; clicking a clickable card posts card.click and reloads.
func TablePage(snap game.Snapshot) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &printer{w: w}
		p.printf(`<!doctype html><html lang="en"><head><meta charset="utf-8"><title>Solitaire</title>`)
		p.printf(`<style>%s</style></head><body>`, pageCSS)
		p.printf(`<header><h1>Solitaire</h1><p>table <code>%s</code> &middot; %s &middot; %s</p>`,
			templ.EscapeString(snap.ID), templ.EscapeString(snap.Phase.String()), templ.EscapeString(snap.Difficulty))
		p.printf(`<p>score %d &middot; moves %d &middot; time %s</p></header>`,
			snap.Score, snap.Moves, templ.EscapeString(snap.Elapsed))

		if snap.Phase != game.PhasePlay {
			p.printf(`<nav>`)
			for _, d := range []model.Difficulty{model.Easy, model.Hard} {
				p.printf(`<button onclick="cmd('game.select_difficulty',{difficulty:'%s'})">%s</button>`, d, d)
			}
			p.printf(`</nav>`)
		} else {
			p.printf(`<nav><button onclick="cmd('stock.click',{})">stock</button>`)
			p.printf(`<button onclick="cmd('game.new',{})">new game</button></nav>`)
		}

		zones := groupByZone(snap.Cards)
		p.printf(`<section class="row">`)
		p.zone(model.StockZone(), zones, true)
		p.zone(model.WasteZone(), zones, false)
		for _, s := range model.Suits {
			p.zone(model.FoundationZone(s), zones, false)
		}
		p.printf(`</section><section class="row">`)
		for i := 0; i < model.NumPiles; i++ {
			p.zone(model.TableauZone(i), zones, false)
		}
		p.printf(`</section>`)
		p.printf(`<script>%s</script></body></html>`, pageJS)
		return p.err
	})
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) zone(z model.Zone, zones map[model.Zone][]board.CardView, countOnly bool) {
	cards := zones[z]
	p.printf(`<div class="zone"><h2>%s</h2>`, templ.EscapeString(z.String()))
	if countOnly {
		p.printf(`<p>%d cards</p></div>`, len(cards))
		return
	}
	p.printf(`<ol>`)
	for _, c := range cards {
		if !c.Visible {
			continue
		}
		class := "card"
		if c.Clickable {
			class += " clickable"
		}
		p.printf(`<li class="%s" data-card="%d"`, class, c.ID)
		if c.Clickable {
			p.printf(` onclick="cmd('card.click',{card:%d})"`, c.ID)
		}
		p.printf(`>%s</li>`, templ.EscapeString(c.Face))
	}
	p.printf(`</ol></div>`)
}

func groupByZone(cards []board.CardView) map[model.Zone][]board.CardView {
	out := make(map[model.Zone][]board.CardView)
	for _, c := range cards {
		out[c.Zone] = append(out[c.Zone], c)
	}
	for z := range out {
		cs := out[z]
		sort.Slice(cs, func(i, j int) bool { return cs[i].Order < cs[j].Order })
	}
	return out
}

const pageCSS = `body{font-family:monospace;background:#0b5d2a;color:#f4f4f4;margin:1rem}
.row{display:flex;gap:1rem;margin-bottom:1rem}
.zone{min-width:8rem}
.zone h2{font-size:.9rem;margin:0 0 .3rem}
ol{list-style:none;padding:0;margin:0}
.card{padding:.1rem .3rem;border:1px solid #ccc;margin-bottom:2px;background:#fff;color:#222}
.clickable{cursor:pointer;outline:2px solid gold}`

const pageJS = `function cmd(name,args){
  const q=new URLSearchParams(location.search);const t=q.get('table');
  const url='/api/table/cmd'+(t?'?table='+encodeURIComponent(t):'');
  fetch(url,{method:'POST',headers:{'Content-Type':'application/json'},body:JSON.stringify({cmd:name,args:args})})
    .then(()=>location.reload());
}`
