package console

import (
	"github.com/gdamore/tcell/v2"

	"github.com/udisondev/skirmish/internal/battle"
	"github.com/udisondev/skirmish/internal/geo"
)

var (
	styleFloor   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleMessage = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

const highlightColor = tcell.ColorDarkGreen

func alignmentColor(a battle.Alignment) tcell.Color {
	switch a {
	case battle.AlignmentHero:
		return tcell.ColorBlue
	case battle.AlignmentEnemy:
		return tcell.ColorRed
	case battle.AlignmentNeutral:
		return tcell.ColorOlive
	default:
		return tcell.ColorWhite
	}
}

// Highlight implements targeting.Highlighter: cells within rng steps of
// origin that pass valid are drawn on a green background until the
// returned function runs.
func (v *View) Highlight(origin geo.Cell, rng int, valid func(geo.Cell) bool) func() {
	var marked []geo.Cell
	for _, c := range v.grid.Cells() {
		if geo.Manhattan(origin, c) > rng || v.highlights[c] || !valid(c) {
			continue
		}
		v.highlights[c] = true
		marked = append(marked, c)
	}
	v.draw()

	return func() {
		for _, c := range marked {
			delete(v.highlights, c)
		}
		v.draw()
	}
}

// Highlighted reports whether c is currently highlighted.
func (v *View) Highlighted(c geo.Cell) bool { return v.highlights[c] }

// Render redraws the whole view.
func (v *View) Render() { v.draw() }

func (v *View) draw() {
	v.screen.Clear()

	for _, c := range v.grid.Cells() {
		r, style := tileRune(v.grid, c)
		if v.highlights[c] {
			style = style.Background(highlightColor)
		}
		if u, ok := v.battle.UnitAt(c); ok {
			r = unitRune(u)
			style = style.Foreground(alignmentColor(u.Alignment())).Bold(u == v.battle.ActiveUnit())
		}
		v.screen.SetContent(c.X, c.Y, r, nil, style)
	}

	row := v.grid.Height() + 1
	drawText(v.screen, 0, row, styleStatus, v.prompt)
	drawText(v.screen, 0, row+1, styleMessage, v.message)

	v.screen.ShowCursor(v.cursor.X, v.cursor.Y)
	v.screen.Show()
}

func tileRune(g *geo.Grid, c geo.Cell) (rune, tcell.Style) {
	if g.IsWall(c) {
		return geo.TileWall, styleWall
	}
	if h := g.HeightAt(c); h > 0 {
		return rune('0' + h), styleFloor
	}
	return geo.TileFloor, styleFloor
}

func unitRune(u *battle.Unit) rune {
	for _, r := range u.Name() {
		return r
	}
	return '@'
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
