package terminal

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/golangdaddy/laneshift/pkg/barrier"
	"github.com/golangdaddy/laneshift/pkg/transform"
	"github.com/golangdaddy/laneshift/pkg/world"
)

const (
	laneCells  = 5 // Columns per lane
	statusRows = 2 // Rows kept for the status lines
)

var (
	roadStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	edgeStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dividerStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	barrierStyle = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	leadStyle    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	movingStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	idleStyle    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	textStyle    = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Renderer draws a world onto a tcell screen, one character per cell. Road
// columns are sized per lane; rows cover the stretch between the lane heads.
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a renderer drawing on screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// grid maps world coordinates to cells for the current screen size
type grid struct {
	left, width int // Road columns
	rows        int
	layout      world.Layout
}

func (r *Renderer) grid(layout world.Layout) grid {
	w, h := r.screen.Size()
	width := layout.Lanes * laneCells
	return grid{
		left:   (w - width) / 2,
		width:  width,
		rows:   max(h-statusRows, 1),
		layout: layout,
	}
}

// cell returns the column and row of p, and whether it is on screen
func (g grid) cell(p transform.Vec3, screenW int) (int, int, bool) {
	fx := (p.X + g.layout.Width()/2) / g.layout.Width()
	fz := (g.layout.SpawnDistance - p.Z) / (2 * g.layout.SpawnDistance)
	x := g.left + int(math.Floor(fx*float64(g.width)))
	y := int(math.Floor(fz * float64(g.rows)))
	return x, y, x >= 0 && x < screenW && y >= 0 && y < g.rows
}

// Draw renders w and shows the screen
func (r *Renderer) Draw(w *world.World) {
	r.screen.Clear()
	sw, _ := r.screen.Size()
	g := r.grid(w.Layout())

	for y := 0; y < g.rows; y++ {
		for c := 0; c <= g.width; c++ {
			ch, style := '·', roadStyle
			switch {
			case c == 0 || c == g.width:
				ch, style = '│', edgeStyle
			case c%laneCells == 0:
				if y%2 == 0 {
					ch, style = '┊', dividerStyle
				}
			}
			r.screen.SetContent(g.left+c, y, ch, nil, style)
		}
	}

	for i, b := range w.Boxes() {
		style := barrierStyle
		if i == 0 {
			style = leadStyle
		}
		// Sample the box along its long axis
		axis := b.Rotation.ForwardVector()
		steps := int(math.Ceil(2 * b.HalfExtents.Z))
		for s := 0; s <= steps; s++ {
			off := -b.HalfExtents.Z + float64(s)*2*b.HalfExtents.Z/float64(max(steps, 1))
			if x, y, ok := g.cell(b.Center.Add(axis.Scale(off)), sw); ok {
				r.screen.SetContent(x, y, '█', nil, style)
			}
		}
	}

	for _, car := range w.Cars() {
		x, y, ok := g.cell(car.Position(), sw)
		if !ok {
			continue
		}
		ch := '▲'
		if car.Rotation().ForwardVector().Z < 0 {
			ch = '▼'
		}
		c := car.Color()
		r.screen.SetContent(x, y, ch, nil, tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))))
	}

	r.drawStatus(w, g.rows)
	r.screen.Show()
}

func (r *Renderer) drawStatus(w *world.World, row int) {
	b := w.Barrier()
	style := idleStyle
	if b.Moving() {
		style = movingStyle
	}
	line := fmt.Sprintf("barrier %s  %s  %s", b.Status(), b.Direction(), b.Phase())
	r.print(0, row, line, style)

	x := 0
	for _, m := range w.Managers() {
		s := fmt.Sprintf("%s:%s(%d)  ", m.Name(), m.Density(), len(m.Lanes()))
		r.print(x, row+1, s, textStyle)
		x += len(s)
	}
	r.print(x, row+1, fmt.Sprintf("cars:%d  t=%.1fs", len(w.Cars()), w.Time()), textStyle)
}

func (r *Renderer) print(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

// Action is a key binding outcome
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionDecrease
	ActionIncrease
	ActionClose
	ActionLeftDensity
	ActionRightDensity
)

// KeyAction maps a key event to an Action
func KeyAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyLeft:
		return ActionDecrease
	case tcell.KeyRight:
		return ActionIncrease
	case tcell.KeyDown:
		return ActionClose
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return ActionQuit
		case 'a', 'A':
			return ActionLeftDensity
		case 'd', 'D':
			return ActionRightDensity
		case 'h':
			return ActionDecrease
		case 'l':
			return ActionIncrease
		case 'j', ' ':
			return ActionClose
		}
	}
	return ActionNone
}

// Apply performs a on w. Density keys pick the leftmost and rightmost side
// on screen, which are the reverse and forward managers.
func Apply(a Action, w *world.World) {
	b := w.Barrier()
	switch a {
	case ActionDecrease:
		b.Decrease()
	case ActionIncrease:
		b.Increase()
	case ActionClose:
		b.SetDirection(barrier.DirectionClosed)
	case ActionLeftDensity, ActionRightDensity:
		want := barrier.DirectionReverse
		if a == ActionRightDensity {
			want = barrier.DirectionForward
		}
		for _, m := range w.Managers() {
			if m.Direction() == want {
				m.NextDensity()
				return
			}
		}
	}
}
