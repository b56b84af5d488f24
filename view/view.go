// Package view is an interactive terminal viewer for sweep outcomes. It draws
// the outcome image with half-block characters and replays any cell the user
// clicks on. For well scenarios the starting velocity and the camera can be
// changed from the keyboard and the image regenerated.
package view

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phil-mansfield/gowells"
	"github.com/phil-mansfield/gowells/geom"
	"github.com/phil-mansfield/gowells/physics"
)

var (
	// FrameTime is the wall-clock time between frames. One outer timestep
	// of the active replay is run per frame.
	FrameTime = 16 * time.Millisecond
	// SampleRate is the trajectory sample rate of new replays.
	SampleRate = gowells.DefaultSampleRate
)

// Limits of the interactive parameters. Step is the amount one key press
// moves the velocity or the camera by.
const (
	DefaultStep      = 2.0
	MinStep, MaxStep = 0.1, 50.0
	MinZoom, MaxZoom = 0.1, 10.0

	stepRate = 1.2
	zoomRate = 1.1
)

// Params are the sweep parameters which can be changed from the viewer. Vel,
// Offset and Zoom only apply to well scenarios.
type Params struct {
	Method physics.Method
	Vel    geom.Vec2
	Offset geom.Vec2
	Zoom   float64
}

// Sweeper computes the scenario, grid and outcome grid for a set of params.
type Sweeper func(p Params) (gowells.Scenario, gowells.Grid, *gowells.Outcomes, error)

// Viewer holds the state of the terminal viewer. All methods must be called
// from the goroutine which runs the frame loop.
type Viewer struct {
	screen tcell.Screen

	sc     gowells.Scenario
	grid   gowells.Grid
	out    *gowells.Outcomes
	colors func(gowells.Outcome) color.RGBA
	wells  []physics.Well
	masses []float64
	// pairs is set when Outcome.Body indexes body pairs.
	pairs bool

	// params are the parameters of the next regeneration and shown those of
	// the image on screen.
	params, shown Params
	step          float64
	explore       bool
	sweep         Sweeper
	err           error

	replay *gowells.Replay
	cellX  int
	cellY  int

	// scale is the number of outcome cells per half-block pixel.
	scale         float64
	width, height int
}

// New returns a Viewer drawing to screen. colors gives the color of each
// outcome cell, and wells are drawn on top of the image if the grid sweeps
// particle positions. p are the parameters out was computed with.
func New(
	screen tcell.Screen, sc gowells.Scenario, grid gowells.Grid,
	out *gowells.Outcomes, colors func(gowells.Outcome) color.RGBA,
	p Params,
) *Viewer {
	v := &Viewer{
		screen: screen, colors: colors,
		params: p, shown: p, step: DefaultStep,
	}
	v.setScenario(sc, grid, out)
	return v
}

func (v *Viewer) setScenario(
	sc gowells.Scenario, grid gowells.Grid, out *gowells.Outcomes,
) {
	v.sc, v.grid, v.out = sc, grid, out
	v.wells, v.pairs, v.explore = nil, false, false
	switch s := sc.(type) {
	case *gowells.WellScenario:
		v.wells = s.Wells
		v.explore = true
	case *gowells.BodyScenario:
		v.pairs = true
	}
	v.masses = v.masses[:0]
	for _, b := range sc.Initial() {
		v.masses = append(v.masses, b.Mass)
	}
	v.resize()
}

// SetSweeper sets the function used by Regenerate.
func (v *Viewer) SetSweeper(s Sweeper) { v.sweep = s }

// resize recomputes the image scale from the screen size. The bottom row is
// reserved for the status line.
func (v *Viewer) resize() {
	v.width, v.height = v.screen.Size()
	rows := v.height - 1
	if v.width < 1 || rows < 1 {
		v.scale = 1
		return
	}
	v.scale = math.Max(
		float64(v.out.Width)/float64(v.width),
		float64(v.out.Height)/float64(2*rows),
	)
	if v.scale <= 0 {
		v.scale = 1
	}
}

// Method returns the method the next replay will use.
func (v *Viewer) Method() physics.Method { return v.params.Method }

// Params returns the parameters the next regeneration will use.
func (v *Viewer) Params() Params { return v.params }

// Step returns the current key step size.
func (v *Viewer) Step() float64 { return v.step }

// Outcomes returns the outcome grid on screen.
func (v *Viewer) Outcomes() *gowells.Outcomes { return v.out }

// Grid returns the grid of the outcomes on screen.
func (v *Viewer) Grid() gowells.Grid { return v.grid }

// Stale returns true if the image on screen was computed with different
// parameters than the current ones.
func (v *Viewer) Stale() bool { return v.params != v.shown }

// Replay returns the active replay, or nil if there is none.
func (v *Viewer) Replay() *gowells.Replay { return v.replay }

// ToggleMethod switches between RK4 and Euler for the next replay and the
// next regeneration.
func (v *Viewer) ToggleMethod() {
	if v.params.Method == physics.Euler {
		v.params.Method = physics.RK4
	} else {
		v.params.Method = physics.Euler
	}
}

// MoveVel changes the starting velocity by (dx, dy) steps.
func (v *Viewer) MoveVel(dx, dy float64) {
	if v.explore {
		v.params.Vel = v.params.Vel.Add(geom.Vec2{X: dx, Y: dy}.Scale(v.step))
	}
}

// MoveCamera changes the camera offset by (dx, dy) steps.
func (v *Viewer) MoveCamera(dx, dy float64) {
	if v.explore {
		v.params.Offset = v.params.Offset.Add(geom.Vec2{X: dx, Y: dy}.Scale(v.step))
	}
}

// ZoomBy multiplies the zoom by f, clamped to [MinZoom, MaxZoom].
func (v *Viewer) ZoomBy(f float64) {
	if v.explore {
		v.params.Zoom = clamp(v.params.Zoom*f, MinZoom, MaxZoom)
	}
}

// ScaleStep multiplies the step size by f, clamped to [MinStep, MaxStep].
func (v *Viewer) ScaleStep(f float64) {
	v.step = clamp(v.step*f, MinStep, MaxStep)
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}

// Regenerate recomputes the outcome grid with the current parameters if the
// image on screen is stale. The active replay is stopped.
func (v *Viewer) Regenerate() error {
	if !v.Stale() {
		return nil
	}
	if v.sweep == nil {
		return fmt.Errorf("No sweeper set, cannot regenerate the image.")
	}

	sc, grid, out, err := v.sweep(v.params)
	if err != nil {
		return err
	}
	v.replay = nil
	v.shown = v.params
	v.setScenario(sc, grid, out)
	return nil
}

// Clear stops the active replay.
func (v *Viewer) Clear() { v.replay = nil }

// Cell returns the outcome cell under the terminal cell (col, row).
func (v *Viewer) Cell(col, row int) (ix, iy int, ok bool) {
	ix = int(float64(col) * v.scale)
	iy = int(float64(2*row) * v.scale)
	return ix, iy, v.out.Contains(ix, iy)
}

// Click starts a replay of the cell under the terminal cell (col, row). It
// returns false if there is no cell there.
func (v *Viewer) Click(col, row int) bool {
	ix, iy, ok := v.Cell(col, row)
	if !ok {
		return false
	}
	init := v.grid.Bodies(v.sc.Initial(), ix, iy)
	v.replay = gowells.NewReplay(v.sc, init, v.params.Method)
	v.replay.SampleRate = SampleRate
	v.cellX, v.cellY = ix, iy
	return true
}

// Tick advances the active replay by one outer timestep.
func (v *Viewer) Tick() {
	if v.replay != nil {
		v.replay.Advance()
	}
}

// HandleEvent reacts to a single tcell event and returns false if the viewer
// should exit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			v.err = v.Regenerate()
		case tcell.KeyUp:
			v.MoveVel(0, -1)
		case tcell.KeyDown:
			v.MoveVel(0, 1)
		case tcell.KeyLeft:
			v.MoveVel(-1, 0)
		case tcell.KeyRight:
			v.MoveVel(1, 0)
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				v.ToggleMethod()
			case 'c', 'C':
				v.Clear()
			case 'w', 'W':
				v.MoveCamera(0, -1)
			case 's', 'S':
				v.MoveCamera(0, 1)
			case 'a', 'A':
				v.MoveCamera(-1, 0)
			case 'd', 'D':
				v.MoveCamera(1, 0)
			case 'q', 'Q':
				v.ZoomBy(1 / zoomRate)
			case 'e', 'E':
				v.ZoomBy(zoomRate)
			case '+', '=':
				v.ScaleStep(stepRate)
			case '-', '_':
				v.ScaleStep(1 / stepRate)
			}
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 != 0 {
			v.Click(ev.Position())
		}
	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	}
	return true
}

// Status returns the text of the status line.
func (v *Viewer) Status() string {
	if v.replay == nil {
		status := fmt.Sprintf(
			"Click to replay a cell. [space] method: %s", v.params.Method,
		)
		if v.explore {
			p := v.params
			status += fmt.Sprintf(
				"  vel (%.1f, %.1f)  cam (%.1f, %.1f)  zoom %.2f  step %.1f",
				p.Vel.X, p.Vel.Y, p.Offset.X, p.Offset.Y, p.Zoom, v.step,
			)
		}
		if v.Stale() {
			status += "  [enter] regenerate"
		}
		if v.err != nil {
			status = v.err.Error() + "  " + status
		}
		return status + "  [esc] quit"
	}

	prefix := fmt.Sprintf("(%d, %d) %s: ", v.cellX, v.cellY, v.replay.Method())
	out := v.replay.Outcome()
	switch {
	case out.Collided && v.pairs:
		i, j := physics.Pair(len(v.masses), out.Body)
		return prefix + fmt.Sprintf(
			"Bodies %d and %d collided at timestep %d", i, j, out.Timestep,
		)
	case out.Collided || v.replay.Finished():
		return prefix + out.String()
	}
	return prefix + fmt.Sprintf("Simulating... timestep %d", v.replay.Timestep())
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (v *Viewer) pixel(x, y int) tcell.Color {
	ix, iy := int(float64(x)*v.scale), int(float64(y)*v.scale)
	if !v.out.Contains(ix, iy) {
		return tcell.ColorBlack
	}
	return rgb(v.colors(v.out.At(ix, iy)))
}

// Draw redraws the whole screen.
func (v *Viewer) Draw() {
	v.screen.Clear()

	for row := 0; row < v.height-1; row++ {
		for col := 0; col < v.width; col++ {
			style := tcell.StyleDefault.
				Foreground(v.pixel(col, 2*row)).
				Background(v.pixel(col, 2*row+1))
			v.screen.SetContent(col, row, '▀', nil, style)
		}
	}

	project := v.projection()
	if project != nil {
		for _, w := range v.wells {
			if col, row, ok := project(w.Pos); ok {
				style := tcell.StyleDefault.Foreground(rgb(color.RGBA{
					w.Color[0], w.Color[1], w.Color[2], 255,
				}))
				v.screen.SetContent(col, row, '●', nil, style)
			}
		}
	}

	if v.replay != nil {
		v.drawReplay(project)
	}

	status := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, r := range []rune(v.Status()) {
		if i >= v.width {
			break
		}
		v.screen.SetContent(i, v.height-1, r, nil, status)
	}

	v.screen.Show()
}

func (v *Viewer) drawReplay(project func(geom.Vec2) (int, int, bool)) {
	if project == nil {
		project = v.fitProjection()
	}

	trail := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	for _, traj := range v.replay.Trajectories() {
		for _, p := range traj {
			if col, row, ok := project(p); ok {
				v.screen.SetContent(col, row, '·', nil, trail)
			}
		}
	}

	head := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for _, p := range v.replay.Positions() {
		if col, row, ok := project(p); ok {
			v.screen.SetContent(col, row, '◆', nil, head)
		}
	}
}

// projection returns the map from world coordinates to terminal cells if the
// grid sweeps the x and y positions of a single body, and nil otherwise.
func (v *Viewer) projection() func(geom.Vec2) (int, int, bool) {
	gx, gy := v.grid.X, v.grid.Y
	if gx.Field != gowells.PosX || gy.Field != gowells.PosY || gx.Body != gy.Body {
		return nil
	}

	return func(p geom.Vec2) (int, int, bool) {
		if !inRange(gx, p.X) || !inRange(gy, p.Y) {
			return 0, 0, false
		}
		col := int(float64(gx.Cell(p.X)) / v.scale)
		row := int(float64(gy.Cell(p.Y)) / v.scale / 2)
		return col, row, col < v.width && row < v.height-1
	}
}

func inRange(ax gowells.Axis, x float64) bool {
	lo, hi := math.Min(ax.Min, ax.Max), math.Max(ax.Min, ax.Max)
	return x >= lo && x <= hi
}

// fitProjection returns a map from world coordinates to terminal cells
// centered on the replay's center of mass and wide enough to show every
// recorded trajectory point.
func (v *Viewer) fitProjection() func(geom.Vec2) (int, int, bool) {
	pos := v.replay.Positions()
	bodies := make([]physics.Body, len(pos))
	for i := range bodies {
		bodies[i].Pos = pos[i]
		if i < len(v.masses) {
			bodies[i].Mass = v.masses[i]
		}
	}
	com := physics.CenterOfMass(bodies)

	extent := 1.0
	for _, traj := range v.replay.Trajectories() {
		for _, p := range traj {
			d := p.Sub(com)
			extent = math.Max(extent, math.Max(math.Abs(d.X), math.Abs(d.Y)))
		}
	}

	rows := v.height - 1
	// Terminal cells are about twice as tall as they are wide.
	halfW, halfH := float64(v.width)/2, float64(rows)/2
	perUnit := math.Min(halfW/2, halfH) / extent

	return func(p geom.Vec2) (int, int, bool) {
		d := p.Sub(com)
		col := int(halfW + 2*d.X*perUnit)
		row := int(halfH + d.Y*perUnit)
		return col, row, col >= 0 && row >= 0 && col < v.width && row < rows
	}
}

// Run runs the frame loop until the user quits. The caller owns screen and
// must call Fini on it.
func (v *Viewer) Run() {
	v.screen.EnableMouse()

	ticker := time.NewTicker(FrameTime)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	go v.screen.ChannelEvents(events, quit)
	defer close(quit)

	v.Draw()
	for {
		select {
		case ev := <-events:
			if ev == nil || !v.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			v.Tick()
			v.Draw()
		}
	}
}

// Show opens a terminal screen, runs a Viewer on it and restores the
// terminal on exit.
func Show(
	sc gowells.Scenario, grid gowells.Grid, out *gowells.Outcomes,
	colors func(gowells.Outcome) color.RGBA, p Params, sweep Sweeper,
) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := New(screen, sc, grid, out, colors, p)
	v.SetSweeper(sweep)
	v.Run()
	return nil
}
