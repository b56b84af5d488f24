package io

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/gowells"
	"github.com/phil-mansfield/gowells/geom"
	"github.com/phil-mansfield/gowells/physics"
)

// System names accepted by the System key of a [Sweep] section.
const (
	WellsSystem     = "Wells"
	ThreeBodySystem = "ThreeBody"

	// DefaultWellColor is used for wells which do not set Color.
	DefaultWellColor = "#c8c8c8"
)

// SweepConfig is the [Sweep] section of a config file. Zero-valued optional
// fields fall back to the defaults of the chosen system.
type SweepConfig struct {
	// Required
	System string

	// Optional
	Method, Output          string
	PrependName, AppendName string

	G                   float64
	Timesteps, Substeps int
	FrameTime           float64

	// Wells only.
	Wells                        string
	Threshold                    float64
	ParticleMass, ParticleRadius float64
	VelX, VelY                   float64
	OffsetX, OffsetY, Zoom       float64

	Width, Height  int
	XBody, YBody   int
	XField, YField string
	XMin, XMax     float64
	YMin, YMax     float64

	SampleRate           int
	LogFile, ProfileFile string
}

// WellConfig is a [Well "name"] subsection.
type WellConfig struct {
	// Required
	X, Y, Mass float64

	// Optional
	Radius float64
	Color  string

	// Optional, "undocumented"
	Name string
}

// BodyConfig is a [Body "name"] subsection.
type BodyConfig struct {
	// Required
	X, Y, Mass float64

	// Optional
	VelX, VelY, Radius float64

	// Optional, "undocumented"
	Name string
}

// SweepWrapper is the full contents of a config file.
type SweepWrapper struct {
	Sweep SweepConfig
	Well  map[string]*WellConfig
	Body  map[string]*BodyConfig
}

func DefaultSweepWrapper() *SweepWrapper {
	con := SweepConfig{}
	con.Method = physics.RK4.String()
	con.Output = "."
	con.Zoom = 1
	con.SampleRate = gowells.DefaultSampleRate
	return &SweepWrapper{Sweep: con}
}

// ReadSweepConfig reads a config file into a SweepWrapper which starts from
// the values of DefaultSweepWrapper. Files ending in .toml are read as TOML
// and everything else as INI.
func ReadSweepConfig(fname string) (*SweepWrapper, error) {
	wrap := DefaultSweepWrapper()

	var err error
	if strings.EqualFold(filepath.Ext(fname), ".toml") {
		_, err = toml.DecodeFile(fname, wrap)
	} else {
		err = gcfg.ReadFileInto(wrap, fname)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config file %s: %w", fname, err)
	}

	return wrap, nil
}

func (con *SweepConfig) ValidSystem() bool {
	return con.IsWells() || con.IsThreeBody()
}

func (con *SweepConfig) IsWells() bool {
	return strings.EqualFold(strings.TrimSpace(con.System), WellsSystem)
}

func (con *SweepConfig) IsThreeBody() bool {
	return strings.EqualFold(strings.TrimSpace(con.System), ThreeBodySystem)
}

func (con *SweepConfig) ValidMethod() bool {
	_, ok := physics.MethodFromString(con.Method)
	return ok
}

func (con *SweepConfig) ValidOutput() bool {
	return con.Output != ""
}

func (con *SweepConfig) ValidClock() bool {
	return con.Timesteps >= 0 && con.Substeps >= 0 && con.FrameTime >= 0
}

func (con *SweepConfig) ValidG() bool {
	return con.G >= 0
}

func (con *SweepConfig) ValidZoom() bool {
	return con.Zoom > 0
}

func (con *SweepConfig) ValidWidth() bool {
	return con.Width >= 0 && con.Height >= 0
}

func (con *SweepConfig) ValidAxes() bool {
	if (con.XField == "") != (con.YField == "") {
		return false
	}
	if con.XField == "" {
		return true
	}
	_, okX := gowells.FieldFromString(con.XField)
	_, okY := gowells.FieldFromString(con.YField)
	return okX && okY
}

func (con *SweepConfig) ValidSampleRate() bool {
	return con.SampleRate > 0
}

func (con *SweepConfig) ValidLogFile() bool {
	return con.LogFile != ""
}

func (con *SweepConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

// MethodValue returns the integration method named by Method. It returns
// RK4 if the name is not recognized.
func (con *SweepConfig) MethodValue() physics.Method {
	m, _ := physics.MethodFromString(con.Method)
	return m
}

func (well *WellConfig) CheckInit(name string) error {
	if well.Mass <= 0 {
		return fmt.Errorf(
			"Need to specify a positive Mass for Well '%s'.", name,
		)
	} else if well.Radius < 0 {
		return fmt.Errorf(
			"Well '%s' given a negative radius, %g.", name, well.Radius,
		)
	}

	if well.Radius == 0 {
		well.Radius = physics.WellRadius(well.Mass)
	}

	well.Color = strings.TrimSpace(well.Color)
	if well.Color == "" {
		well.Color = DefaultWellColor
	} else if !strings.HasPrefix(well.Color, "#") {
		well.Color = "#" + well.Color
	}
	if _, err := colorful.Hex(well.Color); err != nil {
		return fmt.Errorf(
			"Color of Well '%s' must be a hex code like #ff6464, but is '%s'.",
			name, well.Color,
		)
	}

	well.Name = name
	return nil
}

// Well converts a checked WellConfig into a physics.Well.
func (well *WellConfig) Well() physics.Well {
	c, _ := colorful.Hex(well.Color)
	r, g, b := c.RGB255()
	return physics.Well{
		Pos:    geom.Vec2{X: well.X, Y: well.Y},
		Mass:   well.Mass,
		Radius: well.Radius,
		Color:  [3]uint8{r, g, b},
	}
}

func (body *BodyConfig) CheckInit(name string) error {
	if body.Mass <= 0 {
		return fmt.Errorf(
			"Need to specify a positive Mass for Body '%s'.", name,
		)
	} else if body.Radius < 0 {
		return fmt.Errorf(
			"Body '%s' given a negative radius, %g.", name, body.Radius,
		)
	}

	if body.Radius == 0 {
		body.Radius = 1
	}
	body.Name = name
	return nil
}

func (body *BodyConfig) Body() physics.Body {
	return physics.Body{
		Pos:    geom.Vec2{X: body.X, Y: body.Y},
		Vel:    geom.Vec2{X: body.VelX, Y: body.VelY},
		Mass:   body.Mass,
		Radius: body.Radius,
	}
}

func sortedNames[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Wells returns the wells named by [Well] subsections, ordered by name,
// followed by those in the Wells table file. If neither is given, the wells
// of gowells.DefaultWellScenario are returned.
func (wrap *SweepWrapper) Wells() ([]physics.Well, error) {
	wells := []physics.Well{}
	for _, name := range sortedNames(wrap.Well) {
		well := wrap.Well[name]
		if err := well.CheckInit(name); err != nil {
			return nil, err
		}
		wells = append(wells, well.Well())
	}

	if wrap.Sweep.Wells != "" {
		table, err := ReadWellTable(wrap.Sweep.Wells)
		if err != nil {
			return nil, err
		}
		wells = append(wells, table...)
	}

	if len(wells) == 0 {
		return gowells.DefaultWellScenario().Wells, nil
	}
	return wells, nil
}

// Bodies returns the bodies named by [Body] subsections, ordered by name. If
// there are none, the bodies of gowells.DefaultBodyScenario are returned.
func (wrap *SweepWrapper) Bodies() ([]physics.Body, error) {
	if len(wrap.Body) == 0 {
		return gowells.DefaultBodyScenario().Bodies, nil
	}

	bodies := []physics.Body{}
	for _, name := range sortedNames(wrap.Body) {
		body := wrap.Body[name]
		if err := body.CheckInit(name); err != nil {
			return nil, err
		}
		bodies = append(bodies, body.Body())
	}
	return bodies, nil
}

// clock overrides the fields of c which are set in con.
func (con *SweepConfig) clock(c gowells.Clock) gowells.Clock {
	if con.Timesteps > 0 {
		c.Timesteps = con.Timesteps
	}
	if con.Substeps > 0 {
		c.Substeps = con.Substeps
	}
	if con.FrameTime > 0 {
		c.FrameTime = con.FrameTime
	}
	return c
}

func setIfPositive(dst *float64, x float64) {
	if x > 0 {
		*dst = x
	}
}

// Scenario builds the scenario described by the config file.
func (wrap *SweepWrapper) Scenario() (gowells.Scenario, error) {
	con := &wrap.Sweep

	switch {
	case con.IsWells():
		sc := gowells.DefaultWellScenario()
		wells, err := wrap.Wells()
		if err != nil {
			return nil, err
		}
		sc.Wells = wells
		setIfPositive(&sc.G, con.G)
		setIfPositive(&sc.Threshold, con.Threshold)
		setIfPositive(&sc.ParticleMass, con.ParticleMass)
		setIfPositive(&sc.ParticleRadius, con.ParticleRadius)
		sc.StartVel = geom.Vec2{X: con.VelX, Y: con.VelY}
		sc.Timing = con.clock(sc.Timing)
		return sc, nil

	case con.IsThreeBody():
		sc := gowells.DefaultBodyScenario()
		bodies, err := wrap.Bodies()
		if err != nil {
			return nil, err
		}
		sc.Bodies = bodies
		setIfPositive(&sc.G, con.G)
		sc.Timing = con.clock(sc.Timing)
		return sc, nil
	}

	return nil, fmt.Errorf(
		"System must be one of [%s | %s], but is '%s'.",
		WellsSystem, ThreeBodySystem, con.System,
	)
}

// Grid builds the sweep grid described by the config file. By default the
// Wells system sweeps the particle's starting position through the camera
// and the ThreeBody system sweeps the y-velocities of the first two bodies.
func (wrap *SweepWrapper) Grid() (gowells.Grid, error) {
	con := &wrap.Sweep
	if !con.ValidWidth() {
		return gowells.Grid{}, fmt.Errorf(
			"Width and Height must be non-negative, but are %d and %d.",
			con.Width, con.Height,
		)
	}

	var g gowells.Grid
	switch {
	case con.IsWells():
		width, height := defaultInt(con.Width, 600), defaultInt(con.Height, 600)
		zoom := con.Zoom
		if zoom <= 0 {
			zoom = 1
		}
		g = gowells.WellGrid(
			width, height, geom.Vec2{X: con.OffsetX, Y: con.OffsetY}, zoom,
		)
	case con.IsThreeBody():
		g = gowells.ThreeBodyGrid(defaultInt(con.Width, 400))
		g.Y.Cells = defaultInt(con.Height, 400)
	default:
		return gowells.Grid{}, fmt.Errorf("Unrecognized System '%s'.", con.System)
	}

	if con.XField != "" || con.YField != "" {
		if !con.ValidAxes() {
			return gowells.Grid{}, fmt.Errorf(
				"XField and YField must both be set to one of " +
					"[PosX | PosY | VelX | VelY].",
			)
		}
		xf, _ := gowells.FieldFromString(con.XField)
		yf, _ := gowells.FieldFromString(con.YField)
		g.X = gowells.Axis{
			Body: con.XBody, Field: xf,
			Min: con.XMin, Max: con.XMax, Cells: g.X.Cells,
		}
		g.Y = gowells.Axis{
			Body: con.YBody, Field: yf,
			Min: con.YMin, Max: con.YMax, Cells: g.Y.Cells,
		}
	}

	return g, nil
}

func defaultInt(x, def int) int {
	if x > 0 {
		return x
	}
	return def
}
