package main

import (
	"flag"
	"fmt"
	"image/color"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/gowells"
	"github.com/phil-mansfield/gowells/geom"
	"github.com/phil-mansfield/gowells/io"
	"github.com/phil-mansfield/gowells/physics"
	"github.com/phil-mansfield/gowells/render"
	"github.com/phil-mansfield/gowells/view"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		if err := fg.log.Close(); err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		if err := fg.prof.Close(); err != nil {
			log.Fatal(err.Error())
		}
	}
}

func main() {
	var (
		sweep, replay, viewStr string
		exampleConfig          string
		cellX, cellY           int
		plotFile               string
	)
	vars := map[string]*string{
		"Sweep":         &sweep,
		"Replay":        &replay,
		"View":          &viewStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&gowells.NumCores, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.StringVar(
		&sweep, "Sweep", "",
		"Configuration file for [Sweep] mode. Runs every cell of the grid "+
			"and writes the outcome grid, an image and a summary.",
	)
	flag.StringVar(
		&replay, "Replay", "",
		"Configuration file for [Replay] mode. Replays the cell given by "+
			"-X and -Y and prints its outcome.",
	)
	flag.StringVar(
		&viewStr, "View", "",
		"Configuration file for [View] mode, an interactive terminal viewer.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. Accepted arguments are 'Wells' and 'ThreeBody'.",
	)
	flag.IntVar(&cellX, "X", 0, "x index of the cell used by -Replay.")
	flag.IntVar(&cellY, "Y", 0, "y index of the cell used by -Replay.")
	flag.StringVar(
		&plotFile, "Plot", "",
		"If set, -Replay plots its trajectories to this file with pyplot.",
	)

	flag.Parse()

	// Figure out the mode and fail with a descriptive error if the user
	// gave incorrect flags.
	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}
	runtime.GOMAXPROCS(gowells.NumCores)

	switch modeName {
	case "Sweep":
		wrap := readConfig(sweep)
		fg := setupIO(&wrap.Sweep)
		defer fg.Close()
		sweepMain(wrap)

	case "Replay":
		wrap := readConfig(replay)
		fg := setupIO(&wrap.Sweep)
		defer fg.Close()
		replayMain(wrap, cellX, cellY, plotFile)

	case "View":
		wrap := readConfig(viewStr)
		fg := setupIO(&wrap.Sweep)
		defer fg.Close()
		viewMain(wrap)

	case "ExampleConfig":
		switch strings.ToLower(exampleConfig) {
		case "wells":
			fmt.Println(io.ExampleWellsFile)
		case "threebody":
			fmt.Println(io.ExampleThreeBodyFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'Wells' and 'ThreeBody'.",
			)
		}

	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but gowells "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// readConfig reads and sanitizes a config file.
func readConfig(fname string) *io.SweepWrapper {
	wrap, err := io.ReadSweepConfig(fname)
	if err != nil {
		log.Fatal(err.Error())
	}
	con := &wrap.Sweep

	if !con.ValidSystem() {
		log.Fatal("Invalid/non-existent 'System' value.")
	} else if !con.ValidMethod() {
		log.Fatal("Invalid 'Method' value.")
	} else if !con.ValidOutput() {
		log.Fatal("Invalid 'Output' value.")
	} else if !con.ValidClock() {
		log.Fatal("'Timesteps', 'Substeps' and 'FrameTime' must be non-negative.")
	} else if !con.ValidG() {
		log.Fatal("Invalid 'G' value.")
	} else if !con.ValidZoom() {
		log.Fatal("'Zoom' must be positive.")
	} else if !con.ValidWidth() {
		log.Fatal("Invalid 'Width' or 'Height' value.")
	} else if !con.ValidAxes() {
		log.Fatal("'XField' and 'YField' must be set together.")
	} else if !con.ValidSampleRate() {
		log.Fatal("'SampleRate' must be positive.")
	}

	return wrap
}

// setupIO redirects logging and starts profiling if the config asks for it.
func setupIO(con *io.SweepConfig) *FileGroup {
	fg := &FileGroup{}
	var err error

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		if err = pprof.StartCPUProfile(fg.prof); err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}

// setup builds the scenario and grid described by a config file.
func setup(wrap *io.SweepWrapper) (gowells.Scenario, gowells.Grid, error) {
	sc, err := wrap.Scenario()
	if err != nil {
		return nil, gowells.Grid{}, err
	}
	if !sc.Clock().Valid() {
		return nil, gowells.Grid{}, fmt.Errorf("Invalid clock %+v.", sc.Clock())
	}
	grid, err := wrap.Grid()
	if err != nil {
		return nil, gowells.Grid{}, err
	}
	if err := grid.CheckInit(len(sc.Initial())); err != nil {
		return nil, gowells.Grid{}, err
	}
	return sc, grid, nil
}

// outcomes returns the outcome grid of a config file, reading it from the
// .gwo file of a previous sweep if that sweep had the same scenario, grid
// and method. swept is true if the grid was computed.
func outcomes(
	wrap *io.SweepWrapper, sc gowells.Scenario, grid gowells.Grid,
) (out *gowells.Outcomes, hd *io.OutcomeHeader, swept bool, err error) {
	con := &wrap.Sweep
	m := con.MethodValue()
	fname := io.OutputName(con, ".gwo")

	if _, err := os.Stat(fname); err == nil {
		hd, out, err := io.ReadOutcomesAt(fname)
		if err == nil && hd.Matches(sc, grid, m) {
			log.Printf("Found existing %s, skipping sweep.", fname)
			return out, hd, false, nil
		}
		log.Printf("Existing %s does not match the config, sweeping again.", fname)
	}

	man, err := gowells.NewManager(sc, grid, m)
	if err != nil {
		return nil, nil, false, err
	}
	man.Log(true)
	out = man.Sweep()

	hd, err = io.NewOutcomeHeader(sc, grid, m, out)
	if err != nil {
		return nil, nil, false, err
	}
	if err := os.MkdirAll(con.Output, 0777); err != nil {
		return nil, nil, false, err
	}
	if err := io.WriteOutcomesAt(fname, hd, out); err != nil {
		return nil, nil, false, err
	}
	log.Printf("Wrote %s", fname)

	return out, hd, true, nil
}

// colorer returns the function mapping outcomes to pixel colors for sc.
func colorer(sc gowells.Scenario) func(gowells.Outcome) color.RGBA {
	timesteps := sc.Clock().Timesteps
	if ws, ok := sc.(*gowells.WellScenario); ok {
		return func(o gowells.Outcome) color.RGBA {
			return render.WellColor(o, ws.Wells, timesteps)
		}
	}
	return func(o gowells.Outcome) color.RGBA {
		return render.StabilityColor(o, timesteps)
	}
}

// sweepMain runs a sweep and writes its outcome grid, image and summary.
func sweepMain(wrap *io.SweepWrapper) {
	sc, grid, err := setup(wrap)
	if err != nil {
		log.Fatal(err.Error())
	}
	out, hd, _, err := outcomes(wrap, sc, grid)
	if err != nil {
		log.Fatal(err.Error())
	}
	timesteps := sc.Clock().Timesteps

	fname := io.OutputName(&wrap.Sweep, ".png")
	if ws, ok := sc.(*gowells.WellScenario); ok {
		err = render.WritePNG(fname, render.WellImage(out, ws.Wells, timesteps))
	} else {
		err = render.WritePNG(fname, render.StabilityImage(out, timesteps))
	}
	if err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Wrote %s", fname)

	fmt.Print(render.Summary(out, int(hd.Bodies), timesteps))
}

// replayMain replays a single cell and reports its outcome.
func replayMain(wrap *io.SweepWrapper, ix, iy int, plotFile string) {
	sc, grid, err := setup(wrap)
	if err != nil {
		log.Fatal(err.Error())
	}
	if ix < 0 || ix >= grid.Width() || iy < 0 || iy >= grid.Height() {
		log.Fatalf(
			"Cell (%d, %d) is outside the %dx%d grid.",
			ix, iy, grid.Width(), grid.Height(),
		)
	}

	m := wrap.Sweep.MethodValue()
	r := gowells.NewReplay(sc, grid.Bodies(sc.Initial(), ix, iy), m)
	r.SampleRate = wrap.Sweep.SampleRate
	for !r.Finished() {
		r.Advance()
	}

	fmt.Printf(
		"Cell (%d, %d): %s = %.4g, %s = %.4g\n", ix, iy,
		grid.X.Field, grid.X.Value(ix), grid.Y.Field, grid.Y.Value(iy),
	)
	fmt.Printf("%s: %s\n", m, r.Outcome())

	if plotFile != "" {
		var wells []physics.Well
		if ws, ok := sc.(*gowells.WellScenario); ok {
			wells = ws.Wells
		}
		render.PlotTrajectories(plotFile, r, wells)
		plt.Execute()
		log.Printf("Wrote %s", plotFile)
	}
}

// viewParams returns the viewer parameters of a config file.
func viewParams(con *io.SweepConfig) view.Params {
	return view.Params{
		Method: con.MethodValue(),
		Vel:    geom.Vec2{X: con.VelX, Y: con.VelY},
		Offset: geom.Vec2{X: con.OffsetX, Y: con.OffsetY},
		Zoom:   con.Zoom,
	}
}

// viewSweeper returns a view.Sweeper which sweeps a copy of wrap with the
// given parameters through the same .gwo cache as -Sweep.
func viewSweeper(wrap *io.SweepWrapper) view.Sweeper {
	return func(p view.Params) (
		gowells.Scenario, gowells.Grid, *gowells.Outcomes, error,
	) {
		next := *wrap
		con := &next.Sweep
		con.Method = p.Method.String()
		if con.IsWells() {
			con.VelX, con.VelY = p.Vel.X, p.Vel.Y
			con.OffsetX, con.OffsetY = p.Offset.X, p.Offset.Y
			con.Zoom = p.Zoom
		}

		sc, grid, err := setup(&next)
		if err != nil {
			return nil, gowells.Grid{}, nil, err
		}
		out, _, _, err := outcomes(&next, sc, grid)
		if err != nil {
			return nil, gowells.Grid{}, nil, err
		}
		return sc, grid, out, nil
	}
}

// viewMain opens the terminal viewer on the outcome grid of a config file.
func viewMain(wrap *io.SweepWrapper) {
	sc, grid, err := setup(wrap)
	if err != nil {
		log.Fatal(err.Error())
	}
	out, _, _, err := outcomes(wrap, sc, grid)
	if err != nil {
		log.Fatal(err.Error())
	}

	// Sweeps started from the viewer would otherwise log over the screen.
	if !wrap.Sweep.ValidLogFile() {
		devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			log.Fatal(err.Error())
		}
		defer devNull.Close()
		log.SetOutput(devNull)
	}

	view.SampleRate = wrap.Sweep.SampleRate
	err = view.Show(
		sc, grid, out, colorer(sc), viewParams(&wrap.Sweep), viewSweeper(wrap),
	)
	if err != nil {
		log.Fatal(err.Error())
	}
}
