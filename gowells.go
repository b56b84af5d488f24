package gowells

import (
	"fmt"
	"log"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/phil-mansfield/gowells/physics"
)

var (
	// NumCores is the number of worker goroutines a new Manager starts.
	NumCores = runtime.NumCPU()
	// ProgressInterval is the number of finished cells between progress
	// log lines.
	ProgressInterval int64 = 1 << 14
)

// Manager evaluates every cell of a Grid in parallel.
type Manager struct {
	sc     Scenario
	grid   Grid
	method physics.Method
	clock  Clock
	init   []physics.Body

	log bool
	ms  runtime.MemStats

	workers int
	done    atomic.Int64
	out     *Outcomes
}

// NewManager returns a Manager which sweeps grid over the scenario sc.
func NewManager(sc Scenario, grid Grid, m physics.Method) (*Manager, error) {
	if m < 0 || m >= physics.EndMethod {
		return nil, fmt.Errorf("Unknown integration method %d.", int(m))
	}
	man := &Manager{sc: sc, grid: grid, method: m, clock: sc.Clock()}
	man.init = sc.Initial()
	if err := grid.CheckInit(len(man.init)); err != nil {
		return nil, err
	}
	man.workers = NumCores
	if man.workers < 1 {
		man.workers = 1
	}
	return man, nil
}

func (man *Manager) Log(flag bool) { man.log = flag }

// Workers sets the number of worker goroutines used by Sweep.
func (man *Manager) Workers(n int) {
	if n < 1 {
		n = 1
	}
	man.workers = n
}

// Sweep runs every cell of the grid and returns their outcomes. The result
// does not depend on the number of workers.
func (man *Manager) Sweep() *Outcomes {
	man.out = NewOutcomes(man.grid.Width(), man.grid.Height())
	man.done.Store(0)

	workers := man.workers
	if cells := len(man.out.Vals); workers > cells && cells > 0 {
		workers = cells
	}

	if man.log {
		log.Printf(
			"Sweeping %dx%d cells with %s on %d workers.",
			man.out.Width, man.out.Height, man.method, workers,
		)
	}
	t0 := time.Now()

	out := make(chan int, workers)
	for id := 0; id < workers-1; id++ {
		go man.chanSweep(id, workers, out)
	}
	man.chanSweep(workers-1, workers, out)

	for i := 0; i < workers; i++ {
		<-out
	}

	if man.log {
		runtime.ReadMemStats(&man.ms)
		log.Printf(
			"Swept %d cells in %.3g s. Alloc: %5d MB, Sys: %5d MB",
			len(man.out.Vals), time.Since(t0).Seconds(),
			man.ms.Alloc>>20, man.ms.Sys>>20,
		)
	}

	return man.out
}

// chanSweep runs the cells id, id + workers, id + 2*workers, ... and then
// sends id to out.
func (man *Manager) chanSweep(id, workers int, out chan<- int) {
	bodies := make([]physics.Body, len(man.init))
	n := int64(len(man.out.Vals))

	for idx := id; idx < len(man.out.Vals); idx += workers {
		ix, iy := man.out.Coords(idx)
		copy(bodies, man.init)
		man.grid.Apply(bodies, ix, iy)

		man.out.Vals[idx] = Run(man.sc.System(bodies), man.clock, man.method)

		done := man.done.Add(1)
		if man.log && done%ProgressInterval == 0 {
			log.Printf("Swept %d/%d cells", done, n)
		}
	}

	out <- id
}

// Sweep is a convenience wrapper around NewManager and Manager.Sweep which
// runs silently on NumCores workers.
func Sweep(sc Scenario, grid Grid, m physics.Method) (*Outcomes, error) {
	man, err := NewManager(sc, grid, m)
	if err != nil {
		return nil, err
	}
	return man.Sweep(), nil
}
