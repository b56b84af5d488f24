package physics

import (
	"github.com/phil-mansfield/gowells/geom"
)

// Workspace contains the buffers needed to integrate a system of Bodies. A
// Workspace may be reused between steps and runs, but it must never be shared
// between goroutines.
type Workspace struct {
	// orig is the frozen pre-step state and temp is the synchronized snapshot
	// that each RK4 stage is evaluated against.
	orig, temp []Body
	acc        []geom.Vec2
	dx, dv     [4][]geom.Vec2
}

// NewWorkspace returns a Workspace sized for n bodies.
func NewWorkspace(n int) *Workspace {
	ws := &Workspace{}
	ws.Init(n)
	return ws
}

// Init resizes the Workspace to hold n bodies. It only allocates if the
// current buffers are too small.
func (ws *Workspace) Init(n int) {
	if cap(ws.orig) < n {
		ws.orig = make([]Body, n)
		ws.temp = make([]Body, n)
		ws.acc = make([]geom.Vec2, n)
		for k := 0; k < 4; k++ {
			ws.dx[k] = make([]geom.Vec2, n)
			ws.dv[k] = make([]geom.Vec2, n)
		}
	}

	ws.orig, ws.temp, ws.acc = ws.orig[:n], ws.temp[:n], ws.acc[:n]
	for k := 0; k < 4; k++ {
		ws.dx[k], ws.dv[k] = ws.dx[k][:n], ws.dv[k][:n]
	}
}
