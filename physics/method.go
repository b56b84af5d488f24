package physics

import (
	"strings"
)

// Method is an integration scheme.
type Method int

const (
	// RK4 is the classical fourth-order Runge-Kutta scheme. It is the default.
	RK4 Method = iota
	// Euler updates velocity from the pre-step acceleration and then position
	// from the updated velocity. It is cheaper and less accurate than RK4.
	Euler
	EndMethod
)

var methodNames = [EndMethod]string{"RK4", "Euler"}

// String returns the config-file name of m.
func (m Method) String() string {
	if m < 0 || m >= EndMethod {
		return "Unknown"
	}
	return methodNames[m]
}

// MethodFromString returns the Method named by str. Matching ignores case and
// also accepts "RungeKutta4".
func MethodFromString(str string) (Method, bool) {
	str = strings.ToLower(strings.TrimSpace(str))
	if str == "rungekutta4" || str == "runge-kutta 4" {
		return RK4, true
	}

	for m := Method(0); m < EndMethod; m++ {
		if strings.ToLower(methodNames[m]) == str {
			return m, true
		}
	}
	return RK4, false
}
