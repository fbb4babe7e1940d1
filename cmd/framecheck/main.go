// Command framecheck wires up a small inertial/rotating frame system and
// prints a rotation and a state query, the same "build a toy scenario and
// print results" shape as cmd/mission/main.go.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/ChristopherRabotin/refframe"
)

var verbose bool

func init() {
	flag.BoolVar(&verbose, "verbose", false, "log intermediate configuration")
}

func main() {
	flag.Parse()

	cfg, err := refframe.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %s", err)
	}
	var logger refframe.Logger
	if verbose {
		logger = refframe.NewLogfmtLogger()
	} else {
		logger = refframe.NopLogger()
	}

	sys := refframe.NewSystem(cfg, logger)

	const (
		inertialID   refframe.NodeID = 1
		bodyFixedID  refframe.NodeID = 2
		barycenterID refframe.NodeID = 1
		earthID      refframe.NodeID = 2
	)

	if err := sys.Axes.AddInertialRoot(inertialID, "ICRF"); err != nil {
		log.Fatal(err)
	}
	// The spin angle is the only thing supplied; velocity/acceleration/jerk
	// blocks of the resulting DCM are synthesized by autodiff (D1/D2/D3,
	// autodiff.go) from this angle-only function.
	spinRateRadS := 7.292115e-5
	spin := func(t refframe.Jet) [3]refframe.Jet {
		return [3]refframe.Jet{t.Scale(spinRateRadS), refframe.JetConst(0), refframe.JetConst(0)}
	}
	if err := sys.Axes.AddRotating(bodyFixedID, "EARTH_FIXED", inertialID, refframe.SeqZ, spin); err != nil {
		log.Fatal(err)
	}

	if err := sys.Points.AddRoot(barycenterID, "SSB", inertialID); err != nil {
		log.Fatal(err)
	}
	// Likewise, only the orbit's position is expressed here; velocity,
	// acceleration and jerk are synthesized from it.
	const a = 7000.0 // km
	const muEarth = 398600.4418
	n := math.Sqrt(muEarth / (a * a * a))
	orbitPos := func(t refframe.Jet) [3]refframe.Jet {
		theta := t.Scale(n)
		return [3]refframe.Jet{theta.Cos().Scale(a), theta.Sin().Scale(a), refframe.JetConst(0)}
	}
	if err := sys.Points.AddDynamical(earthID, "EARTH", barycenterID, inertialID, orbitPos); err != nil {
		log.Fatal(err)
	}

	rot, err := sys.Rotation(0, "ICRF", "EARTH_FIXED", 3600, refframe.OrderVelocity)
	if err != nil {
		log.Fatalf("rotation query: %s", err)
	}
	fmt.Printf("ICRF->EARTH_FIXED DCM at t=3600s:\n%v\n", mat64String(rot))

	state, err := sys.State(0, "EARTH", "SSB", "ICRF", 3600, refframe.OrderAcceleration, false)
	if err != nil {
		log.Fatalf("state query: %s", err)
	}
	fmt.Printf("EARTH relative to SSB in ICRF at t=3600s: pos=%v vel=%v acc=%v\n", state.Pos, state.Vel, state.Acc)
}

func mat64String(r refframe.Rot) string {
	m := r.M[0]
	rows, cols := m.Dims()
	s := ""
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			s += fmt.Sprintf("%8.5f ", m.At(i, j))
		}
		s += "\n"
	}
	return s
}
