// Package meeus adapts the soniakeys/meeus VSOP87/Pluto ephemeris series
// into a refframe.EphemerisProvider, generalizing the reference codebase's
// CelestialObject.HelioOrbit (celestial.go) — which loads a VSOP87 planet
// file on first use and evaluates its L,B,R series at a given time.Time —
// into a provider this package's evaluator can query for any registered
// planet at an arbitrary internal epoch.
package meeus

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/julian"
	"github.com/soniakeys/meeus/planetposition"
	"github.com/soniakeys/meeus/pluto"

	"github.com/ChristopherRabotin/refframe"
)

// AU is one astronomical unit in kilometers, matching celestial.go's constant.
const AU = 1.49597870700e8

// Body names a supported VSOP87 body. Pluto is handled separately (Meeus
// ships it outside the VSOP87 planet series, same special case
// HelioOrbit's "if c.Name == Pluto" branch handles).
type Body struct {
	Name         string
	NodeID       refframe.NodeID
	vsopPosition int // 1-based VSOP87 slot; 0 for Pluto
}

// StandardBodies lists the planets HelioOrbit could resolve (Venus, Earth,
// Mars, Jupiter, Pluto), each with NodeID left zero. The VSOP87 slot field
// is unexported, so a Body with a different slot can only be built inside
// this package (see planetposition.LoadPlanetPath).
func StandardBodies() []Body {
	return []Body{
		{Name: "Venus", vsopPosition: 2},
		{Name: "Earth", vsopPosition: 3},
		{Name: "Mars", vsopPosition: 4},
		{Name: "Jupiter", vsopPosition: 5},
		{Name: "Pluto", vsopPosition: 0},
	}
}

// Provider implements refframe.EphemerisProvider by lazily loading VSOP87
// planet series from dir (the same on-disk layout planetposition.LoadPlanetPath
// expects), reporting heliocentric states as Cartesian coordinates built
// from the series' ecliptic-of-J2000 longitude, latitude and radius (Axes
// is fixed to axesID for every body, matching HelioOrbit always returning
// states relative to the Sun).
type Provider struct {
	dir      string
	centerID refframe.NodeID
	axesID   refframe.NodeID
	refEpoch time.Time
	bodies   map[refframe.NodeID]Body
	loaded   map[refframe.NodeID]*planetposition.V87Planet
}

// NewProvider constructs a Provider that resolves et (seconds past
// refEpoch) into a time.Time for each Meeus call, reports states relative
// to centerID (typically the Sun barycenter point) expressed in axesID
// (typically an Inertial ecliptic-J2000 axes node), and serves the given bodies.
func NewProvider(dir string, centerID, axesID refframe.NodeID, refEpoch time.Time, bodies []Body) *Provider {
	m := make(map[refframe.NodeID]Body, len(bodies))
	for _, b := range bodies {
		m[b.NodeID] = b
	}
	return &Provider{
		dir: dir, centerID: centerID, axesID: axesID, refEpoch: refEpoch,
		bodies: m, loaded: make(map[refframe.NodeID]*planetposition.V87Planet),
	}
}

func (p *Provider) positionAt(body Body, t time.Time) ([3]float64, error) {
	jd := julian.TimeToJD(t)
	var l, b, r float64
	if body.vsopPosition == 0 {
		lRA, bAng, rr := pluto.Heliocentric(jd)
		l, b, r = lRA.Rad(), bAng.Rad(), rr
	} else {
		planet, ok := p.loaded[body.NodeID]
		if !ok {
			var err error
			planet, err = planetposition.LoadPlanetPath(body.vsopPosition-1, p.dir)
			if err != nil {
				return [3]float64{}, fmt.Errorf("loading VSOP87 body %s: %w", body.Name, err)
			}
			p.loaded[body.NodeID] = planet
		}
		lRA, bAng, rr := planet.Position2000(jd)
		l, b, r = lRA.Rad(), bAng.Rad(), rr
	}
	r *= AU
	sB, cB := math.Sincos(b)
	sL, cL := math.Sincos(l)
	return [3]float64{r * cB * cL, r * cB * sL, r * sB}, nil
}

// PositionRecords implements refframe.EphemerisProvider. Every body this
// Provider knows about resolves to exactly one (center, axes) pair — Sun
// heliocentric, matching HelioOrbit always reporting relative to the Sun —
// so registration through refframe.AddEphemeris never sees
// ErrAmbiguousEphemeris for a Meeus-backed body. Coverage is left
// unbounded (StartEt/EndEt zero) since VSOP87/Pluto series do not carry an
// explicit validity window the way a SPICE SPK segment does.
func (p *Provider) PositionRecords(target refframe.NodeID) ([]refframe.PositionRecord, error) {
	if _, ok := p.bodies[target]; !ok {
		return nil, nil
	}
	return []refframe.PositionRecord{{Center: p.centerID, Axes: p.axesID}}, nil
}

// State implements refframe.EphemerisProvider. Velocity/acceleration/jerk
// are obtained by central-differencing positionAt in time (numeric.go),
// rather than HelioOrbit's vis-viva-plus-direction approximation: that
// shortcut only produces a speed and a tangent direction, not the full
// vector derivative structure a Rot/State-based evaluator needs. Unlike
// refframe's own D1/D2/D3 (autodiff.go), positionAt wraps the third-party
// soniakeys/meeus VSOP87 series, which this package cannot rewrite in Jet
// arithmetic, so an exact dual-number derivative is not available here —
// central differencing is the deliberate exception at that boundary.
func (p *Provider) State(target refframe.NodeID, et float64, order refframe.Order) (refframe.EphemerisState, error) {
	body, ok := p.bodies[target]
	if !ok {
		return refframe.EphemerisState{}, fmt.Errorf("meeus: node %d: %w", target, refframe.ErrUnknownPoint)
	}
	posAt := func(tau float64) [3]float64 {
		t := p.refEpoch.Add(time.Duration(tau * float64(time.Second)))
		r, err := p.positionAt(body, t)
		if err != nil {
			return [3]float64{}
		}
		return r
	}
	var s refframe.State
	s.Order = order
	pos, err := p.positionAt(body, p.refEpoch.Add(time.Duration(et*float64(time.Second))))
	if err != nil {
		return refframe.EphemerisState{}, err
	}
	s.Pos = pos
	if order >= refframe.OrderVelocity {
		s.Vel = centralD1(posAt, et)
	}
	if order >= refframe.OrderAcceleration {
		s.Acc = centralD2(posAt, et)
	}
	if order >= refframe.OrderJerk {
		s.J = centralD3(posAt, et)
	}
	return refframe.EphemerisState{Center: p.centerID, Axes: p.axesID, S: s}, nil
}
