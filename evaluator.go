package refframe

import (
	"fmt"
	"math"

	"github.com/go-kit/kit/log/level"
)

// lightSpeedKmS is the speed of light in km/s, the same unit convention the
// reference codebase uses throughout celestial.go and orbit.go.
const lightSpeedKmS = 299792.458

// rotKey/stateKey identify a memoizable query; caching on (src, dst, et,
// order) is valid because every producer in this package is a pure
// function of epoch — no producer here depends on prior queries.
type rotKey struct {
	src, dst NodeID
	et       float64
	order    Order
}

type stateKey struct {
	src, dst, axes NodeID
	et             float64
	order          Order
	aberration     bool
}

// evalCache is a fixed array of per-thread maps, one slot per expected
// concurrent caller, matching the spec's "array indexed by a per-thread ID"
// design (§5, §9): a caller passes its own stable small integer (e.g. a
// worker-pool slot index) instead of this package doing goroutine-local
// bookkeeping, keeping every cache access lock-free.
type evalCache struct {
	rot   []map[rotKey]Rot
	state []map[stateKey]State
	n     int
}

func newEvalCache(n int) *evalCache {
	if n < 1 {
		n = 1
	}
	c := &evalCache{rot: make([]map[rotKey]Rot, n), state: make([]map[stateKey]State, n), n: n}
	for i := 0; i < n; i++ {
		c.rot[i] = make(map[rotKey]Rot)
		c.state[i] = make(map[stateKey]State)
	}
	return c
}

func (c *evalCache) slot(thread int) int {
	if thread < 0 {
		thread = -thread
	}
	return thread % c.n
}

// Rotation returns the Rot from axes named src to axes named dst at epoch
// et up to order, memoized per thread. thread should be a stable small
// integer identifying the calling goroutine/worker; distinct threads never
// share a cache slot's map concurrently as long as callers keep their
// thread index in [0, System.Config.CacheThreads).
func (s *System) Rotation(thread int, src, dst string, et float64, order Order) (Rot, error) {
	srcID, err := s.resolveAxesName(src)
	if err != nil {
		return Rot{}, err
	}
	dstID, err := s.resolveAxesName(dst)
	if err != nil {
		return Rot{}, err
	}
	return s.rotationByID(thread, srcID, dstID, et, order)
}

func (s *System) rotationByID(thread int, src, dst NodeID, et float64, order Order) (Rot, error) {
	slot := s.cache.slot(thread)
	key := rotKey{src: src, dst: dst, et: et, order: order}
	if v, ok := s.cache.rot[slot][key]; ok {
		return v, nil
	}
	v, err := s.Axes.Rotation(src, dst, et, order)
	if err != nil {
		return Rot{}, err
	}
	s.cache.rot[slot][key] = v
	return v, nil
}

// State returns the state of point target relative to point observer,
// expressed in the axes named by axesName, at epoch et up to order. If
// aberration is true, et is corrected for one-way light time from target to
// observer via fixed-point iteration bounded by Config.LightTimeMaxIter /
// Config.LightTimeTolSec, returning ErrLightTimeNoConverge if it fails to
// settle.
func (s *System) State(thread int, target, observer, axesName string, et float64, order Order, aberration bool) (State, error) {
	targetID, err := s.resolvePointName(target)
	if err != nil {
		return State{}, err
	}
	observerID, err := s.resolvePointName(observer)
	if err != nil {
		return State{}, err
	}
	axesID, err := s.resolveAxesName(axesName)
	if err != nil {
		return State{}, err
	}
	if !aberration {
		return s.stateByID(thread, targetID, observerID, axesID, et, order, false)
	}
	correctedEt, err := s.lightTimeCorrect(thread, targetID, observerID, axesID, et, order)
	if err != nil {
		return State{}, err
	}
	return s.stateByID(thread, targetID, observerID, axesID, correctedEt, order, true)
}

func (s *System) lightTimeCorrect(thread int, target, observer, axesID NodeID, et float64, order Order) (float64, error) {
	tEval := et
	for i := 0; i < s.Config.LightTimeMaxIter; i++ {
		st, err := s.stateByID(thread, target, observer, axesID, tEval, OrderPosition, false)
		if err != nil {
			return 0, err
		}
		r := math.Sqrt(dot3(st.Pos, st.Pos))
		lt := r / lightSpeedKmS
		next := et - lt
		if math.Abs(next-tEval) < s.Config.LightTimeTolSec {
			level.Debug(s.Log).Log("msg", "light-time converged", "iter", i, "lt_sec", lt)
			return next, nil
		}
		tEval = next
	}
	return 0, fmt.Errorf("target %d observer %d after %d iterations: %w", target, observer, s.Config.LightTimeMaxIter, ErrLightTimeNoConverge)
}

func (s *System) stateByID(thread int, target, observer, axesID NodeID, et float64, order Order, aberration bool) (State, error) {
	slot := s.cache.slot(thread)
	key := stateKey{src: target, dst: observer, axes: axesID, et: et, order: order, aberration: aberration}
	if v, ok := s.cache.state[slot][key]; ok {
		return v, nil
	}
	if target == observer {
		v := ZeroState(order)
		s.cache.state[slot][key] = v
		return v, nil
	}
	srcUp, dstUp, err := s.Points.graph.commonPath(target, observer)
	if err != nil {
		return State{}, err
	}
	targetRelLca, err := s.accumulateOffsets(thread, srcUp, axesID, et, order)
	if err != nil {
		return State{}, err
	}
	observerRelLca, err := s.accumulateOffsets(thread, dstUp, axesID, et, order)
	if err != nil {
		return State{}, err
	}
	v := targetRelLca.Sub(observerRelLca)
	s.cache.state[slot][key] = v
	return v, nil
}

// accumulateOffsets sums the parent-relative offsets along chain (ordered
// [node, parent, ..., ancestor]), rotating each into outAxes before adding,
// giving the position (and higher derivatives) of chain[0] relative to
// chain[len-1] expressed in outAxes. Translational composition is plain
// vector addition — no Leibniz weighting is needed here, unlike Rot.Compose,
// because d/dt(a+b) = da/dt + db/dt with no cross terms.
func (s *System) accumulateOffsets(thread int, chain []NodeID, outAxes NodeID, et float64, order Order) (State, error) {
	total := ZeroState(order)
	for i := 0; i < len(chain)-1; i++ {
		node := s.Points.nodes[chain[i]]
		offset, offsetAxes, err := s.Points.stateToParent(node, et, order)
		if err != nil {
			return State{}, err
		}
		rot, err := s.rotationByID(thread, offsetAxes, outAxes, et, order)
		if err != nil {
			return State{}, err
		}
		total = total.Add(rot.Apply(offset))
	}
	return total, nil
}
