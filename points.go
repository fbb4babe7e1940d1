package refframe

import "fmt"

// PointClass names how a point node's state relative to its parent is
// produced, generalizing celestial.go's CelestialObject position sources
// (fixed barycenter offsets, VSOP87 series, propagated orbit state) into a
// closed enumeration per SPEC_FULL.md §9.
type PointClass uint8

const (
	// PointRoot is the single root point of the points graph (e.g. the
	// solar system barycenter); it has no parent and a zero state.
	PointRoot PointClass = iota + 1
	// PointFixed holds a constant offset (in the axes given at registration)
	// to its parent.
	PointFixed
	// PointEphemeris delegates to an EphemerisProvider at query time.
	PointEphemeris
	// PointUpdatable holds a last-written state, stamped at a specific
	// epoch and order, supplied out of band (e.g. from a tracking filter).
	PointUpdatable
	// PointDynamical evaluates a time-parameterized position function,
	// analogous to AxesRotating but for translational state: the caller
	// supplies only the position, and velocity/acceleration/jerk are
	// synthesized via autodiff.go's D1/D2/D3 when a query needs them.
	PointDynamical
)

type pointNode struct {
	id        NodeID
	name      string
	class     PointClass
	parent    NodeID
	hasParent bool
	axes      NodeID // axes the constant/producer/stamped state is expressed in
	constPos  State  // PointFixed only

	posFn VectorJetFunc // PointDynamical only

	provider EphemerisProvider // PointEphemeris only
	target   NodeID            // NAIF-style id passed to provider.State

	// PointUpdatable stamped values.
	stamped      bool
	stampedEt    float64
	stampedOrder Order
	stampedState State
}

type pointRegistry struct {
	graph *mappedGraph
	nodes map[NodeID]*pointNode
	log   Logger
}

func newPointRegistry(logger Logger) *pointRegistry {
	return &pointRegistry{graph: newMappedGraph(), nodes: make(map[NodeID]*pointNode), log: logger}
}

// AddRoot registers the single root point node.
func (r *pointRegistry) AddRoot(id NodeID, name string, axes NodeID) error {
	if err := r.graph.addRoot(id, name); err != nil {
		return err
	}
	r.nodes[id] = &pointNode{id: id, name: name, class: PointRoot, axes: axes}
	return nil
}

// AddFixed registers a point with a constant offset (expressed in axes) to
// its parent.
func (r *pointRegistry) AddFixed(id NodeID, name string, parent, axes NodeID, offset State) error {
	if _, ok := r.nodes[parent]; !ok {
		return fmt.Errorf("point %d: %w", parent, ErrUnknownPoint)
	}
	if err := r.graph.addChild(id, name, parent); err != nil {
		return err
	}
	r.nodes[id] = &pointNode{id: id, name: name, class: PointFixed, parent: parent, hasParent: true, axes: axes, constPos: offset}
	return nil
}

// AddEphemeris registers a point whose state is delegated to provider for
// the given target id at query time. Registration first calls
// provider.PositionRecords(target) to discover which (center, axes) pair
// covers target: exactly one candidate is required, matching the
// point/axes-discovery step of the reference codebase's SPICE-style
// ephemeris loading (celestial.go picks a single VSOP87 slot per body).
// Zero candidates is ErrDataGap; more than one is ErrAmbiguousEphemeris,
// since this package has no way to choose between competing centers/axes
// on the caller's behalf.
func (r *pointRegistry) AddEphemeris(id NodeID, name string, parent NodeID, provider EphemerisProvider, target NodeID) error {
	if _, ok := r.nodes[parent]; !ok {
		return fmt.Errorf("point %d: %w", parent, ErrUnknownPoint)
	}
	records, err := provider.PositionRecords(target)
	if err != nil {
		return fmt.Errorf("point %d: discovering ephemeris records: %w", id, err)
	}
	switch len(records) {
	case 0:
		return fmt.Errorf("point %d: no ephemeris records for target %d: %w", id, target, ErrDataGap)
	case 1:
		// unambiguous, fall through to registration.
	default:
		return fmt.Errorf("point %d: target %d covered by %d (center,axes) pairs: %w", id, target, len(records), ErrAmbiguousEphemeris)
	}
	if err := r.graph.addChild(id, name, parent); err != nil {
		return err
	}
	r.nodes[id] = &pointNode{id: id, name: name, class: PointEphemeris, parent: parent, hasParent: true, provider: provider, target: target}
	return nil
}

// AddUpdatable registers a point whose state is supplied out of band via
// Update, initially unstamped.
func (r *pointRegistry) AddUpdatable(id NodeID, name string, parent, axes NodeID) error {
	if _, ok := r.nodes[parent]; !ok {
		return fmt.Errorf("point %d: %w", parent, ErrUnknownPoint)
	}
	if err := r.graph.addChild(id, name, parent); err != nil {
		return err
	}
	r.nodes[id] = &pointNode{id: id, name: name, class: PointUpdatable, parent: parent, hasParent: true, axes: axes}
	return nil
}

// AddDynamical registers a point whose position is a time-parameterized
// callback (e.g. a two-body analytic propagation) expressed in Jet
// arithmetic (dual.go). posFn need only compute position; stateToParent
// synthesizes whatever velocity/acceleration/jerk order a query needs via
// D1/D2/D3 (autodiff.go).
func (r *pointRegistry) AddDynamical(id NodeID, name string, parent, axes NodeID, posFn VectorJetFunc) error {
	if _, ok := r.nodes[parent]; !ok {
		return fmt.Errorf("point %d: %w", parent, ErrUnknownPoint)
	}
	if err := r.graph.addChild(id, name, parent); err != nil {
		return err
	}
	r.nodes[id] = &pointNode{id: id, name: name, class: PointDynamical, parent: parent, hasParent: true, axes: axes, posFn: posFn}
	return nil
}

// Update stamps an Updatable point with a new state at epoch et, valid up
// to the state's own Order.
func (r *pointRegistry) Update(id NodeID, et float64, s State) error {
	n, ok := r.nodes[id]
	if !ok {
		return fmt.Errorf("point %d: %w", id, ErrUnknownPoint)
	}
	if n.class != PointUpdatable {
		return fmt.Errorf("point %d is class %d, want Updatable: %w", id, n.class, ErrInvalidParent)
	}
	n.stamped = true
	n.stampedEt = et
	n.stampedOrder = s.Order
	n.stampedState = s
	return nil
}

// stateToParent evaluates a node's state relative to its immediate parent
// at epoch et, up to order, and returns the axes it is expressed in:
// node.axes, or for an Ephemeris point the axes its provider reports.
func (r *pointRegistry) stateToParent(node *pointNode, et float64, order Order) (State, NodeID, error) {
	switch node.class {
	case PointFixed:
		if err := checkOrder(order, node.constPos.Order); err != nil {
			return State{}, 0, err
		}
		out := State{Order: order}
		for k := 0; k < int(order); k++ {
			out.setEntry(k, node.constPos.entry(k))
		}
		return out, node.axes, nil
	case PointUpdatable:
		if !node.stamped {
			return State{}, 0, fmt.Errorf("point %d: %w", node.id, ErrNotUpdated)
		}
		if node.stampedEt != et {
			return State{}, 0, fmt.Errorf("point %d stamped at %g, queried at %g: %w", node.id, node.stampedEt, et, ErrNotUpdated)
		}
		if err := checkOrder(order, node.stampedOrder); err != nil {
			return State{}, 0, err
		}
		out := State{Order: order}
		for k := 0; k < int(order); k++ {
			out.setEntry(k, node.stampedState.entry(k))
		}
		return out, node.axes, nil
	case PointDynamical:
		if node.posFn == nil {
			return State{}, 0, fmt.Errorf("point %d: no position function registered: %w", node.id, ErrNotUpdated)
		}
		return stateFromPosFn(node.posFn, et, order), node.axes, nil
	case PointEphemeris:
		if node.provider == nil {
			return State{}, 0, fmt.Errorf("point %d: no ephemeris provider: %w", node.id, ErrDataGap)
		}
		es, err := node.provider.State(node.target, et, order)
		if err != nil {
			return State{}, 0, err
		}
		return es.S, es.Axes, nil
	default:
		return State{}, 0, fmt.Errorf("point %d: unknown class %d: %w", node.id, node.class, ErrInvalidParent)
	}
}

// stateFromPosFn builds a State up to order from a Dynamical point's
// position-only function, synthesizing any velocity/acceleration/jerk order
// the query needs via autodiff.go's D1/D2/D3.
func stateFromPosFn(posFn VectorJetFunc, et float64, order Order) State {
	out := State{Order: order}
	value := posFn(JetVar(et))
	out.Pos = [3]float64{value[0].At(0), value[1].At(0), value[2].At(0)}
	if order >= OrderVelocity {
		out.Vel = D1(posFn, et)
	}
	if order >= OrderAcceleration {
		out.Acc = D2(posFn, et)
	}
	if order >= OrderJerk {
		out.J = D3(posFn, et)
	}
	return out
}
