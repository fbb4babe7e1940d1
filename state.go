package refframe

// State is a position together with as many of its time derivatives as
// Order specifies: Pos, Vel, Acc, J (jerk). Fields beyond Order hold the zero
// vector and must not be treated as meaningful.
//
// Grounded on the reference codebase's plain [3]float64-based vector math
// in math.go (cross/dot/norm operate on [3]float64, not mat64.Vector),
// carried forward here to keep the hot query path allocation-free per the
// spec's zero-allocation design note (§5) — unlike Rot, which stays on
// *mat64.Dense because DCM composition already allocates via mat64.Mul.
type State struct {
	Order            Order
	Pos, Vel, Acc, J [3]float64
}

func (s State) entry(k int) [3]float64 {
	switch k {
	case 0:
		return s.Pos
	case 1:
		return s.Vel
	case 2:
		return s.Acc
	default:
		return s.J
	}
}

func (s *State) setEntry(k int, v [3]float64) {
	switch k {
	case 0:
		s.Pos = v
	case 1:
		s.Vel = v
	case 2:
		s.Acc = v
	default:
		s.J = v
	}
}

// Add returns the componentwise sum of two states, truncated to the lower
// of the two orders.
func (s State) Add(o State) State {
	order := s.Order
	if o.Order < order {
		order = o.Order
	}
	out := State{Order: order}
	for k := 0; k < int(order); k++ {
		a, b := s.entry(k), o.entry(k)
		out.setEntry(k, [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]})
	}
	return out
}

// Sub returns the componentwise difference s - o, truncated to the lower of
// the two orders.
func (s State) Sub(o State) State {
	order := s.Order
	if o.Order < order {
		order = o.Order
	}
	out := State{Order: order}
	for k := 0; k < int(order); k++ {
		a, b := s.entry(k), o.entry(k)
		out.setEntry(k, [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]})
	}
	return out
}

// Neg returns the componentwise negation of s.
func (s State) Neg() State {
	out := State{Order: s.Order}
	for k := 0; k < int(s.Order); k++ {
		v := s.entry(k)
		out.setEntry(k, [3]float64{-v[0], -v[1], -v[2]})
	}
	return out
}

// Scale returns every entry of s multiplied by k. Note this does not apply
// the product rule; it is a plain linear scaling, useful for unit
// conversions, not for differentiating a scaled time-varying quantity.
func (s State) Scale(k float64) State {
	out := State{Order: s.Order}
	for i := 0; i < int(s.Order); i++ {
		v := s.entry(i)
		out.setEntry(i, [3]float64{k * v[0], k * v[1], k * v[2]})
	}
	return out
}

// ZeroState returns a State of the given order whose entries are all zero.
func ZeroState(order Order) State { return State{Order: order} }
