package refframe

import "math"

// dual is a scalar function of time truncated to its value and its first
// three time derivatives — a length-4 Taylor jet. It is the engine behind
// the Euler-angle DCM derivative kernel (dcm.go) and the two-vectors
// construction (twovec.go): both need to differentiate compositions of
// sin/cos/normalize/cross/dot of quantities whose own time derivatives are
// already known analytically (supplied by the caller as angle rates, or
// pulled from a State), so exact forward-mode differentiation via these
// closed-form rules is possible without perturbing time numerically. The
// same arithmetic, exported as Jet below, is what autodiff.go's D1/D2/D3
// evaluate; the only finite-difference stencil in the module is
// providers/meeus/numeric.go, for a third-party series that cannot be
// expressed in dual arithmetic.
type dual struct {
	v, d1, d2, d3 float64
}

// newDual builds a dual from up to four Taylor coefficients [value, rate,
// accel, jerk], truncating missing trailing entries to zero.
func newDual(coeffs []float64) dual {
	var d dual
	if len(coeffs) > 0 {
		d.v = coeffs[0]
	}
	if len(coeffs) > 1 {
		d.d1 = coeffs[1]
	}
	if len(coeffs) > 2 {
		d.d2 = coeffs[2]
	}
	if len(coeffs) > 3 {
		d.d3 = coeffs[3]
	}
	return d
}

func constDual(v float64) dual { return dual{v: v} }

func dualAdd(a, b dual) dual {
	return dual{a.v + b.v, a.d1 + b.d1, a.d2 + b.d2, a.d3 + b.d3}
}

func dualSub(a, b dual) dual {
	return dual{a.v - b.v, a.d1 - b.d1, a.d2 - b.d2, a.d3 - b.d3}
}

func dualNeg(a dual) dual { return dual{-a.v, -a.d1, -a.d2, -a.d3} }

// dualMul applies the Leibniz product rule up to third order:
// (ab)^(k) = sum_j C(k,j) a^(k-j) b^(j).
func dualMul(a, b dual) dual {
	return dual{
		v:  a.v * b.v,
		d1: a.d1*b.v + a.v*b.d1,
		d2: a.d2*b.v + 2*a.d1*b.d1 + a.v*b.d2,
		d3: a.d3*b.v + 3*a.d2*b.d1 + 3*a.d1*b.d2 + a.v*b.d3,
	}
}

// dualSin/dualCos apply Faà di Bruno's formula for sin/cos of a dual-valued
// angle, closed-form up to third order.
func dualSin(theta dual) dual {
	s, c := math.Sincos(theta.v)
	return dual{
		v:  s,
		d1: c * theta.d1,
		d2: c*theta.d2 - s*theta.d1*theta.d1,
		d3: c*theta.d3 - 3*s*theta.d1*theta.d2 - c*theta.d1*theta.d1*theta.d1,
	}
}

func dualCos(theta dual) dual {
	s, c := math.Sincos(theta.v)
	return dual{
		v:  c,
		d1: -s * theta.d1,
		d2: -s*theta.d2 - c*theta.d1*theta.d1,
		d3: -s*theta.d3 - 3*c*theta.d1*theta.d2 + s*theta.d1*theta.d1*theta.d1,
	}
}

// dualSqrt differentiates sqrt(g(t)) via 2*y*y' = g' and its two further
// time derivatives. Returns a zero jet if g.v == 0 to avoid a division by
// zero (a normalized zero vector has no well-defined derivative anyway).
func dualSqrt(g dual) dual {
	y := math.Sqrt(g.v)
	if y == 0 {
		return dual{}
	}
	d1 := g.d1 / (2 * y)
	d2 := (g.d2 - 2*d1*d1) / (2 * y)
	d3 := (g.d3 - 6*d1*d2) / (2 * y)
	return dual{v: y, d1: d1, d2: d2, d3: d3}
}

// dualInv differentiates 1/g(t) via f*g=1 and its further time derivatives.
func dualInv(g dual) dual {
	if g.v == 0 {
		return dual{}
	}
	f0 := 1 / g.v
	f1 := -f0 * f0 * g.d1
	f2 := -(2*f1*g.d1 + f0*g.d2) / g.v
	f3 := -(3*f2*g.d1 + 3*f1*g.d2 + f0*g.d3) / g.v
	return dual{v: f0, d1: f1, d2: f2, d3: f3}
}

func derivAt(d dual, k int) float64 {
	switch k {
	case 0:
		return d.v
	case 1:
		return d.d1
	case 2:
		return d.d2
	default:
		return d.d3
	}
}

// dualVec3 is a 3-vector-valued function of time, componentwise dual.
type dualVec3 [3]dual

func dv3Add(a, b dualVec3) dualVec3 {
	return dualVec3{dualAdd(a[0], b[0]), dualAdd(a[1], b[1]), dualAdd(a[2], b[2])}
}

func dv3Sub(a, b dualVec3) dualVec3 {
	return dualVec3{dualSub(a[0], b[0]), dualSub(a[1], b[1]), dualSub(a[2], b[2])}
}

func dv3Scale(k dual, a dualVec3) dualVec3 {
	return dualVec3{dualMul(k, a[0]), dualMul(k, a[1]), dualMul(k, a[2])}
}

func dv3Dot(a, b dualVec3) dual {
	return dualAdd(dualAdd(dualMul(a[0], b[0]), dualMul(a[1], b[1])), dualMul(a[2], b[2]))
}

func dv3Cross(a, b dualVec3) dualVec3 {
	return dualVec3{
		dualSub(dualMul(a[1], b[2]), dualMul(a[2], b[1])),
		dualSub(dualMul(a[2], b[0]), dualMul(a[0], b[2])),
		dualSub(dualMul(a[0], b[1]), dualMul(a[1], b[0])),
	}
}

func dv3Norm(a dualVec3) dual { return dualSqrt(dv3Dot(a, a)) }

func dv3Normalize(a dualVec3) dualVec3 { return dv3Scale(dualInv(dv3Norm(a)), a) }

// dv3FromTaylor builds a dualVec3 out of up to four stacked 3-vectors
// [value, rate, accel, jerk], truncated to order.
func dv3FromTaylor(order Order, vecs [4][3]float64) dualVec3 {
	var out dualVec3
	n := int(order)
	for i := 0; i < 3; i++ {
		coeffs := make([]float64, 0, n)
		for k := 0; k < n; k++ {
			coeffs = append(coeffs, vecs[k][i])
		}
		out[i] = newDual(coeffs)
	}
	return out
}

// Jet is the public face of dual: a scalar function of time carried as a
// value plus its first three time derivatives, exported so a package that
// registers a Rotating axes or Dynamical point (axes.go, points.go) can
// write its position/angle function directly in Jet arithmetic instead of
// precomputing rates by hand. Seeding the independent variable with JetVar
// and combining Jets with Add/Mul/Sin/... propagates all four Taylor
// coefficients through the expression in one pass — forward-mode automatic
// differentiation via nested dual numbers, exactly as autodiff.go's D1/D2/D3
// read back out.
type Jet struct{ d dual }

// JetVar seeds the independent time variable at t: value t, first
// derivative 1, higher derivatives 0.
func JetVar(t float64) Jet { return Jet{dual{v: t, d1: 1}} }

// JetConst lifts a time-invariant constant into Jet arithmetic.
func JetConst(v float64) Jet { return Jet{constDual(v)} }

// At returns the k-th time derivative of the Jet (k=0 is the value itself),
// k outside [0,3] reads as the third derivative.
func (j Jet) At(k int) float64 { return derivAt(j.d, k) }

func (j Jet) Add(o Jet) Jet { return Jet{dualAdd(j.d, o.d)} }
func (j Jet) Sub(o Jet) Jet { return Jet{dualSub(j.d, o.d)} }
func (j Jet) Neg() Jet      { return Jet{dualNeg(j.d)} }
func (j Jet) Mul(o Jet) Jet { return Jet{dualMul(j.d, o.d)} }
func (j Jet) Scale(k float64) Jet { return Jet{dualMul(j.d, constDual(k))} }
func (j Jet) Sin() Jet  { return Jet{dualSin(j.d)} }
func (j Jet) Cos() Jet  { return Jet{dualCos(j.d)} }
func (j Jet) Sqrt() Jet { return Jet{dualSqrt(j.d)} }
func (j Jet) Inv() Jet  { return Jet{dualInv(j.d)} }

// VectorJetFunc is a 3-component, Jet-valued function of time: the shape
// AddRotating and AddDynamical require of a producer's position/angle
// callback (axes.go, points.go), so that autodiff.go's D1/D2/D3 can read
// off exact higher-order time derivatives instead of estimating them
// numerically. Sequences needing fewer than 3 angles simply leave the
// trailing components unused.
type VectorJetFunc func(t Jet) [3]Jet
