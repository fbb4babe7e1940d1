package refframe

import "github.com/gonum/matrix/mat64"

// Rot is a DCM together with as many of its time derivatives as Order
// specifies: M[0] is the rotation itself, M[1] its first derivative
// (angular-velocity term), M[2] the second (angular acceleration), M[3] the
// third (jerk). Entries beyond Order are nil and must not be read; queries
// above Order fail with ErrOrderExceeded (order.go).
//
// This has no direct analogue in the reference codebase, which only ever
// carries a single DCM (rotation.go's R1/R2/R3 return *mat64.Dense
// directly); it generalizes that single-matrix convention to a fixed-arity
// stack of matrices, composed the same way tools.go composes mat64 values
// (Mul/Add/Scale on freshly zero-valued Dense receivers).
type Rot struct {
	Order Order
	M     [4]*mat64.Dense
}

// IdentityRot returns a Rot of the given order whose value is the identity
// DCM and whose derivatives are all zero (a frame that does not rotate
// relative to its parent).
func IdentityRot(order Order) Rot {
	r := Rot{Order: order}
	r.M[0] = denseIdentity3()
	for k := 1; k < int(order); k++ {
		r.M[k] = denseZero3()
	}
	return r
}

// ConstDcmRot returns a Rot of the given order built from a fixed DCM with
// all derivatives zero (a FixedOffset axes node, §9).
func ConstDcmRot(order Order, dcm *mat64.Dense) Rot {
	r := Rot{Order: order}
	r.M[0] = dcm
	for k := 1; k < int(order); k++ {
		r.M[k] = denseZero3()
	}
	return r
}

// Compose returns the rotation from grandparent to child given the
// parent-to-child rotation r (this) applied after grandparent-to-parent
// rotation p: result = r * p, with derivatives combined via the Leibniz
// product rule up to min(r.Order, p.Order).
func (r Rot) Compose(p Rot) Rot {
	order := r.Order
	if p.Order < order {
		order = p.Order
	}
	out := Rot{Order: order}
	for k := 0; k < int(order); k++ {
		sum := denseZero3()
		for j := 0; j <= k; j++ {
			term := denseScale(binomial(k, j), denseMul(r.M[k-j], p.M[j]))
			sum = denseAdd(sum, term)
		}
		out.M[k] = sum
	}
	return out
}

// Inverse returns the rotation in the opposite direction. Because a DCM is
// orthonormal, its inverse is its transpose; the same holds termwise for
// each derivative, since d/dt(M^T) = (dM/dt)^T.
func (r Rot) Inverse() Rot {
	out := Rot{Order: r.Order}
	for k := 0; k < int(r.Order); k++ {
		out.M[k] = denseTranspose(r.M[k])
	}
	return out
}

// AngularVelocity extracts the angular velocity vector w such that
// M[1] == -Skew(w) * M[0], recovered from the skew-symmetric part of
// -M[1] * M[0]^T. Requires r.Order >= OrderVelocity.
func (r Rot) AngularVelocity() ([3]float64, error) {
	if err := checkOrder(OrderVelocity, r.Order); err != nil {
		return [3]float64{}, err
	}
	skew := denseMul(denseScale(-1, r.M[1]), denseTranspose(r.M[0]))
	return [3]float64{
		skew.At(2, 1),
		skew.At(0, 2),
		skew.At(1, 0),
	}, nil
}

// Apply rotates a State from the frame r maps from into the frame r maps
// to: out[k] = sum_j C(k,j) M[j] * s[k-j], truncated to min(r.Order, s.Order).
func (r Rot) Apply(s State) State {
	order := r.Order
	if s.Order < order {
		order = s.Order
	}
	out := State{Order: order}
	for k := 0; k < int(order); k++ {
		sum := [3]float64{}
		for j := 0; j <= k; j++ {
			rotated := matVec3(r.M[j], s.entry(k-j))
			c := binomial(k, j)
			sum = [3]float64{sum[0] + c*rotated[0], sum[1] + c*rotated[1], sum[2] + c*rotated[2]}
		}
		out.setEntry(k, sum)
	}
	return out
}

func matVec3(M *mat64.Dense, v [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = M.At(i, 0)*v[0] + M.At(i, 1)*v[1] + M.At(i, 2)*v[2]
	}
	return out
}
