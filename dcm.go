package refframe

import (
	"fmt"
	"math"

	"github.com/gonum/matrix/mat64"
)

// Axis names a single rotation axis; DCM sequences are built from these,
// generalizing the reference codebase's dedicated R1/R2/R3 rotation
// builders (rotation.go) into a table-driven kernel.
type Axis uint8

const (
	AxisX Axis = iota + 1
	AxisY
	AxisZ
)

// Sequence is a symbolic Euler-angle rotation sequence: one of the 3
// singletons, 6 pairs, or 12 triplets (all Tait-Bryan and proper-Euler
// combinations) — a closed enumeration of at most 21 values, per design
// note in SPEC_FULL.md §9.
type Sequence uint8

const (
	SeqX Sequence = iota + 1
	SeqY
	SeqZ
	SeqXY
	SeqXZ
	SeqYX
	SeqYZ
	SeqZX
	SeqZY
	SeqXYX
	SeqXYZ
	SeqXZX
	SeqXZY
	SeqYXY
	SeqYXZ
	SeqYZX
	SeqYZY
	SeqZXY
	SeqZXZ
	SeqZYX
	SeqZYZ
)

var sequenceAxes = map[Sequence][]Axis{
	SeqX: {AxisX}, SeqY: {AxisY}, SeqZ: {AxisZ},
	SeqXY: {AxisX, AxisY}, SeqXZ: {AxisX, AxisZ},
	SeqYX: {AxisY, AxisX}, SeqYZ: {AxisY, AxisZ},
	SeqZX: {AxisZ, AxisX}, SeqZY: {AxisZ, AxisY},
	SeqXYX: {AxisX, AxisY, AxisX}, SeqXYZ: {AxisX, AxisY, AxisZ},
	SeqXZX: {AxisX, AxisZ, AxisX}, SeqXZY: {AxisX, AxisZ, AxisY},
	SeqYXY: {AxisY, AxisX, AxisY}, SeqYXZ: {AxisY, AxisX, AxisZ},
	SeqYZX: {AxisY, AxisZ, AxisX}, SeqYZY: {AxisY, AxisZ, AxisY},
	SeqZXY: {AxisZ, AxisX, AxisY}, SeqZXZ: {AxisZ, AxisX, AxisZ},
	SeqZYX: {AxisZ, AxisY, AxisX}, SeqZYZ: {AxisZ, AxisY, AxisZ},
}

// twoVecSequences restricts Sequence to the 6 pair sequences valid for the
// two-vectors construction (§4.1).
var twoVecSequences = map[Sequence][2]Axis{
	SeqXY: {AxisX, AxisY}, SeqYX: {AxisY, AxisX},
	SeqXZ: {AxisX, AxisZ}, SeqZX: {AxisZ, AxisX},
	SeqYZ: {AxisY, AxisZ}, SeqZY: {AxisZ, AxisY},
}

// AngleSlot holds an Euler angle together with up to three time derivatives
// [angle, rate, accel, jerk], truncated to whatever order the caller knows.
type AngleSlot []float64

// denseZero3 returns a fresh 3x3 zero matrix.
func denseZero3() *mat64.Dense { return mat64.NewDense(3, 3, nil) }

func denseIdentity3() *mat64.Dense {
	m := denseZero3()
	m.Set(0, 0, 1)
	m.Set(1, 1, 1)
	m.Set(2, 2, 1)
	return m
}

func denseMul(a, b *mat64.Dense) *mat64.Dense {
	var out mat64.Dense
	out.Mul(a, b)
	return &out
}

func denseAdd(a, b *mat64.Dense) *mat64.Dense {
	var out mat64.Dense
	out.Add(a, b)
	return &out
}

func denseScale(k float64, a *mat64.Dense) *mat64.Dense {
	var out mat64.Dense
	out.Scale(k, a)
	return &out
}

func denseTranspose(a *mat64.Dense) *mat64.Dense {
	r, c := a.Dims()
	out := mat64.NewDense(c, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(j, i, a.At(i, j))
		}
	}
	return out
}

// Skew returns the 3x3 skew-symmetric cross-product matrix of w, such that
// Skew(w)*v == cross(w, v) for any 3-vector v.
func Skew(w [3]float64) *mat64.Dense {
	return mat64.NewDense(3, 3, []float64{
		0, -w[2], w[1],
		w[2], 0, -w[0],
		-w[1], w[0], 0,
	})
}

// Ddcm returns -Skew(w)*M, the time derivative of a DCM M whose target
// frame rotates with angular velocity w expressed in the target frame.
func Ddcm(M *mat64.Dense, w [3]float64) *mat64.Dense {
	return denseScale(-1, denseMul(Skew(w), M))
}

func norm3(v [3]float64) float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

func dot3(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func sub3(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func scale3(k float64, a [3]float64) [3]float64 { return [3]float64{k * a[0], k * a[1], k * a[2]} }

func cross3(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Orthonormalize applies classical Gram-Schmidt to the columns of M,
// returning a DCM with orthonormal columns. Behavior on a rank-deficient
// input is undefined (unit3 leaves a zero column as zero instead of
// normalizing it, so the result is not orthonormal).
func Orthonormalize(M *mat64.Dense) *mat64.Dense {
	var cols [3][3]float64
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			cols[j][i] = M.At(i, j)
		}
	}
	e0 := unit3(cols[0])
	u1 := sub3(cols[1], scale3(dot3(e0, cols[1]), e0))
	e1 := unit3(u1)
	u2 := sub3(cols[2], scale3(dot3(e0, cols[2]), e0))
	u2 = sub3(u2, scale3(dot3(e1, u2), e1))
	e2 := unit3(u2)
	out := denseZero3()
	for i := 0; i < 3; i++ {
		out.Set(i, 0, e0[i])
		out.Set(i, 1, e1[i])
		out.Set(i, 2, e2[i])
	}
	return out
}

func unit3(v [3]float64) [3]float64 {
	n := norm3(v)
	if n == 0 {
		return v
	}
	inv := 1 / math.Sqrt(n)
	return scale3(inv, v)
}

// axisDualDCM returns the elementary DCM about axis, parameterized by the
// dual angle theta (value plus up to three time derivatives), matching the
// sign convention of the reference codebase's R1/R2/R3 (rotation.go).
func axisDualDCM(axis Axis, theta dual) [3][3]dual {
	s := dualSin(theta)
	c := dualCos(theta)
	one := constDual(1)
	zero := dual{}
	negS := dualNeg(s)
	switch axis {
	case AxisX:
		return [3][3]dual{
			{one, zero, zero},
			{zero, c, s},
			{zero, negS, c},
		}
	case AxisY:
		return [3][3]dual{
			{c, zero, negS},
			{zero, one, zero},
			{s, zero, c},
		}
	default: // AxisZ
		return [3][3]dual{
			{c, s, zero},
			{negS, c, zero},
			{zero, zero, one},
		}
	}
}

func dualMatIdentity() [3][3]dual {
	return [3][3]dual{
		{constDual(1), {}, {}},
		{{}, constDual(1), {}},
		{{}, {}, constDual(1)},
	}
}

func dualMatMul(a, b [3][3]dual) [3][3]dual {
	var out [3][3]dual
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := dual{}
			for k := 0; k < 3; k++ {
				sum = dualAdd(sum, dualMul(a[i][k], b[k][j]))
			}
			out[i][j] = sum
		}
	}
	return out
}

// angleToDualDCM composes M = A_n * ... * A_1 (rightmost applied first) for
// the axes named by seq, each parameterized by the corresponding angle slot.
func angleToDualDCM(seq Sequence, slots []AngleSlot) ([3][3]dual, error) {
	axes, ok := sequenceAxes[seq]
	if !ok {
		return [3][3]dual{}, fmt.Errorf("angle to dcm: sequence %d: %w", seq, ErrInvalidSequence)
	}
	if len(slots) < len(axes) {
		return [3][3]dual{}, fmt.Errorf("angle to dcm: sequence needs %d angle slots, got %d: %w", len(axes), len(slots), ErrDimensionMismatch)
	}
	acc := dualMatIdentity()
	for i, axis := range axes {
		A := axisDualDCM(axis, newDual(slots[i]))
		if i == 0 {
			acc = A
		} else {
			acc = dualMatMul(A, acc)
		}
	}
	return acc, nil
}

func extractOrder(dm [3][3]dual, order int) *mat64.Dense {
	out := denseZero3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, derivAt(dm[i][j], order))
		}
	}
	return out
}

// AngleToDCM converts an Euler angle triple (or pair, or singleton) to a
// DCM. seq selects how many of theta1..theta3 are consumed; unspecified
// trailing angles are ignored. Convention: M = A3*A2*A1 (rightmost applied
// first).
func AngleToDCM(seq Sequence, thetas ...float64) (*mat64.Dense, error) {
	slots := make([]AngleSlot, len(thetas))
	for i, t := range thetas {
		slots[i] = AngleSlot{t}
	}
	dm, err := angleToDualDCM(seq, slots)
	if err != nil {
		return nil, err
	}
	return extractOrder(dm, 0), nil
}

// AngleToDdcm returns the first time derivative of the DCM built from seq,
// given angle slots each carrying at least [angle, rate].
func AngleToDdcm(seq Sequence, slots ...AngleSlot) (*mat64.Dense, error) {
	dm, err := angleToDualDCM(seq, slots)
	if err != nil {
		return nil, err
	}
	return extractOrder(dm, 1), nil
}

// AngleToD2dcm returns the second time derivative; slots need [angle, rate, accel].
func AngleToD2dcm(seq Sequence, slots ...AngleSlot) (*mat64.Dense, error) {
	dm, err := angleToDualDCM(seq, slots)
	if err != nil {
		return nil, err
	}
	return extractOrder(dm, 2), nil
}

// AngleToD3dcm returns the third time derivative; slots need [angle, rate, accel, jerk].
func AngleToD3dcm(seq Sequence, slots ...AngleSlot) (*mat64.Dense, error) {
	dm, err := angleToDualDCM(seq, slots)
	if err != nil {
		return nil, err
	}
	return extractOrder(dm, 3), nil
}

// angleToRot builds a full Rot up to order from angle slots, used
// internally by Rotating axes producers.
func angleToRot(seq Sequence, order Order, slots []AngleSlot) (Rot, error) {
	dm, err := angleToDualDCM(seq, slots)
	if err != nil {
		return Rot{}, err
	}
	out := Rot{Order: order}
	for k := 0; k < int(order); k++ {
		out.M[k] = extractOrder(dm, k)
	}
	return out, nil
}
