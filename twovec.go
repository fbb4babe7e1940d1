package refframe

import "fmt"

// axisFromDual reads the unit vector (and its derivatives) that a dualVec3
// represents into a plain [3]float64-order stack for matrix assembly.
func axisFromDual(v dualVec3, order int) [3]float64 {
	return [3]float64{derivAt(v[0], order), derivAt(v[1], order), derivAt(v[2], order)}
}

// cyclicNext returns the axis following a in the right-handed cyclic order
// X->Y->Z->X, used to test a two-vector sequence's parity.
func cyclicNext(a Axis) Axis {
	switch a {
	case AxisX:
		return AxisY
	case AxisY:
		return AxisZ
	default:
		return AxisX
	}
}

// TwoVectorInputs supplies the two body-frame vectors (primary and
// secondary) used to build a Rot via the two-vectors method, each carried
// as a Taylor stack [value, rate, accel, jerk] truncated to the requested
// order.
type TwoVectorInputs struct {
	Primary, Secondary [4][3]float64
}

// twoVecRot builds the Rot mapping into a frame whose first named axis is
// exactly the (possibly time-varying) primary vector, and whose second
// named axis lies in the plane of primary and secondary — the classical
// two-vectors frame construction. seq must be one of the 6 pair sequences
// (twoVecSequences in dcm.go); the corresponding Rot3/Rot6/Rot9/Rot12
// public entry points below are named after the source's own historical
// naming for order-1..4 two-vector attitude construction.
func twoVecRot(seq Sequence, order Order, in TwoVectorInputs) (Rot, error) {
	axes, ok := twoVecSequences[seq]
	if !ok {
		return Rot{}, fmt.Errorf("two-vector: sequence %d: %w", seq, ErrInvalidSequence)
	}
	if order == OrderJerk {
		// jerk-order two-vector construction differentiates a normalize()
		// and a cross() three times; the warning about it is logged once by
		// AddComputable (axes.go) at registration, not here, to avoid a
		// logging dependency in this pure-math file.
		_ = axes
	}

	p := dv3FromTaylor(order, in.Primary)
	s := dv3FromTaylor(order, in.Secondary)

	primaryHat := dv3Normalize(p)
	crossHat := dv3Normalize(dv3Cross(p, s))
	thirdHat := dv3Cross(crossHat, primaryHat)

	// The third axis is fixed by the right-hand rule, with sign determined
	// by sequence parity: {XY,YZ,ZX} name their axes in cyclic order (their
	// unflipped crossHat is already the right-handed completion), while
	// {YX,XZ,ZY} name them in reverse-cyclic order, which would otherwise
	// assemble an improper (det=-1, reflection) DCM.
	sign := 1.0
	if cyclicNext(axes[0]) != axes[1] {
		sign = -1.0
	}
	crossHat = dv3Scale(constDual(sign), crossHat)

	// axisVecs[0] is the axis named first in seq, axisVecs[1] the second;
	// the two are always orthogonal by construction, and the DCM's rows are
	// their components (a row-vector-per-target-axis convention matching
	// axisDualDCM's elementary rotations in dcm.go).
	var axisVecs [3]dualVec3
	first, second := axes[0], axes[1]
	axisVecs[first-1] = primaryHat
	axisVecs[second-1] = thirdHat
	third := AxisX + AxisY + AxisZ - first - second
	axisVecs[third-1] = crossHat

	out := Rot{Order: order}
	for k := 0; k < int(order); k++ {
		out.M[k] = denseZero3()
		for row := 0; row < 3; row++ {
			v := axisFromDual(axisVecs[row], k)
			out.M[k].Set(row, 0, v[0])
			out.M[k].Set(row, 1, v[1])
			out.M[k].Set(row, 2, v[2])
		}
	}
	return out, nil
}

// Rot3 builds a position-only (Order 1) two-vector Rot.
func Rot3(seq Sequence, in TwoVectorInputs) (Rot, error) {
	return twoVecRot(seq, OrderPosition, in)
}

// Rot6 builds a position+velocity (Order 2) two-vector Rot.
func Rot6(seq Sequence, in TwoVectorInputs) (Rot, error) {
	return twoVecRot(seq, OrderVelocity, in)
}

// Rot9 builds a position+velocity+acceleration (Order 3) two-vector Rot.
func Rot9(seq Sequence, in TwoVectorInputs) (Rot, error) {
	return twoVecRot(seq, OrderAcceleration, in)
}

// Rot12 builds a full position+velocity+acceleration+jerk (Order 4)
// two-vector Rot. Jerk-order two-vector frames amplify normalize/cross
// derivative noise; callers driving this from live ephemerides should
// prefer Rot9 unless jerk is genuinely required.
func Rot12(seq Sequence, in TwoVectorInputs) (Rot, error) {
	return twoVecRot(seq, OrderJerk, in)
}
