package meeus

import "math"

// centralD1/D2/D3 estimate the time derivatives of a [3]float64-valued
// function of time by central finite differencing. This exists because
// State (meeus.go) wraps positionAt, which itself wraps the third-party
// soniakeys/meeus VSOP87/Pluto series: that series is opaque to this
// module, so it cannot be re-expressed in refframe's Jet arithmetic
// (dual.go) the way an internally-defined Rotating/Dynamical producer can.
// refframe's own autodiff.go (D1/D2/D3) is exact and is used everywhere
// this package does control the function being differentiated; this stencil
// is the deliberate exception at the third-party boundary.
const machineEpsilon = 2.220446049250313e-16

func stepSize(order int) float64 {
	switch order {
	case 1:
		return math.Pow(machineEpsilon, 1.0/3.0)
	case 2:
		return math.Pow(machineEpsilon, 1.0/4.0)
	default:
		return math.Pow(machineEpsilon, 1.0/5.0)
	}
}

func centralD1(f func(float64) [3]float64, t float64) [3]float64 {
	h := stepSize(1)
	plus, minus := f(t+h), f(t-h)
	return scaleSub(plus, minus, 1/(2*h))
}

func centralD2(f func(float64) [3]float64, t float64) [3]float64 {
	h := stepSize(2)
	plus, mid, minus := f(t+h), f(t), f(t-h)
	var out [3]float64
	for i := range out {
		out[i] = (plus[i] - 2*mid[i] + minus[i]) / (h * h)
	}
	return out
}

func centralD3(f func(float64) [3]float64, t float64) [3]float64 {
	h := stepSize(3)
	p2, p1, m1, m2 := f(t+2*h), f(t+h), f(t-h), f(t-2*h)
	var out [3]float64
	for i := range out {
		out[i] = (p2[i] - 2*p1[i] + 2*m1[i] - m2[i]) / (2 * h * h * h)
	}
	return out
}

func scaleSub(a, b [3]float64, k float64) [3]float64 {
	var out [3]float64
	for i := range out {
		out[i] = k * (a[i] - b[i])
	}
	return out
}
