package refframe

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestDualSinCosMatchAnalytic(t *testing.T) {
	theta := newDual([]float64{math.Pi / 5, 1.3, -0.4, 0.2})
	s := dualSin(theta)
	c := dualCos(theta)
	// s^2 + c^2 == 1 for the value component.
	if !floats.EqualWithinAbs(s.v*s.v+c.v*c.v, 1, 1e-12) {
		t.Fatalf("sin^2+cos^2 != 1: got %f", s.v*s.v+c.v*c.v)
	}
	// d/dtheta sin(theta) = cos(theta) * theta', by construction.
	if !floats.EqualWithinAbs(s.d1, c.v*theta.d1, 1e-12) {
		t.Fatalf("dsin/dt mismatch: got %f want %f", s.d1, c.v*theta.d1)
	}
	if !floats.EqualWithinAbs(c.d1, -s.v*theta.d1, 1e-12) {
		t.Fatalf("dcos/dt mismatch: got %f want %f", c.d1, -s.v*theta.d1)
	}
}

func TestDualMulLeibniz(t *testing.T) {
	a := dual{v: 2, d1: 3, d2: 5, d3: 7}
	b := dual{v: 11, d1: 13, d2: 17, d3: 19}
	got := dualMul(a, b)
	wantD2 := a.d2*b.v + 2*a.d1*b.d1 + a.v*b.d2
	wantD3 := a.d3*b.v + 3*a.d2*b.d1 + 3*a.d1*b.d2 + a.v*b.d3
	if got.d2 != wantD2 {
		t.Fatalf("d2 mismatch: got %f want %f", got.d2, wantD2)
	}
	if got.d3 != wantD3 {
		t.Fatalf("d3 mismatch: got %f want %f", got.d3, wantD3)
	}
}

func TestDualSqrtRecoversDerivative(t *testing.T) {
	// g(t) = t^2 near t=3: g=9, g'=6, g''=2, g'''=0. sqrt(g)=t, so y'=1,y''=0,y'''=0.
	g := dual{v: 9, d1: 6, d2: 2, d3: 0}
	y := dualSqrt(g)
	if !floats.EqualWithinAbs(y.v, 3, 1e-12) {
		t.Fatalf("sqrt value: got %f want 3", y.v)
	}
	if !floats.EqualWithinAbs(y.d1, 1, 1e-9) {
		t.Fatalf("sqrt d1: got %f want 1", y.d1)
	}
	if !floats.EqualWithinAbs(y.d2, 0, 1e-9) {
		t.Fatalf("sqrt d2: got %f want 0", y.d2)
	}
}

func TestDualInvIsMultiplicativeIdentity(t *testing.T) {
	g := dual{v: 4, d1: -2, d2: 1, d3: 0.5}
	inv := dualInv(g)
	product := dualMul(g, inv)
	if !floats.EqualWithinAbs(product.v, 1, 1e-12) {
		t.Fatalf("g*1/g value: got %f", product.v)
	}
	if !floats.EqualWithinAbs(product.d1, 0, 1e-9) {
		t.Fatalf("g*1/g d1 should vanish: got %f", product.d1)
	}
	if !floats.EqualWithinAbs(product.d2, 0, 1e-9) {
		t.Fatalf("g*1/g d2 should vanish: got %f", product.d2)
	}
}

func TestDv3NormalizeUnitLength(t *testing.T) {
	v := dv3FromTaylor(OrderAcceleration, [4][3]float64{
		{3, 4, 0}, {1, -1, 0.5}, {0.2, 0.1, 0},
	})
	u := dv3Normalize(v)
	n := dv3Norm(u)
	if !floats.EqualWithinAbs(n.v, 1, 1e-9) {
		t.Fatalf("normalized vector should have unit length, got %f", n.v)
	}
}
