package refframe

import (
	"errors"
	"math"
	"testing"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/matrix/mat64"
)

func TestAxesRegistryInertialRotationIdentity(t *testing.T) {
	r := newAxesRegistry(NopLogger())
	if err := r.AddInertialRoot(1, "ICRF"); err != nil {
		t.Fatal(err)
	}
	rot, err := r.Rotation(1, 1, 0, OrderPosition)
	if err != nil {
		t.Fatal(err)
	}
	var diff mat64.Dense
	diff.Sub(rot.M[0], denseIdentity3())
	if !mat64.EqualApprox(&diff, mat64.NewDense(3, 3, nil), 1e-12) {
		t.Fatalf("self-rotation should be identity")
	}
}

func TestAxesRegistryFixedOffsetInverse(t *testing.T) {
	r := newAxesRegistry(NopLogger())
	if err := r.AddInertialRoot(1, "ICRF"); err != nil {
		t.Fatal(err)
	}
	dcm, _ := AngleToDCM(SeqZ, math.Pi/4)
	if err := r.AddFixedOffset(2, "TILTED", 1, ConstDcmRot(OrderPosition, dcm)); err != nil {
		t.Fatal(err)
	}
	fwd, err := r.Rotation(1, 2, 0, OrderPosition)
	if err != nil {
		t.Fatal(err)
	}
	back, err := r.Rotation(2, 1, 0, OrderPosition)
	if err != nil {
		t.Fatal(err)
	}
	var product mat64.Dense
	product.Mul(fwd.M[0], back.M[0])
	if !mat64.EqualApprox(&product, denseIdentity3(), 1e-9) {
		t.Fatalf("forward*backward should be identity:\n%v", mat64.Formatted(&product))
	}
}

func TestAxesRegistryRotatingBetweenSiblings(t *testing.T) {
	r := newAxesRegistry(NopLogger())
	if err := r.AddInertialRoot(1, "ICRF"); err != nil {
		t.Fatal(err)
	}
	spinA := func(t Jet) [3]Jet { return [3]Jet{t.Scale(0.1), JetConst(0), JetConst(0)} }
	spinB := func(t Jet) [3]Jet { return [3]Jet{t.Scale(-0.2), JetConst(0), JetConst(0)} }
	if err := r.AddRotating(2, "A", 1, SeqZ, spinA); err != nil {
		t.Fatal(err)
	}
	if err := r.AddRotating(3, "B", 1, SeqZ, spinB); err != nil {
		t.Fatal(err)
	}
	rot, err := r.Rotation(2, 3, 10, OrderPosition)
	if err != nil {
		t.Fatal(err)
	}
	// rotToParent(A) = rotation(ICRF,A), rotToParent(B) = rotation(ICRF,B)
	// (registration convention, S3). By invariant 3 with lca=ICRF:
	// rotation(A,B) = rotation(ICRF,B) * rotation(ICRF,A)^-1.
	aToI, _ := rotFromAngleFn(SeqZ, spinA, 10, OrderPosition)
	bToI, _ := rotFromAngleFn(SeqZ, spinB, 10, OrderPosition)
	want := bToI.Compose(aToI.Inverse())
	var diff mat64.Dense
	diff.Sub(rot.M[0], want.M[0])
	if !mat64.EqualApprox(&diff, mat64.NewDense(3, 3, nil), 1e-9) {
		t.Fatalf("sibling rotation mismatch:\ngot:\n%v\nwant:\n%v", mat64.Formatted(rot.M[0]), mat64.Formatted(want.M[0]))
	}
}

// TestAxesRegistryRotationMatchesScenarioS3 pins Rotation to the literal
// values spec.md's S3 requires, not just fwd*back==I self-consistency
// (which an inverted convention would also satisfy).
func TestAxesRegistryRotationMatchesScenarioS3(t *testing.T) {
	r := newAxesRegistry(NopLogger())
	if err := r.AddInertialRoot(1, "ICRF"); err != nil {
		t.Fatal(err)
	}
	dcm, err := AngleToDCM(SeqZ, math.Pi/3)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.AddFixedOffset(2, "ECLIPJ2000", 1, ConstDcmRot(OrderPosition, dcm)); err != nil {
		t.Fatal(err)
	}

	fwd, err := r.Rotation(1, 2, 0, OrderPosition)
	if err != nil {
		t.Fatal(err)
	}
	var fwdDiff mat64.Dense
	fwdDiff.Sub(fwd.M[0], dcm)
	if !mat64.EqualApprox(&fwdDiff, mat64.NewDense(3, 3, nil), 1e-12) {
		t.Fatalf("rotation(ICRF,ECLIPJ2000) mismatch:\ngot:\n%v\nwant:\n%v", mat64.Formatted(fwd.M[0]), mat64.Formatted(dcm))
	}

	back, err := r.Rotation(2, 1, 0, OrderPosition)
	if err != nil {
		t.Fatal(err)
	}
	wantBack, err := AngleToDCM(SeqZ, -math.Pi/3)
	if err != nil {
		t.Fatal(err)
	}
	var backDiff mat64.Dense
	backDiff.Sub(back.M[0], wantBack)
	if !mat64.EqualApprox(&backDiff, mat64.NewDense(3, 3, nil), 1e-12) {
		t.Fatalf("rotation(ECLIPJ2000,ICRF) mismatch:\ngot:\n%v\nwant:\n%v", mat64.Formatted(back.M[0]), mat64.Formatted(wantBack))
	}
}

// TestAxesRegistryRotationMatchesScenarioS6 pins the 1st-derivative block of
// a Rotating axes node's Rotation to spec.md's S6 literal value.
func TestAxesRegistryRotationMatchesScenarioS6(t *testing.T) {
	r := newAxesRegistry(NopLogger())
	if err := r.AddInertialRoot(1, "ICRF"); err != nil {
		t.Fatal(err)
	}
	f := func(t Jet) [3]Jet { return [3]Jet{t, JetConst(0), JetConst(0)} }
	if err := r.AddRotating(2, "SYNODIC", 1, SeqZ, f); err != nil {
		t.Fatal(err)
	}
	got, err := r.Rotation(1, 2, math.Pi/6, OrderVelocity)
	if err != nil {
		t.Fatal(err)
	}
	want, err := AngleToDdcm(SeqZ, AngleSlot{math.Pi / 6, 1.0})
	if err != nil {
		t.Fatal(err)
	}
	var diff mat64.Dense
	diff.Sub(got.M[1], want)
	if !mat64.EqualApprox(&diff, mat64.NewDense(3, 3, nil), 1e-12) {
		t.Fatalf("rotation(ICRF,SYNODIC) rate block mismatch:\ngot:\n%v\nwant:\n%v", mat64.Formatted(got.M[1]), mat64.Formatted(want))
	}
}

func TestAxesRegistryUnknownParent(t *testing.T) {
	r := newAxesRegistry(NopLogger())
	if err := r.AddInertialRoot(1, "ICRF"); err != nil {
		t.Fatal(err)
	}
	err := r.AddFixedOffset(2, "X", 999, ConstDcmRot(OrderPosition, denseIdentity3()))
	if !errors.Is(err, ErrUnknownAxes) {
		t.Fatalf("expected ErrUnknownAxes, got %v", err)
	}
}

func TestAxesRegistryInertialParentMustBeInertial(t *testing.T) {
	r := newAxesRegistry(NopLogger())
	if err := r.AddInertialRoot(1, "ICRF"); err != nil {
		t.Fatal(err)
	}
	if err := r.AddFixedOffset(2, "FIXED", 1, ConstDcmRot(OrderPosition, denseIdentity3())); err != nil {
		t.Fatal(err)
	}
	err := r.AddInertial(3, "BAD", 2, ConstDcmRot(OrderPosition, denseIdentity3()))
	if !errors.Is(err, ErrInvalidParent) {
		t.Fatalf("expected ErrInvalidParent, got %v", err)
	}
}

func TestAxesRegistryComputableJerkLogsWarning(t *testing.T) {
	logged := 0
	r := newAxesRegistry(kitlog.LoggerFunc(func(keyvals ...interface{}) error {
		logged++
		return nil
	}))
	if err := r.AddInertialRoot(1, "ICRF"); err != nil {
		t.Fatal(err)
	}
	producer := func(et float64, order Order) (Rot, error) {
		in := TwoVectorInputs{Primary: [4][3]float64{{1, 0, 0}}, Secondary: [4][3]float64{{0, 1, 0}}}
		return twoVecRot(SeqXY, order, in)
	}
	// Must not error or panic even though jerk order amplifies noise.
	if err := r.AddComputable(2, "COMPUTED", 1, OrderJerk, producer); err != nil {
		t.Fatal(err)
	}
	if logged != 1 {
		t.Fatalf("expected one jerk-order warning at registration, got %d log calls", logged)
	}
	rot, err := r.Rotation(1, 2, 0, OrderJerk)
	if err != nil {
		t.Fatal(err)
	}
	if math.IsNaN(rot.M[0].At(0, 0)) {
		t.Fatal("computable jerk rotation produced NaN")
	}
}

// TestAxesRegistryRotatingSynthesizesRateFromAngleOnly is the Rotating-axes
// scenario: the registered angle function reports only the value
// pi/6 + 1.0*t, with no analytic rate of its own. Querying at
// OrderVelocity must recover the first-derivative DCM block via autodiff
// (D1, autodiff.go) and match angleToRot's direct construction from the
// known analytic rate exactly, not just approximately.
func TestAxesRegistryRotatingSynthesizesRateFromAngleOnly(t *testing.T) {
	const angle0, rate = math.Pi / 6, 1.0
	angleOnly := func(tt Jet) [3]Jet {
		return [3]Jet{JetConst(angle0).Add(tt.Scale(rate)), JetConst(0), JetConst(0)}
	}
	got, err := rotFromAngleFn(SeqZ, angleOnly, 0, OrderVelocity)
	if err != nil {
		t.Fatal(err)
	}
	want, err := angleToRot(SeqZ, OrderVelocity, []AngleSlot{{angle0, rate}})
	if err != nil {
		t.Fatal(err)
	}
	var diff mat64.Dense
	diff.Sub(got.M[1], want.M[1])
	if !mat64.EqualApprox(&diff, mat64.NewDense(3, 3, nil), 1e-12) {
		t.Fatalf("autodiff-synthesized rate DCM mismatch:\ngot:\n%v\nwant:\n%v", mat64.Formatted(got.M[1]), mat64.Formatted(want.M[1]))
	}
}
