package refframe

import (
	"testing"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

func TestRot3PrimaryAxisAlignment(t *testing.T) {
	in := TwoVectorInputs{
		Primary:   [4][3]float64{{1, 1, 0}, {}, {}, {}},
		Secondary: [4][3]float64{{0, 1, 1}, {}, {}, {}},
	}
	rot, err := Rot3(SeqXY, in)
	if err != nil {
		t.Fatal(err)
	}
	// Row 0 of the DCM is the frame's X axis expressed in the input basis;
	// it must equal the normalized primary vector.
	row0 := [3]float64{rot.M[0].At(0, 0), rot.M[0].At(0, 1), rot.M[0].At(0, 2)}
	want := unit3([3]float64{1, 1, 0})
	if !floats.EqualWithinAbs(row0[0], want[0], 1e-9) || !floats.EqualWithinAbs(row0[1], want[1], 1e-9) {
		t.Fatalf("primary axis row mismatch: got %v want %v", row0, want)
	}
}

func TestRot3Orthonormal(t *testing.T) {
	in := TwoVectorInputs{
		Primary:   [4][3]float64{{1, 0.2, -0.3}, {}, {}, {}},
		Secondary: [4][3]float64{{0.1, 1, 0.4}, {}, {}, {}},
	}
	rot, err := Rot3(SeqXZ, in)
	if err != nil {
		t.Fatal(err)
	}
	var product mat64.Dense
	product.Mul(rot.M[0], denseTranspose(rot.M[0]))
	if !mat64.EqualApprox(&product, denseIdentity3(), 1e-8) {
		t.Fatalf("two-vector DCM not orthonormal:\n%v", mat64.Formatted(&product))
	}
}

func TestRot6DerivativeMatchesFiniteDifference(t *testing.T) {
	primary := func(tau float64) [3]float64 { return [3]float64{1 + 0.01*tau, 0.5, 0.2} }
	secondary := func(tau float64) [3]float64 { return [3]float64{0.3, 1 - 0.02*tau, 0.1} }
	h := 1e-5
	rotAt := func(tau float64) Rot {
		in := TwoVectorInputs{
			Primary:   [4][3]float64{primary(tau), {}, {}, {}},
			Secondary: [4][3]float64{secondary(tau), {}, {}, {}},
		}
		r, err := Rot3(SeqXY, in)
		if err != nil {
			t.Fatal(err)
		}
		return r
	}
	plus, minus := rotAt(h), rotAt(-h)
	var fd mat64.Dense
	fd.Sub(plus.M[0], minus.M[0])
	fd.Scale(1/(2*h), &fd)

	p0, s0 := primary(0), secondary(0)
	pRate := [3]float64{0.01, 0, 0}
	sRate := [3]float64{0, -0.02, 0}
	in := TwoVectorInputs{
		Primary:   [4][3]float64{p0, pRate, {}, {}},
		Secondary: [4][3]float64{s0, sRate, {}, {}},
	}
	analytic, err := Rot6(SeqXY, in)
	if err != nil {
		t.Fatal(err)
	}
	var diff mat64.Dense
	diff.Sub(&fd, analytic.M[1])
	if !mat64.EqualApprox(&diff, mat64.NewDense(3, 3, nil), 1e-4) {
		t.Fatalf("Rot6 derivative mismatch:\nfd:\n%v\nanalytic:\n%v", mat64.Formatted(&fd), mat64.Formatted(analytic.M[1]))
	}
}

// TestTwoVecRotIsProperAcrossAllSequences guards against reflections
// (det=-1): TestRot3Orthonormal alone accepts R*R^T==I for a reflection too,
// so every one of the 6 pair sequences is checked here for det(R)=+1.
func TestTwoVecRotIsProperAcrossAllSequences(t *testing.T) {
	in := TwoVectorInputs{
		Primary:   [4][3]float64{{1, 0.2, -0.3}, {}, {}, {}},
		Secondary: [4][3]float64{{0.1, 1, 0.4}, {}, {}, {}},
	}
	for _, seq := range []Sequence{SeqXY, SeqYX, SeqXZ, SeqZX, SeqYZ, SeqZY} {
		rot, err := Rot3(seq, in)
		if err != nil {
			t.Fatalf("seq %d: %s", seq, err)
		}
		det := mat64.Det(rot.M[0])
		if !floats.EqualWithinAbs(det, 1.0, 1e-9) {
			t.Fatalf("seq %d: det(R) = %v, want +1 (improper/reflection matrix)", seq, det)
		}
		var product mat64.Dense
		product.Mul(rot.M[0], denseTranspose(rot.M[0]))
		if !mat64.EqualApprox(&product, denseIdentity3(), 1e-8) {
			t.Fatalf("seq %d: DCM not orthonormal:\n%v", seq, mat64.Formatted(&product))
		}
	}
}

func TestTwoVecInvalidSequence(t *testing.T) {
	in := TwoVectorInputs{Primary: [4][3]float64{{1, 0, 0}}, Secondary: [4][3]float64{{0, 1, 0}}}
	if _, err := Rot3(SeqXYZ, in); err == nil {
		t.Fatal("expected error for non-pair sequence")
	}
}
