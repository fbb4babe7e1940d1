package refframe

// D1, D2 and D3 extract the first, second and third time derivative of a
// VectorJetFunc at t by forward-mode automatic differentiation: f is
// evaluated once at the seeded jet variable JetVar(t) (dual.go), and the
// requested Taylor coefficient is read straight off the result. Every
// arithmetic and trigonometric primitive a caller composes f from
// (Jet.Add/Mul/Sin/Cos/...) already propagates all three derivatives
// exactly via the Leibniz and Faà di Bruno rules dual.go implements, so
// these are exact to machine precision, not a numerical estimate — this is
// the AD kernel rotFromAngleFn/stateFromPosFn (axes.go, points.go) call at
// query time to synthesize any derivative order the function registered
// through AddRotating/AddDynamical does not evaluate itself.
func D1(f VectorJetFunc, t float64) [3]float64 { return jetDerivative(f, t, 1) }
func D2(f VectorJetFunc, t float64) [3]float64 { return jetDerivative(f, t, 2) }
func D3(f VectorJetFunc, t float64) [3]float64 { return jetDerivative(f, t, 3) }

func jetDerivative(f VectorJetFunc, t float64, order int) [3]float64 {
	v := f(JetVar(t))
	return [3]float64{v[0].At(order), v[1].At(order), v[2].At(order)}
}
