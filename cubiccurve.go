package spline

// CubicPolynomial is one piece of a piecewise-cubic curve: a pair of cubic
// polynomials, one per axis, over the normalized parameter s ∈ [0, 1], plus
// the duration the piece spans in the overall curve's time parameter.
//
// Coeffs holds one row per axis with the coefficients ordered from highest
// power to lowest, [d, c, b, a], so that the position at s is
// a + b·s + c·s² + d·s³.
type CubicPolynomial struct {
	Duration float64
	Coeffs   [2][4]float64
}

// Eval returns the position at the normalized parameter s, evaluated with
// Horner's scheme.
func (p CubicPolynomial) Eval(s float64) Point {
	var out [2]float64
	for axis, row := range p.Coeffs {
		v := 0.0
		for _, c := range row {
			v = v*s + c
		}
		out[axis] = v
	}
	return Pt(out[0], out[1])
}

// Deriv returns the first derivative with respect to s at the normalized
// parameter s.
func (p CubicPolynomial) Deriv(s float64) Vec2 {
	var out [2]float64
	for axis, row := range p.Coeffs {
		d, c, b := row[0], row[1], row[2]
		out[axis] = (3*d*s+2*c)*s + b
	}
	return Vec(out[0], out[1])
}

// SecondDeriv returns the second derivative with respect to s at the
// normalized parameter s.
func (p CubicPolynomial) SecondDeriv(s float64) Vec2 {
	var out [2]float64
	for axis, row := range p.Coeffs {
		d, c := row[0], row[1]
		out[axis] = 6*d*s + 2*c
	}
	return Vec(out[0], out[1])
}

// Start returns the position at s = 0.
func (p CubicPolynomial) Start() Point {
	return Pt(p.Coeffs[0][3], p.Coeffs[1][3])
}

// End returns the position at s = 1.
func (p CubicPolynomial) End() Point {
	return p.Eval(1)
}

// CubicCurve is a piecewise-cubic curve, the ordered concatenation of its
// segments. The curve's time parameter runs from 0 to [CubicCurve.Duration];
// each segment covers a window of its own Duration, reparameterized to the
// segment's normalized s ∈ [0, 1].
type CubicCurve []CubicPolynomial

// Duration returns the total duration of the curve.
func (c CubicCurve) Duration() float64 {
	var total float64
	for _, p := range c {
		total += p.Duration
	}
	return total
}

// locate finds the segment covering time t and t's normalized position
// within it. Times outside [0, Duration] clamp to the nearest endpoint.
func (c CubicCurve) locate(t float64) (CubicPolynomial, float64) {
	t = max(t, 0)
	for _, p := range c[:len(c)-1] {
		if t <= p.Duration {
			return p, t / p.Duration
		}
		t -= p.Duration
	}
	last := c[len(c)-1]
	return last, min(max(t/last.Duration, 0), 1)
}

// Eval returns the position at time t. It panics on an empty curve.
func (c CubicCurve) Eval(t float64) Point {
	p, s := c.locate(t)
	return p.Eval(s)
}

// Deriv returns the derivative with respect to t at time t, that is, the
// segment's derivative in s divided by the segment's duration.
func (c CubicCurve) Deriv(t float64) Vec2 {
	p, s := c.locate(t)
	return p.Deriv(s).Mul(1 / p.Duration)
}
