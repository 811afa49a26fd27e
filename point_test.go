package spline

import (
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	diff(t, Pt(0, 0).Translate(Vec(-10, 0)), Pt(-10, 0))
	diff(t, Pt(3, 1).Sub(Pt(1, 4)), Vec(2, -3))
	diff(t, Pt(0, 0).Lerp(Pt(4, 2), 0.25), Pt(1, 0.5))
	diff(t, Pt(-1, 3).Midpoint(Pt(5, 1)), Pt(2, 2))
}

func TestPointDistance(t *testing.T) {
	p1 := Pt(0, 10)
	p2 := Pt(0, 5)
	if d := p1.Distance(p2); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}

	p3 := Pt(-11, 1)
	p4 := Pt(-7, -2)
	if d := p3.Distance(p4); d != 5 {
		t.Errorf("got distance %v, want 5", d)
	}
}

func TestVec2Arithmetic(t *testing.T) {
	diff(t, Vec(1, 2).Add(Vec(3, -1)), Vec(4, 1))
	diff(t, Vec(1, 2).Negate(), Vec(-1, -2))
	diff(t, Vec(3, 4).Hypot(), 5.0)
	diff(t, Vec(3, 4).Hypot2(), 25.0)
	diff(t, Vec(1, 2).Dot(Vec(3, 4)), 11.0)
}
