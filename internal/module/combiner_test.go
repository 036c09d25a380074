package module

import (
	"errors"
	"math"
	"testing"

	"github.com/MeKo-Tech/noisetex/internal/errs"
)

func newTestSelect(t *testing.T, control float64) *Select {
	t.Helper()
	s := NewSelect()
	if err := s.SetSource(0, NewConst(-0.75)); err != nil {
		t.Fatal(err)
	}
	if err := s.SetSource(1, NewConst(0.5)); err != nil {
		t.Fatal(err)
	}
	if err := s.SetControl(NewConst(control)); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBounds(-0.375, 0.375); err != nil {
		t.Fatal(err)
	}
	if err := s.SetEdgeFalloff(0.125); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestSelectBands(t *testing.T) {
	tests := []struct {
		name    string
		control float64
		want    float64
	}{
		{"below lower falloff", -0.6, -0.75},
		{"midpoint", 0, 0.5},
		{"inside upper edge", 0.2, 0.5},
		{"above upper falloff", 0.6, -0.75},
		{"far below", -10, -0.75},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSelect(t, tc.control)
			if got := s.Value(0, 0, 0); got != tc.want {
				t.Fatalf("control %v: got %v, want %v", tc.control, got, tc.want)
			}
		})
	}
}

func TestSelectFalloffIsSmooth(t *testing.T) {
	// At the lower bound itself the blend sits exactly halfway.
	s := newTestSelect(t, -0.375)
	if got := s.Value(0, 0, 0); math.Abs(got-(-0.125)) > 1e-12 {
		t.Fatalf("expected halfway blend -0.125, got %v", got)
	}

	prev := math.Inf(-1)
	for c := -0.5; c <= -0.25; c += 0.01 {
		v := newTestSelect(t, c).Value(0, 0, 0)
		if v < prev-1e-12 {
			t.Fatalf("blend not monotonic at control %v", c)
		}
		prev = v
	}
}

func TestSelectFalloffClampedToHalfWidth(t *testing.T) {
	s := newTestSelect(t, 0)
	if err := s.SetEdgeFalloff(5); err != nil {
		t.Fatal(err)
	}
	if got := s.EdgeFalloff(); got != 0.375 {
		t.Fatalf("expected falloff clamped to 0.375, got %v", got)
	}
	if got := s.Value(0, 0, 0); got != 0.5 {
		t.Fatalf("midpoint must still select source 1, got %v", got)
	}
}

func TestSelectHardEdges(t *testing.T) {
	s := newTestSelect(t, 0.375)
	_ = s.SetEdgeFalloff(0)
	if got := s.Value(0, 0, 0); got != 0.5 {
		t.Fatalf("bound is inclusive, got %v", got)
	}
}

func TestSelectRejectsBadBounds(t *testing.T) {
	s := NewSelect()
	if err := s.SetBounds(1, 1); !errors.Is(err, errs.ErrInvalidParameter) {
		t.Fatalf("expected invalid bounds, got %v", err)
	}
	if err := s.SetEdgeFalloff(-1); !errors.Is(err, errs.ErrInvalidParameter) {
		t.Fatalf("expected invalid falloff, got %v", err)
	}
	lo, hi := s.Bounds()
	if lo != -1 || hi != 1 {
		t.Fatalf("failed SetBounds must not change bounds, got [%v,%v]", lo, hi)
	}
}

func TestArithmeticCombiners(t *testing.T) {
	wire := func(m interface {
		Module
		SourceSetter
	}, a, b float64) Module {
		_ = m.SetSource(0, NewConst(a))
		_ = m.SetSource(1, NewConst(b))
		return m
	}

	if got := wire(NewAdd(), 0.25, 0.5).Value(0, 0, 0); got != 0.75 {
		t.Fatalf("add: %v", got)
	}
	if got := wire(NewMultiply(), 0.25, 0.5).Value(0, 0, 0); got != 0.125 {
		t.Fatalf("multiply: %v", got)
	}
	if got := wire(NewMax(), 0.25, 0.5).Value(0, 0, 0); got != 0.5 {
		t.Fatalf("max: %v", got)
	}
	if got := wire(NewMin(), 0.25, 0.5).Value(0, 0, 0); got != 0.25 {
		t.Fatalf("min: %v", got)
	}
}

func TestAdjusters(t *testing.T) {
	sb := NewScaleBias()
	_ = sb.SetSource(0, NewConst(0.5))
	sb.Scale = 0.25
	sb.Bias = 0.125
	if got := sb.Value(0, 0, 0); got != 0.25 {
		t.Fatalf("scalebias: %v", got)
	}

	c := NewClamp()
	_ = c.SetSource(0, NewConst(3))
	if got := c.Value(0, 0, 0); got != 1 {
		t.Fatalf("clamp: %v", got)
	}
	c.Lower, c.Upper = 2, 1
	if err := Validate(c); err == nil {
		t.Fatal("expected inverted clamp bounds to fail validation")
	}

	abs := NewAbs()
	_ = abs.SetSource(0, NewConst(-0.5))
	if got := abs.Value(0, 0, 0); got != 0.5 {
		t.Fatalf("abs: %v", got)
	}

	inv := NewInvert()
	_ = inv.SetSource(0, NewConst(0.5))
	if got := inv.Value(0, 0, 0); got != -0.5 {
		t.Fatalf("invert: %v", got)
	}
}
