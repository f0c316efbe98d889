package engine

import (
	"math"
	"testing"
)

func line(a, b Vec, n int) []Vec {
	pts := make([]Vec, n)
	for i := range n {
		t := float64(i) / float64(n-1)
		pts[i] = lerp(a, b, t)
	}
	return pts
}

func TestResampleCount(t *testing.T) {
	pts := []Vec{{0, 0}, {0.3, 0.1}, {0.7, 0.4}, {1, 1}}
	for _, n := range []int{2, 10, 50, 64} {
		out := Resample(pts, n)
		if len(out) != n {
			t.Fatalf("resample to %d gave %d points", n, len(out))
		}
		if out[0] != pts[0] {
			t.Fatalf("first point moved: %v", out[0])
		}
		if out[n-1] != pts[len(pts)-1] {
			t.Fatalf("last point not clamped: %v", out[n-1])
		}
	}
}

func TestResamplePreservesArcLength(t *testing.T) {
	pts := []Vec{{0, 0}, {0.2, 0.5}, {0.4, 0.1}, {0.9, 0.9}, {1, 0}}
	want := ArcLength(pts)
	got := ArcLength(Resample(pts, 200))
	if math.Abs(want-got) > want*0.01 {
		t.Fatalf("arc length drifted: want %v got %v", want, got)
	}
}

func TestResampleEquidistant(t *testing.T) {
	// unevenly spaced vertices on a straight line
	pts := []Vec{{0, 0}, {0.1, 0}, {0.7, 0}, {1, 0}}
	out := Resample(pts, 21)
	step := ArcLength(pts) / 20
	for i := 1; i < len(out); i++ {
		d := out[i-1].Dist(out[i])
		if math.Abs(d-step) > 1e-9 {
			t.Fatalf("segment %d has length %v, want %v", i, d, step)
		}
	}
}

func TestResampleDegenerate(t *testing.T) {
	out := Resample([]Vec{{0.5, 0.5}}, 5)
	for _, p := range out {
		if p != (Vec{0.5, 0.5}) {
			t.Fatalf("single point input not repeated: %v", out)
		}
	}
	out = Resample(nil, 3)
	if len(out) != 3 {
		t.Fatalf("empty input gave %d points", len(out))
	}
	for _, p := range out {
		if p != (Vec{}) {
			t.Fatalf("empty input not zero points: %v", out)
		}
	}
	// all points coincident: zero total length
	out = Resample([]Vec{{0.2, 0.2}, {0.2, 0.2}}, 4)
	for _, p := range out {
		if p != (Vec{0.2, 0.2}) {
			t.Fatalf("zero-length input not repeated: %v", out)
		}
	}
	if Resample(nil, 0) != nil {
		t.Fatal("n=0 should give nil")
	}
}

func TestArcLength(t *testing.T) {
	if got := ArcLength(nil); got != 0 {
		t.Fatalf("empty arc length = %v", got)
	}
	if got := ArcLength([]Vec{{1, 1}}); got != 0 {
		t.Fatalf("single point arc length = %v", got)
	}
	got := ArcLength([]Vec{{0, 0}, {3, 4}})
	if got != 5 {
		t.Fatalf("arc length = %v, want 5", got)
	}
}
