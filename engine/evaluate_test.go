package engine

import "testing"

func offsetCopy(pts []Vec, dy float64) []Vec {
	out := make([]Vec, len(pts))
	for i, p := range pts {
		out[i] = Vec{X: p.X, Y: p.Y + dy}
	}
	return out
}

func TestEvaluateThresholds(t *testing.T) {
	target := line(Vec{0.1, 0.5}, Vec{0.9, 0.5}, 12)

	if out := Evaluate(target, target); out != Perfect {
		t.Fatalf("identical path scored %v", out)
	}
	if out := Evaluate(offsetCopy(target, 0.08), target); out != Acceptable {
		t.Fatalf("0.08 offset scored %v", out)
	}
	if out := Evaluate(offsetCopy(target, 0.2), target); out != Miss {
		t.Fatalf("0.2 offset scored %v", out)
	}
}

func TestEvaluateMonotonic(t *testing.T) {
	target := line(Vec{0.1, 0.2}, Vec{0.8, 0.9}, 20)
	prev := Perfect
	for off := 0.0; off <= 0.25; off += 0.01 {
		out := Evaluate(offsetCopy(target, off), target)
		if out > prev {
			t.Fatalf("classification improved from %v to %v as offset grew to %v", prev, out, off)
		}
		prev = out
	}
}

func TestEvaluateEmptyInput(t *testing.T) {
	target := line(Vec{0, 0}, Vec{1, 1}, 5)
	if Evaluate(nil, target) != Miss {
		t.Fatal("empty drawn path must miss")
	}
	if Evaluate(target, nil) != Miss {
		t.Fatal("empty target must miss")
	}
}

func TestEvaluatePartialNeverPerfect(t *testing.T) {
	target := line(Vec{0.1, 0.5}, Vec{0.9, 0.5}, 12)
	if out := EvaluatePartial(target, target); out != Acceptable {
		t.Fatalf("identical partial path scored %v, want acceptable at best", out)
	}
}

func TestEvaluatePartialCompletion(t *testing.T) {
	target := line(Vec{0, 0.5}, Vec{1, 0.5}, 11)

	// half the target length: under the 0.7 completion floor
	half := line(Vec{0, 0.5}, Vec{0.5, 0.5}, 6)
	if out := EvaluatePartial(half, target); out != Miss {
		t.Fatalf("50%% completion scored %v", out)
	}

	// 80% of the target, tracked closely
	most := line(Vec{0, 0.5}, Vec{0.8, 0.5}, 9)
	if out := EvaluatePartial(offsetCopy(most, 0.05), target); out != Acceptable {
		t.Fatalf("80%% completion at 0.05 offset scored %v", out)
	}
	if out := EvaluatePartial(offsetCopy(most, 0.15), target); out != Miss {
		t.Fatalf("80%% completion at 0.15 offset scored %v", out)
	}
}

func TestEvaluatePartialTooFewPoints(t *testing.T) {
	target := line(Vec{0, 0}, Vec{1, 1}, 11)
	if out := EvaluatePartial(target[:2], target); out != Miss {
		t.Fatalf("two-point draw scored %v", out)
	}
}
