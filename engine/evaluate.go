package engine

import "math"

// Outcome classifies one stroke attempt.
type Outcome uint8

const (
	Miss Outcome = iota
	Acceptable
	Perfect
)

func (o Outcome) String() string {
	switch o {
	case Perfect:
		return "perfect"
	case Acceptable:
		return "acceptable"
	}
	return "miss"
}

// Points awarded for an outcome.
func (o Outcome) Points() int {
	switch o {
	case Perfect:
		return PerfectPoints
	case Acceptable:
		return AcceptablePoints
	}
	return 0
}

const (
	PerfectPoints    = 100
	AcceptablePoints = 30
)

// Evaluation constants. The thresholds are tuned for game feel rather than
// calligraphy grading; changing them changes scoring behavior everywhere.
const (
	evalSamples         = 50
	perfectThreshold    = 0.06
	acceptableThreshold = 0.12

	partialThreshold     = 0.10
	partialMinPoints     = 3
	partialMinCompletion = 0.7
	partialMinSamples    = 10
)

// Evaluate scores a completed drawn path against a target stroke. Both paths
// are resampled to a fixed count and compared point to point by mean
// euclidean distance in the shared unit-square space. Malformed input is a
// Miss, never an error.
func Evaluate(drawn, target []Vec) Outcome {
	if len(drawn) == 0 || len(target) == 0 {
		return Miss
	}
	d := meanDist(Resample(drawn, evalSamples), Resample(target, evalSamples))
	switch {
	case d < perfectThreshold:
		return Perfect
	case d < acceptableThreshold:
		return Acceptable
	}
	return Miss
}

// EvaluatePartial scores a path cut short by window expiry. The drawn length
// must cover at least 70% of the target's arc length; the drawn path is then
// compared against the matching prefix of the target. A partial attempt can
// be Acceptable at best, never Perfect.
func EvaluatePartial(drawn, target []Vec) Outcome {
	if len(drawn) < partialMinPoints || len(target) == 0 {
		return Miss
	}
	targetLen := ArcLength(target)
	if targetLen <= 0 {
		return Miss
	}
	ratio := ArcLength(drawn) / targetLen
	if ratio < partialMinCompletion {
		return Miss
	}
	if ratio > 1 {
		ratio = 1
	}

	samples := int(math.Round(evalSamples * ratio))
	if samples < partialMinSamples {
		samples = partialMinSamples
	}

	prefix := int(float64(len(target))*ratio) + 1
	if prefix > len(target) {
		prefix = len(target)
	}

	d := meanDist(Resample(drawn, samples), Resample(target[:prefix], samples))
	if d < partialThreshold {
		return Acceptable
	}
	return Miss
}
