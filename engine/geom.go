package engine

import "math"

// Vec is a point in the normalized 0..1 stroke space.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (a Vec) Sub(b Vec) Vec { return Vec{a.X - b.X, a.Y - b.Y} }

func (a Vec) Dist(b Vec) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func lerp(a, b Vec, t float64) Vec {
	return Vec{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// ArcLength is the summed segment length of a polyline. Zero for fewer than
// two points.
func ArcLength(points []Vec) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Dist(points[i])
	}
	return total
}

// Resample walks the polyline and emits exactly n points spaced equally
// along its arc length. The first output point is the first input point and
// the last output point is clamped to the last input point. Degenerate input
// (one point, or zero total length) repeats that point; empty input yields n
// zero points.
func Resample(points []Vec, n int) []Vec {
	if n <= 0 {
		return nil
	}
	out := make([]Vec, n)
	if len(points) == 0 {
		return out
	}
	total := ArcLength(points)
	if len(points) == 1 || total == 0 {
		for i := range n {
			out[i] = points[0]
		}
		return out
	}
	if n == 1 {
		out[0] = points[0]
		return out
	}

	step := total / float64(n-1)
	out[0] = points[0]
	seg := 1      // index of the segment end vertex
	walked := 0.0 // arc length before the current segment
	segLen := points[0].Dist(points[1])
	for i := 1; i < n-1; i++ {
		target := float64(i) * step
		for walked+segLen < target && seg < len(points)-1 {
			walked += segLen
			seg++
			segLen = points[seg-1].Dist(points[seg])
		}
		t := 0.0
		if segLen > 0 {
			t = (target - walked) / segLen
		}
		out[i] = lerp(points[seg-1], points[seg], t)
	}
	out[n-1] = points[len(points)-1]
	return out
}

// meanDist averages point-to-point distances between two equal-length paths.
func meanDist(a, b []Vec) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.Inf(1)
	}
	sum := 0.0
	for i := range a {
		sum += a[i].Dist(b[i])
	}
	return sum / float64(len(a))
}
