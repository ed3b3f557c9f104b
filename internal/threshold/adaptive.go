// Package threshold computes the adaptive similarity threshold used to
// filter Stage-4 candidates, and the structural rank used to re-order
// Stage-5 survivors.
package threshold

import "math"

// Bounds are the three fixed threshold levels a query's effective threshold
// is clamped against.
type Bounds struct {
	Min    float64
	Medium float64
	High   float64
}

// Effective computes the effective threshold for a query given its base
// threshold and the combined scores of its retrieval candidates, following
// the fixed seven-step procedure:
//
//  1. start at the base threshold
//  2. if there are at least two scores, compute their range, mean, and
//     standard deviation
//  3. a wide spread with a strong top score tightens the threshold toward
//     mean+0.5*stddev
//  4. a narrow spread relaxes the threshold toward mean-0.5*stddev
//  5. a strong top score raises the floor to at least the medium bound
//  6. a weak top score lowers the ceiling to at most the min bound
//  7. clamp to [min, high]
func Effective(base float64, scores []float64, b Bounds) float64 {
	t := base

	if len(scores) >= 2 {
		rng, mean, stddev := stats(scores)
		max := maxOf(scores)

		if rng > 0.4 && max > b.High {
			t = math.Max(t, mean+0.5*stddev)
		} else if rng < 0.2 {
			t = math.Min(t, mean-0.5*stddev)
		}

		if max > b.High {
			t = math.Max(t, b.Medium)
		}
		if max < b.Min {
			t = math.Min(t, b.Min)
		}
	}

	if t < b.Min {
		t = b.Min
	}
	if t > b.High {
		t = b.High
	}
	return t
}

func stats(scores []float64) (rng, mean, stddev float64) {
	min, max := scores[0], scores[0]
	sum := 0.0
	for _, s := range scores {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
		sum += s
	}
	mean = sum / float64(len(scores))

	var variance float64
	for _, s := range scores {
		d := s - mean
		variance += d * d
	}
	variance /= float64(len(scores))

	return max - min, mean, math.Sqrt(variance)
}

func maxOf(scores []float64) float64 {
	m := scores[0]
	for _, s := range scores[1:] {
		if s > m {
			m = s
		}
	}
	return m
}
