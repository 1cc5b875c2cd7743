package distribution

import "pst/internal/domain"

// Plan is the bucket list of a run with a few derived figures
type Plan struct {
	Buckets []domain.Bucket
}

// NewPlan wraps buckets produced by Distribute or Pack
func NewPlan(buckets []domain.Bucket) Plan {
	return Plan{Buckets: buckets}
}

// Threads returns the number of buckets
func (p Plan) Threads() int {
	return len(p.Buckets)
}

// Suites returns the number of assigned suites
func (p Plan) Suites() int {
	var n int
	for _, b := range p.Buckets {
		n += len(b.Suites)
	}
	return n
}

// TotalWeight is the sum of all bucket weights
func (p Plan) TotalWeight() float64 {
	var total float64
	for _, b := range p.Buckets {
		total += b.Weight
	}
	return total
}

// Makespan is the weight of the heaviest bucket
func (p Plan) Makespan() float64 {
	var max float64
	for _, b := range p.Buckets {
		if b.Weight > max {
			max = b.Weight
		}
	}
	return max
}

// MaxPathLength returns the column width for printing suite paths:
// the longest path (at least 10) plus 3.
func MaxPathLength(paths []string) int {
	maxLength := 10
	for _, p := range paths {
		maxLength = max(maxLength, len(p))
	}
	return maxLength + 3
}
