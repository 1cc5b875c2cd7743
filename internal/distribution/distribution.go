// Package distribution assigns suites to worker threads by weight.
//
// Assignment is greedy longest-processing-time-first: suites are taken
// heaviest first and each goes to the thread with the lowest total so far.
// The result is not optimal, but it isolates dominating suites and never
// backtracks.
package distribution

import (
	"container/heap"
	"sort"

	"pst/internal/domain"
	"pst/internal/weights"
)

// Distributor resolves suite weights and packs suites into threads
type Distributor struct {
	table         weights.Table
	defaultWeight float64
	precedence    weights.Precedence
}

// NewDistributor creates a Distributor over a loaded weight table
func NewDistributor(table weights.Table, defaultWeight float64, precedence weights.Precedence) *Distributor {
	return &Distributor{
		table:         table,
		defaultWeight: defaultWeight,
		precedence:    precedence,
	}
}

// Weigh resolves the weight of every suite, keeping input order
func (d *Distributor) Weigh(suites []string) []domain.WeightedSuite {
	weighted := make([]domain.WeightedSuite, len(suites))
	for i, s := range suites {
		weighted[i] = domain.WeightedSuite{
			Path:   s,
			Weight: d.table.Resolve(s, d.defaultWeight, d.precedence),
		}
	}
	return weighted
}

// Distribute splits suites into threadCount buckets, heaviest bucket first.
// threadCount <= 0 yields an empty list.
func (d *Distributor) Distribute(suites []string, threadCount int) []domain.Bucket {
	return Pack(d.Weigh(suites), threadCount)
}

// Pack assigns pre-weighted suites to threadCount buckets.
//
// Ties are broken the same way as re-sorting the bucket list with a stable
// ascending sort before every pick and taking the first element: a bucket
// that just grew goes in front of every bucket already holding the same
// total.
func Pack(suites []domain.WeightedSuite, threadCount int) []domain.Bucket {
	if threadCount <= 0 {
		return []domain.Bucket{}
	}

	sorted := make([]domain.WeightedSuite, len(suites))
	copy(sorted, suites)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})

	h := make(bucketHeap, threadCount)
	for i := range h {
		h[i] = &slot{seq: i, bucket: domain.Bucket{Suites: []string{}}}
	}
	heap.Init(&h)

	var last *slot
	seq := 0
	for _, s := range sorted {
		lightest := h[0]
		lightest.bucket.Suites = append(lightest.bucket.Suites, s.Path)
		lightest.bucket.Weight += s.Weight
		seq--
		lightest.seq = seq
		heap.Fix(&h, 0)
		last = lightest
	}

	// The reference list is sorted before each pick, not after, so the
	// bucket picked last still sits at the front when the final sort runs.
	ordered := make([]domain.Bucket, 0, threadCount)
	if last != nil {
		ordered = append(ordered, last.bucket)
	}
	for h.Len() > 0 {
		s := heap.Pop(&h).(*slot)
		if s == last {
			continue
		}
		ordered = append(ordered, s.bucket)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Weight > ordered[j].Weight
	})
	return ordered
}

// slot is a bucket in the heap. Lower seq sorts first among equal weights.
type slot struct {
	seq    int
	bucket domain.Bucket
}

type bucketHeap []*slot

func (h bucketHeap) Len() int { return len(h) }

func (h bucketHeap) Less(i, j int) bool {
	if h[i].bucket.Weight != h[j].bucket.Weight {
		return h[i].bucket.Weight < h[j].bucket.Weight
	}
	return h[i].seq < h[j].seq
}

func (h bucketHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *bucketHeap) Push(x any) { *h = append(*h, x.(*slot)) }

func (h *bucketHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return x
}
