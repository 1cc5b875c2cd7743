package distribution

import (
	"fmt"
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"pst/internal/domain"
	"pst/internal/weights"
)

func weighted(ws ...float64) []domain.WeightedSuite {
	suites := make([]domain.WeightedSuite, len(ws))
	for i, w := range ws {
		suites[i] = domain.WeightedSuite{Path: fmt.Sprintf("suite-%d.cy.js", i), Weight: w}
	}
	return suites
}

// referencePack re-sorts the bucket list before every pick, which is the
// behaviour the heap has to reproduce.
func referencePack(suites []domain.WeightedSuite, threadCount int) []domain.Bucket {
	sorted := append([]domain.WeightedSuite(nil), suites...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Weight > sorted[j].Weight })

	threads := make([]domain.Bucket, threadCount)
	for i := range threads {
		threads[i].Suites = []string{}
	}
	for _, s := range sorted {
		sort.SliceStable(threads, func(i, j int) bool { return threads[i].Weight < threads[j].Weight })
		threads[0].Suites = append(threads[0].Suites, s.Path)
		threads[0].Weight += s.Weight
	}
	sort.SliceStable(threads, func(i, j int) bool { return threads[i].Weight > threads[j].Weight })
	return threads
}

func TestPack_DominantSuiteIsIsolated(t *testing.T) {
	suites := weighted(10, 1, 1, 1)
	buckets := Pack(suites, 2)

	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Weight != 10 || buckets[1].Weight != 3 {
		t.Errorf("expected weights [10 3], got [%g %g]", buckets[0].Weight, buckets[1].Weight)
	}
	if !reflect.DeepEqual(buckets[0].Suites, []string{"suite-0.cy.js"}) {
		t.Errorf("expected heavy suite alone, got %v", buckets[0].Suites)
	}
	if len(buckets[1].Suites) != 3 {
		t.Errorf("expected three light suites together, got %v", buckets[1].Suites)
	}
}

func TestPack_HeaviestBucketFirst(t *testing.T) {
	// Light suites listed first so the heavy one lands in a later bucket.
	buckets := Pack(weighted(1, 1, 1, 10), 2)
	if buckets[0].Weight != 10 || buckets[1].Weight != 3 {
		t.Errorf("expected order [10 3], got [%g %g]", buckets[0].Weight, buckets[1].Weight)
	}
}

func TestPack_BucketCount(t *testing.T) {
	tests := []struct {
		name        string
		suites      int
		threadCount int
	}{
		{name: "zero threads", suites: 0, threadCount: 0},
		{name: "negative threads", suites: 3, threadCount: -1},
		{name: "one thread", suites: 5, threadCount: 1},
		{name: "as many threads as suites", suites: 4, threadCount: 4},
		{name: "more threads than suites", suites: 2, threadCount: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := make([]float64, tt.suites)
			for i := range ws {
				ws[i] = 1
			}
			buckets := Pack(weighted(ws...), tt.threadCount)
			expected := tt.threadCount
			if expected < 0 {
				expected = 0
			}
			if buckets == nil {
				t.Fatal("expected a non-nil bucket list")
			}
			if len(buckets) != expected {
				t.Errorf("expected %d buckets, got %d", expected, len(buckets))
			}
		})
	}
}

func TestPack_EverySuiteExactlyOnce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		n := rng.Intn(40) + 1
		ws := make([]float64, n)
		for i := range ws {
			ws[i] = float64(rng.Intn(6))
		}
		threadCount := rng.Intn(n) + 1

		seen := make(map[string]int)
		for _, b := range Pack(weighted(ws...), threadCount) {
			var sum float64
			for _, s := range b.Suites {
				seen[s]++
			}
			for _, s := range b.Suites {
				var idx int
				fmt.Sscanf(s, "suite-%d.cy.js", &idx)
				sum += ws[idx]
			}
			if sum != b.Weight {
				t.Fatalf("round %d: bucket weight %g does not match suites sum %g", round, b.Weight, sum)
			}
		}
		if len(seen) != n {
			t.Fatalf("round %d: expected %d distinct suites, got %d", round, n, len(seen))
		}
		for s, count := range seen {
			if count != 1 {
				t.Fatalf("round %d: suite %s assigned %d times", round, s, count)
			}
		}
	}
}

func TestPack_MatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 200; round++ {
		n := rng.Intn(30)
		ws := make([]float64, n)
		for i := range ws {
			// Small integer range forces plenty of ties.
			ws[i] = float64(rng.Intn(4))
		}
		threadCount := rng.Intn(8) + 1

		got := Pack(weighted(ws...), threadCount)
		want := referencePack(weighted(ws...), threadCount)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("round %d (weights %v, threads %d):\n got  %+v\n want %+v", round, ws, threadCount, got, want)
		}
	}
}

func TestPack_Deterministic(t *testing.T) {
	suites := weighted(3, 3, 2, 2, 2, 1, 1, 5)
	first := Pack(suites, 3)
	second := Pack(suites, 3)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestPack_DoesNotReorderInput(t *testing.T) {
	suites := weighted(1, 5, 3)
	Pack(suites, 2)
	if suites[0].Weight != 1 || suites[1].Weight != 5 || suites[2].Weight != 3 {
		t.Errorf("input slice was reordered: %+v", suites)
	}
}

func TestDistributor_Distribute(t *testing.T) {
	table := weights.NewTable(weights.Entry{Pattern: "b.spec", Weight: 5})
	d := NewDistributor(table, 1, weights.PrecedenceLongest)

	weighed := d.Weigh([]string{"a.spec", "b.spec"})
	if weighed[0].Weight != 1 || weighed[1].Weight != 5 {
		t.Errorf("expected weights [1 5], got [%g %g]", weighed[0].Weight, weighed[1].Weight)
	}

	buckets := d.Distribute([]string{"a.spec", "b.spec"}, 2)
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Suites[0] != "b.spec" || buckets[1].Suites[0] != "a.spec" {
		t.Errorf("expected b.spec then a.spec, got %+v", buckets)
	}
}

func TestDistributor_EmptyTableUsesDefault(t *testing.T) {
	d := NewDistributor(weights.Table{}, 2, weights.PrecedenceLongest)
	buckets := d.Distribute([]string{"a", "b", "c", "d"}, 2)
	for _, b := range buckets {
		if b.Weight != 4 {
			t.Errorf("expected each bucket to weigh 4, got %g", b.Weight)
		}
	}
}
