package domain

// Bucket is one thread's share of the suites
type Bucket struct {
	Weight float64  `json:"weight"` // Sum of the assigned suite weights
	Suites []string `json:"suites"` // Suite paths in assignment order
}

// WeightedSuite pairs a suite path with its resolved weight
type WeightedSuite struct {
	Path   string
	Weight float64
}
