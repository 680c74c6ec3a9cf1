package extractor

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// visitedSet tracks the URLs a crawl has already queued.
// The Bloom filter answers most first-time lookups without touching the map.
type visitedSet struct {
	mu     sync.Mutex
	filter *bloom.BloomFilter
	seen   map[string]struct{}
}

func newVisitedSet(expectedItems uint) *visitedSet {
	if expectedItems == 0 {
		expectedItems = 1_000
	}
	return &visitedSet{
		filter: bloom.NewWithEstimates(expectedItems, 0.001),
		seen:   make(map[string]struct{}),
	}
}

// Add records url and reports whether it was not seen before
func (v *visitedSet) Add(url string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.filter.TestString(url) {
		if _, ok := v.seen[url]; ok {
			return false
		}
	}
	v.filter.AddString(url)
	v.seen[url] = struct{}{}
	return true
}

func (v *visitedSet) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.seen)
}
