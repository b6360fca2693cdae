package backend

import (
	"sync"

	"git.sr.ht/~whereswaldon/chartkit/chart"
)

// Series represents one column of a table as x/y samples.
type Series struct {
	lock                 sync.RWMutex
	xs                   []float64
	ys                   []float64
	rangeMin, rangeMax   float64
	domainMin, domainMax float64
	sum                  float64
	name                 string
	initialized          bool
}

func NewSeries(name string) *Series {
	return &Series{name: name}
}

func (s *Series) Name() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.name
}

func (s *Series) Initialized() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.initialized
}

func (s *Series) Domain() (min float64, max float64) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.domainMin, s.domainMax
}

func (s *Series) Range() (min float64, max float64) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.rangeMin, s.rangeMax
}

func (s *Series) Sum() float64 {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.sum
}

func (s *Series) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.xs)
}

// Insert appends a sample to the series. Samples must arrive in ascending
// x order; a sample before the last one is rejected and the method returns
// false.
func (s *Series) Insert(sample Sample) (inserted bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if len(s.xs) > 0 && s.xs[len(s.xs)-1] > sample.X {
		return false
	}
	if !s.initialized {
		s.domainMin, s.domainMax = sample.X, sample.X
		s.rangeMin, s.rangeMax = sample.Y, sample.Y
		s.initialized = true
	}
	s.domainMin = min(sample.X, s.domainMin)
	s.domainMax = max(sample.X, s.domainMax)
	s.rangeMin = min(sample.Y, s.rangeMin)
	s.rangeMax = max(sample.Y, s.rangeMax)
	s.xs = append(s.xs, sample.X)
	s.ys = append(s.ys, sample.Y)
	s.sum += sample.Y
	return true
}

// Entries converts the samples into chart entries.
func (s *Series) Entries() []*chart.Entry {
	s.lock.RLock()
	defer s.lock.RUnlock()
	entries := make([]*chart.Entry, len(s.xs))
	for i := range s.xs {
		entries[i] = chart.NewEntry(s.xs[i], s.ys[i])
	}
	return entries
}
