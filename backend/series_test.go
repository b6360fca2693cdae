package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestSeries(t *testing.T, sampleCount int) *Series {
	s := NewSeries("test")
	for i := 0; i < sampleCount; i++ {
		ok := s.Insert(Sample{X: float64(i), Y: float64(i * i)})
		require.True(t, ok, "inserting ascending samples should always be okay, but sample %d failed", i)
	}
	return s
}

func TestSeries(t *testing.T) {
	s := makeTestSeries(t, 5)
	assert.True(t, s.Initialized())
	assert.Equal(t, 5, s.Len())
	dMin, dMax := s.Domain()
	assert.Equal(t, 0.0, dMin)
	assert.Equal(t, 4.0, dMax)
	rMin, rMax := s.Range()
	assert.Equal(t, 0.0, rMin)
	assert.Equal(t, 16.0, rMax)
	assert.Equal(t, 30.0, s.Sum())

	assert.False(t, s.Insert(Sample{X: 2, Y: 1}), "samples before the last x are rejected")
	assert.True(t, s.Insert(Sample{X: 4, Y: -1}), "samples sharing the last x are accepted")
	rMin, _ = s.Range()
	assert.Equal(t, -1.0, rMin)

	entries := s.Entries()
	require.Len(t, entries, 6)
	assert.Equal(t, 3.0, entries[3].X)
	assert.Equal(t, 9.0, entries[3].Y)
}

func TestSeriesNegativeFirstSample(t *testing.T) {
	s := NewSeries("negative")
	s.Insert(Sample{X: -3, Y: -5})
	rMin, rMax := s.Range()
	assert.Equal(t, -5.0, rMin)
	assert.Equal(t, -5.0, rMax)
}

func TestDataset(t *testing.T) {
	var ds Dataset
	assert.False(t, ds.Initialized())
	ds.SetHeadings([]string{"a", "b"}, []int{7, 9})
	assert.True(t, ds.Insert(Sample{X: 1, Y: 2, Series: 7}))
	assert.True(t, ds.Insert(Sample{X: 3, Y: 4, Series: 9}))
	assert.False(t, ds.Insert(Sample{X: 3, Y: 4, Series: 8}), "unknown series")
	assert.True(t, ds.Initialized())
	dMin, dMax := ds.Domain()
	assert.Equal(t, 1.0, dMin)
	assert.Equal(t, 3.0, dMax)

	doc := ds.Document("bar")
	assert.Equal(t, "bar", doc.Kind)
	require.Len(t, doc.DataSets, 2)
	assert.Equal(t, "b", doc.DataSets[1].Label)
	assert.Equal(t, []EntrySpec{{X: 3, Y: 4}}, doc.DataSets[1].Entries)
}
