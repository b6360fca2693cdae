package backend

// Sample is one cell of a table: the y value of a series at the x of its
// row.
type Sample struct {
	X, Y   float64
	Series int
}

// Dataset is a table of series sharing an x column.
type Dataset struct {
	Series []*Series
	// seriesMapping maps from series identifiers used by the reader to
	// the index of a series in this structure.
	seriesMapping map[int]int
}

func (d *Dataset) Initialized() bool {
	init := len(d.Series) > 0
	for _, s := range d.Series {
		init = init && s.Initialized()
	}
	return init
}

func (d *Dataset) Domain() (dMin float64, dMax float64) {
	first := true
	for _, s := range d.Series {
		if !s.Initialized() {
			continue
		}
		sMin, sMax := s.Domain()
		if first {
			dMin, dMax = sMin, sMax
			first = false
			continue
		}
		dMin = min(sMin, dMin)
		dMax = max(sMax, dMax)
	}
	return dMin, dMax
}

// SetHeadings populates the headings for a dataset. It must be invoked at least once
// prior to the first call to [Insert]. It may be invoked additional times to register
// new data series with their headings.
//
// The series slice provides the reader's ID for each column, which is likely to differ
// from the index used to store the data in this type.
func (d *Dataset) SetHeadings(headings []string, series []int) {
	if d.seriesMapping == nil {
		d.seriesMapping = make(map[int]int)
	}
	for i, identifier := range series {
		d.seriesMapping[identifier] = len(d.Series)
		d.Series = append(d.Series, NewSeries(headings[i]))
	}
}

// Insert the sample. Samples for series without a heading registered via
// [SetHeadings] are dropped and reported as not inserted.
func (d *Dataset) Insert(sample Sample) bool {
	localIdx, ok := d.seriesMapping[sample.Series]
	if !ok {
		return false
	}
	return d.Series[localIdx].Insert(sample)
}

// Document converts the table into a chart document with one data set of
// the given kind per series.
func (d *Dataset) Document(kind string) *Document {
	doc := &Document{Kind: kind}
	for _, s := range d.Series {
		set := DataSetSpec{Label: s.Name()}
		for _, e := range s.Entries() {
			set.Entries = append(set.Entries, EntrySpec{X: e.X, Y: e.Y})
		}
		doc.DataSets = append(doc.DataSets, set)
	}
	return doc
}
