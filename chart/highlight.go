package chart

// Highlight identifies one selected chart location. Highlights are produced
// per touch or hover event and are not persisted.
type Highlight struct {
	// X and Y are the data values of the selection.
	X, Y float64
	// XPx and YPx are the pixel position the selection was resolved from.
	XPx, YPx float64
	// DataIndex addresses the sub data of combined data, -1 otherwise.
	DataIndex    int
	DataSetIndex int
	// StackIndex addresses a stacked bar value, -1 otherwise.
	StackIndex int
	// Entry, when set, is returned as is by EntryForHighlight.
	Entry *Entry
	Axis  AxisDependency
	// DrawX and DrawY are filled in by renderers with the pixel position
	// the highlight was drawn at.
	DrawX, DrawY float64
}

// NewHighlight returns a highlight of x/y in the data set at dataSetIndex.
func NewHighlight(x, y float64, dataSetIndex int) Highlight {
	return Highlight{
		X:            x,
		Y:            y,
		DataIndex:    -1,
		DataSetIndex: dataSetIndex,
		StackIndex:   -1,
	}
}

// IsStacked reports whether the highlight addresses a stack value.
func (h Highlight) IsStacked() bool {
	return h.StackIndex >= 0
}

// Equal reports whether both highlights select the same location.
func (h Highlight) Equal(o Highlight) bool {
	return h.X == o.X &&
		h.DataSetIndex == o.DataSetIndex &&
		h.StackIndex == o.StackIndex &&
		h.DataIndex == o.DataIndex
}
