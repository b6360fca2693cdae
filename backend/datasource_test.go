package backend

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const tableCSV = `x, a, b
0, 1,
1, 2, 5
2, oops, 6
bad, 3, 3
3, 4, 7
4, 9
5, 1, 1`

func seriesPoints(s *Series) [][2]float64 {
	var out [][2]float64
	for _, e := range s.Entries() {
		out = append(out, [2]float64{e.X, e.Y})
	}
	return out
}

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(tableCSV))
	require.NoError(t, err)
	require.Len(t, ds.Series, 2)
	assert.Equal(t, "a", ds.Series[0].Name())
	assert.Equal(t, [][2]float64{{0, 1}, {1, 2}, {3, 4}, {4, 9}}, seriesPoints(ds.Series[0]))
	assert.Equal(t, [][2]float64{{1, 5}, {2, 6}, {3, 7}}, seriesPoints(ds.Series[1]), "the unterminated last line is not read")

	_, err = ReadCSV(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	rows := [][]interface{}{
		{"x", "first", "second"},
		{1, 2.5, 3},
		{2, "", 4},
		{3, 1, "n/a"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Data", cell, &row))
	}
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "other"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	data := buf.Bytes()

	ds, err := ReadXLSX(bytes.NewReader(data), "Data")
	require.NoError(t, err)
	require.Len(t, ds.Series, 2)
	assert.Equal(t, "second", ds.Series[1].Name())
	assert.Equal(t, [][2]float64{{1, 2.5}, {3, 1}}, seriesPoints(ds.Series[0]))
	assert.Equal(t, [][2]float64{{1, 3}, {2, 4}}, seriesPoints(ds.Series[1]))

	first, err := ReadXLSX(bytes.NewReader(data), "")
	require.NoError(t, err)
	assert.Empty(t, first.Series, "the first sheet only has a heading")

	_, err = ReadXLSX(bytes.NewReader(data), "Missing")
	assert.Error(t, err)
}

func TestFormatFor(t *testing.T) {
	for _, tc := range []struct {
		path string
		want Format
		err  bool
	}{
		{path: "a.json", want: FormatJSON},
		{path: "dir/b.CSV", want: FormatCSV},
		{path: "c.xlsx", want: FormatXLSX},
		{path: "d.txt", err: true},
		{path: "noext", err: true},
	} {
		t.Run(tc.path, func(t *testing.T) {
			got, err := FormatFor(tc.path)
			if tc.err {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "table.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("x,y\n1,2\n2,3\n"), 0o644))
	doc, err := Load(csvPath, LoadOptions{Kind: "bar"})
	require.NoError(t, err)
	assert.Equal(t, "bar", doc.Kind)
	assert.Equal(t, "table.csv", doc.Title)
	require.Len(t, doc.DataSets, 1)
	assert.Len(t, doc.DataSets[0].Entries, 2)

	jsonPath := filepath.Join(dir, "chart.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"kind": "pie", "title": "Share", "dataSets": []}`), 0o644))
	doc, err = Load(jsonPath, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "pie", doc.Kind)
	assert.Equal(t, "Share", doc.Title)

	_, err = Load(filepath.Join(dir, "missing.csv"), LoadOptions{})
	assert.Error(t, err)
	_, err = Load(filepath.Join(dir, "notes.txt"), LoadOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,y\n1,2\n"), 0o644))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessions, err := Watch(ctx, path, LoadOptions{})
	require.NoError(t, err)

	next := func() Session {
		select {
		case s, ok := <-sessions:
			require.True(t, ok, "session stream closed early")
			return s
		case <-time.After(5 * time.Second):
			require.FailNow(t, "timed out waiting for a session")
		}
		return Session{}
	}
	first := next()
	require.NoError(t, first.Err)
	assert.Len(t, first.Document.DataSets[0].Entries, 1)

	require.NoError(t, os.WriteFile(path, []byte("x,y\n1,2\n2,4\n3,8\n"), 0o644))
	for {
		s := next()
		// Truncation may be observed as a separate, empty write.
		if s.Err != nil || len(s.Document.DataSets) == 0 || len(s.Document.DataSets[0].Entries) < 3 {
			continue
		}
		assert.Equal(t, first.Path, s.Path)
		break
	}

	cancel()
	for range sessions {
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "data.csv"), LoadOptions{})
	assert.Error(t, err)
}
