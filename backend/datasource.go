package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"github.com/fsnotify/fsnotify"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are not JSON documents,
// CSV or XLSX tables.
var ErrUnsupportedFormat = errors.New("unsupported data format")

// Session is one loaded state of a data file.
type Session struct {
	ID       string
	Path     string
	Document *Document
	Err      error
}

type Format uint8

const (
	FormatJSON Format = iota
	FormatCSV
	FormatXLSX
)

// FormatFor picks the format of path from its extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return 0, fmt.Errorf("%q: %w", path, ErrUnsupportedFormat)
}

// LoadOptions control how tables are turned into documents.
type LoadOptions struct {
	// Kind is the chart kind of documents built from tables. Empty means
	// line.
	Kind string
	// Sheet selects the XLSX sheet. Empty means the first one.
	Sheet string
}

// Load reads the document stored at path.
func Load(path string, opts LoadOptions) (*Document, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed opening data: %w", err)
	}
	doc, err := Decode(format, f, opts)
	err = errors.Join(err, f.Close())
	if err != nil {
		return nil, err
	}
	if doc.Title == "" {
		doc.Title = filepath.Base(path)
	}
	return doc, nil
}

// Decode reads a document in the given format from r.
func Decode(format Format, r io.Reader, opts LoadOptions) (*Document, error) {
	var (
		ds  *Dataset
		err error
	)
	switch format {
	case FormatJSON:
		return ParseDocument(r)
	case FormatCSV:
		ds, err = ReadCSV(r)
	case FormatXLSX:
		ds, err = ReadXLSX(r, opts.Sheet)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return ds.Document(opts.Kind), nil
}

// tableReader fills a Dataset from rows whose first column is x and whose
// other columns are one series each.
type tableReader struct {
	ds      Dataset
	columns int
}

func (t *tableReader) headings(row []string) {
	t.columns = len(row)
	headings := make([]string, 0, len(row))
	series := make([]int, 0, len(row))
	for i := 1; i < len(row); i++ {
		heading := strings.TrimSpace(row[i])
		if heading == "" {
			heading = "Column " + strconv.Itoa(i)
		}
		headings = append(headings, heading)
		series = append(series, i)
	}
	t.ds.SetHeadings(headings, series)
}

func (t *tableReader) row(rec []string) {
	if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" {
		return
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	if err != nil {
		log.Printf("failed parsing x value %q: %v", rec[0], err)
		return
	}
	for i := 1; i < len(rec) && i < t.columns; i++ {
		record := strings.TrimSpace(rec[i])
		if len(record) < 1 {
			// Skip null cells.
			continue
		}
		y, err := strconv.ParseFloat(record, 64)
		if err != nil {
			log.Printf("failed parsing data[%d]=%q: %v", i, rec[i], err)
			continue
		}
		if !t.ds.Insert(Sample{X: x, Y: y, Series: i}) {
			log.Printf("dropped out of order value at x=%v in column %d", x, i)
		}
	}
}

// ReadCSV reads a table with a heading row. A trailing line without a
// newline is treated as still being written and is ignored.
func ReadCSV(r io.Reader) (*Dataset, error) {
	csvReader := csv.NewReader(NewLineReader(r))
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1
	headings, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed reading CSV headings: %w", err)
	}
	var t tableReader
	t.headings(headings)
	for {
		rec, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed reading CSV data: %w", err)
		}
		t.row(rec)
	}
	return &t.ds, nil
}

// ReadXLSX reads the table on the named sheet, or the first sheet when
// sheet is empty.
func ReadXLSX(r io.Reader, sheet string) (*Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed opening workbook: %w", err)
	}
	defer f.Close()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed reading sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	var t tableReader
	t.headings(rows[0])
	for _, row := range rows[1:] {
		t.row(row)
	}
	return &t.ds, nil
}

func generateSessionID() string {
	return strings.Replace(time.Now().UTC().Format("20060102150405.000000000"), ".", "", 1)
}

// Watch loads path and loads it again each time it is written, emitting
// a session per load until ctx is done. The directory is watched so that
// editors replacing the file are followed.
func Watch(ctx context.Context, path string, opts LoadOptions) (<-chan Session, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed resolving %q: %w", path, err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return nil, errors.Join(fmt.Errorf("failed watching %q: %w", abs, err), watcher.Close())
	}
	out := make(chan Session, 1)
	go func() {
		defer close(out)
		defer watcher.Close()
		emit := func() bool {
			doc, err := Load(abs, opts)
			session := Session{
				ID:       generateSessionID(),
				Path:     abs,
				Document: doc,
				Err:      err,
			}
			select {
			case out <- session:
				return true
			case <-ctx.Done():
				return false
			}
		}
		if !emit() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				if !emit() {
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("error watching %q: %v", abs, err)
			}
		}
	}()
	return out, nil
}

// Datasource tracks the files opened by the user as mutations keyed by
// their session ID.
type Datasource struct {
	pool *stream.MutationPool[string, Session]
	opts LoadOptions
}

func NewDatasource(mutator *stream.Mutator, opts LoadOptions) *Datasource {
	return &Datasource{
		pool: stream.NewMutationPool[string, Session](mutator),
		opts: opts,
	}
}

func (d *Datasource) SessionStream(ctx context.Context) <-chan map[string]*stream.Mutation[Session] {
	return d.pool.Stream(ctx)
}

// StreamSession streams the states of one session. The stream is closed
// immediately for unknown IDs.
func (d *Datasource) StreamSession(ctx context.Context, sessionID string) <-chan Session {
	subCtx, cancel := context.WithCancel(ctx)
	m := (<-d.SessionStream(subCtx))[sessionID]
	cancel()
	if m == nil {
		out := make(chan Session)
		close(out)
		return out
	}
	return m.Stream(ctx)
}

// Stream follows the most recently opened session. It has the shape of a
// skel stream provider.
func (d *Datasource) Stream(ctx context.Context) <-chan Session {
	return stream.Multiplex(d.pool.Stream(ctx), func(ctx context.Context, state string, mutations map[string]*stream.Mutation[Session]) (<-chan Session, string) {
		latest := ""
		for id := range mutations {
			if id > latest {
				latest = id
			}
		}
		if latest == "" || latest == state {
			return nil, state
		}
		return mutations[latest].Stream(ctx), latest
	})
}

// Open starts watching path and returns the ID of its session.
func (d *Datasource) Open(path string) string {
	id := generateSessionID()
	stream.Mutate(d.pool, id, func(ctx context.Context) <-chan Session {
		sessions, err := Watch(ctx, path, d.opts)
		if err != nil {
			out := make(chan Session, 1)
			out <- Session{ID: id, Path: path, Err: err}
			close(out)
			return out
		}
		return sessions
	})
	return id
}

// LoadFromFile asks the user for a file. Files with a name on disk are
// watched; others are read once.
func (d *Datasource) LoadFromFile(expl *explorer.Explorer) (string, error) {
	file, err := expl.ChooseFile(".json", ".csv", ".xlsx")
	if err != nil {
		return "", err
	}
	if f, ok := file.(interface{ Name() string }); ok {
		if _, err := FormatFor(f.Name()); err == nil {
			file.Close()
			return d.Open(f.Name()), nil
		}
	}
	return d.LoadFromStream(FormatJSON, file), nil
}

// LoadFromStream reads one document from r and closes it.
func (d *Datasource) LoadFromStream(format Format, r io.ReadCloser) string {
	id := generateSessionID()
	stream.Mutate(d.pool, id, func(ctx context.Context) <-chan Session {
		out := make(chan Session, 1)
		go func() {
			defer close(out)
			doc, err := Decode(format, r, d.opts)
			err = errors.Join(err, r.Close())
			out <- Session{ID: id, Document: doc, Err: err}
		}()
		return out
	})
	return id
}
