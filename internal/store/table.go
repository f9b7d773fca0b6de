package store

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"rowdb/internal/dberr"
	"rowdb/internal/encoding"
	"rowdb/internal/logging"
	"rowdb/internal/pager"
	"rowdb/internal/schema"
)

const (
	ROWS_PER_PAGE  = pager.PAGE_SIZE / schema.ROW_SIZE
	TABLE_MAX_ROWS = ROWS_PER_PAGE * pager.TABLE_MAX_PAGES

	// the bytes of a page that hold rows; the tail padding is never written
	// so the file stays a plain array of rows
	PAGE_DATA_SIZE = ROWS_PER_PAGE * schema.ROW_SIZE
)

var ErrTableFull = errors.New("table full")

// Table is a flat file of fixed-width rows. The row count is not stored
// anywhere: it is derived from the file length at open and persisted by
// how many bytes Close writes back.
type Table struct {
	numRows uint32
	pager   *pager.Pager
	log     *slog.Logger
}

func OpenTable(filename string) (*Table, error) {
	p, err := pager.Open(filename, PAGE_DATA_SIZE)
	if err != nil {
		return nil, err
	}

	log := logging.WithTable(filename)
	fileLength := p.FileLength()
	if extra := fileLength % schema.ROW_SIZE; extra != 0 {
		// the fragment is never read back and the next insert overwrites it
		log.Warn("file ends with a partial row", "file_length", fileLength, "ignored_bytes", extra)
	}

	return &Table{
		numRows: uint32(fileLength / schema.ROW_SIZE),
		pager:   p,
		log:     log,
	}, nil
}

func (t *Table) NumRows() uint32 {
	return t.numRows
}

// Insert appends row at the end of the table. The row must already be
// validated. ErrTableFull leaves the table unchanged.
func (t *Table) Insert(row schema.Row) error {
	if t.numRows >= TABLE_MAX_ROWS {
		return dberr.Recoverable("table.Insert", ErrTableFull)
	}

	cursor := TableEnd(t)
	dst, err := cursor.Value()
	if err != nil {
		return fmt.Errorf("insert row %d: %w", t.numRows, err)
	}
	encoding.SerializeRow(row, dst)
	t.numRows++
	return nil
}

// SelectAll yields every row in insertion order. Each range over the
// returned sequence starts a new scan from the first row.
func (t *Table) SelectAll() iter.Seq2[schema.Row, error] {
	return func(yield func(schema.Row, error) bool) {
		for cursor := TableStart(t); !cursor.EndOfTable(); cursor.Advance() {
			src, err := cursor.Value()
			if err != nil {
				yield(schema.Row{}, fmt.Errorf("select row %d: %w", cursor.RowNum(), err))
				return
			}
			if !yield(encoding.DeserializeRow(src), nil) {
				return
			}
		}
	}
}

// ScanAll collects SelectAll into a slice.
func (t *Table) ScanAll() ([]schema.Row, error) {
	rows := make([]schema.Row, 0, t.numRows)
	for row, err := range t.SelectAll() {
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Close writes every loaded page holding valid rows back to the file and
// releases the pager. Full pages are written with all their rows, the
// last page only up to its final row. The table must not be used afterwards.
func (t *Table) Close() error {
	numFullPages := t.numRows / ROWS_PER_PAGE

	for i := uint32(0); i < numFullPages; i++ {
		id := pager.PageID(i)
		if !t.pager.Contains(id) {
			continue
		}
		if err := t.pager.Flush(id, PAGE_DATA_SIZE); err != nil {
			return errors.Join(err, t.pager.Close())
		}
		t.pager.Release(id)
	}

	// there may be a partial page at the end of the file
	if numAdditionalRows := t.numRows % ROWS_PER_PAGE; numAdditionalRows > 0 {
		id := pager.PageID(numFullPages)
		if t.pager.Contains(id) {
			if err := t.pager.Flush(id, int(numAdditionalRows)*schema.ROW_SIZE); err != nil {
				return errors.Join(err, t.pager.Close())
			}
			t.pager.Release(id)
		}
	}

	if err := t.pager.Close(); err != nil {
		return err
	}
	t.log.Debug("closed", "rows", t.numRows)
	return nil
}

type TableStats struct {
	NumRows     uint32
	MaxRows     uint32
	RowsPerPage uint32
	CachedPages int
	FileLength  int64
}

func (s TableStats) String() string {
	return fmt.Sprintf("Rows: %d / %d\nRows per page: %d\nCached pages: %d / %d\nFile length at open: %d bytes",
		s.NumRows, s.MaxRows, s.RowsPerPage, s.CachedPages, pager.TABLE_MAX_PAGES, s.FileLength)
}

func (t *Table) Stats() TableStats {
	return TableStats{
		NumRows:     t.numRows,
		MaxRows:     TABLE_MAX_ROWS,
		RowsPerPage: ROWS_PER_PAGE,
		CachedPages: t.pager.NumCachedPages(),
		FileLength:  t.pager.FileLength(),
	}
}
