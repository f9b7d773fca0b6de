package store

import (
	"rowdb/internal/pager"
	"rowdb/internal/schema"
)

// Cursor is a position in the table's row sequence. It is only valid while
// the table is open and is never persisted.
type Cursor struct {
	table      *Table
	rowNum     uint32
	endOfTable bool
}

// TableStart positions a cursor at the first row.
func TableStart(t *Table) *Cursor {
	return &Cursor{
		table:      t,
		rowNum:     0,
		endOfTable: t.numRows == 0,
	}
}

// TableEnd positions a cursor one past the last row, where the next
// insert goes.
func TableEnd(t *Table) *Cursor {
	return &Cursor{
		table:      t,
		rowNum:     t.numRows,
		endOfTable: true,
	}
}

func (c *Cursor) RowNum() uint32 {
	return c.rowNum
}

func (c *Cursor) EndOfTable() bool {
	return c.endOfTable
}

func (c *Cursor) Advance() {
	if c.endOfTable {
		return
	}
	c.rowNum++
	if c.rowNum >= c.table.numRows {
		c.endOfTable = true
	}
}

// Value returns the ROW_SIZE bytes of the current row inside its cached
// page. Writes to the slice modify the page.
func (c *Cursor) Value() ([]byte, error) {
	pageNum := pager.PageID(c.rowNum / ROWS_PER_PAGE)
	page, err := c.table.pager.GetPage(pageNum)
	if err != nil {
		return nil, err
	}
	byteOffset := (c.rowNum % ROWS_PER_PAGE) * schema.ROW_SIZE
	return page.Data[byteOffset : byteOffset+schema.ROW_SIZE], nil
}
