package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"rowdb/internal/schema"
	"rowdb/internal/store"
)

type StatementType int

const (
	StatementSelect StatementType = iota
	StatementInsert
	StatementUpdate
	StatementDelete
)

func (t StatementType) String() string {
	switch t {
	case StatementSelect:
		return "select"
	case StatementInsert:
		return "insert"
	case StatementUpdate:
		return "update"
	case StatementDelete:
		return "delete"
	default:
		return fmt.Sprintf("statement(%d)", int(t))
	}
}

type Statement struct {
	Type        StatementType
	RowToInsert schema.Row // only used by insert statements
}

var (
	ErrSyntax                = errors.New("syntax error")
	ErrUnrecognizedStatement = errors.New("unrecognized statement")
)

// PrepareStatement parses one line of input into a statement. Insert rows
// are fully validated here so the table never sees an oversized field.
func PrepareStatement(input string) (Statement, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return Statement{}, ErrUnrecognizedStatement
	}

	if fields[0] == "insert" {
		return prepareInsert(fields[1:])
	}

	// the remaining statements take no arguments
	if len(fields) != 1 {
		return Statement{}, ErrUnrecognizedStatement
	}
	switch fields[0] {
	case "select":
		return Statement{Type: StatementSelect}, nil
	case "update":
		return Statement{Type: StatementUpdate}, nil
	case "delete":
		return Statement{Type: StatementDelete}, nil
	default:
		return Statement{}, ErrUnrecognizedStatement
	}
}

func prepareInsert(params []string) (Statement, error) {
	if len(params) != 3 {
		return Statement{}, ErrSyntax
	}

	row, err := schema.ParseRow(params[0], params[1], params[2])
	if errors.Is(err, schema.ErrInvalidID) {
		return Statement{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if err != nil {
		return Statement{}, err
	}
	return Statement{Type: StatementInsert, RowToInsert: row}, nil
}

// ExecuteStatement runs stmt against the table and writes its output to w.
// store.ErrTableFull is returned as is so callers can report it.
func ExecuteStatement(stmt Statement, table *store.Table, w io.Writer) error {
	switch stmt.Type {
	case StatementSelect:
		return executeSelect(table, w)
	case StatementInsert:
		return table.Insert(stmt.RowToInsert)
	case StatementUpdate:
		// accepted but not implemented: rows are never modified in place
		fmt.Fprintln(w, "Update done")
		return nil
	case StatementDelete:
		// accepted but not implemented: rows are never removed
		fmt.Fprintln(w, "Delete done")
		return nil
	default:
		return fmt.Errorf("unknown statement type: %d", stmt.Type)
	}
}

func executeSelect(table *store.Table, w io.Writer) error {
	i := 0
	for row, err := range table.SelectAll() {
		if err != nil {
			return err
		}
		i++
		fmt.Fprintf(w, "%d. %s\n", i, row)
	}
	return nil
}
