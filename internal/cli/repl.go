package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"rowdb/internal/logging"
	"rowdb/internal/schema"
	"rowdb/internal/store"
)

const prompt = "db > "

// ErrInputClosed means the input ended before .exit. The table has been
// closed, so inserted rows are kept.
var ErrInputClosed = errors.New("error reading input")

// Run reads commands from r until .exit or end of input, writing results
// to w. It returns nil after .exit, ErrInputClosed when r runs dry, and
// any fatal storage error as soon as it happens.
func Run(config *DatabaseConfig, r io.Reader, w io.Writer) error {
	log := logging.WithComponent("cli")
	// lines have no length limit; oversized fields are rejected when the
	// statement is prepared
	reader := bufio.NewReader(r)

	for {
		fmt.Fprint(w, config.Styles.Prompt(prompt))
		input, readErr := reader.ReadString('\n')
		if readErr != nil && (input == "" || !errors.Is(readErr, io.EOF)) {
			fmt.Fprintln(w, config.Styles.Error("Error reading input"))
			err := ErrInputClosed
			if !errors.Is(readErr, io.EOF) {
				err = fmt.Errorf("%w: %w", ErrInputClosed, readErr)
			}
			return errors.Join(err, config.Table.Close())
		}

		line := strings.TrimSpace(input)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			err := doMetaCommand(config, line, w)
			if errors.Is(err, ErrExit) {
				log.Debug("exit requested")
				return nil
			}
			if err != nil {
				return err
			}
			continue
		}

		stmt, err := PrepareStatement(line)
		if err != nil {
			fmt.Fprintln(w, config.Styles.Error(prepareMessage(err, line)))
			continue
		}

		err = ExecuteStatement(stmt, config.Table, w)
		switch {
		case err == nil:
			fmt.Fprintln(w, "Executed")
		case errors.Is(err, store.ErrTableFull):
			fmt.Fprintln(w, config.Styles.Error("Error: Table full"))
		default:
			return err
		}
		log.Debug("executed", "statement", stmt.Type, "rows", config.Table.NumRows())
	}
}

func doMetaCommand(config *DatabaseConfig, line string, w io.Writer) error {
	// meta commands match the whole line, so ".exit now" is unknown
	fields := strings.Fields(line)
	command, ok := CommandRegistry[fields[0]]
	if !ok || len(fields) != 1 {
		fmt.Fprintln(w, config.Styles.Error(fmt.Sprintf("Unrecognized command '%s'", line)))
		return nil
	}
	return command.Callback(config, fields[1:], w)
}

func prepareMessage(err error, line string) string {
	switch {
	case errors.Is(err, schema.ErrNegativeID):
		return "Id cannot be negative"
	case errors.Is(err, schema.ErrStringTooLong):
		return "String is too long"
	case errors.Is(err, ErrSyntax), errors.Is(err, schema.ErrInvalidString):
		return "Syntax error. Could not parse statement"
	default:
		return fmt.Sprintf("Unrecognized keyword at '%s'", line)
	}
}
