package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"rowdb/internal/store"
)

// ErrExit is returned by the .exit command once the table is closed.
var ErrExit = errors.New("exit")

type DatabaseConfig struct {
	Table  *store.Table
	Styles Styles
}

type CliCommand struct {
	Name        string
	Description string
	Callback    func(*DatabaseConfig, []string, io.Writer) error
}

// CommandRegistry holds the meta commands, which all start with a dot.
var CommandRegistry map[string]CliCommand

func init() {
	CommandRegistry = map[string]CliCommand{
		".help": {
			Name:        ".help",
			Description: "Show all available commands",
			Callback:    commandHelp,
		},
		".exit": {
			Name:        ".exit",
			Description: "Write the table to disk and exit",
			Callback:    commandExit,
		},
		".stats": {
			Name:        ".stats",
			Description: "Show row count, cache usage and table capacity",
			Callback:    commandStats,
		},
	}
}

func commandHelp(config *DatabaseConfig, params []string, w io.Writer) error {
	fmt.Fprintln(w, "Usage: ")
	fmt.Fprintln(w, "  insert <id> <username> <email>")
	fmt.Fprintln(w, "  select")
	fmt.Fprintln(w, "  update | delete "+config.Styles.Muted("(accepted, no effect)"))
	fmt.Fprintln(w)

	for _, name := range slices.Sorted(maps.Keys(CommandRegistry)) {
		fmt.Fprintf(w, "%s: %s\n", name, CommandRegistry[name].Description)
	}
	return nil
}

func commandExit(config *DatabaseConfig, params []string, w io.Writer) error {
	if err := config.Table.Close(); err != nil {
		return err
	}
	return ErrExit
}

func commandStats(config *DatabaseConfig, params []string, w io.Writer) error {
	fmt.Fprintln(w, config.Table.Stats())
	return nil
}
