package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"rowdb/internal/cli"
	"rowdb/internal/dberr"
	"rowdb/internal/logging"
	"rowdb/internal/store"

	"golang.org/x/term"
)

type Configuration struct {
	Filename string
	LogLevel logging.LogLevel
	LogFile  string
	LogJSON  bool
	Color    bool
}

var errNoFilename = errors.New("missing database filename")

func parseArguments(args []string, stderr io.Writer) (Configuration, error) {
	var config Configuration
	var level string

	fs := flag.NewFlagSet("rowdb", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: rowdb [flags] <database file>")
		fs.PrintDefaults()
	}
	fs.StringVar(&level, "log-level", string(logging.LevelWarn), "Log level: debug, info, warn or error")
	fs.StringVar(&config.LogFile, "log-file", "", "Write logs to this file instead of stderr")
	fs.BoolVar(&config.LogJSON, "log-json", false, "Log in JSON instead of text")
	fs.BoolVar(&config.Color, "color", true, "Colorize prompt and errors when attached to a terminal")

	if err := fs.Parse(args); err != nil {
		return Configuration{}, err
	}
	if fs.NArg() < 1 {
		return Configuration{}, errNoFilename
	}
	config.Filename = fs.Arg(0)

	lvl, err := logging.ParseLevel(level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return Configuration{}, err
	}
	config.LogLevel = lvl
	return config, nil
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func main() {
	config, err := parseArguments(os.Args[1:], os.Stderr)
	if errors.Is(err, errNoFilename) {
		fmt.Println("Must supply a database filename.")
		os.Exit(1)
	}
	if err != nil {
		os.Exit(2)
	}

	format := "text"
	if config.LogJSON {
		format = "json"
	}
	if err := logging.Init(logging.Config{Level: config.LogLevel, OutputPath: config.LogFile, Format: format}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Close()
	log := logging.GetLogger()

	table, err := store.OpenTable(config.Filename)
	if err != nil {
		log.Error("open table", "file", config.Filename, "err", err)
		fmt.Println("Unable to open file")
		logging.Close()
		os.Exit(1)
	}

	db := &cli.DatabaseConfig{
		Table:  table,
		Styles: cli.NewStyles(config.Color && isInteractive()),
	}

	err = cli.Run(db, os.Stdin, os.Stdout)
	switch {
	case err == nil:
		return
	case errors.Is(err, cli.ErrInputClosed) && !dberr.IsFatal(err):
		log.Warn("input closed before .exit", "file", config.Filename)
	default:
		log.Error("aborting", "fatal", dberr.IsFatal(err), "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	logging.Close()
	os.Exit(1)
}
