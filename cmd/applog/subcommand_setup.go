package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
)

//
// This file contains the boiler-plate for the subcommands.
//

// Options which may be set via flags for the "path" subcommand.
type pathCmd struct {
	config string
}

// Glue.
func (*pathCmd) Name() string     { return "path" }
func (*pathCmd) Synopsis() string { return "Show the log file path for this minute." }
func (*pathCmd) Usage() string {
	return `path [-config file] :
  Print the log file a process started now would write to.
`
}

// Flag setup.
func (p *pathCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.config, "config", os.Getenv("CONFIG_FILE"), "TOML configuration file.")
}

// Entry-point.
func (p *pathCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	lc, err := loadLoggerConfig(p.config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	showPath(lc, time.Now(), os.Stdout)
	return subcommands.ExitSuccess
}

// Options which may be set via flags for the "emit" subcommand.
type emitCmd struct {
	config string
	name   string
	level  string
}

// Glue.
func (*emitCmd) Name() string     { return "emit" }
func (*emitCmd) Synopsis() string { return "Write one record to the log session." }
func (*emitCmd) Usage() string {
	return `emit [-name app] [-level INFO] message... :
  Open the log session, write the message through the named logger, and exit.
`
}

// Flag setup.
func (p *emitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.config, "config", os.Getenv("CONFIG_FILE"), "TOML configuration file.")
	f.StringVar(&p.name, "name", "app", "Logger name.")
	f.StringVar(&p.level, "level", "INFO", "Record level.")
}

// Entry-point.
func (p *emitCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	message := strings.Join(f.Args(), " ")
	if message == "" {
		fmt.Fprintln(os.Stderr, "emit: a message is required")
		return subcommands.ExitUsageError
	}

	lc, err := loadLoggerConfig(p.config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := emit(*p, lc, message); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// Options which may be set via flags for the "version" subcommand.
type versionCmd struct {
	verbose bool
}

// Glue.
func (*versionCmd) Name() string     { return "version" }
func (*versionCmd) Synopsis() string { return "Show our version." }
func (*versionCmd) Usage() string {
	return `version :
  Report upon our version, and exit.
`
}

// Flag setup.
func (p *versionCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.verbose, "verbose", false, "Show go version the binary was generated with.")
}

// Entry-point.
func (p *versionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	printVersion(os.Stdout, p.verbose)
	return subcommands.ExitSuccess
}
