//
// Command-line companion for the log session: show where logs go, emit a
// record, report the version.
//

package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&pathCmd{}, "")
	subcommands.Register(&emitCmd{}, "")
	subcommands.Register(&versionCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
