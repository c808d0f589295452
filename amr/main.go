package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/amortera/amortera/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)

	sub := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		commander.Register(c, "")
		sub[c.Name()] = &complete.Command{}
	}
	// Shell completion; a no-op unless invoked by the shell.
	(&complete.Command{Sub: sub}).Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
