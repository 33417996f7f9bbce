package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-engine/engine"
	"github.com/cwbudde/algo-engine/engine/audio"
)

func runParams(args []string, stdout, stderr io.Writer) error {
	var s sessionFlags

	fs := flag.NewFlagSet("params", flag.ContinueOnError)
	fs.SetOutput(stderr)
	s.register(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}

		return errUsage
	}

	g, err := s.buildGraph()
	if err != nil {
		return err
	}

	e := engine.New(g, engine.WithLogger(newLogger(stderr, s.verbose)))
	if err := e.Initialize(audio.Generator(s.channels), s.config()); err != nil {
		return err
	}

	defer func() { _ = e.Deactivate() }()

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tMIN\tMAX\tDEFAULT\tUNIT")

	for _, p := range e.Parameters() {
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%s\n", p.ID, p.Name, p.Range.Min, p.Range.Max, p.Default, p.Unit)
	}

	return tw.Flush()
}
