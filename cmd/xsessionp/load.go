package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"

	"github.com/crashvb/xsessionp/internal/config"
	"github.com/crashvb/xsessionp/internal/session"
)

// stringList collects repeated flag values.
type stringList []string

func (l *stringList) String() string { return fmt.Sprint(*l) }

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func runLoad(args []string) int {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	verbosity := verbosityFlags(fs)
	var indexes stringList
	var names stringList
	fs.Var(&indexes, "index", "window index(es) to process; comma separated, ranges allowed (e.g. 0,2,4-7); repeatable")
	fs.Var(&names, "name", "window name pattern to process (regular expression); repeatable")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: xsessionp load [options] <config> [<config> ...]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Load configuration(s) by name or path, launch the declared commands,")
		fmt.Fprintln(os.Stderr, "and place the resulting windows. When --index is given it alone selects")
		fmt.Fprintln(os.Stderr, "the entries to process; otherwise --name patterns apply.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "load requires at least one configuration")
		fs.Usage()
		return 2
	}

	var options session.LoadOptions
	if len(indexes) > 0 {
		parsed, err := config.ParseIndexList(indexes)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		options.Indices = parsed
	}
	for _, pattern := range names {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid name pattern %q: %v\n", pattern, err)
			return 2
		}
		options.Names = append(options.Names, compiled)
	}

	sess, cleanup, err := connectSession(verbosity())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cleanup()

	// A fatal error in one document does not stop the others; the worst
	// status across all documents becomes the exit status.
	status := 0
	for _, name := range fs.Args() {
		path, err := config.Resolve(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = 1
			continue
		}
		document, err := config.Parse(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = 1
			continue
		}
		result, err := sess.Load(document, options)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = 1
			continue
		}
		if result.Failures > 0 && status == 0 {
			status = 3
		}
	}
	return status
}
