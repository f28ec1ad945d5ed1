package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/crashvb/xsessionp/internal/config"
)

func runLs(args []string) int {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	qualified := fs.Bool("qualified", false, "print full paths instead of bare names")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: xsessionp ls [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List the configurations discoverable in the configuration directories:")
		for _, dir := range config.ConfigDirs() {
			fmt.Fprintf(os.Stderr, "  %s\n", dir)
		}
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
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "ls takes no arguments")
		fs.Usage()
		return 2
	}

	documents, err := config.ListDocuments()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, document := range documents {
		if *qualified {
			fmt.Println(document)
			continue
		}
		fmt.Println(filepath.Base(document))
	}
	return 0
}
