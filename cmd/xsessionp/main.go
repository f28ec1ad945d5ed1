package main

import (
	"fmt"
	"io"
	"os"
)

// Version is stamped at build time via -ldflags.
var Version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "load":
		os.Exit(runLoad(os.Args[2:]))
	case "ls":
		os.Exit(runLs(os.Args[2:]))
	case "list-windows":
		os.Exit(runListWindows(os.Args[2:]))
	case "close-window":
		os.Exit(runCloseWindow(os.Args[2:]))
	case "learn":
		os.Exit(runLearn(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "version":
		fmt.Fprintln(os.Stdout, Version)
		os.Exit(0)
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xsessionp <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Declaratively launch and position X11 windows.")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  load            Load configuration(s) and instantiate their windows")
	fmt.Fprintln(w, "  ls              List discoverable configurations")
	fmt.Fprintln(w, "  list-windows    List windows instantiated by xsessionp")
	fmt.Fprintln(w, "  close-window    Close xsessionp-managed window(s)")
	fmt.Fprintln(w, "  learn           Capture the active window as a configuration snippet")
	fmt.Fprintln(w, "  mcp serve       Start MCP server (stdio transport)")
	fmt.Fprintln(w, "  version         Print the version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'xsessionp <command> --help' for command-specific options.")
}
