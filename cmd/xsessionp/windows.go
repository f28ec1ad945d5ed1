package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/crashvb/xsessionp/internal/session"
)

// windowColumn maps a column name to its value accessor. Accessors are
// tolerant: a window that vanished mid-listing yields a blank cell.
type windowColumn struct {
	name  string
	value func(sess *session.Session, window session.TaggedWindow) string
}

var windowColumns = []windowColumn{
	{"id", func(sess *session.Session, window session.TaggedWindow) string {
		return strconv.FormatUint(uint64(window.ID), 10)
	}},
	{"xname", func(sess *session.Session, window session.TaggedWindow) string {
		name, err := sess.Backend().WindowName(window.ID)
		if err != nil {
			return ""
		}
		return name
	}},
	{"name", func(sess *session.Session, window session.TaggedWindow) string {
		return window.Metadata.Name()
	}},
	{"desktop", func(sess *session.Session, window session.TaggedWindow) string {
		desktop, err := sess.Backend().WindowDesktop(window.ID)
		if err != nil {
			return ""
		}
		return strconv.Itoa(desktop)
	}},
	{"position", func(sess *session.Session, window session.TaggedWindow) string {
		x, y, err := sess.Backend().WindowPosition(window.ID)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("%d,%d", x, y)
	}},
	{"dimensions", func(sess *session.Session, window session.TaggedWindow) string {
		width, height, err := sess.Backend().WindowDimensions(window.ID)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("%dx%d", width, height)
	}},
	{"pid", func(sess *session.Session, window session.TaggedWindow) string {
		pid, err := sess.Backend().WindowPID(window.ID)
		if err != nil {
			return ""
		}
		return strconv.Itoa(pid)
	}},
}

func lookupColumn(name string) (windowColumn, bool) {
	for _, column := range windowColumns {
		if column.name == name {
			return column, true
		}
	}
	return windowColumn{}, false
}

func columnNames() []string {
	names := make([]string, 0, len(windowColumns))
	for _, column := range windowColumns {
		names = append(names, column.name)
	}
	return names
}

func runListWindows(args []string) int {
	fs := flag.NewFlagSet("list-windows", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	verbosity := verbosityFlags(fs)
	all := fs.Bool("all", false, "include windows on other desktops")
	noHeaders := fs.Bool("no-headers", false, "omit the column header row")
	var columns string
	fs.StringVar(&columns, "columns", "id,name,desktop,position,dimensions", "comma separated columns; pass '' to list valid names")
	fs.StringVar(&columns, "f", "id,name,desktop,position,dimensions", "alias for --columns")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: xsessionp list-windows [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List the windows previously instantiated by xsessionp. Only windows")
		fmt.Fprintln(os.Stderr, "on the current desktop are shown unless --all is given.")
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

	if strings.TrimSpace(columns) == "" {
		fmt.Println(strings.Join(columnNames(), ","))
		return 0
	}
	var selected []windowColumn
	for _, name := range strings.Split(columns, ",") {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		column, ok := lookupColumn(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown column %q; valid columns: %s\n", name, strings.Join(columnNames(), ","))
			return 2
		}
		selected = append(selected, column)
	}

	sess, cleanup, err := connectSession(verbosity())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cleanup()

	tagged, err := sess.FindTaggedWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !*all {
		current, err := sess.Backend().CurrentDesktop()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		filtered := tagged[:0]
		for _, window := range tagged {
			desktop, err := sess.Backend().WindowDesktop(window.ID)
			if err != nil {
				continue
			}
			// Sticky windows (-1) show on every desktop.
			if desktop == current || desktop == -1 {
				filtered = append(filtered, window)
			}
		}
		tagged = filtered
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if !*noHeaders {
		for i, column := range selected {
			if i > 0 {
				fmt.Fprint(writer, "\t")
			}
			fmt.Fprint(writer, strings.ToUpper(column.name))
		}
		fmt.Fprintln(writer)
	}
	for _, window := range tagged {
		for i, column := range selected {
			if i > 0 {
				fmt.Fprint(writer, "\t")
			}
			fmt.Fprint(writer, column.value(sess, window))
		}
		fmt.Fprintln(writer)
	}
	writer.Flush()
	return 0
}

func runCloseWindow(args []string) int {
	fs := flag.NewFlagSet("close-window", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	verbosity := verbosityFlags(fs)
	var targets stringList
	fs.Var(&targets, "target", "metadata name of a window to close; repeatable")
	desktop := fs.Int("desktop", -1, "close windows on this desktop")
	invert := fs.Bool("all", false, "invert the selection: close every tagged window EXCEPT the selected ones")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: xsessionp close-window [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Politely close xsessionp-managed windows, selected by the metadata")
		fmt.Fprintln(os.Stderr, "name assigned at load time (--target) or by desktop (--desktop).")
		fmt.Fprintln(os.Stderr, "The two selectors are mutually exclusive.")
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
		fmt.Fprintln(os.Stderr, "close-window takes no arguments")
		fs.Usage()
		return 2
	}
	if len(targets) > 0 && *desktop >= 0 {
		fmt.Fprintln(os.Stderr, "--target and --desktop are mutually exclusive")
		return 2
	}
	if len(targets) == 0 && *desktop < 0 && !*invert {
		fmt.Fprintln(os.Stderr, "close-window requires --target, --desktop, or --all")
		fs.Usage()
		return 2
	}

	sess, cleanup, err := connectSession(verbosity())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cleanup()

	tagged, err := sess.FindTaggedWindows()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	selectedByName := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		selectedByName[target] = struct{}{}
	}
	selects := func(window session.TaggedWindow) bool {
		if len(selectedByName) > 0 {
			_, ok := selectedByName[window.Metadata.Name()]
			return ok
		}
		if *desktop >= 0 {
			d, err := sess.Backend().WindowDesktop(window.ID)
			return err == nil && d == *desktop
		}
		// No selector: nothing selected, so --all closes everything.
		return false
	}

	status := 0
	closed := 0
	for _, window := range tagged {
		if selects(window) == *invert {
			continue
		}
		if err := sess.Backend().CloseWindow(window.ID); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close window %d: %v\n", window.ID, err)
			status = 1
			continue
		}
		closed++
	}
	if closed == 0 && status == 0 && !*invert {
		fmt.Fprintln(os.Stderr, "no windows matched the selection")
	}
	return status
}
