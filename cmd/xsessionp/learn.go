package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

func runLearn(args []string) int {
	fs := flag.NewFlagSet("learn", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	verbosity := verbosityFlags(fs)
	filterEnvironment := fs.Bool("filter-environment", true, "omit environment variables inherited unchanged from this shell")
	captureEnvironment := fs.Bool("environment", false, "include the window's process environment")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: xsessionp learn [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Capture the currently active window as a configuration snippet on")
		fmt.Fprintln(os.Stderr, "stdout. Focus the window to learn, then run this command.")
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
		fmt.Fprintln(os.Stderr, "learn takes no arguments")
		fs.Usage()
		return 2
	}

	sess, cleanup, err := connectSession(verbosity())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cleanup()

	backend := sess.Backend()
	windowID, err := backend.ActiveWindow()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	window := map[string]any{}

	pid := 0
	if p, err := backend.WindowPID(windowID); err == nil {
		pid = p
	}
	if argv := processCommandLine(pid); len(argv) > 0 {
		window["command"] = argv
	} else {
		window["command"] = []string{"false"}
		fmt.Fprintln(os.Stderr, "learn: warning: unable to determine command; edit before use")
	}

	if title, err := backend.WindowName(windowID); err == nil && title != "" {
		window["title_hint"] = "^" + regexp.QuoteMeta(title) + "$"
	}
	if desktop, err := backend.WindowDesktop(windowID); err == nil {
		window["desktop"] = desktop
	}
	if width, height, err := backend.WindowDimensions(windowID); err == nil {
		window["geometry"] = fmt.Sprintf("%dx%d", width, height)
	}
	if x, y, err := backend.WindowPosition(windowID); err == nil {
		window["position"] = fmt.Sprintf("%d,%d", x, y)
	}
	if *captureEnvironment && pid > 0 {
		if env := processEnvironment(pid, *filterEnvironment); len(env) > 0 {
			window["environment"] = env
		}
	}

	document := map[string]any{"windows": []any{window}}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(document); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	encoder.Close()
	os.Stdout.Write(buf.Bytes())
	return 0
}

// processCommandLine reads the argv of a process from procfs.
func processCommandLine(pid int) []string {
	if pid <= 0 {
		return nil
	}
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/cmdline", pid))
	if err != nil {
		return nil
	}
	var argv []string
	for _, field := range bytes.Split(data, []byte{0}) {
		if len(field) > 0 {
			argv = append(argv, string(field))
		}
	}
	return argv
}

// processEnvironment reads a process environment from procfs. With
// filter enabled, variables whose values match this process are
// dropped; only the deltas are worth recording.
func processEnvironment(pid int, filter bool) map[string]string {
	data, err := os.ReadFile(fmt.Sprintf("/proc/%d/environ", pid))
	if err != nil {
		return nil
	}

	own := map[string]string{}
	if filter {
		for _, entry := range os.Environ() {
			if key, value, ok := strings.Cut(entry, "="); ok {
				own[key] = value
			}
		}
	}

	env := map[string]string{}
	for _, field := range bytes.Split(data, []byte{0}) {
		key, value, ok := strings.Cut(string(field), "=")
		if !ok || key == "" {
			continue
		}
		if filter {
			if ownValue, exists := own[key]; exists && ownValue == value {
				continue
			}
		}
		env[key] = value
	}
	return env
}
