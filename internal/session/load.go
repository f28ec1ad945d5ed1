package session

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/joho/godotenv"

	"github.com/crashvb/xsessionp/internal/config"
)

const defaultStartTimeout = 3 // seconds

// LoadOptions restricts which window entries of a document are
// processed. When Indices is non-empty it alone decides the selection;
// otherwise Names is consulted; otherwise every entry is processed.
type LoadOptions struct {
	Indices []int
	Names   []*regexp.Regexp
}

// LoadResult summarizes a document load.
type LoadResult struct {
	Processed int
	Failures  int
}

func (o LoadOptions) selects(index int, name string) bool {
	if len(o.Indices) > 0 {
		for _, i := range o.Indices {
			if i == index {
				return true
			}
		}
		return false
	}
	if len(o.Names) > 0 {
		for _, pattern := range o.Names {
			if pattern.MatchString(name) {
				return true
			}
		}
		return false
	}
	return true
}

// Load instantiates the windows declared in a document: each selected,
// enabled entry is launched, discovered, tagged, awaited, and
// positioned. Failures on individual entries are logged and counted
// rather than aborting the pass, so later entries still get their
// chance. Focus is applied last, and only when exactly one entry
// requests it.
func (s *Session) Load(document *config.Document, options LoadOptions) (LoadResult, error) {
	document.Sanitize()
	if err := document.Validate(); err != nil {
		return LoadResult{}, err
	}

	var result LoadResult
	var focusNames []string
	var focusWindow xproto.Window

	for i := range document.Windows {
		if document.Windows[i].Name() == "" {
			document.Windows[i].SetName(config.GenerateName(document.Path, i))
		}
		name := document.Windows[i].Name()
		window := document.InheritGlobals(document.Windows[i])

		// Every entry requesting focus counts toward the conflict
		// check, whether or not it is ultimately processed.
		wantsFocus := window.Enabled("focus") && window.Bool("focus")
		if wantsFocus {
			focusNames = append(focusNames, name)
		}

		if !options.selects(i, name) {
			s.trace("skipping window %q: filtered", name)
			continue
		}
		if window.Enabled("disabled") && window.Bool("disabled") {
			s.trace("skipping window %q: disabled", name)
			continue
		}
		result.Processed++

		windowID, err := s.loadWindow(window)
		if err != nil {
			log.Printf("session: error: window %q: %v", name, err)
			result.Failures++
			continue
		}
		document.Windows[i].SetID(uint32(windowID))
		window.SetID(uint32(windowID))

		if err := s.TagWindow(windowID, window); err != nil {
			log.Printf("session: warning: failed to tag window %q: %v", name, err)
		}

		if err := s.awaitVisible(windowID, window); err != nil {
			log.Printf("session: warning: window %q: %v", name, err)
		}

		if err := s.PositionWindow(window); err != nil {
			log.Printf("session: error: %v", err)
		}

		if wantsFocus {
			focusWindow = windowID
		}
	}

	switch {
	case len(focusNames) > 1:
		log.Printf("session: error: at most one window may request focus; got %d: %v", len(focusNames), focusNames)
	case len(focusNames) == 1 && focusWindow != 0:
		if err := s.backend.ActivateWindow(focusWindow); err != nil {
			log.Printf("session: error: failed to focus window %q: %v", focusNames[0], err)
		}
	}

	return result, nil
}

// loadWindow launches the entry's command and resolves the single
// window it produced.
func (s *Session) loadWindow(window config.Entry) (xproto.Window, error) {
	argv, err := window.Command(window.Enabled("shell") && window.Bool("shell"))
	if err != nil {
		return 0, err
	}

	env, err := s.buildEnvironment(window)
	if err != nil {
		return 0, err
	}

	spec := LaunchSpec{
		Argv: argv,
		Dir:  window.String("start_directory", "/"),
		Env:  env,
	}
	candidates, err := s.LaunchCommand(spec)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, fmt.Errorf("no new windows appeared for command %v", argv)
	}

	hint := DefaultTitleHint
	if window.Enabled("title_hint") {
		hint = window.String("title_hint", DefaultTitleHint)
	}
	// Sane traversal is on unless the entry disables it.
	sane := true
	if window.Enabled("sane") {
		sane = window.Bool("sane")
	} else if _, negated := window["no_sane"]; negated {
		sane = false
	}
	windowID, ok := s.GuessWindow(candidates, hint, sane)
	if !ok {
		return 0, fmt.Errorf("unable to identify window for command %v", argv)
	}
	return windowID, nil
}

// buildEnvironment assembles the child process environment. The parent
// environment is copied unless copy_environment is disabled, then an
// optional dotenv file and inline environment mapping are layered on
// top, later sources overriding earlier ones.
func (s *Session) buildEnvironment(window config.Entry) ([]string, error) {
	copyEnv := true
	if window.Enabled("copy_environment") {
		copyEnv = window.Bool("copy_environment")
	}

	// Non-nil even when empty; exec treats a nil environment as
	// "inherit the parent's".
	env := []string{}
	if copyEnv {
		env = os.Environ()
	}

	if window.Enabled("environment_file") {
		path := window.String("environment_file", "")
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read environment file %q: %w", path, err)
		}
		for key, value := range values {
			env = append(env, key+"="+value)
		}
	}

	for key, value := range window.StringMap("environment") {
		env = append(env, key+"="+value)
	}
	return env, nil
}

// awaitVisible polls until the window reports a viewable map state or
// the entry's start_timeout elapses.
func (s *Session) awaitVisible(windowID xproto.Window, window config.Entry) error {
	timeout := time.Duration(window.Int("start_timeout", defaultStartTimeout)) * time.Second
	deadline := time.Now().Add(timeout)
	for {
		if s.backend.IsWindowViewable(windowID) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("window %d did not become visible within %s", windowID, timeout)
		}
		time.Sleep(s.visiblePoll)
	}
}
