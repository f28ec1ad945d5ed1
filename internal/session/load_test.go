package session

import (
	"regexp"
	"strings"
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/crashvb/xsessionp/internal/config"
)

func testDocument(windows ...config.Entry) *config.Document {
	return &config.Document{
		Path:    "/tmp/session.yml",
		Globals: map[string]any{},
		Windows: windows,
	}
}

// injectOnLaunch arranges for each launch to create the next window id.
func injectOnLaunch(s *Session, backend *fakeBackend, ids []xproto.Window, title string) {
	next := 0
	s.launch = func(spec LaunchSpec) error {
		if next < len(ids) {
			backend.addWindow(ids[next], title)
			next++
		}
		return nil
	}
}

func TestLoadSingleWindow(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	injectOnLaunch(s, backend, []xproto.Window{42}, "xterm")

	doc := testDocument(config.Entry{
		"command":  "xterm",
		"name":     "term",
		"desktop":  2,
		"geometry": "300x200",
		"position": "25,50",
		"focus":    true,
	})
	result, err := s.Load(doc, LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Processed != 1 || result.Failures != 0 {
		t.Fatalf("Load result = %+v, want 1 processed, 0 failures", result)
	}

	if doc.Windows[0].ID() != 42 {
		t.Errorf("entry id = %d, want 42", doc.Windows[0].ID())
	}
	if backend.desktops[42] != 2 {
		t.Errorf("desktop = %d, want 2", backend.desktops[42])
	}
	if backend.w[42] != 300 || backend.h[42] != 200 {
		t.Errorf("geometry = %dx%d, want 300x200", backend.w[42], backend.h[42])
	}
	if backend.x[42] != 25 || backend.y[42] != 50 {
		t.Errorf("position = %d,%d, want 25,50", backend.x[42], backend.y[42])
	}
	if backend.active != 42 {
		t.Errorf("active window = %d, want focused 42", backend.active)
	}

	raw, ok := backend.metadata[42]
	if !ok {
		t.Fatal("window was not tagged with metadata")
	}
	meta, err := DecodeMetadata(raw)
	if err != nil {
		t.Fatal(err)
	}
	if meta.Name() != "term" {
		t.Errorf("metadata name = %q, want %q", meta.Name(), "term")
	}
	if meta.ID() != 42 {
		t.Errorf("metadata id = %d, want 42", meta.ID())
	}
}

func TestLoadSaneTraversalDefault(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	injectOnLaunch(s, backend, []xproto.Window{42}, "xterm")

	// The launched window is a client leader; the window manager's frame
	// sits above it and carries WM_STATE.
	backend.parents[42] = 40
	backend.wmState[40] = true
	backend.viewable[40] = true

	doc := testDocument(config.Entry{"command": "xterm", "name": "term"})
	if _, err := s.Load(doc, LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	if doc.Windows[0].ID() != 40 {
		t.Errorf("entry id = %d, want WM_STATE ancestor 40", doc.Windows[0].ID())
	}
}

func TestLoadNoSaneTraversal(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	injectOnLaunch(s, backend, []xproto.Window{42}, "xterm")

	backend.parents[42] = 40
	backend.wmState[40] = true

	doc := testDocument(config.Entry{"command": "xterm", "name": "term", "no_sane": nil})
	if _, err := s.Load(doc, LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	if doc.Windows[0].ID() != 42 {
		t.Errorf("entry id = %d, want raw candidate 42", doc.Windows[0].ID())
	}
}

func TestLoadInheritsGlobals(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	injectOnLaunch(s, backend, []xproto.Window{42}, "xterm")

	doc := testDocument(config.Entry{"command": "xterm"})
	doc.Globals["desktop"] = 3

	if _, err := s.Load(doc, LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	if backend.desktops[42] != 3 {
		t.Errorf("desktop = %d, want inherited 3", backend.desktops[42])
	}
}

func TestLoadToggleDisablesInheritedKey(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	injectOnLaunch(s, backend, []xproto.Window{42}, "xterm")

	doc := testDocument(config.Entry{"command": "xterm", "no_desktop": nil})
	doc.Globals["desktop"] = 3

	if _, err := s.Load(doc, LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	if backend.desktops[42] != 0 {
		t.Errorf("desktop = %d, want untouched 0", backend.desktops[42])
	}
}

func TestLoadSkipsDisabled(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	s.launch = func(spec LaunchSpec) error {
		t.Error("disabled entry was launched")
		return nil
	}

	doc := testDocument(config.Entry{"command": "xterm", "disabled": true})
	result, err := s.Load(doc, LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Processed != 0 {
		t.Errorf("processed = %d, want 0", result.Processed)
	}
}

func TestLoadGeneratesNames(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	injectOnLaunch(s, backend, []xproto.Window{42}, "xterm")

	doc := testDocument(config.Entry{"command": "xterm"})
	if _, err := s.Load(doc, LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	name := doc.Windows[0].Name()
	if !strings.HasPrefix(name, "/tmp/session.yml:window[0]:") {
		t.Errorf("generated name = %q", name)
	}
}

func TestLoadIndexFilterWins(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	launches := 0
	s.launch = func(spec LaunchSpec) error {
		launches++
		backend.addWindow(xproto.Window(40+launches), "xterm")
		return nil
	}

	doc := testDocument(
		config.Entry{"command": "xterm", "name": "first"},
		config.Entry{"command": "xterm", "name": "second"},
	)
	// The name pattern matches entry 1, but the index filter selects
	// only entry 0 and takes precedence.
	options := LoadOptions{
		Indices: []int{0},
		Names:   []*regexp.Regexp{regexp.MustCompile("second")},
	}
	result, err := s.Load(doc, options)
	if err != nil {
		t.Fatal(err)
	}
	if result.Processed != 1 {
		t.Fatalf("processed = %d, want 1", result.Processed)
	}
	if doc.Windows[0].ID() == 0 || doc.Windows[1].ID() != 0 {
		t.Error("index filter selected the wrong entry")
	}
}

func TestLoadNameFilter(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	injectOnLaunch(s, backend, []xproto.Window{42}, "xterm")

	doc := testDocument(
		config.Entry{"command": "xterm", "name": "first"},
		config.Entry{"command": "xterm", "name": "second"},
	)
	options := LoadOptions{Names: []*regexp.Regexp{regexp.MustCompile("^second$")}}
	result, err := s.Load(doc, options)
	if err != nil {
		t.Fatal(err)
	}
	if result.Processed != 1 {
		t.Fatalf("processed = %d, want 1", result.Processed)
	}
	if doc.Windows[1].ID() != 42 {
		t.Error("name filter selected the wrong entry")
	}
}

func TestLoadFocusConflict(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	launches := 0
	s.launch = func(spec LaunchSpec) error {
		launches++
		backend.addWindow(xproto.Window(40+launches), "xterm")
		return nil
	}

	doc := testDocument(
		config.Entry{"command": "xterm", "name": "a", "focus": true},
		config.Entry{"command": "xterm", "name": "b", "focus": true},
	)
	if _, err := s.Load(doc, LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	if len(backend.activated) != 0 {
		t.Errorf("activated %v; conflicting focus requests must activate nothing", backend.activated)
	}
}

func TestLoadFocusConflictSurvivesFailedEntry(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	launches := 0
	s.launch = func(spec LaunchSpec) error {
		launches++
		// The first command never maps a window.
		if launches > 1 {
			backend.addWindow(42, "xterm")
		}
		return nil
	}

	doc := testDocument(
		config.Entry{"command": "xterm", "name": "a", "focus": true},
		config.Entry{"command": "xterm", "name": "b", "focus": true},
	)
	result, err := s.Load(doc, LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Failures != 1 {
		t.Errorf("failures = %d, want 1", result.Failures)
	}
	if len(backend.activated) != 0 {
		t.Errorf("activated %v; a failed entry still counts toward the focus conflict", backend.activated)
	}
}

func TestLoadFocusConflictIncludesSkippedEntries(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	injectOnLaunch(s, backend, []xproto.Window{42}, "xterm")

	doc := testDocument(
		config.Entry{"command": "xterm", "name": "a", "focus": true, "disabled": true},
		config.Entry{"command": "xterm", "name": "b", "focus": true},
	)
	if _, err := s.Load(doc, LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	if len(backend.activated) != 0 {
		t.Errorf("activated %v; a disabled entry still counts toward the focus conflict", backend.activated)
	}
}

func TestLoadFocusUnresolvedActivatesNothing(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	s.launch = func(spec LaunchSpec) error { return nil }

	doc := testDocument(config.Entry{"command": "xterm", "name": "a", "focus": true})
	result, err := s.Load(doc, LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Failures != 1 {
		t.Errorf("failures = %d, want 1", result.Failures)
	}
	if len(backend.activated) != 0 {
		t.Errorf("activated %v; focus needs a resolved window id", backend.activated)
	}
}

func TestLoadCountsDiscoveryFailures(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	// The command "succeeds" but never paints a window.
	s.launch = func(spec LaunchSpec) error { return nil }

	doc := testDocument(config.Entry{"command": "xterm"})
	result, err := s.Load(doc, LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Failures != 1 {
		t.Errorf("failures = %d, want 1", result.Failures)
	}
}

func TestLoadValidationAborts(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	s.launch = func(spec LaunchSpec) error {
		t.Error("invalid document triggered a launch")
		return nil
	}

	doc := testDocument(
		config.Entry{"command": "xterm"},
		config.Entry{"name": "no command"},
	)
	if _, err := s.Load(doc, LoadOptions{}); err == nil {
		t.Error("Load accepted an invalid document")
	}
}

func TestLoadShellCommand(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	var gotArgv []string
	s.launch = func(spec LaunchSpec) error {
		gotArgv = spec.Argv
		backend.addWindow(42, "xterm")
		return nil
	}

	doc := testDocument(config.Entry{"command": "xterm | tee log", "shell": true})
	if _, err := s.Load(doc, LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	if len(gotArgv) != 3 || gotArgv[0] != "/bin/sh" || gotArgv[1] != "-c" {
		t.Errorf("argv = %v, want /bin/sh -c wrapper", gotArgv)
	}
}

func TestLoadStartDirectoryDefault(t *testing.T) {
	backend := newFakeBackend()
	s := newTestSession(backend)
	var gotDir string
	s.launch = func(spec LaunchSpec) error {
		gotDir = spec.Dir
		backend.addWindow(42, "xterm")
		return nil
	}

	doc := testDocument(config.Entry{"command": "xterm"})
	if _, err := s.Load(doc, LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	if gotDir != "/" {
		t.Errorf("start directory = %q, want %q", gotDir, "/")
	}
}
