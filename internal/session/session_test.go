package session

import (
	"fmt"
	"sort"
	"time"

	"github.com/BurntSushi/xgb/xproto"
)

// fakeBackend is an in-memory Backend for tests. Windows exist in the
// order they are added; reads on unknown windows fail the way a real
// server does for destroyed windows.
type fakeBackend struct {
	windows  []xproto.Window
	names    map[xproto.Window]string
	pids     map[xproto.Window]int
	parents  map[xproto.Window]xproto.Window
	children map[xproto.Window][]xproto.Window
	wmState  map[xproto.Window]bool
	desktops map[xproto.Window]int
	x, y     map[xproto.Window]int
	w, h     map[xproto.Window]int
	viewable map[xproto.Window]bool
	states   map[xproto.Window][]string
	metadata map[xproto.Window]string

	onSync    func()
	current   int
	active    xproto.Window
	activated []xproto.Window
	closed    []xproto.Window
	wmName    string

	workareaX, workareaY          int
	workareaWidth, workareaHeight int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		names:          make(map[xproto.Window]string),
		pids:           make(map[xproto.Window]int),
		parents:        make(map[xproto.Window]xproto.Window),
		children:       make(map[xproto.Window][]xproto.Window),
		wmState:        make(map[xproto.Window]bool),
		desktops:       make(map[xproto.Window]int),
		x:              make(map[xproto.Window]int),
		y:              make(map[xproto.Window]int),
		w:              make(map[xproto.Window]int),
		h:              make(map[xproto.Window]int),
		viewable:       make(map[xproto.Window]bool),
		states:         make(map[xproto.Window][]string),
		metadata:       make(map[xproto.Window]string),
		wmName:         "Muffin",
		workareaWidth:  1920,
		workareaHeight: 1080,
	}
}

func (f *fakeBackend) addWindow(id xproto.Window, name string) {
	f.windows = append(f.windows, id)
	f.names[id] = name
	f.viewable[id] = true
}

func (f *fakeBackend) has(id xproto.Window) bool {
	for _, win := range f.windows {
		if win == id {
			return true
		}
	}
	return false
}

func (f *fakeBackend) Sync() {
	if f.onSync != nil {
		f.onSync()
	}
}

func (f *fakeBackend) ListWindows() ([]xproto.Window, error) {
	out := make([]xproto.Window, len(f.windows))
	copy(out, f.windows)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (f *fakeBackend) WindowName(id xproto.Window) (string, error) {
	name, ok := f.names[id]
	if !ok {
		return "", fmt.Errorf("no such window %d", id)
	}
	return name, nil
}

func (f *fakeBackend) WindowPID(id xproto.Window) (int, error) {
	pid, ok := f.pids[id]
	if !ok {
		return 0, fmt.Errorf("no pid for window %d", id)
	}
	return pid, nil
}

func (f *fakeBackend) HasWindowState(id xproto.Window) bool { return f.wmState[id] }

func (f *fakeBackend) Parent(id xproto.Window) (xproto.Window, error) {
	return f.parents[id], nil
}

func (f *fakeBackend) Children(id xproto.Window) ([]xproto.Window, error) {
	return f.children[id], nil
}

func (f *fakeBackend) CurrentDesktop() (int, error) { return f.current, nil }

func (f *fakeBackend) WindowDesktop(id xproto.Window) (int, error) {
	if !f.has(id) {
		return 0, fmt.Errorf("no such window %d", id)
	}
	return f.desktops[id], nil
}

func (f *fakeBackend) SetWindowDesktop(id xproto.Window, desktop int) error {
	if !f.has(id) {
		return fmt.Errorf("no such window %d", id)
	}
	f.desktops[id] = desktop
	return nil
}

func (f *fakeBackend) WindowDimensions(id xproto.Window) (int, int, error) {
	return f.w[id], f.h[id], nil
}

func (f *fakeBackend) WindowPosition(id xproto.Window) (int, int, error) {
	return f.x[id], f.y[id], nil
}

func (f *fakeBackend) SetWindowDimensions(id xproto.Window, width, height int) error {
	if !f.has(id) {
		return fmt.Errorf("no such window %d", id)
	}
	f.w[id], f.h[id] = width, height
	return nil
}

func (f *fakeBackend) SetWindowPosition(id xproto.Window, x, y int) error {
	if !f.has(id) {
		return fmt.Errorf("no such window %d", id)
	}
	f.x[id], f.y[id] = x, y
	return nil
}

func (f *fakeBackend) MoveResizeWindow(id xproto.Window, x, y, width, height int) error {
	if !f.has(id) {
		return fmt.Errorf("no such window %d", id)
	}
	f.x[id], f.y[id], f.w[id], f.h[id] = x, y, width, height
	return nil
}

func (f *fakeBackend) IsWindowViewable(id xproto.Window) bool { return f.viewable[id] }

func (f *fakeBackend) ActiveWindow() (xproto.Window, error) { return f.active, nil }

func (f *fakeBackend) ActivateWindow(id xproto.Window) error {
	f.active = id
	f.activated = append(f.activated, id)
	return nil
}

func (f *fakeBackend) CloseWindow(id xproto.Window) error {
	f.closed = append(f.closed, id)
	return nil
}

func (f *fakeBackend) WindowManagerName() (string, error) { return f.wmName, nil }

func (f *fakeBackend) EnsureMetadataAtom() error { return nil }

func (f *fakeBackend) SetWindowMetadata(id xproto.Window, data string) error {
	if !f.has(id) {
		return fmt.Errorf("no such window %d", id)
	}
	f.metadata[id] = data
	return nil
}

func (f *fakeBackend) WindowMetadata(id xproto.Window) (string, bool) {
	data, ok := f.metadata[id]
	return data, ok
}

func (f *fakeBackend) Workarea() (int, int, int, int, error) {
	return f.workareaX, f.workareaY, f.workareaWidth, f.workareaHeight, nil
}

func (f *fakeBackend) WindowStates(id xproto.Window) ([]string, error) {
	return f.states[id], nil
}

func (f *fakeBackend) AddWindowState(id xproto.Window, state string) error {
	for _, existing := range f.states[id] {
		if existing == state {
			return nil
		}
	}
	f.states[id] = append(f.states[id], state)
	return nil
}

func (f *fakeBackend) RemoveWindowState(id xproto.Window, state string) error {
	out := f.states[id][:0]
	for _, existing := range f.states[id] {
		if existing != state {
			out = append(out, existing)
		}
	}
	f.states[id] = out
	return nil
}

// newTestSession wires a session to a fake backend with delays short
// enough for tests.
func newTestSession(backend *fakeBackend) *Session {
	s := New(backend)
	s.settleDelay = 0
	s.discoveryDelay = time.Millisecond
	s.visiblePoll = time.Millisecond
	return s
}
