package session

import (
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/crashvb/xsessionp/internal/tiling"
)

// Backend is the capability surface the orchestrator needs from the
// windowing subsystem. *x11.Connection implements it; tests substitute a
// fake. Per-window read errors on windows that disappeared mid-query must
// be returned as errors (or false), never panic, so callers can treat
// them as "no data".
type Backend interface {
	tiling.Backend

	Sync()
	ListWindows() ([]xproto.Window, error)
	WindowName(windowID xproto.Window) (string, error)
	WindowPID(windowID xproto.Window) (int, error)
	HasWindowState(windowID xproto.Window) bool
	Parent(windowID xproto.Window) (xproto.Window, error)
	Children(windowID xproto.Window) ([]xproto.Window, error)
	CurrentDesktop() (int, error)
	WindowDesktop(windowID xproto.Window) (int, error)
	SetWindowDesktop(windowID xproto.Window, desktop int) error
	WindowDimensions(windowID xproto.Window) (width, height int, err error)
	WindowPosition(windowID xproto.Window) (x, y int, err error)
	SetWindowDimensions(windowID xproto.Window, width, height int) error
	SetWindowPosition(windowID xproto.Window, x, y int) error
	IsWindowViewable(windowID xproto.Window) bool
	ActiveWindow() (xproto.Window, error)
	ActivateWindow(windowID xproto.Window) error
	CloseWindow(windowID xproto.Window) error
	WindowManagerName() (string, error)
	EnsureMetadataAtom() error
	SetWindowMetadata(windowID xproto.Window, data string) error
	WindowMetadata(windowID xproto.Window) (string, bool)
}

// Session drives the launch, discovery, tagging, and positioning of
// windows against a single backend. All operations are strictly
// sequential: the delta-based discovery in LaunchCommand needs a stable
// "before" snapshot per launch.
type Session struct {
	backend Backend
	launch  LaunchFunc
	debugf  func(format string, args ...any)

	settleDelay    time.Duration // after spawn, before the first enumeration
	discoveryDelay time.Duration // between discovery attempts
	visiblePoll    time.Duration // between visibility checks
}

// New creates a session over the given backend.
func New(backend Backend) *Session {
	return &Session{
		backend:        backend,
		launch:         launchDetached,
		settleDelay:    100 * time.Millisecond,
		discoveryDelay: time.Second,
		visiblePoll:    time.Second,
	}
}

// Backend exposes the underlying backend for read-side collaborators
// (window listing and closing).
func (s *Session) Backend() Backend {
	return s.backend
}

// SetDebug installs a debug trace sink. A nil sink disables tracing.
func (s *Session) SetDebug(debugf func(format string, args ...any)) {
	s.debugf = debugf
}

func (s *Session) trace(format string, args ...any) {
	if s.debugf != nil {
		s.debugf(format, args...)
	}
}
