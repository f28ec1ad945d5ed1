package session

import (
	"testing"

	"github.com/crashvb/xsessionp/internal/config"
)

func TestPositionWindowRequiresResolvedID(t *testing.T) {
	s := newTestSession(newFakeBackend())
	if err := s.PositionWindow(config.Entry{"name": "term"}); err == nil {
		t.Error("PositionWindow accepted an entry without a resolved id")
	}
}

func TestPositionWindowTile(t *testing.T) {
	backend := newFakeBackend()
	backend.addWindow(42, "xterm")
	s := newTestSession(backend)

	entry := config.Entry{"name": "term", "tile": "left"}
	entry.SetID(42)
	if err := s.PositionWindow(entry); err != nil {
		t.Fatal(err)
	}

	if backend.x[42] != 0 || backend.y[42] != 0 {
		t.Errorf("position = %d,%d, want 0,0", backend.x[42], backend.y[42])
	}
	if backend.w[42] != 960 || backend.h[42] != 1080 {
		t.Errorf("geometry = %dx%d, want left half 960x1080", backend.w[42], backend.h[42])
	}
	if len(backend.states[42]) != 1 || backend.states[42][0] != "_NET_WM_STATE_MAXIMIZED_VERT" {
		t.Errorf("states = %v, want vertical maximize hint", backend.states[42])
	}
}

func TestPositionWindowSnapped(t *testing.T) {
	backend := newFakeBackend()
	backend.addWindow(42, "xterm")
	s := newTestSession(backend)

	entry := config.Entry{"name": "term", "tile": "left", "snapped": true}
	entry.SetID(42)
	if err := s.PositionWindow(entry); err != nil {
		t.Fatal(err)
	}

	if backend.w[42] != 960 || backend.h[42] != 1080 {
		t.Errorf("geometry = %dx%d, want left half 960x1080", backend.w[42], backend.h[42])
	}
	if len(backend.states[42]) != 0 {
		t.Errorf("states = %v, want none for a snap", backend.states[42])
	}
}

func TestPositionWindowUnsupportedWindowManager(t *testing.T) {
	backend := newFakeBackend()
	backend.addWindow(42, "xterm")
	backend.wmName = "dwm"
	s := newTestSession(backend)

	entry := config.Entry{"name": "term", "tile": "left"}
	entry.SetID(42)
	if err := s.PositionWindow(entry); err == nil {
		t.Error("PositionWindow tiled under an unsupported window manager")
	}
}

func TestPositionWindowInvalidTileMode(t *testing.T) {
	backend := newFakeBackend()
	backend.addWindow(42, "xterm")
	s := newTestSession(backend)

	entry := config.Entry{"name": "term", "tile": "sideways"}
	entry.SetID(42)
	if err := s.PositionWindow(entry); err == nil {
		t.Error("PositionWindow accepted an invalid tile position")
	}
}
