package tiling

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

const (
	stateMaximizedVert = "_NET_WM_STATE_MAXIMIZED_VERT"
	stateMaximizedHorz = "_NET_WM_STATE_MAXIMIZED_HORZ"
)

// muffinTiler drives muffin, the Cinnamon window manager. The move
// happens via plain EWMH requests; for hard tiles the maximized hints
// along the fully-covered axes are restored afterwards so muffin keeps
// the window pinned to its zone.
type muffinTiler struct{}

func (t *muffinTiler) Name() string { return "muffin" }

func (t *muffinTiler) Matches(wmName string) bool {
	return strings.Contains(strings.ToLower(wmName), "muffin") ||
		strings.Contains(strings.ToLower(wmName), "mutter")
}

func (t *muffinTiler) Tile(backend Backend, windowID xproto.Window, mode Mode, tileType Type) error {
	// Maximized hints pin the window; clear them before moving so the
	// window manager honors the new geometry.
	for _, state := range []string{stateMaximizedVert, stateMaximizedHorz} {
		if err := backend.RemoveWindowState(windowID, state); err != nil {
			return fmt.Errorf("failed to clear state %s: %w", state, err)
		}
	}
	if mode == ModeNone {
		return nil
	}

	x, y, width, height, err := backend.Workarea()
	if err != nil {
		return fmt.Errorf("failed to determine workarea: %w", err)
	}
	zone := tileRect(Rect{X: x, Y: y, Width: width, Height: height}, mode)
	if err := backend.MoveResizeWindow(windowID, zone.X, zone.Y, zone.Width, zone.Height); err != nil {
		return err
	}

	if tileType != TypeTiled {
		return nil
	}
	for _, state := range maximizedStates(mode) {
		if err := backend.AddWindowState(windowID, state); err != nil {
			return fmt.Errorf("failed to add state %s: %w", state, err)
		}
	}
	return nil
}

// maximizedStates lists the maximize hints a hard tile keeps: the axes
// the zone fully covers. Corner zones cover neither axis.
func maximizedStates(mode Mode) []string {
	switch mode {
	case ModeLeft, ModeRight:
		return []string{stateMaximizedVert}
	case ModeTop, ModeBottom:
		return []string{stateMaximizedHorz}
	case ModeMaximize:
		return []string{stateMaximizedVert, stateMaximizedHorz}
	}
	return nil
}
