// Package tiling maps symbolic tile positions onto window manager
// specific move/resize and state operations.
package tiling

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// ErrUnsupportedWindowManager is returned by Select when no registered
// tiler recognizes the running window manager.
var ErrUnsupportedWindowManager = errors.New("unsupported window manager")

// Mode names a tile position on the work area.
type Mode string

const (
	ModeNone     Mode = "none"
	ModeLeft     Mode = "left"
	ModeRight    Mode = "right"
	ModeTop      Mode = "top"
	ModeBottom   Mode = "bottom"
	ModeULC      Mode = "ulc"
	ModeURC      Mode = "urc"
	ModeLLC      Mode = "llc"
	ModeLRC      Mode = "lrc"
	ModeMaximize Mode = "maximize"
)

// Type distinguishes a hard tile, which the window manager treats as
// maximized along the tiled axes, from a snap, which is a plain
// move/resize the user can freely adjust afterwards.
type Type string

const (
	TypeTiled   Type = "tiled"
	TypeSnapped Type = "snapped"
)

// ParseMode normalizes a user-supplied tile position.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeNone:
		return ModeNone, nil
	case ModeLeft:
		return ModeLeft, nil
	case ModeRight:
		return ModeRight, nil
	case ModeTop:
		return ModeTop, nil
	case ModeBottom:
		return ModeBottom, nil
	case ModeULC:
		return ModeULC, nil
	case ModeURC:
		return ModeURC, nil
	case ModeLLC:
		return ModeLLC, nil
	case ModeLRC:
		return ModeLRC, nil
	case ModeMaximize:
		return ModeMaximize, nil
	}
	return "", fmt.Errorf("invalid tile position: %q", value)
}

// Backend is the slice of X operations a tiler needs.
type Backend interface {
	Workarea() (x, y, width, height int, err error)
	MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error
	WindowStates(windowID xproto.Window) ([]string, error)
	AddWindowState(windowID xproto.Window, state string) error
	RemoveWindowState(windowID xproto.Window, state string) error
}

// Tiler implements tiling for a family of window managers.
type Tiler interface {
	// Name identifies the tiler in logs.
	Name() string
	// Matches reports whether this tiler drives the named window
	// manager.
	Matches(wmName string) bool
	Tile(backend Backend, windowID xproto.Window, mode Mode, tileType Type) error
}

var tilers = []Tiler{
	&muffinTiler{},
}

// Select resolves the tiler for a window manager name, as reported by
// the EWMH supporting-wm check.
func Select(wmName string) (Tiler, error) {
	for _, tiler := range tilers {
		if tiler.Matches(wmName) {
			return tiler, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedWindowManager, wmName)
}

// Rect is a work area zone in root coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// tileRect computes the zone a mode occupies within the work area.
// Halves split along one axis, corners along both; odd dimensions
// leave the spare pixel to the right/bottom zone.
func tileRect(workarea Rect, mode Mode) Rect {
	halfW := workarea.Width / 2
	halfH := workarea.Height / 2
	midX := workarea.X + halfW
	midY := workarea.Y + halfH
	restW := workarea.Width - halfW
	restH := workarea.Height - halfH

	switch mode {
	case ModeLeft:
		return Rect{workarea.X, workarea.Y, halfW, workarea.Height}
	case ModeRight:
		return Rect{midX, workarea.Y, restW, workarea.Height}
	case ModeTop:
		return Rect{workarea.X, workarea.Y, workarea.Width, halfH}
	case ModeBottom:
		return Rect{workarea.X, midY, workarea.Width, restH}
	case ModeULC:
		return Rect{workarea.X, workarea.Y, halfW, halfH}
	case ModeURC:
		return Rect{midX, workarea.Y, restW, halfH}
	case ModeLLC:
		return Rect{workarea.X, midY, halfW, restH}
	case ModeLRC:
		return Rect{midX, midY, restW, restH}
	default:
		return workarea
	}
}
