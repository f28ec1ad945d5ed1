package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// ListWindows enumerates every window on the display by walking the full
// window tree from the root. Unlike the EWMH client list this includes
// unmapped and undecorated windows, which is what window-set diffing needs:
// a freshly spawned client may not be in _NET_CLIENT_LIST yet.
func (c *Connection) ListWindows() ([]xproto.Window, error) {
	var out []xproto.Window
	queue := []xproto.Window{c.Root}
	for len(queue) > 0 {
		win := queue[0]
		queue = queue[1:]
		out = append(out, win)

		tree, err := xproto.QueryTree(c.XUtil.Conn(), win).Reply()
		if err != nil {
			// Window vanished mid-walk; skip its subtree.
			continue
		}
		queue = append(queue, tree.Children...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("failed to enumerate windows")
	}
	return out, nil
}

// WindowName returns the displayed name of a window, preferring
// _NET_WM_NAME and falling back to the ICCCM WM_NAME property.
func (c *Connection) WindowName(windowID xproto.Window) (string, error) {
	if name, err := ewmh.WmNameGet(c.XUtil, windowID); err == nil && name != "" {
		return name, nil
	}
	name, err := icccm.WmNameGet(c.XUtil, windowID)
	if err != nil {
		return "", fmt.Errorf("failed to get window name: %w", err)
	}
	return name, nil
}

// WindowPID returns the process ID advertised by a window via _NET_WM_PID.
func (c *Connection) WindowPID(windowID xproto.Window) (int, error) {
	pid, err := ewmh.WmPidGet(c.XUtil, windowID)
	if err != nil {
		return 0, fmt.Errorf("failed to get window pid: %w", err)
	}
	return int(pid), nil
}

// HasWindowState reports whether a window carries the ICCCM WM_STATE
// property. Frame/decorated windows do; raw client surfaces often do not.
// Errors (including the window disappearing) read as "no state".
func (c *Connection) HasWindowState(windowID xproto.Window) bool {
	_, err := icccm.WmStateGet(c.XUtil, windowID)
	return err == nil
}

// Parent returns the parent of a window, or 0 for the root window.
func (c *Connection) Parent(windowID xproto.Window) (xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to query window parent: %w", err)
	}
	if windowID == tree.Root {
		return 0, nil
	}
	return tree.Parent, nil
}

// Children returns the direct children of a window.
func (c *Connection) Children(windowID xproto.Window) ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query window children: %w", err)
	}
	return tree.Children, nil
}

// CurrentDesktop returns the current virtual desktop number (0-indexed).
func (c *Connection) CurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// WindowDesktop returns the desktop a window is on. Returns -1 for
// "sticky" windows (visible on all desktops).
func (c *Connection) WindowDesktop(windowID xproto.Window) (int, error) {
	desktop, err := ewmh.WmDesktopGet(c.XUtil, windowID)
	if err != nil {
		return 0, fmt.Errorf("failed to get window desktop: %w", err)
	}
	if desktop == 0xFFFFFFFF {
		return -1, nil
	}
	return int(desktop), nil
}

// SetWindowDesktop moves a window to the specified virtual desktop.
// Sends a _NET_WM_DESKTOP client message to the root window per EWMH spec.
// The message is built manually because the xgbutil ewmh.WmDesktopReq
// helper panics on this library version (uint vs int type assertion).
func (c *Connection) SetWindowDesktop(windowID xproto.Window, desktop int) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_WM_DESKTOP")), "_NET_WM_DESKTOP").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_WM_DESKTOP: %w", err)
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(desktop), sourceIndication, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// ActivateWindow activates and raises a window using _NET_ACTIVE_WINDOW.
// Built manually for the same reason as SetWindowDesktop.
func (c *Connection) ActivateWindow(windowID xproto.Window) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_ACTIVE_WINDOW")), "_NET_ACTIVE_WINDOW").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_ACTIVE_WINDOW: %w", err)
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndication, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// ActiveWindow returns the currently focused window.
func (c *Connection) ActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// CloseWindow asks the window manager to close a window via _NET_CLOSE_WINDOW.
func (c *Connection) CloseWindow(windowID xproto.Window) error {
	if err := ewmh.CloseWindow(c.XUtil, windowID); err != nil {
		return fmt.Errorf("failed to close window %d: %w", windowID, err)
	}
	return nil
}

// WindowDimensions returns the width and height of a window.
func (c *Connection) WindowDimensions(windowID xproto.Window) (width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get window geometry: %w", err)
	}
	return int(geom.Width), int(geom.Height), nil
}

// WindowPosition returns the position of a window in root coordinates.
func (c *Connection) WindowPosition(windowID xproto.Window) (x, y int, err error) {
	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to translate window coordinates: %w", err)
	}
	return int(translate.DstX), int(translate.DstY), nil
}

// SetWindowDimensions resizes a window without moving it.
func (c *Connection) SetWindowDimensions(windowID xproto.Window, width, height int) error {
	win := xwindow.New(c.XUtil, windowID)
	win.Resize(width, height)
	return nil
}

// SetWindowPosition moves a window without resizing it.
func (c *Connection) SetWindowPosition(windowID xproto.Window, x, y int) error {
	win := xwindow.New(c.XUtil, windowID)
	win.Move(x, y)
	return nil
}

// MoveResizeWindow moves and resizes a window to the specified geometry.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	err := ewmh.MoveresizeWindow(
		c.XUtil,
		windowID,
		x, y, width, height,
	)
	if err != nil {
		// Fallback to direct window manipulation.
		win := xwindow.New(c.XUtil, windowID)
		win.MoveResize(x, y, width, height)
	}
	return nil
}

// IsWindowViewable reports whether a window's map-state is viewable.
// Errors read as "not viewable"; callers poll with a bounded timeout.
func (c *Connection) IsWindowViewable(windowID xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return false
	}
	return attrs.MapState == xproto.MapStateViewable
}

// WindowStates returns the _NET_WM_STATE atoms set on a window.
func (c *Connection) WindowStates(windowID xproto.Window) ([]string, error) {
	return ewmh.WmStateGet(c.XUtil, windowID)
}

// AddWindowState requests the window manager add a _NET_WM_STATE atom.
func (c *Connection) AddWindowState(windowID xproto.Window, state string) error {
	return ewmh.WmStateReq(c.XUtil, windowID, 1, state)
}

// RemoveWindowState requests the window manager remove a _NET_WM_STATE atom.
func (c *Connection) RemoveWindowState(windowID xproto.Window, state string) error {
	return ewmh.WmStateReq(c.XUtil, windowID, 0, state)
}

// Workarea returns the usable desktop area (excluding panels and docks)
// for the current desktop, falling back to the root geometry when the
// window manager does not publish _NET_WORKAREA.
func (c *Connection) Workarea() (x, y, width, height int, err error) {
	workArea, waErr := ewmh.WorkareaGet(c.XUtil)
	if waErr == nil && len(workArea) > 0 {
		idx := 0
		if desktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(desktop) < len(workArea) {
			idx = int(desktop)
		}
		wa := workArea[idx]
		return int(wa.X), int(wa.Y), int(wa.Width), int(wa.Height), nil
	}

	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return 0, 0, int(geom.Width), int(geom.Height), nil
}
