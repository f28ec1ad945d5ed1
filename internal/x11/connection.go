package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Connection manages the X11 connection and core X resources.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection establishes a connection to the X11 server.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Sync forces a round-trip with the X server, ensuring all queued
// requests have been processed before the next window enumeration.
func (c *Connection) Sync() {
	c.XUtil.Sync()
}

// Close cleanly disconnects from the X11 server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// WindowManagerName returns the running window manager's self-reported
// name, read from the _NET_SUPPORTING_WM_CHECK identity window.
func (c *Connection) WindowManagerName() (string, error) {
	name, err := ewmh.GetEwmhWM(c.XUtil)
	if err != nil {
		return "", fmt.Errorf("failed to identify window manager: %w", err)
	}
	return name, nil
}
