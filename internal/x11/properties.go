package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xprop"
)

// MetadataProperty is the window property under which the merged window
// configuration is persisted as canonical JSON.
const MetadataProperty = "_XSESSIONP_METADATA"

// EnsureMetadataAtom interns the metadata atom, creating it on first use.
// Idempotent; safe to call before every write.
func (c *Connection) EnsureMetadataAtom() error {
	if _, err := xprop.Atom(c.XUtil, MetadataProperty, false); err != nil {
		return fmt.Errorf("failed to intern %s: %w", MetadataProperty, err)
	}
	return nil
}

// SetWindowMetadata writes the metadata property on a window.
func (c *Connection) SetWindowMetadata(windowID xproto.Window, data string) error {
	err := xprop.ChangeProp(c.XUtil, windowID, 8, MetadataProperty, "STRING", []byte(data))
	if err != nil {
		return fmt.Errorf("failed to set metadata on window %d: %w", windowID, err)
	}
	return nil
}

// WindowMetadata reads the metadata property from a window. The second
// return value is false when the property is absent or the window cannot
// be read; no schema validation is performed on the payload.
func (c *Connection) WindowMetadata(windowID xproto.Window) (string, bool) {
	data, err := xprop.PropValStr(xprop.GetProperty(c.XUtil, windowID, MetadataProperty))
	if err != nil || data == "" {
		return "", false
	}
	return data, true
}
