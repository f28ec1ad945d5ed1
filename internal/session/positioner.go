package session

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/crashvb/xsessionp/internal/config"
	"github.com/crashvb/xsessionp/internal/tiling"
)

// PositionWindow applies desktop assignment, geometry, position, and
// tiling to a resolved window, in that order. Only fields that are
// enabled (present without a negation sibling) are applied; each is
// independent of the others.
func (s *Session) PositionWindow(entry config.Entry) error {
	windowID := xproto.Window(entry.ID())
	if windowID == 0 {
		return fmt.Errorf("window %q has no resolved id", entry.Name())
	}

	if entry.Enabled("desktop") {
		desktop := entry.Int("desktop", 0)
		if err := s.backend.SetWindowDesktop(windowID, desktop); err != nil {
			return fmt.Errorf("failed to set desktop for window %q: %w", entry.Name(), err)
		}
	}

	if entry.Enabled("geometry") {
		width, height, err := config.ParseDimensions(entry.String("geometry", ""))
		if err != nil {
			return fmt.Errorf("window %q: %w", entry.Name(), err)
		}
		if err := s.backend.SetWindowDimensions(windowID, width, height); err != nil {
			return fmt.Errorf("failed to resize window %q: %w", entry.Name(), err)
		}
	}

	if entry.Enabled("position") {
		x, y, err := config.ParseDimensions(entry.String("position", ""))
		if err != nil {
			return fmt.Errorf("window %q: %w", entry.Name(), err)
		}
		if err := s.backend.SetWindowPosition(windowID, x, y); err != nil {
			return fmt.Errorf("failed to move window %q: %w", entry.Name(), err)
		}
	}

	if entry.Enabled("tile") {
		if err := s.tileWindow(windowID, entry); err != nil {
			return err
		}
	}

	return nil
}

// tileWindow delegates tiling to the backend registered for the live
// window manager. There is no generic fallback: an unmatched window
// manager surfaces tiling.ErrUnsupportedWindowManager.
func (s *Session) tileWindow(windowID xproto.Window, entry config.Entry) error {
	mode, err := tiling.ParseMode(entry.String("tile", ""))
	if err != nil {
		return fmt.Errorf("window %q: %w", entry.Name(), err)
	}

	tileType := tiling.TypeTiled
	if entry.Enabled("snapped") && entry.Bool("snapped") {
		tileType = tiling.TypeSnapped
	}

	wmName, err := s.backend.WindowManagerName()
	if err != nil {
		return fmt.Errorf("window %q: %w", entry.Name(), err)
	}
	tiler, err := tiling.Select(wmName)
	if err != nil {
		return fmt.Errorf("window %q: %w", entry.Name(), err)
	}

	s.trace("tiling [%s] window %d to: %s [%s]", tiler.Name(), windowID, mode, tileType)
	if err := tiler.Tile(s.backend, windowID, mode, tileType); err != nil {
		return fmt.Errorf("failed to tile window %q: %w", entry.Name(), err)
	}
	return nil
}
