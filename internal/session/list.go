package session

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/crashvb/xsessionp/internal/config"
)

// TaggedWindow is a live window carrying xsessionp metadata.
type TaggedWindow struct {
	ID       xproto.Window
	Metadata config.Entry
}

// FindTaggedWindows enumerates every window that carries the metadata
// property. Windows with malformed metadata are reported with a
// warning placeholder rather than dropped, so stale tags stay visible.
func (s *Session) FindTaggedWindows() ([]TaggedWindow, error) {
	windows, err := s.backend.ListWindows()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate windows: %w", err)
	}

	var tagged []TaggedWindow
	for _, windowID := range windows {
		raw, ok := s.backend.WindowMetadata(windowID)
		if !ok {
			continue
		}
		metadata, err := DecodeMetadata(raw)
		if err != nil {
			s.trace("window %d has malformed metadata: %v", windowID, err)
			metadata = config.Entry{"name": fmt.Sprintf("<malformed metadata: %v>", err)}
		}
		tagged = append(tagged, TaggedWindow{ID: windowID, Metadata: metadata})
	}
	return tagged, nil
}

// FindTaggedWindow resolves a single tagged window by X window id.
func (s *Session) FindTaggedWindow(windowID xproto.Window) (TaggedWindow, error) {
	raw, ok := s.backend.WindowMetadata(windowID)
	if !ok {
		return TaggedWindow{}, fmt.Errorf("window %d carries no metadata", windowID)
	}
	metadata, err := DecodeMetadata(raw)
	if err != nil {
		return TaggedWindow{}, fmt.Errorf("window %d: %w", windowID, err)
	}
	return TaggedWindow{ID: windowID, Metadata: metadata}, nil
}
