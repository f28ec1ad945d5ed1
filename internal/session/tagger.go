package session

import (
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/crashvb/xsessionp/internal/config"
)

// TagWindow persists the fully merged entry (including its resolved id)
// onto the window as canonical JSON. Map keys are emitted in sorted order
// so the payload is byte-for-byte stable for a given entry. The metadata
// atom is interned on first use.
func (s *Session) TagWindow(windowID xproto.Window, entry config.Entry) error {
	if err := s.backend.EnsureMetadataAtom(); err != nil {
		return err
	}
	data, err := json.Marshal(map[string]any(entry))
	if err != nil {
		return fmt.Errorf("failed to encode window metadata: %w", err)
	}
	s.trace("assigning metadata to window %d", windowID)
	return s.backend.SetWindowMetadata(windowID, string(data))
}

// DecodeMetadata parses a raw metadata payload back into an entry.
// Payloads written by other versions may be shaped differently; callers
// treat a decode failure as "no metadata".
func DecodeMetadata(raw string) (config.Entry, error) {
	var entry map[string]any
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, fmt.Errorf("failed to decode window metadata: %w", err)
	}
	return config.Entry(entry), nil
}
