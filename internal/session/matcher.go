package session

import (
	"fmt"
	"log"
	"regexp"

	"github.com/BurntSushi/xgb/xproto"
)

// DefaultTitleHint matches any window with a non-empty displayed name.
const DefaultTitleHint = `^.+$`

type guess struct {
	id   xproto.Window
	name string
}

// GuessWindow resolves a launch's candidate set to at most one window.
//
// A single candidate is normally not the window the window manager
// decorates: with sane traversal enabled, the nearest ancestor exposing
// WM_STATE is preferred, then the nearest such descendant, then the
// candidate itself. Multiple candidates are filtered by titleHint; an
// ambiguous result is tie-broken by the numerically largest window id.
// The greater id is only a heuristic proxy for "created later", not a
// guaranteed ordering; it is a documented best effort.
//
// The boolean result is false when no window could be resolved.
func (s *Session) GuessWindow(candidates []xproto.Window, titleHint string, sane bool) (xproto.Window, bool) {
	s.trace("guessing against %d window(s) using title_hint: %s", len(candidates), titleHint)
	if len(candidates) == 0 {
		return 0, false
	}

	if len(candidates) == 1 {
		win := candidates[0]
		if sane {
			if match, ok := s.nearestAncestorWithState(win); ok {
				return match, true
			}
			if match, ok := s.nearestDescendantWithState(win); ok {
				return match, true
			}
		}
		return win, true
	}

	pattern, err := compileHint(titleHint)
	if err != nil {
		log.Printf("session: error: invalid title_hint %q: %v", titleHint, err)
		return 0, false
	}

	var guesses []guess
	for _, win := range candidates {
		name, err := s.backend.WindowName(win)
		if err != nil {
			// Window disappeared or has no readable name; skip it.
			continue
		}
		if pattern.MatchString(name) {
			guesses = append(guesses, guess{id: win, name: name})
		}
	}

	if len(guesses) == 0 {
		log.Printf("session: warning: no matching titles; try relaxing 'title_hint'")
		return 0, false
	}
	if len(guesses) == 1 {
		s.trace("found matching title: %s", guesses[0].name)
		return guesses[0].id, true
	}

	log.Printf("session: warning: too many matching titles: %d; try constraining 'title_hint'", len(guesses))
	best := guesses[0]
	for _, g := range guesses[1:] {
		if g.id > best.id {
			best = g
		}
	}
	return best.id, true
}

// nearestAncestorWithState walks up the window tree looking for the
// closest ancestor carrying WM_STATE. Windows disappearing mid-walk end
// the walk without error.
func (s *Session) nearestAncestorWithState(windowID xproto.Window) (xproto.Window, bool) {
	current := windowID
	for {
		parent, err := s.backend.Parent(current)
		if err != nil || parent == 0 {
			return 0, false
		}
		if s.backend.HasWindowState(parent) {
			return parent, true
		}
		current = parent
	}
}

// nearestDescendantWithState searches breadth-first below a window for
// the closest descendant carrying WM_STATE.
func (s *Session) nearestDescendantWithState(windowID xproto.Window) (xproto.Window, bool) {
	queue, err := s.backend.Children(windowID)
	if err != nil {
		return 0, false
	}
	for len(queue) > 0 {
		win := queue[0]
		queue = queue[1:]
		if s.backend.HasWindowState(win) {
			return win, true
		}
		children, err := s.backend.Children(win)
		if err != nil {
			continue
		}
		queue = append(queue, children...)
	}
	return 0, false
}

// compileHint anchors the hint at the start of the name, mirroring the
// prefix-match semantics the hint format was defined with; hints supply
// their own trailing anchor when a full match is wanted.
func compileHint(titleHint string) (*regexp.Regexp, error) {
	return regexp.Compile(fmt.Sprintf(`^(?:%s)`, titleHint))
}
