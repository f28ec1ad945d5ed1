package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a parsed workspace document: a set of inheritable global
// settings plus an ordered list of window entries.
type Document struct {
	Path    string
	Globals map[string]any
	Windows []Entry
}

// Parse reads and decodes a workspace document. Both YAML and JSON
// payloads are accepted; JSON parses as a YAML subset.
func Parse(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: document is empty", path)
	}

	rawWindows, ok := raw["windows"]
	if !ok {
		return nil, fmt.Errorf("%s: document has no windows list", path)
	}
	list, ok := rawWindows.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: windows must be a list", path)
	}

	doc := &Document{
		Path:    path,
		Globals: make(map[string]any, len(raw)),
	}
	for key, value := range raw {
		if key == "windows" {
			continue
		}
		doc.Globals[key] = value
	}
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s: windows[%d] must be a mapping", path, i)
		}
		doc.Windows = append(doc.Windows, Entry(m))
	}

	return doc, nil
}

// Sanitize strips invalid global keys and warns about reserved fields.
// Warnings never fail the load; only structural problems do.
func (d *Document) Sanitize() {
	for _, invalid := range []string{"focus", "name"} {
		if _, ok := d.Globals[invalid]; ok {
			log.Printf("config: warning: global attribute %q is invalid; removing", invalid)
			delete(d.Globals, invalid)
		}
	}

	// `id` is backend-assigned only; user data is left in place but the
	// resolved id always overwrites it.
	for _, window := range d.Windows {
		if _, ok := window["id"]; ok {
			log.Printf("config: warning: reserved attribute %q defined by user; ignoring", "id")
			break
		}
	}
}
