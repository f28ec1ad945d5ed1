package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Entry is a single window configuration. It stays a raw map because the
// semantics depend on key presence: a key `foo` counts as enabled only if
// it is present AND its negation sibling `no_foo` is absent, independent
// of the truthiness of the stored value.
type Entry map[string]any

// Enabled reports whether a key is present and not disabled by its
// `no_<key>` sibling.
func (e Entry) Enabled(key string) bool {
	if _, ok := e[key]; !ok {
		return false
	}
	_, negated := e["no_"+key]
	return !negated
}

// Bool returns the truthiness of the value stored at key. Absent keys,
// false, zero, and empty strings all read as false.
func (e Entry) Bool(key string) bool {
	return truthy(e[key])
}

// Int returns the integer stored at key, or def when absent or not
// convertible.
func (e Entry) Int(key string, def int) int {
	switch v := e[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

// String returns the string stored at key, or def when absent.
func (e Entry) String(key, def string) string {
	if v, ok := e[key].(string); ok {
		return v
	}
	return def
}

// StringMap returns the mapping stored at key with values stringified.
func (e Entry) StringMap(key string) map[string]string {
	raw, ok := e[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		out[k] = fmt.Sprintf("%v", v)
	}
	return out
}

// Name returns the entry's name, empty when unset.
func (e Entry) Name() string {
	return e.String("name", "")
}

// SetName assigns the entry's name.
func (e Entry) SetName(name string) {
	e["name"] = name
}

// ID returns the native window id resolved for this entry, or 0 when the
// entry has not been matched to a window.
func (e Entry) ID() uint32 {
	switch v := e["id"].(type) {
	case uint32:
		return v
	case int:
		return uint32(v)
	case int64:
		return uint32(v)
	case float64:
		return uint32(v)
	}
	return 0
}

// SetID records the backend-assigned native window id. This is the only
// path by which `id` enters an entry; user-supplied values are rejected
// during sanitization.
func (e Entry) SetID(windowID uint32) {
	e["id"] = int(windowID)
}

// Clone returns a deep copy of the entry.
func (e Entry) Clone() Entry {
	return Entry(cloneMap(e))
}

// Command returns the argv to execute for this entry. A string command in
// shell mode runs through /bin/sh -c unmodified; outside shell mode it is
// split with shell-style quoting. A list command is used verbatim, joined
// back into a single quoted string for shell mode.
func (e Entry) Command(shell bool) ([]string, error) {
	raw, ok := e["command"]
	if !ok {
		return nil, fmt.Errorf("window %q has no command", e.Name())
	}

	switch v := raw.(type) {
	case string:
		if shell {
			return []string{"/bin/sh", "-c", v}, nil
		}
		argv, err := splitCommand(v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse command for window %q: %w", e.Name(), err)
		}
		if len(argv) == 0 {
			return nil, fmt.Errorf("window %q has an empty command", e.Name())
		}
		return argv, nil
	case []any:
		argv := make([]string, 0, len(v))
		for _, item := range v {
			argv = append(argv, fmt.Sprintf("%v", item))
		}
		if len(argv) == 0 {
			return nil, fmt.Errorf("window %q has an empty command", e.Name())
		}
		if shell {
			return []string{"/bin/sh", "-c", shellJoin(argv)}, nil
		}
		return argv, nil
	default:
		return nil, fmt.Errorf("window %q command must be a string or a list", e.Name())
	}
}

// GenerateName synthesizes a deterministic window name from the source
// document path, the entry's 0-based index, and the machine uptime. Names
// generated at the same uptime for the same path differ only in index.
func GenerateName(path string, index int) string {
	return fmt.Sprintf("%s:window[%d]:%d", path, index, uptimeSeconds())
}

func uptimeSeconds() int {
	data, err := os.ReadFile("/proc/uptime")
	if err != nil {
		return 0
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0
	}
	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return int(seconds)
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	case string:
		return val != ""
	case []any:
		return len(val) > 0
	case map[string]any:
		return len(val) > 0
	default:
		return true
	}
}
