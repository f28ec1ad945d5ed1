package config

// InheritGlobals merges the document's global settings into a window
// entry. The merge is a recursive deep merge over mappings: entry-scope
// values win on conflicting leaf paths, so an entry can override part of a
// nested global structure without restating the rest. Sequences and
// scalars replace wholesale.
func (d *Document) InheritGlobals(window Entry) Entry {
	return Entry(mergeMaps(d.Globals, window))
}

func mergeMaps(base, overlay map[string]any) map[string]any {
	out := cloneMap(base)
	for key, value := range overlay {
		existing, ok := out[key]
		if !ok {
			out[key] = cloneValue(value)
			continue
		}
		baseMap, baseIsMap := existing.(map[string]any)
		overlayMap, overlayIsMap := value.(map[string]any)
		if baseIsMap && overlayIsMap {
			out[key] = mergeMaps(baseMap, overlayMap)
			continue
		}
		out[key] = cloneValue(value)
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
