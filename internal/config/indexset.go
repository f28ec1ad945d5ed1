package config

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var indexListJunk = regexp.MustCompile(`[^0-9,-]`)

// ParseIndexList expands comma-separated window index selectors with
// inclusive range notation ("0,2,4-7") into a sorted, de-duplicated set.
// Multiple selector strings aggregate.
func ParseIndexList(values []string) ([]int, error) {
	seen := make(map[int]struct{})
	for _, value := range values {
		value = indexListJunk.ReplaceAllString(value, "")
		for _, part := range strings.Split(value, ",") {
			if part == "" {
				continue
			}
			if strings.Contains(part, "-") {
				bounds := strings.SplitN(part, "-", 2)
				lower, err := strconv.Atoi(bounds[0])
				if err != nil {
					return nil, fmt.Errorf("invalid index range %q", part)
				}
				upper, err := strconv.Atoi(bounds[1])
				if err != nil {
					return nil, fmt.Errorf("invalid index range %q", part)
				}
				if upper < lower {
					return nil, fmt.Errorf("invalid index range %q", part)
				}
				for i := lower; i <= upper; i++ {
					seen[i] = struct{}{}
				}
				continue
			}
			i, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid index %q", part)
			}
			seen[i] = struct{}{}
		}
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}
