package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var dimensionsPattern = regexp.MustCompile(`^\s*\d+\s*[x,]\s*\d+\s*$`)

// Validate checks the document structure before any launch attempt.
// Failures here are configuration errors and abort the whole load.
func (d *Document) Validate() error {
	if len(d.Windows) == 0 {
		return fmt.Errorf("%s: windows list is empty", d.Path)
	}
	for i, window := range d.Windows {
		if err := window.Validate(); err != nil {
			return fmt.Errorf("%s: windows[%d]: %w", d.Path, i, err)
		}
	}
	return nil
}

// Validate checks a single window entry. Only structure is validated;
// toggle semantics and defaults are resolved at load time.
func (e Entry) Validate() error {
	return validation.Validate(map[string]any(e),
		validation.Map(
			validation.Key("command", validation.Required, validation.By(commandValue)),
			validation.Key("name", validation.By(stringValue)).Optional(),
			validation.Key("desktop", validation.By(nonNegativeInt)).Optional(),
			validation.Key("geometry", validation.By(dimensionsValue)).Optional(),
			validation.Key("position", validation.By(dimensionsValue)).Optional(),
			validation.Key("start_directory", validation.By(stringValue)).Optional(),
			validation.Key("start_timeout", validation.By(nonNegativeInt)).Optional(),
			validation.Key("title_hint", validation.By(patternValue)).Optional(),
			validation.Key("environment", validation.By(mappingValue)).Optional(),
			validation.Key("environment_file", validation.By(stringValue)).Optional(),
		).AllowExtraKeys(),
	)
}

// ParseDimensions parses a two-integer pair split on `x` or `,`, the
// shared format of `geometry` ("WxH") and `position` ("X,Y").
func ParseDimensions(s string) (int, int, error) {
	if !dimensionsPattern.MatchString(s) {
		return 0, 0, fmt.Errorf("invalid dimensions %q: expected two integers split on 'x' or ','", s)
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == 'x' || r == ',' })
	a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid dimensions %q: %w", s, err)
	}
	b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid dimensions %q: %w", s, err)
	}
	return a, b, nil
}

func commandValue(value any) error {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("must not be blank")
		}
	case []any:
		if len(v) == 0 {
			return fmt.Errorf("must not be empty")
		}
	default:
		return fmt.Errorf("must be a string or a list")
	}
	return nil
}

func stringValue(value any) error {
	if value == nil {
		return nil
	}
	if _, ok := value.(string); !ok {
		return fmt.Errorf("must be a string")
	}
	return nil
}

func nonNegativeInt(value any) error {
	if value == nil {
		return nil
	}
	var n int
	switch v := value.(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	default:
		return fmt.Errorf("must be an integer")
	}
	if n < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func dimensionsValue(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	_, _, err := ParseDimensions(s)
	return err
}

func patternValue(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string")
	}
	if _, err := regexp.Compile(s); err != nil {
		return fmt.Errorf("invalid regular expression: %w", err)
	}
	return nil
}

func mappingValue(value any) error {
	if value == nil {
		return nil
	}
	if _, ok := value.(map[string]any); !ok {
		return fmt.Errorf("must be a mapping")
	}
	return nil
}
