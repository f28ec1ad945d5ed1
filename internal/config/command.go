package config

import (
	"fmt"
	"strings"
)

func shellJoin(argv []string) string {
	if len(argv) == 0 {
		return ""
	}
	parts := make([]string, 0, len(argv))
	for _, a := range argv {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\r\n'\"\\$`(){}[]*?!;|&<>") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func splitCommand(s string) ([]string, error) {
	var out []string

	var buf strings.Builder
	inSingle := false
	inDouble := false
	escaped := false
	quoted := false // current token saw a quote; '' is a real argument

	flush := func() {
		if buf.Len() == 0 && !quoted {
			return
		}
		out = append(out, buf.String())
		buf.Reset()
		quoted = false
	}

	for _, r := range s {
		if escaped {
			buf.WriteRune(r)
			escaped = false
			continue
		}

		if !inSingle && r == '\\' {
			escaped = true
			continue
		}

		if !inDouble && r == '\'' {
			inSingle = !inSingle
			quoted = true
			continue
		}
		if !inSingle && r == '"' {
			inDouble = !inDouble
			quoted = true
			continue
		}

		if !inSingle && !inDouble {
			if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
				flush()
				continue
			}
		}

		buf.WriteRune(r)
	}

	if escaped {
		return nil, fmt.Errorf("unfinished escape in command")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quote in command")
	}

	flush()
	return out, nil
}
