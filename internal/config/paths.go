package config

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extensions are the recognized workspace document file extensions.
var Extensions = []string{"json", "yaml", "yml"}

const configDirEnv = "XSESSIONP_CONFIGDIR"

// ConfigDirs returns the existing workspace configuration directories in
// precedence order: $XSESSIONP_CONFIGDIR, $XDG_CONFIG_HOME/xsessionp
// (or ~/.config/xsessionp), then ~/.xsessionp.
func ConfigDirs() []string {
	var candidates []string
	if dir := os.Getenv(configDirEnv); dir != "" {
		candidates = append(candidates, dir)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, "xsessionp"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "xsessionp"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".xsessionp"))
	}

	var out []string
	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			out = append(out, dir)
		}
	}
	return out
}

// Resolve locates a workspace document. Evaluation order: as an absolute
// or CWD-relative path, then relative to each configuration directory,
// then relative to each configuration directory with a recognized
// extension appended.
func Resolve(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	for _, dir := range ConfigDirs() {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		for _, ext := range Extensions {
			candidate := filepath.Join(dir, name+"."+ext)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}

	return "", fmt.Errorf("workspace %q not found", name)
}

// ListDocuments returns every workspace document discovered under the
// configuration directories, sorted by path.
func ListDocuments() ([]string, error) {
	var files []string
	for _, dir := range ConfigDirs() {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
			for _, known := range Extensions {
				if ext == known {
					files = append(files, path)
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
		}
	}
	sort.Strings(files)
	return files, nil
}
