// Package assets enumerates asset directories for generated menu groups.
package assets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/xdg"

	"github.com/atomicstack/voxmod-menu/internal/menu"
)

const appName = "voxmod"

// DirSource lists the entries of one directory per menu.Kind under Root.
// Hidden entries are skipped and the result is sorted by name.
type DirSource struct {
	Root string
	dirs map[menu.Kind]string
}

// NewDirSource maps every kind to the directory of the same name under root.
func NewDirSource(root string) *DirSource {
	return &DirSource{Root: root, dirs: make(map[menu.Kind]string)}
}

// Map overrides the directory used for kind. Relative dirs are resolved
// against Root.
func (s *DirSource) Map(kind menu.Kind, dir string) *DirSource {
	s.dirs[kind] = dir
	return s
}

// Dir returns the directory listed for kind.
func (s *DirSource) Dir(kind menu.Kind) string {
	dir, ok := s.dirs[kind]
	if !ok {
		dir = string(kind)
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(s.Root, dir)
}

// List implements menu.Source.
func (s *DirSource) List(ctx context.Context, kind menu.Kind) ([]menu.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := s.Dir(kind)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w: %v", kind, menu.ErrEnumerationUnavailable, err)
	}
	out := make([]menu.Entry, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		out = append(out, menu.Entry{Name: name, Path: filepath.Join(string(kind), name)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// DefaultRoot picks the asset root: ./assets when present, otherwise the
// per-user data directory.
func DefaultRoot() string {
	if info, err := os.Stat("assets"); err == nil && info.IsDir() {
		return "assets"
	}
	return filepath.Join(xdg.DataHome, appName, "assets")
}
