package menu

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/atomicstack/voxmod-menu/internal/logging/events"
)

// ErrEnumerationUnavailable is returned by a Source when the listing cannot
// be performed at all (for example the directory does not exist).
var ErrEnumerationUnavailable = errors.New("enumeration unavailable")

// Entry is a single item discovered by a Source.
type Entry struct {
	Name string
	Path string
}

// Source enumerates the entries of a logical collection. Entry order is the
// source's contract; Resolve does not re-sort.
type Source interface {
	List(ctx context.Context, kind Kind) ([]Entry, error)
}

// Screen is a resolved template, ready to be realized.
type Screen struct {
	Title Title
	Rows  [][]Button
}

// ButtonCount returns the total number of buttons across all rows.
func (s Screen) ButtonCount() int {
	n := 0
	for _, row := range s.Rows {
		n += len(row)
	}
	return n
}

// Resolve flattens t into a Screen, querying src for every Generated group.
// Listing failures are absorbed and contribute zero rows. The returned error
// is non-nil only when ctx is done.
func Resolve(ctx context.Context, t Template, src Source) (Screen, error) {
	screen := Screen{Title: t.Title, Rows: make([][]Button, 0, len(t.Groups))}
	for _, group := range t.Groups {
		if err := ctx.Err(); err != nil {
			return Screen{}, err
		}
		switch g := group.(type) {
		case Fixed:
			screen.Rows = append(screen.Rows, cloneButtons(g.Buttons))
		case Generated:
			rows, err := resolveGenerated(ctx, g.Source, src)
			if err != nil {
				return Screen{}, err
			}
			screen.Rows = append(screen.Rows, rows...)
		}
	}
	events.Resolve.Resolved(t.Title.Text, len(screen.Rows))
	return screen, nil
}

func resolveGenerated(ctx context.Context, gen Generator, src Source) ([][]Button, error) {
	if src == nil {
		events.Resolve.Unavailable(string(gen.Kind), ErrEnumerationUnavailable)
		return nil, nil
	}
	entries, err := src.List(ctx, gen.Kind)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		events.Resolve.Unavailable(string(gen.Kind), err)
		return nil, nil
	}
	rows := make([][]Button, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []Button{{
			Text:   entry.Name,
			Action: gen.Action.Bind(filepath.Join(gen.BasePath, entry.Name)),
		}})
	}
	return rows, nil
}
