package menu

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const (
	RootID     = "root"
	PlayID     = "play"
	NewWorldID = "new-world"
)

// Registry exposes the named templates an application can start from.
type Registry struct {
	root      string
	templates map[string]Template
}

// NewRegistry constructs an empty registry whose root is rootID.
func NewRegistry(rootID string) *Registry {
	return &Registry{root: rootID, templates: make(map[string]Template)}
}

// BuildRegistry returns the default voxmod menu tree.
func BuildRegistry() *Registry {
	r := NewRegistry(RootID)
	r.Register(NewWorldID, newWorldMenu())
	r.Register(PlayID, playMenu())
	r.Register(RootID, mainMenu())
	return r
}

// Register stores a copy of t under id, replacing any previous entry.
func (r *Registry) Register(id string, t Template) {
	r.templates[strings.ToLower(id)] = t.Clone()
}

// Root returns a fresh copy of the root template.
func (r *Registry) Root() Template {
	t, _ := r.Find(r.root)
	return t
}

// Find returns a fresh copy of the template registered under id.
func (r *Registry) Find(id string) (Template, bool) {
	t, ok := r.templates[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Template{}, false
	}
	return t.Clone(), true
}

// IDs lists registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Match resolves a user supplied name to a registered id. Exact matches win;
// otherwise the closest fuzzy match is used.
func (r *Registry) Match(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	if _, ok := r.templates[q]; ok {
		return q, true
	}
	ranks := fuzzy.RankFindFold(q, r.IDs())
	if len(ranks) == 0 {
		return "", false
	}
	sort.Sort(ranks)
	return ranks[0].Target, true
}

func mainMenu() Template {
	return Template{
		Title: Title{Text: "voxmod", Emphasis: Primary},
		Groups: []Group{
			Row(Button{Text: "Play", Action: OpenMenu{Menu: playMenu()}}),
			Row(Button{Text: "Edit", Action: Back{}}),
			Row(Button{Text: "Quit", Action: Back{}}),
		},
	}
}

func playMenu() Template {
	return Template{
		Title: Title{Text: "Choose a world", Emphasis: Secondary},
		Groups: []Group{
			Generated{Source: Generator{Kind: KindWorlds, BasePath: "worlds", Action: PathOpen}},
			Row(
				Button{Text: "Back", Action: Back{}},
				Button{Text: "New world", Action: OpenMenu{Menu: newWorldMenu()}},
			),
		},
	}
}

func newWorldMenu() Template {
	return Template{
		Title: Title{Text: "New world", Emphasis: Secondary},
		Groups: []Group{
			Generated{Source: Generator{Kind: KindGames, BasePath: "games", Action: PathCreate}},
			Row(
				Button{Text: "Back", Action: Back{}},
				Button{Text: "Import game", Action: Batch{Actions: []Action{ImportExternalContent{}, Rebuild{}}}},
			),
		},
	}
}
