package menu

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

type templateDoc struct {
	Title    string     `yaml:"title"`
	Emphasis string     `yaml:"emphasis"`
	Groups   []groupDoc `yaml:"groups"`
}

type groupDoc struct {
	Buttons  []buttonDoc   `yaml:"buttons"`
	Generate *generatorDoc `yaml:"generate"`
}

type generatorDoc struct {
	Kind   string `yaml:"kind"`
	Base   string `yaml:"base"`
	Action string `yaml:"action"`
}

type buttonDoc struct {
	Text   string    `yaml:"text"`
	Action actionDoc `yaml:"action"`
}

type actionDoc struct {
	Type    string       `yaml:"type"`
	Path    string       `yaml:"path"`
	Menu    *templateDoc `yaml:"menu"`
	Actions []actionDoc  `yaml:"actions"`
}

// LoadTemplateFile reads a YAML menu definition from path.
func LoadTemplateFile(path string) (Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return Template{}, fmt.Errorf("open menu file: %w", err)
	}
	defer f.Close()
	t, err := DecodeTemplate(f)
	if err != nil {
		return Template{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// DecodeTemplate parses a YAML menu definition.
func DecodeTemplate(r io.Reader) (Template, error) {
	var doc templateDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Template{}, errors.New("empty menu definition")
		}
		return Template{}, fmt.Errorf("decode menu: %w", err)
	}
	return doc.template()
}

func (d templateDoc) template() (Template, error) {
	emphasis, err := parseEmphasis(d.Emphasis)
	if err != nil {
		return Template{}, err
	}
	t := Template{Title: Title{Text: d.Title, Emphasis: emphasis}}
	for i, g := range d.Groups {
		group, err := g.group()
		if err != nil {
			return Template{}, fmt.Errorf("%q group %d: %w", d.Title, i, err)
		}
		t.Groups = append(t.Groups, group)
	}
	return t, nil
}

func (g groupDoc) group() (Group, error) {
	if g.Generate != nil {
		if len(g.Buttons) > 0 {
			return nil, errors.New("group has both buttons and generate")
		}
		action, err := parsePathAction(g.Generate.Action)
		if err != nil {
			return nil, err
		}
		kind := strings.TrimSpace(g.Generate.Kind)
		if kind == "" {
			return nil, errors.New("generate requires a kind")
		}
		base := g.Generate.Base
		if base == "" {
			base = kind
		}
		return Generated{Source: Generator{Kind: Kind(kind), BasePath: base, Action: action}}, nil
	}
	buttons := make([]Button, 0, len(g.Buttons))
	for _, b := range g.Buttons {
		action, err := b.Action.action()
		if err != nil {
			return nil, fmt.Errorf("button %q: %w", b.Text, err)
		}
		buttons = append(buttons, Button{Text: b.Text, Action: action})
	}
	return Fixed{Buttons: buttons}, nil
}

func (a actionDoc) action() (Action, error) {
	switch strings.ToLower(strings.TrimSpace(a.Type)) {
	case "open-menu", "menu":
		if a.Menu == nil {
			return nil, errors.New("open-menu requires a menu")
		}
		t, err := a.Menu.template()
		if err != nil {
			return nil, err
		}
		return OpenMenu{Menu: t}, nil
	case "back":
		return Back{}, nil
	case "rebuild":
		return Rebuild{}, nil
	case "import":
		return ImportExternalContent{}, nil
	case "create":
		return CreateFromPath{Path: a.Path}, nil
	case "open":
		return OpenTarget{Path: a.Path}, nil
	case "batch":
		actions := make([]Action, 0, len(a.Actions))
		for _, inner := range a.Actions {
			act, err := inner.action()
			if err != nil {
				return nil, err
			}
			actions = append(actions, act)
		}
		return Batch{Actions: actions}, nil
	case "":
		return nil, errors.New("missing action type")
	default:
		return nil, fmt.Errorf("unknown action type %q", a.Type)
	}
}

func parseEmphasis(s string) (Emphasis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "secondary", "normal":
		return Secondary, nil
	case "primary", "main":
		return Primary, nil
	default:
		return Secondary, fmt.Errorf("unknown emphasis %q", s)
	}
}

func parsePathAction(s string) (PathAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return PathOpen, nil
	case "create", "":
		return PathCreate, nil
	default:
		return PathCreate, fmt.Errorf("unknown generator action %q", s)
	}
}
