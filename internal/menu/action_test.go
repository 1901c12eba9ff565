package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneActionIsDeep(t *testing.T) {
	orig := OpenMenu{Menu: Template{
		Title: Title{Text: "Play"},
		Groups: []Group{
			Row(Button{Text: "Nested", Action: Batch{Actions: []Action{ImportExternalContent{}, Rebuild{}}}}),
		},
	}}
	dup := CloneAction(orig).(OpenMenu)
	assert.True(t, ActionsEqual(orig, dup))

	dup.Menu.Groups[0].(Fixed).Buttons[0].Action.(Batch).Actions[0] = Back{}
	assert.False(t, ActionsEqual(orig, dup))
	assert.Equal(t, ImportExternalContent{}, orig.Menu.Groups[0].(Fixed).Buttons[0].Action.(Batch).Actions[0])
}

func TestFlattenNestedBatches(t *testing.T) {
	a := Batch{Actions: []Action{
		ImportExternalContent{},
		Batch{Actions: []Action{Rebuild{}, Batch{Actions: []Action{CreateFromPath{Path: "games/a"}}}}},
		Back{},
	}}
	assert.Equal(t, []Action{ImportExternalContent{}, Rebuild{}, CreateFromPath{Path: "games/a"}, Back{}}, Flatten(a))
	assert.Equal(t, []Action{Back{}}, Flatten(Back{}))
	assert.Nil(t, Flatten(nil))
	assert.Empty(t, Flatten(Batch{}))
}

func TestPathActionBind(t *testing.T) {
	assert.Equal(t, OpenTarget{Path: "worlds/a"}, PathOpen.Bind("worlds/a"))
	assert.Equal(t, CreateFromPath{Path: "games/a"}, PathCreate.Bind("games/a"))
}

func TestTemplateEachGroupStopsEarly(t *testing.T) {
	tmpl := Template{Groups: []Group{Row(), Generated{}, Row()}}
	var seen []int
	tmpl.EachGroup(func(i int, _ Group) bool {
		seen = append(seen, i)
		return i < 1
	})
	assert.Equal(t, []int{0, 1}, seen)
}

func TestTemplateCloneEqual(t *testing.T) {
	tmpl := BuildRegistry().Root()
	dup := tmpl.Clone()
	assert.True(t, tmpl.Equal(dup))
	dup.Title.Text = "other"
	assert.False(t, tmpl.Equal(dup))
}
