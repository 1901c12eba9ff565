package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRegistryDefaultTree(t *testing.T) {
	r := BuildRegistry()
	root := r.Root()
	assert.Equal(t, Title{Text: "voxmod", Emphasis: Primary}, root.Title)
	require.Len(t, root.Groups, 3)

	play, ok := root.Groups[0].(Fixed).Buttons[0].Action.(OpenMenu)
	require.True(t, ok, "Play should open a submenu")
	assert.Equal(t, "Choose a world", play.Menu.Title.Text)
	gen, ok := play.Menu.Groups[0].(Generated)
	require.True(t, ok)
	assert.Equal(t, Generator{Kind: KindWorlds, BasePath: "worlds", Action: PathOpen}, gen.Source)

	newWorld, ok := play.Menu.Groups[1].(Fixed).Buttons[1].Action.(OpenMenu)
	require.True(t, ok)
	importBtn := newWorld.Menu.Groups[1].(Fixed).Buttons[1]
	assert.Equal(t, "Import game", importBtn.Text)
	assert.Equal(t, Batch{Actions: []Action{ImportExternalContent{}, Rebuild{}}}, importBtn.Action)
}

func TestRegistryFindReturnsCopies(t *testing.T) {
	r := BuildRegistry()
	a, ok := r.Find(PlayID)
	require.True(t, ok)
	a.Title.Text = "mutated"
	b, _ := r.Find("  PLAY ")
	assert.Equal(t, "Choose a world", b.Title.Text)

	_, ok = r.Find("missing")
	assert.False(t, ok)
}

func TestRegistryMatch(t *testing.T) {
	r := BuildRegistry()
	id, ok := r.Match("new-world")
	require.True(t, ok)
	assert.Equal(t, NewWorldID, id)

	id, ok = r.Match("nwrld")
	require.True(t, ok)
	assert.Equal(t, NewWorldID, id)

	_, ok = r.Match("")
	assert.False(t, ok)
	_, ok = r.Match("zzz")
	assert.False(t, ok)
	assert.Equal(t, []string{NewWorldID, PlayID, RootID}, r.IDs())
}
