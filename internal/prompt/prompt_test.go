package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/vibedocs/pkg/types"
)

var (
	_ Prompter = (*Scripted)(nil)
	_ Prompter = (*Terminal)(nil)
)

func TestScripted(t *testing.T) {
	s := NewScripted("yes", "", "Beta", "2", "typed", "", "N")

	ok, err := s.Confirm("Continue?", false)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Confirm("Default?", true)
	require.NoError(t, err)
	assert.True(t, ok, "empty answer takes the default")

	i, err := s.Select("Pick", []string{"Alpha", "Beta"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	i, err = s.Select("Pick", []string{"a", "b", "c"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	text, err := s.Input("Name", "def")
	require.NoError(t, err)
	assert.Equal(t, "typed", text)

	text, err = s.Edit("Body", "keep me")
	require.NoError(t, err)
	assert.Equal(t, "keep me", text)

	ok, err = s.Confirm("Again?", true)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Zero(t, s.Remaining())
	_, err = s.Input("More?", "")
	assert.ErrorIs(t, err, types.ErrAborted)
	assert.Len(t, s.Asked, 8)
}

func TestScripted_InvalidAnswers(t *testing.T) {
	s := NewScripted("maybe", "Gamma")

	_, err := s.Confirm("Continue?", false)
	assert.ErrorIs(t, err, types.ErrInvalidSelection)

	_, err = s.Select("Pick", []string{"Alpha", "Beta"}, 0)
	assert.ErrorIs(t, err, types.ErrInvalidSelection)
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestSelectModel(t *testing.T) {
	m := newSelectModel("Status:", []string{"Completed", "Not Completed", "Skip"}, 1)
	assert.Contains(t, m.View(), "> Not Completed")

	next, cmd := m.Update(key(tea.KeyDown))
	m = next.(selectModel)
	assert.Equal(t, 2, m.cursor)
	assert.False(t, isQuit(t, cmd))

	next, _ = m.Update(key(tea.KeyDown))
	m = next.(selectModel)
	assert.Equal(t, 2, m.cursor, "cursor stops at the last option")

	next, _ = m.Update(runes("k"))
	m = next.(selectModel)
	next, _ = m.Update(key(tea.KeyUp))
	m = next.(selectModel)
	next, _ = m.Update(key(tea.KeyUp))
	m = next.(selectModel)
	assert.Equal(t, 0, m.cursor, "cursor stops at the first option")

	next, cmd = m.Update(key(tea.KeyEnter))
	m = next.(selectModel)
	assert.True(t, m.chosen)
	assert.True(t, isQuit(t, cmd))
	assert.Contains(t, m.View(), "Completed")
}

func TestSelectModel_OutOfRangeDefault(t *testing.T) {
	m := newSelectModel("Pick", []string{"a", "b"}, 5)
	assert.Equal(t, 0, m.cursor)
}

func TestSelectModel_Abort(t *testing.T) {
	m := newSelectModel("Pick", []string{"a"}, 0)
	next, cmd := m.Update(key(tea.KeyEsc))
	assert.True(t, next.(selectModel).aborted)
	assert.True(t, isQuit(t, cmd))
	assert.Empty(t, next.View())
}

func TestInputModel(t *testing.T) {
	m := newInputModel("Feature name:", "Auth")
	assert.Equal(t, "Auth", m.input.Value())

	next, _ := m.Update(runes("z"))
	m = next.(inputModel)
	assert.Equal(t, "Authz", m.input.Value())

	next, cmd := m.Update(key(tea.KeyEnter))
	m = next.(inputModel)
	assert.True(t, m.done)
	assert.True(t, isQuit(t, cmd))
	assert.Contains(t, m.View(), "Authz")

	aborted, cmd := newInputModel("x", "").Update(key(tea.KeyCtrlC))
	assert.True(t, aborted.(inputModel).aborted)
	assert.True(t, isQuit(t, cmd))
}

func TestEditModel(t *testing.T) {
	m := newEditModel("Enter new content:", "# Title\n\nBody")
	assert.Equal(t, "# Title\n\nBody", m.area.Value())
	assert.Contains(t, m.View(), "ctrl+d")

	next, cmd := m.Update(key(tea.KeyCtrlD))
	m = next.(editModel)
	assert.True(t, m.done)
	assert.True(t, isQuit(t, cmd))

	aborted, _ := newEditModel("x", "y").Update(key(tea.KeyEsc))
	assert.True(t, aborted.(editModel).aborted)
}

func TestEditModel_UntouchedKeepsDefault(t *testing.T) {
	for _, def := range []string{
		"# T\n\n\tindented code\n",
		"# T\r\nline\r\n",
		"plain\n",
	} {
		m := newEditModel("Enter new content:", def)
		next, _ := m.Update(key(tea.KeyCtrlD))
		assert.Equal(t, def, next.(editModel).result(), "%q", def)
	}

	m := newEditModel("Enter new content:", "\tcode")
	next, _ := m.Update(runes("x"))
	assert.NotEqual(t, "\tcode", next.(editModel).result(), "edits are returned")
}
