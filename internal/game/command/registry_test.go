package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r)
	assert.Len(t, r.Commands(), len(BuiltinCommands()))
}

func TestResolve_CanonicalName(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("select")
	assert.True(t, ok)
	assert.Equal(t, "select", cmd.Name)
	assert.Equal(t, HandlerSelect, cmd.Handler)
}

func TestResolve_Alias(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("s")
	assert.True(t, ok)
	assert.Equal(t, "select", cmd.Name)
}

func TestResolve_IgnoresCase(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("SUBMIT")
	require.True(t, ok)
	assert.Equal(t, HandlerSubmit, cmd.Handler)
}

func TestResolve_NotFound(t *testing.T) {
	r := DefaultRegistry()

	_, ok := r.Resolve("north")
	assert.False(t, ok)
}

func TestResolve_AllBuiltins(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		input   string
		handler string
	}{
		{"look", HandlerLook},
		{"l", HandlerLook},
		{"select", HandlerSelect},
		{"s", HandlerSelect},
		{"back", HandlerBack},
		{"b", HandlerBack},
		{"clear", HandlerClear},
		{"c", HandlerClear},
		{"submit", HandlerSubmit},
		{"enter", HandlerSubmit},
		{"words", HandlerWords},
		{"w", HandlerWords},
		{"new", HandlerNew},
		{"n", HandlerNew},
		{"seed", HandlerSeed},
		{"help", HandlerHelp},
		{"?", HandlerHelp},
		{"quit", HandlerQuit},
		{"q", HandlerQuit},
		{"exit", HandlerQuit},
	}

	for _, tt := range tests {
		cmd, ok := r.Resolve(tt.input)
		require.True(t, ok, "input %q not found", tt.input)
		assert.Equal(t, tt.handler, cmd.Handler, "input %q wrong handler", tt.input)
	}
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	cmds := []Command{
		{Name: "test", Handler: "a"},
		{Name: "test", Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate command name")
}

func TestNewRegistry_DuplicateAlias(t *testing.T) {
	cmds := []Command{
		{Name: "test1", Aliases: []string{"t"}, Handler: "a"},
		{Name: "test2", Aliases: []string{"t"}, Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate alias")
}

func TestNewRegistry_AliasShadowsName(t *testing.T) {
	cmds := []Command{
		{Name: "look", Handler: "a"},
		{Name: "view", Aliases: []string{"look"}, Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "conflicts with command name")
}

func TestCommands_SortedByName(t *testing.T) {
	cmds := DefaultRegistry().Commands()
	for i := 1; i < len(cmds); i++ {
		assert.Less(t, cmds[i-1].Name, cmds[i].Name)
	}
}

func TestCommandsByCategory(t *testing.T) {
	r := DefaultRegistry()
	cats := r.CommandsByCategory()

	assert.Len(t, cats, 3)
	assert.Len(t, cats[CategoryBoard], 4)
	assert.Len(t, cats[CategoryWords], 2)
	assert.Len(t, cats[CategorySystem], 4)
	assert.Equal(t, "back", cats[CategoryBoard][0].Name)
}

func TestPropertyAllAliasesResolveToCanonical(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := DefaultRegistry()
		cmds := r.Commands()
		idx := rapid.IntRange(0, len(cmds)-1).Draw(t, "cmd_idx")
		cmd := cmds[idx]

		resolved, ok := r.Resolve(cmd.Name)
		if !ok {
			t.Fatalf("canonical name %q did not resolve", cmd.Name)
		}
		if resolved.Name != cmd.Name {
			t.Fatalf("canonical name %q resolved to %q", cmd.Name, resolved.Name)
		}

		for _, alias := range cmd.Aliases {
			aliasResolved, ok := r.Resolve(alias)
			if !ok {
				t.Fatalf("alias %q did not resolve", alias)
			}
			if aliasResolved.Name != cmd.Name {
				t.Fatalf("alias %q resolved to %q, expected %q", alias, aliasResolved.Name, cmd.Name)
			}
		}
	})
}
