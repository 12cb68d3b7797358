package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclareAndLookup(t *testing.T) {
	env := New()
	require.Nil(t, env.DeclareVar("x", 5))

	b, ok := env.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, VarKind, b.Kind)
	assert.Equal(t, 5.0, b.Value)
}

func TestRedeclarationInSameFrameFails(t *testing.T) {
	env := New()
	require.Nil(t, env.DeclareVar("x", 1))
	err := env.DeclareVar("x", 2)
	require.NotNil(t, err)
	assert.Equal(t, "RedeclarationError", string(err.Kind))
}

func TestShadowingAcrossFramesIsAllowed(t *testing.T) {
	env := New()
	require.Nil(t, env.DeclareVar("x", 1))
	env.PushFrame()
	require.Nil(t, env.DeclareVar("x", 2))

	b, _ := env.Lookup("x")
	assert.Equal(t, 2.0, b.Value)

	env.PopFrame()
	b, _ = env.Lookup("x")
	assert.Equal(t, 1.0, b.Value)
}

func TestAssignFindsNearestVar(t *testing.T) {
	env := New()
	require.Nil(t, env.DeclareVar("x", 1))
	env.PushFrame()
	require.Nil(t, env.Assign("x", 99))
	env.PopFrame()

	b, _ := env.Lookup("x")
	assert.Equal(t, 99.0, b.Value)
}

func TestAssignToConstFails(t *testing.T) {
	env := New()
	require.Nil(t, env.DeclareConst("PI2", 6.28))
	err := env.Assign("PI2", 0)
	require.NotNil(t, err)
	assert.Equal(t, "AssignToConstError", string(err.Kind))
}

func TestAssignUnknownFails(t *testing.T) {
	env := New()
	err := env.Assign("nope", 1)
	require.NotNil(t, err)
	assert.Equal(t, "UnknownIdentifierError", string(err.Kind))
}

func TestEnterCallFrameBypassesLocalScope(t *testing.T) {
	env := New()
	require.Nil(t, env.DeclareVar("g", 10))
	env.PushFrame()
	require.Nil(t, env.DeclareVar("local", 1))

	restore := env.EnterCallFrame()
	_, ok := env.Lookup("local")
	assert.False(t, ok, "call frame must not see the call site's locals")
	g, ok := env.Lookup("g")
	assert.True(t, ok, "call frame must still see globals")
	assert.Equal(t, 10.0, g.Value)
	restore()

	_, ok = env.Lookup("local")
	assert.True(t, ok, "restoring must bring back the call site's frame")
}

func TestListVariablesOmitsBuiltins(t *testing.T) {
	env := New()
	env.DeclareBuiltin("PI", &Binding{Value: 3.14})
	require.Nil(t, env.DeclareVar("x", 1))

	vars := env.ListVariables()
	require.Len(t, vars, 1)
	assert.Equal(t, "x", vars[0].Name)
}

func TestClearUserBindingsKeepsBuiltins(t *testing.T) {
	env := New()
	env.DeclareBuiltin("PI", &Binding{Value: 3.14})
	require.Nil(t, env.DeclareVar("x", 1))
	env.PushFrame()

	env.ClearUserBindings()

	_, ok := env.Lookup("x")
	assert.False(t, ok)
	_, ok = env.Lookup("PI")
	assert.True(t, ok)
	assert.Same(t, env.Global, env.Top)
}
