package repl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/numlang"
)

func newTestRepl() *Repl {
	return NewRepl("BANNER", "v0.0.0-test", "tester", "----", "MIT", "t >>> ")
}

func TestPrintBannerInfoWritesBannerAndHints(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRepl()
	r.PrintBannerInfo(&buf)

	out := buf.String()
	assert.Contains(t, out, "BANNER")
	assert.Contains(t, out, "v0.0.0-test")
	assert.Contains(t, out, "tester")
	assert.Contains(t, out, ".exit")
	assert.Contains(t, out, ".env")
}

func TestExecutePrintsResultOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRepl()
	env := numlang.NewEnvironment()

	r.execute(&buf, "1 + 2", env)
	assert.Contains(t, buf.String(), "3")
}

func TestExecutePrintsDiagnosticOnFailure(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRepl()
	env := numlang.NewEnvironment()

	r.execute(&buf, "1 / ", env)
	assert.Contains(t, buf.String(), "Error")
}

func TestExecutePersistsBindingsAcrossCalls(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRepl()
	env := numlang.NewEnvironment()

	r.execute(&buf, "let x = 10;", env)
	buf.Reset()
	r.execute(&buf, "x + 5", env)
	assert.Contains(t, buf.String(), "15")
}

func TestPrintEnvReportsNoVariablesWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRepl()
	env := numlang.NewEnvironment()

	r.printEnv(&buf, env)
	assert.Contains(t, buf.String(), "no variables declared")
}

func TestPrintEnvListsDeclaredVariablesSorted(t *testing.T) {
	var buf bytes.Buffer
	r := newTestRepl()
	env := numlang.NewEnvironment()

	_, d := numlang.Interpret("let b = 1; const a = 2;", env, numlang.Limits{})
	require.Nil(t, d)

	r.printEnv(&buf, env)
	out := buf.String()

	aIdx := bytes.Index(buf.Bytes(), []byte("a = 2"))
	bIdx := bytes.Index(buf.Bytes(), []byte("b = 1"))
	require.NotEqual(t, -1, aIdx)
	require.NotEqual(t, -1, bIdx)
	assert.Less(t, aIdx, bIdx)
	assert.Contains(t, out, "var b")
	assert.Contains(t, out, "const a")
}
