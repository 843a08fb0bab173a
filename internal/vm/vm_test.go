package vm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) (string, Result, []error) {
	t.Helper()
	m := New()
	defer m.Free()

	var out strings.Builder
	m.SetOutput(&out)

	result, errs := m.Interpret(src)
	return out.String(), result, errs
}

func TestInterpretArithmeticPrecedence(t *testing.T) {
	out, result, errs := run(t, "print 1 + 2 * 3;")
	require.Equal(t, Ok, result, "errs: %v", errs)
	assert.Equal(t, "7\n", out)
}

func TestInterpretStringConcatenation(t *testing.T) {
	out, result, errs := run(t, `print "foo" + "bar";`)
	require.Equal(t, Ok, result, "errs: %v", errs)
	assert.Equal(t, "foobar\n", out)
}

func TestInterpretDivisionByZeroIsInfNotError(t *testing.T) {
	out, result, errs := run(t, "print 1 / 0;")
	require.Equal(t, Ok, result, "errs: %v", errs)
	assert.Equal(t, "+Inf\n", out)
}

func TestInterpretGlobalRoundTrip(t *testing.T) {
	out, result, errs := run(t, "let x = 1; x = x + 1; print x;")
	require.Equal(t, Ok, result, "errs: %v", errs)
	assert.Equal(t, "2\n", out)
}

func TestInterpretUndefinedGlobalReadIsRuntimeError(t *testing.T) {
	_, result, errs := run(t, "print x;")
	require.Equal(t, RuntimeErr, result)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Undefined variable")
}

func TestInterpretUndefinedGlobalAtGlobalScopeReferenceCompilesOk(t *testing.T) {
	// A read of an undeclared name at global scope is not a compile
	// error; it fails only when actually executed (late binding).
	_, result, errs := run(t, "let x = x;")
	require.Equal(t, RuntimeErr, result, "errs: %v", errs)
}

func TestInterpretWhileLoop(t *testing.T) {
	out, result, errs := run(t, `
		let i = 0;
		while (i < 3) {
			print i;
			i = i + 1;
		}
	`)
	require.Equal(t, Ok, result, "errs: %v", errs)
	assert.Equal(t, "0\n1\n2\n", out)
}

func TestInterpretLocalDeclaredInWhileBody(t *testing.T) {
	// The while condition must be popped before the body runs, or a local
	// declared in the body resolves to the slot still holding the
	// condition value instead of its own.
	out, result, errs := run(t, `
		let mut g = 0;
		while (g < 1) {
			let x = 42;
			print x;
			g = g + 1;
		}
	`)
	require.Equal(t, Ok, result, "errs: %v", errs)
	assert.Equal(t, "42\n", out)
}

func TestInterpretLocalDeclaredInIfBody(t *testing.T) {
	out, result, errs := run(t, `
		if (true) {
			let x = 42;
			print x;
		}
	`)
	require.Equal(t, Ok, result, "errs: %v", errs)
	assert.Equal(t, "42\n", out)
}

func TestInterpretIfElse(t *testing.T) {
	out, result, errs := run(t, `if (1 < 2) { print "yes"; } else { print "no"; }`)
	require.Equal(t, Ok, result, "errs: %v", errs)
	assert.Equal(t, "yes\n", out)
}

func TestInterpretLogicalOperators(t *testing.T) {
	out, result, errs := run(t, `print false or "fallback"; print true and "both";`)
	require.Equal(t, Ok, result, "errs: %v", errs)
	assert.Equal(t, "fallback\nboth\n", out)
}

func TestInterpretNegateTypeErrorIsRuntimeError(t *testing.T) {
	_, result, errs := run(t, `print -"str";`)
	require.Equal(t, RuntimeErr, result)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Operand must be a number")
}

func TestInterpretCompileErrorDoesNotRun(t *testing.T) {
	out, result, errs := run(t, `print ;`)
	require.Equal(t, CompileError, result)
	require.NotEmpty(t, errs)
	assert.Empty(t, out)
}
