package chunk

import (
	"strings"
	"testing"

	"clockwork/internal/value"
)

func TestWriteTracksLines(t *testing.T) {
	c := New()
	c.WriteOp(OpTrue, 1)
	c.WriteOp(OpFalse, 2)

	if len(c.Bytes) != len(c.Lines) {
		t.Fatalf("Bytes and Lines length mismatch: %d vs %d", len(c.Bytes), len(c.Lines))
	}
	if c.Lines[0] != 1 || c.Lines[1] != 2 {
		t.Errorf("Lines = %v, want [1 2]", c.Lines)
	}
}

func TestAddConstantRejectsOverflow(t *testing.T) {
	c := New()
	for i := 0; i < MaxConstants; i++ {
		if _, err := c.AddConstant(value.Number(float64(i))); err != nil {
			t.Fatalf("unexpected error at constant %d: %v", i, err)
		}
	}
	if _, err := c.AddConstant(value.Number(999)); err != ErrTooManyConstants {
		t.Errorf("AddConstant past limit = %v, want ErrTooManyConstants", err)
	}
}

func TestDisassembleConstant(t *testing.T) {
	c := New()
	idx, _ := c.AddConstant(value.Number(42))
	c.WriteOp(OpConstant, 1)
	c.Write(byte(idx), 1)
	c.WriteOp(OpReturn, 1)

	out := Disassemble(c, "test")
	if !strings.Contains(out, "CONSTANT") || !strings.Contains(out, "42") {
		t.Errorf("disassembly missing expected content:\n%s", out)
	}
	if !strings.Contains(out, "RETURN") {
		t.Errorf("disassembly missing RETURN:\n%s", out)
	}
}

func TestDisassembleJumpShowsTarget(t *testing.T) {
	c := New()
	c.WriteOp(OpJumpIfFalse, 1)
	c.Write(0, 1)
	c.Write(3, 1)
	c.WriteOp(OpPop, 1)
	c.WriteOp(OpReturn, 1)

	out := Disassemble(c, "test")
	if !strings.Contains(out, "-> 6") {
		t.Errorf("expected jump target 6 in disassembly:\n%s", out)
	}
}
