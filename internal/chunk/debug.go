package chunk

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// Disassemble renders every instruction in c as human-readable text, one
// per line, prefixed with name as a header. It is debug-only tooling
// (spec §1 places disassembly outside the core contract) consumed by the
// clockdump command, never by the compiler or VM themselves.
func Disassemble(c *Chunk, name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)

	for offset := 0; offset < len(c.Bytes); {
		line, next := DisassembleInstruction(c, offset)
		b.WriteString(line)
		b.WriteByte('\n')
		offset = next
	}
	return b.String()
}

// DisassembleInstruction formats the single instruction at offset and
// returns the offset of the instruction that follows it.
func DisassembleInstruction(c *Chunk, offset int) (string, int) {
	prefix := fmt.Sprintf("%04d ", offset)
	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		prefix += "   | "
	} else {
		prefix += fmt.Sprintf("%4d ", c.Lines[offset])
	}

	op := OpCode(c.Bytes[offset])
	switch op {
	case OpConstant, OpDefGlobal, OpGetGlobal, OpSetGlobal:
		return constantInstruction(prefix, op, c, offset)
	case OpGetLocal, OpSetLocal:
		return byteInstruction(prefix, op, c, offset)
	case OpJump, OpJumpIfFalse, OpJumpIfTrue:
		return jumpInstruction(prefix, op, 1, c, offset)
	case OpLoop:
		return jumpInstruction(prefix, op, -1, c, offset)
	default:
		return prefix + op.String(), offset + 1
	}
}

func constantInstruction(prefix string, op OpCode, c *Chunk, offset int) (string, int) {
	index := c.Bytes[offset+1]
	line := fmt.Sprintf("%s%-16s %4d '%v'", prefix, op, index, c.Constants[index])
	return line, offset + 2
}

func byteInstruction(prefix string, op OpCode, c *Chunk, offset int) (string, int) {
	slot := c.Bytes[offset+1]
	line := fmt.Sprintf("%s%-16s %4d", prefix, op, slot)
	return line, offset + 2
}

func jumpInstruction(prefix string, op OpCode, sign int, c *Chunk, offset int) (string, int) {
	delta := int(binary.BigEndian.Uint16(c.Bytes[offset+1 : offset+3]))
	target := offset + 3 + sign*delta
	line := fmt.Sprintf("%s%-16s %4d -> %d", prefix, op, offset, target)
	return line, offset + 3
}
