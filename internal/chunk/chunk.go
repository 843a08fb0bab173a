// Package chunk implements Clockwork's bytecode buffer: a contiguous byte
// stream with a parallel line-number array and a single-byte-indexed
// constants pool (spec §3, §4.2, §4.3).
package chunk

import (
	"fmt"

	"clockwork/internal/value"
)

// OpCode identifies a single bytecode instruction. Every opcode occupies
// one byte; jump operands occupy two more, big-endian (spec §6).
type OpCode byte

const (
	OpConstant OpCode = iota
	OpNull
	OpTrue
	OpFalse
	OpPop
	OpDefGlobal
	OpGetGlobal
	OpSetGlobal
	OpGetLocal
	OpSetLocal
	OpEqual
	OpNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpPrint
	OpJump
	OpJumpIfFalse
	OpJumpIfTrue
	OpLoop
	OpReturn
)

var opNames = map[OpCode]string{
	OpConstant:     "CONSTANT",
	OpNull:         "NULL",
	OpTrue:         "TRUE",
	OpFalse:        "FALSE",
	OpPop:          "POP",
	OpDefGlobal:    "DEF_GLOBAL",
	OpGetGlobal:    "GET_GLOBAL",
	OpSetGlobal:    "SET_GLOBAL",
	OpGetLocal:     "GET_LOCAL",
	OpSetLocal:     "SET_LOCAL",
	OpEqual:        "EQ",
	OpNotEqual:     "NOTEQ",
	OpLess:         "LT",
	OpLessEqual:    "LTEQ",
	OpGreater:      "GT",
	OpGreaterEqual: "GTEQ",
	OpAdd:          "ADD",
	OpSubtract:     "SUBTRACT",
	OpMultiply:     "MULTIPLY",
	OpDivide:       "DIVIDE",
	OpNot:          "NOT",
	OpNegate:       "NEGATE",
	OpPrint:        "PRINT",
	OpJump:         "JUMP",
	OpJumpIfFalse:  "JUMP_IF_FALSE",
	OpJumpIfTrue:   "JUMP_IF_TRUE",
	OpLoop:         "LOOP",
	OpReturn:       "RETURN",
}

func (op OpCode) String() string {
	if n, ok := opNames[op]; ok {
		return n
	}
	return fmt.Sprintf("OP_UNKNOWN(%d)", byte(op))
}

// MaxConstants is the largest number of pool slots a single-byte operand
// can address (spec §4.2: "Constants pool: single-byte index").
const MaxConstants = 256

// Chunk is a compiled unit of bytecode: the instruction bytes, a parallel
// per-byte line table for error reporting, and the constants pool those
// bytes index into.
//
// Invariant: len(Bytes) == len(Lines) always.
type Chunk struct {
	Bytes     []byte
	Lines     []int
	Constants []value.Value
}
