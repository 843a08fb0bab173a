// Package vm implements Clockwork's stack-based bytecode interpreter: a
// fetch-decode-execute loop over a compiled Chunk, adapted from the
// teacher's vm.VM (informatter-nilan/vm/vm.go) and generalized from its
// single OP_CONSTANT/OP_END pair to the full instruction set spec §4.2 and
// §6 define.
package vm

import (
	"fmt"
	"io"
	"os"

	"clockwork/internal/chunk"
	"clockwork/internal/compiler"
	"clockwork/internal/value"
)

// stackMax bounds the VM's value stack (spec §3: "stack: fixed array,
// capacity 256").
const stackMax = 256

// VM is the runtime environment bytecode executes in: the chunk and
// instruction pointer currently running, a fixed-size value stack, the
// globals table, and the heap shared with the compiler so that interning
// holds across the compile/run boundary.
type VM struct {
	chunk *chunk.Chunk
	ip    int

	stack [stackMax]value.Value
	sp    int

	globals value.Table[value.Value]
	heap    *value.Heap

	out io.Writer
}

// New returns a VM whose PRINT statements write to os.Stdout and which
// owns a fresh heap for the lifetime of whatever it interprets.
func New() *VM {
	return &VM{heap: value.NewHeap(), out: os.Stdout}
}

// SetOutput redirects PRINT output, primarily for tests.
func (vm *VM) SetOutput(w io.Writer) { vm.out = w }

// Free releases the VM's heap. Call once the VM is no longer needed.
func (vm *VM) Free() { vm.heap.Free() }

// Interpret compiles source and, if compilation succeeds, runs the
// resulting chunk. It reports CompileError with the compiler's errors, or
// RuntimeErr/Ok depending on how execution finished.
func (vm *VM) Interpret(source string) (Result, []error) {
	c, errs := compiler.Compile(source, vm.heap)
	if errs != nil {
		return CompileError, errs
	}

	vm.chunk = c
	vm.ip = 0
	vm.sp = 0

	if err := vm.run(); err != nil {
		return RuntimeErr, []error{err}
	}
	return Ok, nil
}

func (vm *VM) push(v value.Value) error {
	if vm.sp >= stackMax {
		return vm.runtimeError("Stack overflow.")
	}
	vm.stack[vm.sp] = v
	vm.sp++
	return nil
}

func (vm *VM) pop() value.Value {
	vm.sp--
	return vm.stack[vm.sp]
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.sp-1-distance]
}

func (vm *VM) currentLine() int {
	if vm.ip == 0 || vm.ip > len(vm.chunk.Lines) {
		return 0
	}
	return vm.chunk.Lines[vm.ip-1]
}

func (vm *VM) runtimeError(format string, args ...any) error {
	return &RuntimeError{Line: vm.currentLine(), Message: fmt.Sprintf(format, args...)}
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Bytes[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) readShort() int {
	hi := vm.chunk.Bytes[vm.ip]
	lo := vm.chunk.Bytes[vm.ip+1]
	vm.ip += 2
	return int(hi)<<8 | int(lo)
}

func (vm *VM) readConstant() value.Value {
	return vm.chunk.Constants[vm.readByte()]
}

// run executes instructions starting at vm.ip until OP_RETURN, matching the
// teacher's fetch-decode-execute loop shape (vm/vm.go's switch on opCode)
// generalized across every opcode chunk.OpCode defines.
func (vm *VM) run() error {
	for {
		op := chunk.OpCode(vm.readByte())

		switch op {
		case chunk.OpConstant:
			if err := vm.push(vm.readConstant()); err != nil {
				return err
			}

		case chunk.OpNull:
			if err := vm.push(value.Null()); err != nil {
				return err
			}
		case chunk.OpTrue:
			if err := vm.push(value.Bool(true)); err != nil {
				return err
			}
		case chunk.OpFalse:
			if err := vm.push(value.Bool(false)); err != nil {
				return err
			}

		case chunk.OpPop:
			vm.pop()

		case chunk.OpDefGlobal:
			name := vm.readConstant().AsObject()
			vm.globals.Set(name, vm.peek(0))
			vm.pop()

		case chunk.OpGetGlobal:
			name := vm.readConstant().AsObject()
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.AsString())
			}
			if err := vm.push(v); err != nil {
				return err
			}

		case chunk.OpSetGlobal:
			name := vm.readConstant().AsObject()
			if isNew := vm.globals.Set(name, vm.peek(0)); isNew {
				vm.globals.Delete(name)
				return vm.runtimeError("Undefined variable '%s'.", name.AsString())
			}

		case chunk.OpGetLocal:
			slot := vm.readByte()
			if err := vm.push(vm.stack[slot]); err != nil {
				return err
			}

		case chunk.OpSetLocal:
			slot := vm.readByte()
			vm.stack[slot] = vm.peek(0)

		case chunk.OpEqual:
			b, a := vm.pop(), vm.pop()
			if err := vm.push(value.Bool(a.Equal(b))); err != nil {
				return err
			}
		case chunk.OpNotEqual:
			b, a := vm.pop(), vm.pop()
			if err := vm.push(value.Bool(!a.Equal(b))); err != nil {
				return err
			}

		case chunk.OpLess, chunk.OpLessEqual, chunk.OpGreater, chunk.OpGreaterEqual:
			if err := vm.binaryCompare(op); err != nil {
				return err
			}

		case chunk.OpAdd:
			if err := vm.add(); err != nil {
				return err
			}
		case chunk.OpSubtract, chunk.OpMultiply, chunk.OpDivide:
			if err := vm.binaryArith(op); err != nil {
				return err
			}

		case chunk.OpNot:
			v := vm.pop()
			if err := vm.push(value.Bool(v.IsFalsey())); err != nil {
				return err
			}

		case chunk.OpNegate:
			v := vm.peek(0)
			if !v.IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.pop()
			if err := vm.push(value.Number(-v.AsNumber())); err != nil {
				return err
			}

		case chunk.OpPrint:
			fmt.Fprintln(vm.out, vm.pop().String())

		case chunk.OpJump:
			offset := vm.readShort()
			vm.ip += offset

		case chunk.OpJumpIfFalse:
			offset := vm.readShort()
			if vm.peek(0).IsFalsey() {
				vm.ip += offset
			}

		case chunk.OpJumpIfTrue:
			offset := vm.readShort()
			if !vm.peek(0).IsFalsey() {
				vm.ip += offset
			}

		case chunk.OpLoop:
			offset := vm.readShort()
			vm.ip -= offset

		case chunk.OpReturn:
			return nil

		default:
			return vm.runtimeError("Unknown opcode %v.", op)
		}
	}
}

// add implements OP_ADD: numeric addition, or string concatenation when
// both operands are strings — concatenation interns its result on the
// shared heap so it participates in the same identity-equality as any
// other string (spec §4.2, §8 property 3).
func (vm *VM) add() error {
	b, a := vm.peek(0), vm.peek(1)
	switch {
	case a.IsNumber() && b.IsNumber():
		vm.pop()
		vm.pop()
		return vm.push(value.Number(a.AsNumber() + b.AsNumber()))
	case a.IsString() && b.IsString():
		vm.pop()
		vm.pop()
		obj := vm.heap.InternString(a.AsString() + b.AsString())
		return vm.push(value.FromObject(obj))
	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
}

func (vm *VM) binaryArith(op chunk.OpCode) error {
	b, a := vm.peek(0), vm.peek(1)
	if !a.IsNumber() || !b.IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	vm.pop()
	vm.pop()

	x, y := a.AsNumber(), b.AsNumber()
	var result float64
	switch op {
	case chunk.OpSubtract:
		result = x - y
	case chunk.OpMultiply:
		result = x * y
	case chunk.OpDivide:
		// Division by zero produces +/-Inf or NaN rather than a runtime
		// error (spec §4.2 edge cases) — Go's float64 division already
		// has IEEE-754 semantics, so no special case is needed.
		result = x / y
	}
	return vm.push(value.Number(result))
}

func (vm *VM) binaryCompare(op chunk.OpCode) error {
	b, a := vm.peek(0), vm.peek(1)
	if !a.IsNumber() || !b.IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	vm.pop()
	vm.pop()

	x, y := a.AsNumber(), b.AsNumber()
	var result bool
	switch op {
	case chunk.OpLess:
		result = x < y
	case chunk.OpLessEqual:
		result = x <= y
	case chunk.OpGreater:
		result = x > y
	case chunk.OpGreaterEqual:
		result = x >= y
	}
	return vm.push(value.Bool(result))
}
