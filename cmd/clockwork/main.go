// Command clockwork is Clockwork's command-line entry point: no arguments
// starts an interactive REPL, one argument runs a source file, and
// anything else prints usage (spec §6).
//
// This replaces the teacher's subcommands-based main (main.go, cmd_run.go,
// cmd_repl.go) — spec's CLI contract is a fixed, single-binary shape with
// no verb to dispatch on, so google/subcommands has nothing to attach to
// here; it is instead put to use in clockdump (cmd/clockdump), the
// debug-disassembly tool that does have distinct verbs.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"

	"clockwork/internal/vm"
)

func main() {
	switch len(os.Args) {
	case 1:
		runREPL()
	case 2:
		os.Exit(runFile(os.Args[1]))
	default:
		fmt.Fprintln(os.Stderr, "Usage: clockwork <path>")
		os.Exit(0)
	}
}

func runFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not read file %q: %v\n", path, err)
		return 1
	}

	m := vm.New()
	defer m.Free()

	result, errs := m.Interpret(string(data))
	return exitCodeFor(result, errs)
}

func exitCodeFor(result vm.Result, errs []error) int {
	switch result {
	case vm.Ok:
		return 0
	case vm.CompileError:
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return 65
	case vm.RuntimeErr:
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return 70
	default:
		return 1
	}
}

// runREPL drives an interactive read-eval-print loop, using
// github.com/chzyer/readline (already in the teacher's dependency graph,
// though unused there) for line editing and history instead of a bare
// bufio.Scanner.
func runREPL() {
	rl, err := readline.New("> ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	m := vm.New()
	defer m.Free()

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return
		}

		result, errs := m.Interpret(line)
		if result != vm.Ok {
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e.Error())
			}
		}
	}
}
