// Command clockdump is a debug-only inspection tool built on top of
// Clockwork's scanner, compiler and chunk packages: it prints a source
// file's token stream, its disassembled bytecode, or its constants pool.
// It has nothing to do with running programs (that's cmd/clockwork) and
// exists purely to make the compiler's output inspectable.
//
// Structured as subcommands the way the teacher's main/cmd_*.go files
// were (github.com/google/subcommands) — that shape fits clockdump's
// multiple independent verbs better than it ever fit clockwork's single
// fixed CLI contract.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"clockwork/internal/chunk"
	"clockwork/internal/compiler"
	"clockwork/internal/scanner"
	"clockwork/internal/token"
	"clockwork/internal/value"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(&tokensCmd{}, "")
	subcommands.Register(&disassembleCmd{}, "")
	subcommands.Register(&constantsCmd{}, "")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}

func readSource(f *flag.FlagSet) (string, bool) {
	if f.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "expected a source file path")
		return "", false
	}
	data, err := os.ReadFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not read file: %v\n", err)
		return "", false
	}
	return string(data), true
}

type tokensCmd struct{}

func (*tokensCmd) Name() string             { return "tokens" }
func (*tokensCmd) Synopsis() string         { return "print the token stream for a source file" }
func (*tokensCmd) Usage() string            { return "tokens <file>:\n  scan a file and print every token.\n" }
func (*tokensCmd) SetFlags(f *flag.FlagSet) {}

func (*tokensCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	src, ok := readSource(f)
	if !ok {
		return subcommands.ExitUsageError
	}

	s := scanner.New(src)
	for {
		tok := s.Next()
		fmt.Println(tok.String())
		if tok.Type == token.EOF {
			break
		}
	}
	return subcommands.ExitSuccess
}

type disassembleCmd struct{}

func (*disassembleCmd) Name() string     { return "disassemble" }
func (*disassembleCmd) Synopsis() string { return "compile a source file and print its bytecode" }
func (*disassembleCmd) Usage() string {
	return "disassemble <file>:\n  compile a file and dump the resulting instruction stream.\n"
}
func (*disassembleCmd) SetFlags(f *flag.FlagSet) {}

func (*disassembleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	src, ok := readSource(f)
	if !ok {
		return subcommands.ExitUsageError
	}

	heap := value.NewHeap()
	defer heap.Free()

	c, errs := compiler.Compile(src, heap)
	if errs != nil {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return subcommands.ExitFailure
	}

	fmt.Print(chunk.Disassemble(c, f.Arg(0)))
	return subcommands.ExitSuccess
}

type constantsCmd struct{}

func (*constantsCmd) Name() string     { return "constants" }
func (*constantsCmd) Synopsis() string { return "compile a source file and print its constants pool" }
func (*constantsCmd) Usage() string {
	return "constants <file>:\n  compile a file and list the values in its constants pool.\n"
}
func (*constantsCmd) SetFlags(f *flag.FlagSet) {}

func (*constantsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	src, ok := readSource(f)
	if !ok {
		return subcommands.ExitUsageError
	}

	heap := value.NewHeap()
	defer heap.Free()

	c, errs := compiler.Compile(src, heap)
	if errs != nil {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		return subcommands.ExitFailure
	}

	for i, v := range c.Constants {
		fmt.Printf("%4d: %s (%s)\n", i, v.String(), v.TypeName())
	}
	return subcommands.ExitSuccess
}
