package cliexec

import (
	"flag"
	"fmt"
	"io"
	"os"

	"nfacc/codegen"
	"nfacc/langparser"
	"nfacc/nfa"
	"nfacc/prefilter"
	"nfacc/repl"
	"nfacc/runtime"
)

// Command selects which of the three top-level operations ExecuteWithParams
// runs.
type Command int

const (
	CommandBuild Command = iota
	CommandCheck
	CommandRepl
)

// Params is ParseParams' parsed result, played back by ExecuteWithParams
// exactly like nex's exec.Params.
type Params struct {
	Command Command

	SpecFilename  string
	InputFilename string

	OutputFilename string

	NfaDotOutputFilename string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ParseParams parses args for one subcommand (build, check or repl).
// Each subcommand gets its own flag.FlagSet, the way git/go-style CLIs
// do, rather than the single flat flag set exec.ParseParams uses,
// because build's -o/-nfadot don't mean anything for check or repl.
func ParseParams(name string, args []string) (*Params, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("usage: %s build|check|repl ...", name)
	}
	sub, rest := args[0], args[1:]

	p := &Params{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
	f := flag.NewFlagSet(name+" "+sub, flag.ContinueOnError)

	switch sub {
	case "build":
		p.Command = CommandBuild
		f.StringVar(&p.OutputFilename, "o", "", "write the standalone matcher program here")
		f.StringVar(&p.NfaDotOutputFilename, "nfadot", "", "dump the NFA graph in DOT format here")
		// flag stops at the first positional argument, so parsing resumes
		// after each one to accept `build <spec-file> -o <out.go>`.
		var positional []string
		for remaining := rest; ; {
			if err := f.Parse(remaining); err != nil {
				return nil, err
			}
			if f.NArg() == 0 {
				break
			}
			positional = append(positional, f.Arg(0))
			remaining = f.Args()[1:]
		}
		if len(positional) != 1 {
			return nil, fmt.Errorf("usage: %s build <spec-file> -o <out.go>", name)
		}
		p.SpecFilename = positional[0]

	case "check":
		p.Command = CommandCheck
		f.StringVar(&p.NfaDotOutputFilename, "nfadot", "", "dump the NFA graph in DOT format here")
		if err := f.Parse(rest); err != nil {
			return nil, err
		}
		if f.NArg() != 2 {
			return nil, fmt.Errorf("usage: %s check <spec-file> <input-file>", name)
		}
		p.SpecFilename = f.Arg(0)
		p.InputFilename = f.Arg(1)

	case "repl":
		p.Command = CommandRepl
		if err := f.Parse(rest); err != nil {
			return nil, err
		}
		if f.NArg() != 1 {
			return nil, fmt.Errorf("usage: %s repl <spec-file>", name)
		}
		p.SpecFilename = f.Arg(0)

	default:
		return nil, fmt.Errorf("unknown command %q: want build, check or repl", sub)
	}
	return p, nil
}

// Execute parses args and runs the command they name, the same
// two-call shape as nex's exec.Execute.
func Execute(name string, args ...string) error {
	p, err := ParseParams(name, args)
	if err != nil {
		return err
	}
	return ExecuteWithParams(p)
}

// ExecuteWithParams compiles p.SpecFilename's grammar and dispatches
// on p.Command. Every command shares the same compile step, so a
// -nfadot dump is available no matter which command is run.
func ExecuteWithParams(p *Params) error {
	specFile, err := os.Open(p.SpecFilename)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInputOpenFailure, p.SpecFilename, err)
	}
	defer closeFile(specFile)

	prog, err := langparser.Parse(specFile)
	if err != nil {
		return fmt.Errorf("parse spec: %w", err)
	}

	b := nfa.NewBuilder(prog.Symbols)
	entries, err := b.BuildProgram(prog.Top)
	if err != nil {
		return fmt.Errorf("build nfa: %w", err)
	}

	if err := writeWithWriter(p.NfaDotOutputFilename, func(w io.Writer) error {
		nfa.WriteDot(w, b.Arena, entries)
		return nil
	}); err != nil {
		return err
	}

	switch p.Command {
	case CommandBuild:
		return runBuild(p, b, entries)
	case CommandCheck:
		return runCheck(p, prog, b, entries)
	case CommandRepl:
		return repl.Run(prog, b.Arena, entries, p.Stdin, p.Stdout, p.Stderr)
	default:
		return fmt.Errorf("cliexec: unknown command %d", p.Command)
	}
}

func runBuild(p *Params, b *nfa.Builder, entries []nfa.Entry) error {
	src, err := codegen.Generate(b.Arena, entries)
	if err != nil {
		return fmt.Errorf("generate matcher: %w", err)
	}
	if p.OutputFilename == "" {
		return ErrMissingOutput
	}
	if err := os.WriteFile(p.OutputFilename, src, 0o666); err != nil {
		return fmt.Errorf("write matcher: %w", err)
	}
	return nil
}

func runCheck(p *Params, prog *langparser.Program, b *nfa.Builder, entries []nfa.Entry) error {
	inFile, err := os.Open(p.InputFilename)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInputOpenFailure, p.InputFilename, err)
	}
	defer closeFile(inFile)

	data, err := io.ReadAll(inFile)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	filter, err := prefilter.Build(prog.Top)
	if err != nil {
		return fmt.Errorf("build prefilter: %w", err)
	}

	accept := false
	if !filter.CanReject(data) {
		accept, err = runtime.Match(b.Arena, entries, data)
		if err != nil {
			return fmt.Errorf("match: %w", err)
		}
	}

	if accept {
		fmt.Fprintln(p.Stdout, "ACCEPTS")
	} else {
		fmt.Fprintln(p.Stdout, "REJECTS")
	}
	return nil
}

func closeFile(f *os.File) {
	_ = f.Close()
}

func writeWithWriter(filepath string, write func(io.Writer) error) error {
	if filepath == "" {
		return nil
	}
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	defer closeFile(f)
	return write(f)
}
