// Package repl implements `nfacc repl <specfile>`: a line-at-a-time
// "does this line match" loop over an already-compiled grammar,
// grounded on client9-cardinal/cmd/cardinal/repl.go's REPL struct and
// its isInteractive/RunInteractive split. Unlike cardinal's REPL this
// one has no multi-line expression accumulation: every input line
// is a complete, independent input to check.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/lmorg/readline/v4"
	"golang.org/x/term"

	"nfacc/langparser"
	"nfacc/nfa"
	"nfacc/prefilter"
	"nfacc/runtime"
)

// REPL holds one compiled grammar plus the I/O it reads lines from
// and writes verdicts to.
type REPL struct {
	arena   *nfa.Arena
	entries []nfa.Entry
	filter  *prefilter.Filter

	input  io.Reader
	output io.Writer
	errOut io.Writer
	prompt string
}

// New builds a REPL around an already-compiled grammar.
func New(prog *langparser.Program, arena *nfa.Arena, entries []nfa.Entry, stdin io.Reader, stdout, stderr io.Writer) (*REPL, error) {
	filter, err := prefilter.Build(prog.Top)
	if err != nil {
		return nil, fmt.Errorf("repl: build prefilter: %w", err)
	}
	return &REPL{
		arena:   arena,
		entries: entries,
		filter:  filter,
		input:   stdin,
		output:  stdout,
		errOut:  stderr,
		prompt:  "nfacc> ",
	}, nil
}

// Run builds a REPL for prog/arena/entries and runs it, choosing the
// interactive line editor or a plain scanner per isInteractive.
func Run(prog *langparser.Program, arena *nfa.Arena, entries []nfa.Entry, stdin io.Reader, stdout, stderr io.Writer) error {
	r, err := New(prog, arena, entries, stdin, stdout, stderr)
	if err != nil {
		return err
	}
	if r.isInteractive() {
		return r.RunInteractive()
	}
	return r.RunBatch()
}

// isInteractive mirrors cardinal's REPL.isInteractive: only stdin
// itself can be a terminal, since any other io.Reader is necessarily
// piped or a test fixture.
func (r *REPL) isInteractive() bool {
	if r.input != os.Stdin {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// RunInteractive drives a readline.Instance prompt loop, printing one
// ACCEPTS/REJECTS verdict per submitted line until EOF or an error
// from Readline.
func (r *REPL) RunInteractive() error {
	rl := readline.NewInstance()
	rl.SetPrompt(r.prompt)

	for {
		line, err := rl.Readline()
		if err != nil {
			// Ctrl-D/Ctrl-C and end of input all surface here as an
			// error from Readline, exactly as in cardinal's REPL; none
			// of them are a failure worth reporting up.
			return nil
		}
		r.checkLine(line)
	}
}

// RunBatch reads newline-delimited input with bufio.Scanner, the path
// piped tests and non-terminal stdin take, printing a verdict per line
// with no prompt.
func (r *REPL) RunBatch() error {
	scanner := bufio.NewScanner(r.input)
	for scanner.Scan() {
		r.checkLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("repl: read input: %w", err)
	}
	return nil
}

func (r *REPL) checkLine(line string) {
	data := []byte(line)
	accept := false
	if !r.filter.CanReject(data) {
		ok, err := runtime.Match(r.arena, r.entries, data)
		if err != nil {
			fmt.Fprintf(r.errOut, "nfacc: %v\n", err)
			return
		}
		accept = ok
	}
	if accept {
		fmt.Fprintln(r.output, "ACCEPTS")
	} else {
		fmt.Fprintln(r.output, "REJECTS")
	}
}
