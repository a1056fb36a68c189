// Package cliexec wires langparser, nfa, runtime, prefilter, codegen and
// repl together into three commands (build, check, repl), the same way
// nex's exec.Params / exec.Execute / exec.ExecuteWithParams wire
// parser/writer together for nex's single command.
package cliexec

import "errors"

// ErrInputOpenFailure marks a failure to open either the spec file or
// (for check) the input file, so main can report it with a usage line
// rather than a bare stack of wrapped errors.
var ErrInputOpenFailure = errors.New("cliexec: could not open input")

// ErrMissingOutput is returned by build when -o was not given and
// there is nothing else useful to do with the generated source.
var ErrMissingOutput = errors.New("cliexec: build requires -o <file>")
