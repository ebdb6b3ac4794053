// Package assemble provides the top-level orchestration for the LC-3
// assembler core: it drives the tokenizer (C1) through the encoder (C6) in
// order over one source file, per spec §2's data-flow diagram, and returns
// the memory entries that the object record writer (C8) serializes; the
// caller does the writing. It is the one entry point the external driver
// (out of scope per spec §1) is expected to call.
package assemble

import (
	"strings"

	"github.com/lc3tools/lc3asm/asmstmt"
	"github.com/lc3tools/lc3asm/config"
	"github.com/lc3tools/lc3asm/diag"
	"github.com/lc3tools/lc3asm/encoder"
	"github.com/lc3tools/lc3asm/objrecord"
	"github.com/lc3tools/lc3asm/pcassign"
	"github.com/lc3tools/lc3asm/symtab"
	"github.com/lc3tools/lc3asm/token"
)

// Result is the successful output of one assembly invocation: the object
// records produced by C8 plus the symbol table, so a caller (or a test)
// can inspect label addresses directly.
type Result struct {
	Entries []objrecord.Entry
	Symbols *symtab.Table
}

// Assemble runs the full two-pass pipeline (§2, C1-C6) over src and
// returns its object records plus the diagnostic log. Per §5/§7's
// fail-collect policy, every pass runs to completion and every
// diagnostic it emits is recorded in the returned *diag.Log; the result
// is non-nil only if the log's HasErrors() is false after the whole
// pipeline runs (a lexical error, or a fatal structural error such as no
// .orig at all, returns early with a nil Result and the error already
// recorded).
func Assemble(src, filename string, cfg config.Config) (*Result, *diag.Log) {
	log := diag.NewLog(filename)
	log.Verbose = cfg.Assembler.Verbose
	m := cfg.ModeValue()

	lineTokens, lexErrs := token.TokenizeAll(src)
	for _, e := range lexErrs {
		if ue, ok := e.(*token.UnterminatedStringError); ok {
			log.Errorf(ue.Row, ue.Column, 1, ue.Line, "unterminated string literal")
		} else {
			log.Errorf(0, 0, 1, "", "%s", e.Error())
		}
	}
	if log.HasErrors() {
		return nil, log
	}

	lines := strings.Split(src, "\n")
	stmts := make([]*asmstmt.Statement, 0, len(lineTokens))
	for i, toks := range lineTokens {
		sourceLine := ""
		if i < len(lines) {
			sourceLine = lines[i]
		}
		stmts = append(stmts, asmstmt.Build(toks, sourceLine, i))
	}

	if !pcassign.Assign(stmts, m, log) {
		return nil, log
	}

	symbols := symtab.Build(stmts, m, log)
	entries := encoder.EncodeAll(stmts, symbols, m, log)

	if log.HasErrors() {
		return nil, log
	}

	return &Result{Entries: entries, Symbols: symbols}, log
}
