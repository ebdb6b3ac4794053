// Package tools holds optional consumers built on top of the assembler
// core's public packages. Linter is adapted from the teacher repository's
// tools/lint.go (LintLevel/LintIssue/Linter shape), repointed at this
// repo's own token/asmstmt/pcassign/symtab pipeline instead of the ARM
// parser it originally drove.
//
// This is domain-stack enrichment, not part of the two-pass pipeline
// itself (spec §1/§2 scope the core at C1-C8): it gives fast,
// pre-encoding feedback on label usage and region placement by reusing
// the same passes C6 would otherwise run.
package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lc3tools/lc3asm/asmstmt"
	"github.com/lc3tools/lc3asm/diag"
	"github.com/lc3tools/lc3asm/lev"
	"github.com/lc3tools/lc3asm/mode"
	"github.com/lc3tools/lc3asm/pcassign"
	"github.com/lc3tools/lc3asm/symtab"
	"github.com/lc3tools/lc3asm/token"
)

// LintLevel represents the severity of a lint issue.
type LintLevel int

const (
	LintError   LintLevel = iota // syntax/structural errors, undefined references
	LintWarning                  // best-practice violations, potential issues
	LintInfo                     // suggestions, style recommendations
)

func (l LintLevel) String() string {
	switch l {
	case LintError:
		return "error"
	case LintWarning:
		return "warning"
	case LintInfo:
		return "info"
	default:
		return "unknown"
	}
}

// LintIssue is a single lint finding, anchored at a 0-based row/column
// like the rest of this repository's diagnostics.
type LintIssue struct {
	Level   LintLevel
	Row     int
	Column  int
	Message string
	Code    string // e.g. "UNDEF_LABEL", "UNUSED_LABEL", "OUT_OF_REGION"
}

func (i *LintIssue) String() string {
	return fmt.Sprintf("line %d:%d: %s: %s [%s]", i.Row+1, i.Column+1, i.Level, i.Message, i.Code)
}

// LintOptions controls linter behavior.
type LintOptions struct {
	Mode           mode.Mode
	CheckUnused    bool // warn about labels defined but never referenced
	CheckUndefined bool // error on operands referencing undefined labels
	CheckRegion    bool // error on statements outside any .orig/.end region
	SuggestFixes   bool // attach "did you mean" suggestions to undefined-label errors
}

// DefaultLintOptions returns the linter's default configuration.
func DefaultLintOptions() *LintOptions {
	return &LintOptions{
		Mode:           mode.Strict,
		CheckUnused:    true,
		CheckUndefined: true,
		CheckRegion:    true,
		SuggestFixes:   true,
	}
}

// Linter analyzes LC-3 assembly source for label-usage and placement
// issues, ahead of (and independent from) a full encode pass.
type Linter struct {
	options *LintOptions
	issues  []*LintIssue
}

// NewLinter creates a new linter.
func NewLinter(options *LintOptions) *Linter {
	if options == nil {
		options = DefaultLintOptions()
	}
	return &Linter{options: options}
}

// Lint analyzes the given assembly source and returns its findings,
// sorted by source position.
func (l *Linter) Lint(source, filename string) []*LintIssue {
	l.issues = nil
	lines := strings.Split(source, "\n")
	lineTokens, lexErrs := token.TokenizeAll(source)
	for _, e := range lexErrs {
		l.issues = append(l.issues, &LintIssue{Level: LintError, Message: e.Error(), Code: "LEX_ERROR"})
	}

	var stmts []*asmstmt.Statement
	for i, toks := range lineTokens {
		if len(toks) == 0 {
			continue
		}
		stmts = append(stmts, asmstmt.Build(toks, lines[i], i))
	}

	log := diag.NewLog(filename)
	if !pcassign.Assign(stmts, l.options.Mode, log) {
		l.absorb(log)
		return l.finish()
	}

	symbols := symtab.Build(stmts, l.options.Mode, log)
	l.absorb(log)

	if l.options.CheckRegion {
		l.checkRegions(stmts)
	}
	if l.options.CheckUndefined {
		l.checkUndefinedLabels(stmts, symbols)
	}
	if l.options.CheckUnused {
		l.checkUnusedLabels(symbols)
	}

	return l.finish()
}

func (l *Linter) finish() []*LintIssue {
	sort.SliceStable(l.issues, func(i, j int) bool {
		if l.issues[i].Row != l.issues[j].Row {
			return l.issues[i].Row < l.issues[j].Row
		}
		return l.issues[i].Column < l.issues[j].Column
	})
	return l.issues
}

// absorb folds a diag.Log's messages (produced by the same pcassign/symtab
// passes the full pipeline runs) into this linter's issue list.
func (l *Linter) absorb(log *diag.Log) {
	for _, m := range log.Messages() {
		level := LintInfo
		code := "NOTE"
		switch m.Level {
		case diag.ERROR:
			level, code = LintError, "PASS_ERROR"
		case diag.WARNING:
			level, code = LintWarning, "PASS_WARNING"
		default:
			continue
		}
		l.issues = append(l.issues, &LintIssue{
			Level: level, Row: m.Row, Column: m.Column, Message: m.Text, Code: code,
		})
	}
}

// checkRegions flags statements pcassign considered invalid (outside any
// live .orig/.end region), duplicating C4's invalidity check as a
// structured LintIssue for tool integration rather than a diag message.
func (l *Linter) checkRegions(stmts []*asmstmt.Statement) {
	for _, st := range stmts {
		if st.Valid || (st.Base == nil && st.Label == nil) {
			continue
		}
		row, col := anchorOf(st)
		l.issues = append(l.issues, &LintIssue{
			Level:   LintWarning,
			Row:     row,
			Column:  col,
			Message: "statement falls outside any .orig/.end region",
			Code:    "OUT_OF_REGION",
		})
	}
}

// checkUndefinedLabels walks every string operand that could name a
// label (instruction PC-relative/label slots, and .fill's label form) and
// reports ones the symbol table has no entry for. This duplicates C6's
// "could not find label" check, but runs before the expensive candidate-
// selection/encoding pass for fast feedback.
func (l *Linter) checkUndefinedLabels(stmts []*asmstmt.Statement, symbols *symtab.Table) {
	for _, st := range stmts {
		if st.Base == nil {
			continue
		}
		isFill := st.Base.Kind == asmstmt.PSEUDO_OP && st.Base.Text == ".fill"
		isInstruction := st.Base.Kind == asmstmt.INSTRUCTION
		if !isFill && !isInstruction {
			continue
		}
		for _, op := range st.Operands {
			if op.Kind != asmstmt.STRING_OPERAND {
				continue
			}
			if _, ok := symbols.Lookup(op.Text); ok {
				symbols.Reference(op.Text, op.Token)
				continue
			}
			msg := fmt.Sprintf("undefined label %q", op.Token.Text)
			if l.options.SuggestFixes {
				if suggestion := l.findSimilarLabel(op.Text, symbols); suggestion != "" {
					msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
				}
			}
			l.issues = append(l.issues, &LintIssue{
				Level: LintError, Row: op.Token.Row, Column: op.Token.Column, Message: msg, Code: "UNDEF_LABEL",
			})
		}
	}
}

// checkUnusedLabels warns about labels defined but never referenced by
// any instruction or .fill operand.
func (l *Linter) checkUnusedLabels(symbols *symtab.Table) {
	for _, sym := range symbols.Unused() {
		l.issues = append(l.issues, &LintIssue{
			Level:   LintWarning,
			Row:     sym.DefPos.Row,
			Column:  sym.DefPos.Column,
			Message: fmt.Sprintf("label %q defined but never referenced", sym.Name),
			Code:    "UNUSED_LABEL",
		})
	}
}

// findSimilarLabel returns the closest-matching defined label to target
// by Levenshtein distance, or "" if none is within a small threshold.
func (l *Linter) findSimilarLabel(target string, symbols *symtab.Table) string {
	const maxSuggestDistance = 3
	best := ""
	bestDist := maxSuggestDistance + 1
	for _, sym := range symbols.All() {
		d := lev.Distance(target, sym.Name)
		if d < bestDist {
			best, bestDist = sym.Name, d
		}
	}
	return best
}

func anchorOf(st *asmstmt.Statement) (row, col int) {
	if st.Base != nil {
		return st.Base.Token.Row, st.Base.Token.Column
	}
	if st.Label != nil {
		return st.Label.Token.Row, st.Label.Token.Column
	}
	return st.Row, 0
}
