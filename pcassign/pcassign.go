// Package pcassign implements the PC assigner (spec component C4): the
// first pass over a statement sequence, honoring .ORIG/.END region
// markers and advancing a program counter while enforcing region rules.
//
// Grounded on original_source/backend/assembler.cpp's setStatementPCField,
// including its found_orig / previous_region_ended state machine and the
// MMIO boundary check. The strict/liberal branching that routine performs
// via "#ifdef _LIBERAL_ASM" is reimplemented here as an explicit mode.Mode
// parameter per design note §9.
package pcassign

import (
	"github.com/lc3tools/lc3asm/asmstmt"
	"github.com/lc3tools/lc3asm/diag"
	"github.com/lc3tools/lc3asm/mode"
)

// MMIOStart is the first address of the memory-mapped I/O region; code and
// data cannot be assembled into this range or above.
const MMIOStart = 0xFE00

// Assign walks stmts left to right, assigning each one's PC field and
// Valid flag. It returns false if a fatal structural error occurred (no
// .orig was ever found), in which case the pipeline must not proceed to
// C5/C6.
func Assign(stmts []*asmstmt.Statement, m mode.Mode, log *diag.Log) bool {
	foundOrig := false
	regionEnded := false
	var curPC uint32

	for _, st := range stmts {
		switch {
		case isPseudo(st, ".orig"):
			if foundOrig && !regionEnded {
				reportRegion(log, st, m, "previous .orig region was not terminated by .end")
			}
			foundOrig = true
			regionEnded = false
			origVal := operandValue(st)
			if origVal > 0xFFFF {
				reportTruncation(log, st, m, "origin value exceeds 16 bits, truncated")
			}
			curPC = uint32(uint16(origVal))
			st.PC = 0
			st.Valid = true

		case isPseudo(st, ".end"):
			regionEnded = true
			st.PC = 0
			st.Valid = foundOrig

		case st.IsLabelOnly():
			st.PC = uint16(curPC)
			st.Valid = foundOrig

		case st.Base == nil && st.Label == nil:
			// A blank or comment-only line: it carries no statement of its
			// own, so it must not advance the PC (cf. the corpus's
			// lassandro-golc3 assembler, which explicitly skips token-less
			// lines without touching its PC counter). PC is recorded only
			// for diagnostic anchoring.
			st.PC = uint16(curPC)
			st.Valid = foundOrig

		case foundOrig:
			if curPC >= MMIOStart {
				log.Errorf(lineOf(st), colOf(st), lenOf(st), st.SourceLine,
					"statement would be assembled into the memory-mapped I/O region (>= x%X)", MMIOStart)
				st.Valid = false
				continue
			}
			if regionEnded {
				reportRegion(log, st, m, "statement falls between .end and the next .orig")
				st.Valid = false
				continue
			}
			st.PC = uint16(curPC)
			st.Valid = true
			curPC += statementSize(st)

		default:
			log.Errorf(lineOf(st), colOf(st), lenOf(st), st.SourceLine,
				"statement appears before any .orig")
			st.Valid = false
		}
	}

	if !foundOrig {
		log.Errorf(0, 0, 1, "", "no .orig found in source")
		return false
	}

	if foundOrig && !regionEnded {
		if m == mode.Strict {
			log.Errorf(0, 0, 1, "", "no .end at end of file")
		} else {
			log.Warningf(0, 0, 1, "", "no .end at end of file")
		}
	}

	return true
}

func isPseudo(st *asmstmt.Statement, name string) bool {
	return st.Base != nil && st.Base.Kind == asmstmt.PSEUDO_OP && st.Base.Text == name
}

// statementSize returns how far the PC advances past this statement: 1
// for an instruction or .fill, the block count for .blkw, and
// len(string)+1 for .stringz.
func statementSize(st *asmstmt.Statement) uint32 {
	if st.Base == nil {
		return 1
	}
	if st.Base.Kind != asmstmt.PSEUDO_OP {
		return 1
	}
	switch st.Base.Text {
	case ".blkw":
		n := operandValue(st)
		if n < 0 {
			return 0
		}
		return uint32(n)
	case ".stringz":
		if len(st.Operands) > 0 && st.Operands[0].Kind == asmstmt.STRING_OPERAND {
			return uint32(len(st.Operands[0].Text)) + 1
		}
		return 1
	default:
		return 1
	}
}

func operandValue(st *asmstmt.Statement) int64 {
	if len(st.Operands) == 0 {
		return 0
	}
	op := st.Operands[0]
	if op.Kind == asmstmt.NUMBER_OPERAND {
		return int64(op.NumberValue)
	}
	return 0
}

func reportRegion(log *diag.Log, st *asmstmt.Statement, m mode.Mode, msg string) {
	if m == mode.Strict {
		log.Errorf(lineOf(st), colOf(st), lenOf(st), st.SourceLine, "%s", msg)
	} else {
		log.Warningf(lineOf(st), colOf(st), lenOf(st), st.SourceLine, "%s", msg)
	}
}

func reportTruncation(log *diag.Log, st *asmstmt.Statement, m mode.Mode, msg string) {
	if m == mode.Strict {
		log.Errorf(lineOf(st), colOf(st), lenOf(st), st.SourceLine, "%s", msg)
	} else {
		log.Warningf(lineOf(st), colOf(st), lenOf(st), st.SourceLine, "%s", msg)
	}
}

func lineOf(st *asmstmt.Statement) int {
	if st.Base != nil {
		return st.Base.Token.Row
	}
	if st.Label != nil {
		return st.Label.Token.Row
	}
	return st.Row
}

func colOf(st *asmstmt.Statement) int {
	if st.Base != nil {
		return st.Base.Token.Column
	}
	if st.Label != nil {
		return st.Label.Token.Column
	}
	return 0
}

func lenOf(st *asmstmt.Statement) int {
	if st.Base != nil {
		return st.Base.Token.Length
	}
	if st.Label != nil {
		return st.Label.Token.Length
	}
	return 1
}
