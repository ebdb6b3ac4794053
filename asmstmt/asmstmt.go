// Package asmstmt implements the statement builder (spec component C3):
// it groups the tokens of one source line into a Statement with an
// optional label, an optional instruction-or-pseudo-op base, and an
// ordered list of operands, using a fault-tolerant classification
// heuristic driven by Levenshtein distance to known instruction names.
//
// Grounded on original_source/backend/assembler.cpp's buildStatement, the
// C++ routine this spec's §4.3 algorithm was distilled from.
package asmstmt

import (
	"strings"

	"github.com/lc3tools/lc3asm/isa"
	"github.com/lc3tools/lc3asm/token"
)

// PieceKind is the semantic role a token is promoted to.
type PieceKind int

const (
	LABEL PieceKind = iota
	INSTRUCTION
	PSEUDO_OP
	REGISTER
	STRING_OPERAND
	NUMBER_OPERAND
)

// Piece is a token promoted into a semantic role.
type Piece struct {
	Kind        PieceKind
	Token       token.Token
	NumberValue int32 // meaningful for NUMBER_OPERAND
	// Text holds the piece's string value: case-folded for LABEL, REGISTER,
	// and a STRING_OPERAND that refers to a label (the bare-word form used
	// for symbol lookup); verbatim (escape-resolved, case preserved) for a
	// STRING_OPERAND that is a quoted string-literal operand, per spec §3 —
	// case-folding applies to labels/mnemonics, never to string contents.
	Text string
}

// Statement is one logical source line after classification.
type Statement struct {
	Label    *Piece // LABEL or NUMBER_OPERAND (retained so C4/C5 can reject it)
	Base     *Piece // INSTRUCTION or PSEUDO_OP
	Operands []Piece

	PC    uint16
	Valid bool // set by pcassign (C4)

	SourceLine string
	Row        int
}

// instructionCloseness is the edit-distance threshold (§4.3) below which a
// near-miss token is still treated as an intended instruction name rather
// than a label.
const instructionCloseness = 2

// Build classifies the tokens of a single source line (not including its
// ENDOFLINE terminator) into a Statement. It never rejects a line outright;
// misclassifications surface later as errors in C4/C5/C6.
func Build(tokens []token.Token, sourceLine string, row int) *Statement {
	stmt := &Statement{SourceLine: sourceLine, Row: row}
	if len(tokens) == 0 {
		return stmt
	}

	idx := classifyLeadingPieces(stmt, tokens)

	for _, tk := range tokens[idx:] {
		stmt.Operands = append(stmt.Operands, operandPiece(tk))
	}

	return stmt
}

func operandPiece(tk token.Token) Piece {
	if tk.Kind == token.NUMBER {
		return Piece{Kind: NUMBER_OPERAND, Token: tk, NumberValue: tk.NumberValue, Text: tk.Text}
	}
	if isa.IsRegisterName(tk.Text) {
		return Piece{Kind: REGISTER, Token: tk, Text: strings.ToLower(tk.Text)}
	}
	if tk.Quoted {
		// A quoted string-literal operand (.stringz's argument): its
		// contents are data, not an identifier, so case is preserved.
		return Piece{Kind: STRING_OPERAND, Token: tk, Text: tk.Text}
	}
	return Piece{Kind: STRING_OPERAND, Token: tk, Text: strings.ToLower(tk.Text)}
}

func labelPiece(tk token.Token) Piece {
	return Piece{Kind: LABEL, Token: tk, Text: strings.ToLower(tk.Text)}
}

func instructionPiece(tk token.Token) Piece {
	return Piece{Kind: INSTRUCTION, Token: tk, Text: strings.ToLower(tk.Text)}
}

func pseudoPiece(tk token.Token) Piece {
	return Piece{Kind: PSEUDO_OP, Token: tk, Text: strings.ToLower(tk.Text)}
}

// classifyLeadingPieces implements §4.3's core algorithm and returns the
// index at which operand tokens begin.
func classifyLeadingPieces(stmt *Statement, tokens []token.Token) int {
	t0 := tokens[0]

	if t0.Kind == token.NUMBER {
		p := Piece{Kind: NUMBER_OPERAND, Token: t0, NumberValue: t0.NumberValue, Text: t0.Text}
		stmt.Label = &p
		return 1
	}

	if isa.IsPseudoName(t0.Text) {
		p := pseudoPiece(t0)
		stmt.Base = &p
		return 1
	}

	d0 := isa.NearestInstructionDistance(t0.Text)

	if d0 == 0 {
		if len(tokens) > 1 && tokens[1].Kind == token.STRING && isa.IsPseudoName(tokens[1].Text) {
			lp := labelPiece(t0)
			bp := pseudoPiece(tokens[1])
			stmt.Label = &lp
			stmt.Base = &bp
			return 2
		}
		bp := instructionPiece(t0)
		stmt.Base = &bp
		return 1
	}

	// d0 > 0
	if len(tokens) == 1 {
		lp := labelPiece(t0)
		stmt.Label = &lp
		return 1
	}

	t1 := tokens[1]

	if t1.Kind == token.STRING {
		if isa.IsPseudoName(t1.Text) {
			lp := labelPiece(t0)
			bp := pseudoPiece(t1)
			stmt.Label = &lp
			stmt.Base = &bp
			return 2
		}
		if isa.IsRegisterName(t1.Text) {
			if d0 < instructionCloseness {
				bp := instructionPiece(t0)
				stmt.Base = &bp
			} else {
				lp := labelPiece(t0)
				stmt.Label = &lp
			}
			return 1
		}

		d1 := isa.NearestInstructionDistance(t1.Text)
		if d1 < d0 {
			lp := labelPiece(t0)
			stmt.Label = &lp
			if d1 < instructionCloseness {
				bp := instructionPiece(t1)
				stmt.Base = &bp
				return 2
			}
			return 1
		}
		if d0 < instructionCloseness {
			bp := instructionPiece(t0)
			stmt.Base = &bp
		} else {
			lp := labelPiece(t0)
			stmt.Label = &lp
		}
		return 1
	}

	// t1.Kind == token.NUMBER
	if d0 < instructionCloseness {
		bp := instructionPiece(t0)
		stmt.Base = &bp
	} else {
		lp := labelPiece(t0)
		stmt.Label = &lp
	}
	return 1
}

// OperandTypeString returns the candidate-scoring pattern string for this
// statement's operands (§4.6.1): 'n' for NUMBER_OPERAND, 's' for
// STRING_OPERAND, 'r' for REGISTER.
func (s *Statement) OperandTypeString() string {
	var sb strings.Builder
	for _, op := range s.Operands {
		switch op.Kind {
		case NUMBER_OPERAND:
			sb.WriteByte('n')
		case STRING_OPERAND:
			sb.WriteByte('s')
		case REGISTER:
			sb.WriteByte('r')
		}
	}
	return sb.String()
}

// IsLabelOnly reports whether this statement has a label and no base
// (i.e. a line consisting only of a label declaration).
func (s *Statement) IsLabelOnly() bool {
	return s.Label != nil && s.Label.Kind == LABEL && s.Base == nil
}
