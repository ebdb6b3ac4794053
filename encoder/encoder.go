// Package encoder implements the encoder (spec component C6): the
// second pass that validates each statement against the instruction
// pattern table using Levenshtein-ranked candidate selection, encodes
// operands, and produces the stream of object records (pseudo-ops too).
//
// Grounded on original_source/backend/instruction_encoder.cpp's
// validateInstruction (candidate scoring and the three-way diagnostic
// split) and encodeInstruction (the left-shift-OR slot walk), and on
// original_source/backend/assembler.cpp's buildMachineCode for which
// object records each pseudo-op produces.
package encoder

import (
	"sort"

	"github.com/lc3tools/lc3asm/asmstmt"
	"github.com/lc3tools/lc3asm/diag"
	"github.com/lc3tools/lc3asm/isa"
	"github.com/lc3tools/lc3asm/lev"
	"github.com/lc3tools/lc3asm/mode"
	"github.com/lc3tools/lc3asm/objrecord"
	"github.com/lc3tools/lc3asm/symtab"
)

// nameCloseness mirrors asmstmt's instruction-name closeness threshold:
// only mnemonics within this Levenshtein distance are offered as
// candidates at all (§4.6.1).
const nameCloseness = 2

// candidate is one scored instruction pattern.
type candidate struct {
	pattern     isa.Pattern
	nameDist    int
	operandDist int
}

// EncodeAll runs the encoder over a fully PC-assigned, symbol-resolved
// statement sequence and returns the object records in order.
func EncodeAll(stmts []*asmstmt.Statement, st *symtab.Table, m mode.Mode, log *diag.Log) []objrecord.Entry {
	var out []objrecord.Entry
	for _, s := range stmts {
		if s.Base == nil && s.Label == nil {
			continue // blank or comment-only line; nothing to emit or report
		}
		if !s.Valid {
			report(log, m, rowOf(s), colOf(s), lenOf(s), s.SourceLine, "statement outside any .orig/.end region is not assembled")
			continue
		}
		if s.Base == nil {
			continue // label-only line; nothing to emit
		}
		switch s.Base.Kind {
		case asmstmt.PSEUDO_OP:
			out = append(out, encodePseudo(s, st, m, log)...)
		case asmstmt.INSTRUCTION:
			if e, ok := encodeInstruction(s, st, log); ok {
				out = append(out, e)
			}
		}
	}
	return out
}

func encodePseudo(s *asmstmt.Statement, st *symtab.Table, m mode.Mode, log *diag.Log) []objrecord.Entry {
	switch s.Base.Text {
	case ".orig":
		v := operandNumber(s)
		return []objrecord.Entry{{Value: uint16(v), IsOrigin: true, SourceLine: s.SourceLine}}

	case ".fill":
		if len(s.Operands) == 0 {
			log.Errorf(rowOf(s), colOf(s), lenOf(s), s.SourceLine, ".fill requires one operand")
			return nil
		}
		op := s.Operands[0]
		if op.Kind == asmstmt.NUMBER_OPERAND {
			return []objrecord.Entry{{Value: uint16(op.NumberValue), IsOrigin: false, SourceLine: s.SourceLine}}
		}
		sym, ok := st.Lookup(op.Text)
		if !ok {
			log.Errorf(op.Token.Row, op.Token.Column, op.Token.Length, s.SourceLine, "could not find label %q", op.Token.Text)
			return nil
		}
		st.Reference(op.Text, op.Token)
		return []objrecord.Entry{{Value: sym.Address, IsOrigin: false, SourceLine: s.SourceLine}}

	case ".blkw":
		n := operandNumber(s)
		if n <= 0 {
			log.Errorf(rowOf(s), colOf(s), lenOf(s), s.SourceLine, ".blkw requires a strictly positive count")
			return nil
		}
		entries := make([]objrecord.Entry, n)
		for i := range entries {
			entries[i] = objrecord.Entry{Value: 0, IsOrigin: false, SourceLine: s.SourceLine}
		}
		return entries

	case ".stringz":
		if len(s.Operands) == 0 || s.Operands[0].Kind != asmstmt.STRING_OPERAND {
			log.Errorf(rowOf(s), colOf(s), lenOf(s), s.SourceLine, ".stringz requires a string operand")
			return nil
		}
		str := s.Operands[0].Text
		entries := make([]objrecord.Entry, 0, len(str)+1)
		for _, ch := range []byte(str) {
			entries = append(entries, objrecord.Entry{Value: uint16(ch), IsOrigin: false, SourceLine: string(ch)})
		}
		entries = append(entries, objrecord.Entry{Value: 0, IsOrigin: false, SourceLine: s.SourceLine})
		return entries

	case ".end":
		return nil

	default:
		return nil
	}
}

func operandNumber(s *asmstmt.Statement) int32 {
	if len(s.Operands) == 0 {
		return 0
	}
	return s.Operands[0].NumberValue
}

// encodeInstruction implements §4.6.1 candidate selection and §4.6.2
// encoding for one INSTRUCTION statement.
func encodeInstruction(s *asmstmt.Statement, st *symtab.Table, log *diag.Log) (objrecord.Entry, bool) {
	mnemonic := s.Base.Text
	operandStr := s.OperandTypeString()

	candidates := scoreCandidates(mnemonic, operandStr)
	if len(candidates) == 0 {
		suggestions := isa.NearestInstructionNames(mnemonic, 3)
		log.Errorf(s.Base.Token.Row, s.Base.Token.Column, s.Base.Token.Length, s.SourceLine,
			"invalid instruction %q (did you mean: %v?)", s.Base.Token.Text, suggestions)
		return objrecord.Entry{}, false
	}

	top := candidates[0]
	if top.nameDist != 0 || top.operandDist != 0 {
		if top.nameDist == 0 {
			forms := operandFormsFor(mnemonic, candidates, 3)
			log.Errorf(s.Base.Token.Row, s.Base.Token.Column, s.Base.Token.Length, s.SourceLine,
				"invalid usage of %q (expected operand forms: %v)", mnemonic, forms)
		} else {
			names := distinctMnemonics(candidates, 3)
			log.Errorf(s.Base.Token.Row, s.Base.Token.Column, s.Base.Token.Length, s.SourceLine,
				"invalid instruction %q (did you mean: %v?)", s.Base.Token.Text, names)
		}
		return objrecord.Entry{}, false
	}

	value, ok := encodeSlots(top.pattern, s, st, log)
	if !ok {
		return objrecord.Entry{}, false
	}
	return objrecord.Entry{Value: value, IsOrigin: false, SourceLine: s.SourceLine}, true
}

func scoreCandidates(mnemonic, operandStr string) []candidate {
	var out []candidate
	for name, patterns := range isa.Patterns {
		nd := lev.Distance(mnemonic, name)
		if nd > nameCloseness {
			continue
		}
		for _, p := range patterns {
			od := lev.Distance(operandStr, p.OperandString())
			out = append(out, candidate{pattern: p, nameDist: nd, operandDist: od})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].nameDist != out[j].nameDist {
			return out[i].nameDist < out[j].nameDist
		}
		if out[i].operandDist != out[j].operandDist {
			return out[i].operandDist < out[j].operandDist
		}
		return out[i].pattern.Mnemonic < out[j].pattern.Mnemonic
	})
	return out
}

func distinctMnemonics(cands []candidate, n int) []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range cands {
		if seen[c.pattern.Mnemonic] {
			continue
		}
		seen[c.pattern.Mnemonic] = true
		out = append(out, c.pattern.Mnemonic)
		if len(out) >= n {
			break
		}
	}
	return out
}

func operandFormsFor(mnemonic string, cands []candidate, n int) []string {
	var out []string
	for _, c := range cands {
		if c.pattern.Mnemonic != mnemonic {
			continue
		}
		out = append(out, c.pattern.Mnemonic+" "+c.pattern.OperandString())
		if len(out) >= n {
			break
		}
	}
	return out
}

// encodeSlots walks pattern.Slots left to right, per §4.6.2.
func encodeSlots(p isa.Pattern, s *asmstmt.Statement, st *symtab.Table, log *diag.Log) (uint16, bool) {
	var acc uint16
	opIdx := 0
	ok := true

	for _, slot := range p.Slots {
		var v uint16
		switch slot.Type {
		case isa.FIXED:
			v = slot.Fixed & mask(slot.BitWidth)

		case isa.REGISTER:
			piece := s.Operands[opIdx]
			opIdx++
			idx, isReg := isa.RegisterIndex(piece.Text)
			if !isReg {
				log.Errorf(piece.Token.Row, piece.Token.Column, piece.Token.Length, s.SourceLine, "%q is not a register", piece.Token.Text)
				ok = false
				continue
			}
			v = idx & mask(slot.BitWidth)

		case isa.UNSIGNED_IMMEDIATE:
			piece := s.Operands[opIdx]
			opIdx++
			val := int64(piece.NumberValue)
			if val < 0 || val >= (1<<uint(slot.BitWidth)) {
				log.Errorf(piece.Token.Row, piece.Token.Column, piece.Token.Length, s.SourceLine,
					"immediate value %d does not fit in unsigned %d bits", val, slot.BitWidth)
				ok = false
				continue
			}
			v = uint16(val) & mask(slot.BitWidth)

		case isa.SIGNED_IMMEDIATE:
			piece := s.Operands[opIdx]
			opIdx++
			val := int64(piece.NumberValue)
			lo := -(int64(1) << uint(slot.BitWidth-1))
			hi := int64(1) << uint(slot.BitWidth-1)
			if val < lo || val >= hi {
				log.Errorf(piece.Token.Row, piece.Token.Column, piece.Token.Length, s.SourceLine,
					"immediate value %d does not fit in signed %d bits", val, slot.BitWidth)
				ok = false
				continue
			}
			v = uint16(val) & mask(slot.BitWidth)

		case isa.PC_OFFSET_SIGNED, isa.LABEL:
			piece := s.Operands[opIdx]
			opIdx++
			var offset int64
			if piece.Kind == asmstmt.NUMBER_OPERAND {
				offset = int64(piece.NumberValue)
			} else {
				sym, found := st.Lookup(piece.Text)
				if !found {
					log.Errorf(piece.Token.Row, piece.Token.Column, piece.Token.Length, s.SourceLine, "could not find label %q", piece.Token.Text)
					ok = false
					continue
				}
				st.Reference(piece.Text, piece.Token)
				offset = int64(sym.Address) - (int64(s.PC) + 1)
			}
			lo := -(int64(1) << uint(slot.BitWidth-1))
			hi := int64(1) << uint(slot.BitWidth-1)
			if offset < lo || offset >= hi {
				log.Errorf(piece.Token.Row, piece.Token.Column, piece.Token.Length, s.SourceLine,
					"offset %d does not fit in signed %d bits", offset, slot.BitWidth)
				ok = false
				continue
			}
			v = uint16(offset) & mask(slot.BitWidth)
		}

		acc = (acc << uint(slot.BitWidth)) | v
	}

	return acc, ok
}

func mask(width int) uint16 {
	return uint16((1 << uint(width)) - 1)
}

func report(log *diag.Log, m mode.Mode, row, col, length int, line, format string, args ...any) {
	if m == mode.Strict {
		log.Errorf(row, col, length, line, format, args...)
	} else {
		log.Warningf(row, col, length, line, format, args...)
	}
}

func rowOf(s *asmstmt.Statement) int {
	if s.Base != nil {
		return s.Base.Token.Row
	}
	if s.Label != nil {
		return s.Label.Token.Row
	}
	return s.Row
}

func colOf(s *asmstmt.Statement) int {
	if s.Base != nil {
		return s.Base.Token.Column
	}
	if s.Label != nil {
		return s.Label.Token.Column
	}
	return 0
}

func lenOf(s *asmstmt.Statement) int {
	if s.Base != nil {
		return s.Base.Token.Length
	}
	if s.Label != nil {
		return s.Label.Token.Length
	}
	return 1
}
