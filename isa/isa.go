// Package isa is the static instruction/pseudo-op catalog for the LC-3
// family (spec component C2): register names, pseudo-op shapes, and the
// instruction pattern table used by the encoder to validate and encode
// statements.
package isa

import (
	"strconv"
	"strings"

	"github.com/lc3tools/lc3asm/lev"
)

// SlotType identifies the kind of value an instruction pattern slot holds.
type SlotType int

const (
	// FIXED slots carry a constant bit pattern contributed by the
	// instruction itself (opcode bits, unused bits, br condition bits).
	FIXED SlotType = iota
	// REGISTER slots hold a 3-bit general-purpose register index.
	REGISTER
	// SIGNED_IMMEDIATE slots hold a two's-complement literal.
	SIGNED_IMMEDIATE
	// UNSIGNED_IMMEDIATE slots hold a literal interpreted as unsigned.
	UNSIGNED_IMMEDIATE
	// PC_OFFSET_SIGNED slots hold a signed displacement from PC+1,
	// resolved either from a literal or from a label through the symbol
	// table.
	PC_OFFSET_SIGNED
	// LABEL slots hold a symbol reference with no numeric-literal form.
	// No pattern in this catalog currently needs one; it exists so the
	// slot-type enumeration matches the full set the data model defines.
	LABEL
)

// Slot is one entry in an instruction pattern's bit layout.
type Slot struct {
	Type     SlotType
	BitWidth int
	// Fixed is the constant value for FIXED slots, masked to BitWidth.
	Fixed uint16
}

// Pattern is one encodable form of an instruction mnemonic. A mnemonic may
// have more than one Pattern (e.g. ADD has a register form and an
// immediate form); the total bit width across Slots is always 16.
type Pattern struct {
	Mnemonic string // lowercase
	Slots    []Slot
}

// OperandString returns the pattern-string used for candidate scoring
// (§4.6.1): one character per non-FIXED slot, 'r' for REGISTER,
// 'n' for (UN)SIGNED_IMMEDIATE, 's' for PC_OFFSET_SIGNED/LABEL.
func (p Pattern) OperandString() string {
	var sb strings.Builder
	for _, s := range p.Slots {
		switch s.Type {
		case REGISTER:
			sb.WriteByte('r')
		case SIGNED_IMMEDIATE, UNSIGNED_IMMEDIATE:
			sb.WriteByte('n')
		case PC_OFFSET_SIGNED, LABEL:
			sb.WriteByte('s')
		}
	}
	return sb.String()
}

func fixed(width int, value uint16) Slot {
	return Slot{Type: FIXED, BitWidth: width, Fixed: value}
}

func reg(width int) Slot { return Slot{Type: REGISTER, BitWidth: width} }

func simm(width int) Slot { return Slot{Type: SIGNED_IMMEDIATE, BitWidth: width} }

func uimm(width int) Slot { return Slot{Type: UNSIGNED_IMMEDIATE, BitWidth: width} }

func pcoff(width int) Slot { return Slot{Type: PC_OFFSET_SIGNED, BitWidth: width} }

// brPattern builds one of the eight BR-suffix patterns, per design note §9:
// the NZP mask is a fixed 3-bit field baked into the pattern rather than
// derived by stripping a mnemonic suffix at parse time.
func brPattern(mnemonic string, nzp uint16) Pattern {
	return Pattern{
		Mnemonic: mnemonic,
		Slots: []Slot{
			fixed(4, 0x0),
			fixed(3, nzp),
			pcoff(9),
		},
	}
}

// trapAlias builds one of the zero-operand TRAP vector pseudo-instructions
// (GETC, OUT, PUTS, IN, PUTSP, HALT), each a fully-fixed TRAP encoding.
func trapAlias(mnemonic string, vector uint16) Pattern {
	return Pattern{
		Mnemonic: mnemonic,
		Slots: []Slot{
			fixed(4, 0xF),
			fixed(4, 0x0),
			fixed(8, vector),
		},
	}
}

// Patterns is the full instruction catalog, indexed by lowercase mnemonic.
var Patterns = buildPatterns()

func buildPatterns() map[string][]Pattern {
	m := map[string][]Pattern{}
	add := func(p Pattern) { m[p.Mnemonic] = append(m[p.Mnemonic], p) }

	add(Pattern{"add", []Slot{fixed(4, 0x1), reg(3), reg(3), fixed(3, 0x0), reg(3)}})
	add(Pattern{"add", []Slot{fixed(4, 0x1), reg(3), reg(3), fixed(1, 0x1), simm(5)}})

	add(Pattern{"and", []Slot{fixed(4, 0x5), reg(3), reg(3), fixed(3, 0x0), reg(3)}})
	add(Pattern{"and", []Slot{fixed(4, 0x5), reg(3), reg(3), fixed(1, 0x1), simm(5)}})

	add(Pattern{"not", []Slot{fixed(4, 0x9), reg(3), reg(3), fixed(6, 0x3F)}})

	add(brPattern("br", 0x7))
	add(brPattern("brn", 0x4))
	add(brPattern("brz", 0x2))
	add(brPattern("brp", 0x1))
	add(brPattern("brnz", 0x6))
	add(brPattern("brzp", 0x3))
	add(brPattern("brnp", 0x5))
	add(brPattern("brnzp", 0x7))

	add(Pattern{"jmp", []Slot{fixed(4, 0xC), fixed(3, 0x0), reg(3), fixed(6, 0x0)}})
	add(Pattern{"ret", []Slot{fixed(4, 0xC), fixed(3, 0x0), fixed(3, 0x7), fixed(6, 0x0)}})

	add(Pattern{"jsr", []Slot{fixed(4, 0x4), fixed(1, 0x1), pcoff(11)}})
	add(Pattern{"jsrr", []Slot{fixed(4, 0x4), fixed(3, 0x0), reg(3), fixed(6, 0x0)}})

	add(Pattern{"ld", []Slot{fixed(4, 0x2), reg(3), pcoff(9)}})
	add(Pattern{"ldi", []Slot{fixed(4, 0xA), reg(3), pcoff(9)}})
	add(Pattern{"ldr", []Slot{fixed(4, 0x6), reg(3), reg(3), simm(6)}})
	add(Pattern{"lea", []Slot{fixed(4, 0xE), reg(3), pcoff(9)}})

	add(Pattern{"st", []Slot{fixed(4, 0x3), reg(3), pcoff(9)}})
	add(Pattern{"sti", []Slot{fixed(4, 0xB), reg(3), pcoff(9)}})
	add(Pattern{"str", []Slot{fixed(4, 0x7), reg(3), reg(3), simm(6)}})

	add(Pattern{"trap", []Slot{fixed(4, 0xF), fixed(4, 0x0), uimm(8)}})

	add(Pattern{"rti", []Slot{fixed(4, 0x8), fixed(12, 0x000)}})
	// RTT is a non-standard alias carried over from the reference LC-3
	// assemblers in the corpus; it encodes identically to RTI.
	add(Pattern{"rtt", []Slot{fixed(4, 0x8), fixed(12, 0x000)}})

	add(trapAlias("getc", 0x20))
	add(trapAlias("out", 0x21))
	add(trapAlias("puts", 0x22))
	add(trapAlias("in", 0x23))
	add(trapAlias("putsp", 0x24))
	add(trapAlias("halt", 0x25))

	for name, pats := range m {
		for _, p := range pats {
			total := 0
			for _, s := range p.Slots {
				total += s.BitWidth
			}
			if total != 16 {
				panic("isa: pattern " + name + " does not sum to 16 bits")
			}
		}
	}
	return m
}

// mnemonics is the flat list of every catalog mnemonic, used for
// Levenshtein nearest-match queries.
var mnemonics = buildMnemonicList()

func buildMnemonicList() []string {
	out := make([]string, 0, len(Patterns))
	for name := range Patterns {
		out = append(out, name)
	}
	return out
}

// PatternsFor returns the candidate patterns for a lowercase mnemonic, or
// nil if the mnemonic is not in the catalog.
func PatternsFor(name string) []Pattern {
	return Patterns[strings.ToLower(name)]
}

// IsInstructionName reports whether name (case-insensitively) is a known
// instruction mnemonic.
func IsInstructionName(name string) bool {
	_, ok := Patterns[strings.ToLower(name)]
	return ok
}

// NearestInstructionDistance returns the minimum Levenshtein distance from
// name to any mnemonic in the catalog (§4.2).
func NearestInstructionDistance(name string) int {
	lname := strings.ToLower(name)
	best := -1
	for _, m := range mnemonics {
		d := lev.Distance(lname, m)
		if best == -1 || d < best {
			best = d
		}
	}
	return best
}

// NearestInstructionNames returns up to n mnemonics nearest to name by
// Levenshtein distance, ordered nearest-first, ties broken alphabetically.
func NearestInstructionNames(name string, n int) []string {
	lname := strings.ToLower(name)
	type scored = struct {
		name string
		dist int
	}
	all := make([]scored, 0, len(mnemonics))
	for _, m := range mnemonics {
		all = append(all, scored{m, lev.Distance(lname, m)})
	}
	sortScored(all)
	if n > len(all) {
		n = len(all)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, all[i].name)
	}
	return out
}

func sortScored(s []struct {
	name string
	dist int
}) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0; j-- {
			if s[j].dist < s[j-1].dist || (s[j].dist == s[j-1].dist && s[j].name < s[j-1].name) {
				s[j], s[j-1] = s[j-1], s[j]
			} else {
				break
			}
		}
	}
}

// registerNames maps case-folded register names to their 3-bit index.
var registerNames = map[string]uint16{
	"r0": 0, "r1": 1, "r2": 2, "r3": 3,
	"r4": 4, "r5": 5, "r6": 6, "r7": 7,
}

// IsRegisterName reports whether s (case-insensitively) names one of the
// eight general-purpose registers.
func IsRegisterName(s string) bool {
	_, ok := registerNames[strings.ToLower(s)]
	return ok
}

// RegisterIndex returns the 3-bit index of a register name.
func RegisterIndex(s string) (uint16, bool) {
	v, ok := registerNames[strings.ToLower(s)]
	return v, ok
}

// PseudoOp describes one of the five pseudo-op shapes (§4.2).
type PseudoOp struct {
	Name         string // lowercase, including leading '.'
	OperandCount int
	// OperandKind is "n" (numeric), "s" (string), "ns" (numeric or
	// label), or "" (no operands).
	OperandKind string
}

// PseudoOps is the static catalog of pseudo-op shapes.
var PseudoOps = map[string]PseudoOp{
	".orig":    {".orig", 1, "n"},
	".fill":    {".fill", 1, "ns"},
	".blkw":    {".blkw", 1, "n"},
	".stringz": {".stringz", 1, "s"},
	".end":     {".end", 0, ""},
}

// IsPseudoName reports whether s (case-insensitively) names one of the
// five pseudo-ops. Pseudo-ops always begin with '.'.
func IsPseudoName(s string) bool {
	if s == "" || s[0] != '.' {
		return false
	}
	_, ok := PseudoOps[strings.ToLower(s)]
	return ok
}

// PseudoOpFor returns the PseudoOp for name, or false if unknown.
func PseudoOpFor(name string) (PseudoOp, bool) {
	p, ok := PseudoOps[strings.ToLower(name)]
	return p, ok
}

// FormatHex renders v as "x" followed by lowercase hex digits with no
// zero padding (x3000, x1f), the form this ISA's diagnostics and examples
// favor.
func FormatHex(v uint16) string {
	return "x" + strconv.FormatUint(uint64(v), 16)
}
