// Package symtab implements the symbol builder (spec component C5): a
// case-folded label-to-address map built by a single pass over a
// statement sequence, enforcing naming and uniqueness rules.
//
// Grounded on parser/symbols.go's SymbolTable (map-backed Define/Lookup
// shape) and original_source/backend/assembler.cpp's buildSymbolTable for
// the digit-leading / shadows-instruction-name / duplicate-label checks.
package symtab

import (
	"github.com/lc3tools/lc3asm/asmstmt"
	"github.com/lc3tools/lc3asm/diag"
	"github.com/lc3tools/lc3asm/isa"
	"github.com/lc3tools/lc3asm/mode"
	"github.com/lc3tools/lc3asm/token"
)

// Symbol is one defined label.
type Symbol struct {
	Name       string
	Address    uint16
	DefPos     token.Token
	References []token.Token
}

// Table is the label-to-address map produced by Build. It is read-only
// once constructed, except for References, which C6 appends to as it
// resolves operands (an enrichment over the bare spec §3 model, so tools
// like lint can report unused labels).
type Table struct {
	symbols map[string]*Symbol
}

// New returns an empty Table.
func New() *Table {
	return &Table{symbols: map[string]*Symbol{}}
}

// Lookup returns the Symbol for a case-folded name.
func (t *Table) Lookup(name string) (*Symbol, bool) {
	s, ok := t.symbols[name]
	return s, ok
}

// Reference records that name was referenced at pos, for later unused-
// label reporting. It is a no-op if name is undefined.
func (t *Table) Reference(name string, pos token.Token) {
	if s, ok := t.symbols[name]; ok {
		s.References = append(s.References, pos)
	}
}

// All returns every defined symbol, in no particular order.
func (t *Table) All() []*Symbol {
	out := make([]*Symbol, 0, len(t.symbols))
	for _, s := range t.symbols {
		out = append(out, s)
	}
	return out
}

// Unused returns symbols with no recorded references.
func (t *Table) Unused() []*Symbol {
	var out []*Symbol
	for _, s := range t.symbols {
		if len(s.References) == 0 {
			out = append(out, s)
		}
	}
	return out
}

// Build constructs the symbol table from a fully PC-assigned statement
// sequence (§4.5). Only statements with a non-nil label are considered.
func Build(stmts []*asmstmt.Statement, m mode.Mode, log *diag.Log) *Table {
	t := New()

	for _, st := range stmts {
		if st.Label == nil {
			continue
		}

		if st.Label.Kind == asmstmt.NUMBER_OPERAND {
			tok := st.Label.Token
			log.Errorf(tok.Row, tok.Column, tok.Length, st.SourceLine, "label cannot be a numeric value")
			continue
		}

		tok := st.Label.Token
		name := st.Label.Text

		if st.Base == nil && len(st.Operands) > 0 {
			log.Errorf(tok.Row, tok.Column, tok.Length, st.SourceLine, "label %q is followed by stray operands", tok.Text)
			continue
		}

		// §4.5/§7: digit-leading and instruction-shadowing labels are
		// rejected only in strict mode; liberal mode accepts them with no
		// diagnostic at all (unlike duplicate labels, which always warn).
		if m == mode.Strict && len(name) > 0 && name[0] >= '0' && name[0] <= '9' {
			log.Errorf(tok.Row, tok.Column, tok.Length, st.SourceLine, "label %q cannot begin with a digit", tok.Text)
			continue
		}

		if m == mode.Strict && isa.IsInstructionName(name) {
			log.Errorf(tok.Row, tok.Column, tok.Length, st.SourceLine, "label %q is identical to an instruction name", tok.Text)
			continue
		}

		if existing, ok := t.symbols[name]; ok {
			if m == mode.Strict {
				log.Errorf(tok.Row, tok.Column, tok.Length, st.SourceLine, "label %q already defined", tok.Text)
				continue
			}
			log.Warningf(tok.Row, tok.Column, tok.Length, st.SourceLine, "label %q redefined, overwriting previous definition", tok.Text)
			existing.Address = st.PC
			existing.DefPos = tok
			continue
		}

		t.symbols[name] = &Symbol{Name: name, Address: st.PC, DefPos: tok}
	}

	return t
}
