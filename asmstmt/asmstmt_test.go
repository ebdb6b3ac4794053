package asmstmt_test

import (
	"testing"

	"github.com/lc3tools/lc3asm/asmstmt"
	"github.com/lc3tools/lc3asm/token"
)

func build(line string) *asmstmt.Statement {
	toks, _ := token.TokenizeLine(line, 0)
	return asmstmt.Build(toks, line, 0)
}

func TestBuildPlainInstruction(t *testing.T) {
	st := build("ADD R0,R1,R2")
	if st.Base == nil || st.Base.Kind != asmstmt.INSTRUCTION || st.Base.Text != "add" {
		t.Fatalf("expected ADD base, got %+v", st.Base)
	}
	if st.Label != nil {
		t.Errorf("expected no label, got %+v", st.Label)
	}
	if len(st.Operands) != 3 {
		t.Fatalf("expected 3 operands, got %d", len(st.Operands))
	}
	for i, op := range st.Operands {
		if op.Kind != asmstmt.REGISTER {
			t.Errorf("operand %d: expected REGISTER, got %v", i, op.Kind)
		}
	}
}

func TestBuildPseudoOp(t *testing.T) {
	st := build(".ORIG x3000")
	if st.Base == nil || st.Base.Kind != asmstmt.PSEUDO_OP || st.Base.Text != ".orig" {
		t.Fatalf("expected .orig base, got %+v", st.Base)
	}
	if len(st.Operands) != 1 || st.Operands[0].Kind != asmstmt.NUMBER_OPERAND {
		t.Fatalf("expected one NUMBER_OPERAND, got %+v", st.Operands)
	}
}

func TestBuildLabelThenInstruction(t *testing.T) {
	st := build("LOOP ADD R0,R0,#-1")
	if st.Label == nil || st.Label.Kind != asmstmt.LABEL || st.Label.Text != "loop" {
		t.Fatalf("expected LOOP label, got %+v", st.Label)
	}
	if st.Base == nil || st.Base.Text != "add" {
		t.Fatalf("expected add base, got %+v", st.Base)
	}
	if len(st.Operands) != 3 {
		t.Fatalf("expected 3 operands, got %d", len(st.Operands))
	}
}

func TestBuildLabelOnly(t *testing.T) {
	st := build("AGOODLABEL")
	if !st.IsLabelOnly() {
		t.Fatalf("expected a label-only statement, got %+v", st)
	}
	if st.Label.Text != "agoodlabel" {
		t.Errorf("got label %q", st.Label.Text)
	}
}

func TestBuildInstructionWordUsedAsLabelBeforePseudo(t *testing.T) {
	// §4.3: token[0] matches an instruction exactly, but token[1] is a
	// pseudo-op, so token[0] is reclassified as a label (accidental reuse
	// of a mnemonic as a label name).
	st := build("ADD .FILL #5")
	if st.Label == nil || st.Label.Kind != asmstmt.LABEL || st.Label.Text != "add" {
		t.Fatalf("expected ADD to be reclassified as a label, got %+v", st.Label)
	}
	if st.Base == nil || st.Base.Text != ".fill" {
		t.Fatalf("expected .fill base, got %+v", st.Base)
	}
}

func TestBuildNumericLeadingTokenBecomesLabelForRejection(t *testing.T) {
	st := build("#5 ADD R0,R0,#1")
	if st.Label == nil || st.Label.Kind != asmstmt.NUMBER_OPERAND {
		t.Fatalf("expected a NUMBER_OPERAND label placeholder, got %+v", st.Label)
	}
}

func TestBuildRegisterAfterNearMissFavorsInstruction(t *testing.T) {
	// "ADDX" is a one-character typo of "add" (distance 1 < 2), and it's
	// followed by a register operand, so §4.3 treats it as the intended
	// instruction rather than a label.
	st := build("ADDX R0,R1,R2")
	if st.Base == nil || st.Base.Kind != asmstmt.INSTRUCTION {
		t.Fatalf("expected ADDX to be classified as an instruction near-miss, got base=%+v label=%+v", st.Base, st.Label)
	}
}

func TestOperandTypeString(t *testing.T) {
	st := build("ADD R0,R1,R2")
	if got := st.OperandTypeString(); got != "rrr" {
		t.Errorf("got %q, want %q", got, "rrr")
	}

	st2 := build(".FILL x10")
	if got := st2.OperandTypeString(); got != "n" {
		t.Errorf("got %q, want %q", got, "n")
	}

	st3 := build("BRnzp TARGET")
	if got := st3.OperandTypeString(); got != "s" {
		t.Errorf("got %q, want %q", got, "s")
	}
}

func TestBuildStringOperandPreservesCase(t *testing.T) {
	// §3: case-folding applies to labels, not to string-literal contents.
	st := build(`.STRINGZ "Hi!"`)
	if len(st.Operands) != 1 || st.Operands[0].Kind != asmstmt.STRING_OPERAND {
		t.Fatalf("expected one STRING_OPERAND, got %+v", st.Operands)
	}
	if st.Operands[0].Text != "Hi!" {
		t.Errorf("got %q, want %q (case must be preserved)", st.Operands[0].Text, "Hi!")
	}
}

func TestBuildEmptyLineYieldsEmptyStatement(t *testing.T) {
	st := build("")
	if st.Label != nil || st.Base != nil || len(st.Operands) != 0 {
		t.Errorf("expected an empty statement, got %+v", st)
	}
}
