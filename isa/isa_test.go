package isa_test

import (
	"testing"

	"github.com/lc3tools/lc3asm/isa"
)

func TestRegisterIndex(t *testing.T) {
	for i := 0; i < 8; i++ {
		name := "r" + string(rune('0'+i))
		idx, ok := isa.RegisterIndex(name)
		if !ok || int(idx) != i {
			t.Errorf("RegisterIndex(%q) = %d,%v, want %d,true", name, idx, ok, i)
		}
	}
	if _, ok := isa.RegisterIndex("r8"); ok {
		t.Error("r8 should not be a register")
	}
	if !isa.IsRegisterName("R3") {
		t.Error("IsRegisterName should be case-insensitive")
	}
}

func TestIsInstructionName(t *testing.T) {
	for _, name := range []string{"add", "AND", "Ret", "brnzp", "jsrr", "halt"} {
		if !isa.IsInstructionName(name) {
			t.Errorf("expected %q to be a known instruction", name)
		}
	}
	if isa.IsInstructionName("foo") {
		t.Error("foo should not be a known instruction")
	}
}

func TestNearestInstructionDistanceExactMatch(t *testing.T) {
	if d := isa.NearestInstructionDistance("add"); d != 0 {
		t.Errorf("got %d, want 0", d)
	}
	if d := isa.NearestInstructionDistance("ADD"); d != 0 {
		t.Errorf("expected case-insensitive match, got %d", d)
	}
}

func TestNearestInstructionDistanceNearMiss(t *testing.T) {
	if d := isa.NearestInstructionDistance("adn"); d != 1 {
		t.Errorf("got %d, want 1", d)
	}
}

func TestNearestInstructionNamesOrderedAndTieBroken(t *testing.T) {
	names := isa.NearestInstructionNames("ld", 3)
	if len(names) != 3 {
		t.Fatalf("expected 3 names, got %d", len(names))
	}
	if names[0] != "ld" {
		t.Errorf("nearest to 'ld' should be 'ld' itself, got %q", names[0])
	}
}

func TestPatternsForUnknownMnemonic(t *testing.T) {
	if pats := isa.PatternsFor("nope"); pats != nil {
		t.Errorf("expected nil patterns for unknown mnemonic, got %v", pats)
	}
}

func TestPatternTotalWidthIsSixteenBits(t *testing.T) {
	for name, pats := range isa.Patterns {
		for i, p := range pats {
			total := 0
			for _, s := range p.Slots {
				total += s.BitWidth
			}
			if total != 16 {
				t.Errorf("%s pattern %d: slots sum to %d bits, want 16", name, i, total)
			}
		}
	}
}

func TestAddHasTwoForms(t *testing.T) {
	pats := isa.PatternsFor("add")
	if len(pats) != 2 {
		t.Fatalf("expected 2 ADD forms, got %d", len(pats))
	}
	forms := map[string]bool{}
	for _, p := range pats {
		forms[p.OperandString()] = true
	}
	if !forms["rrr"] || !forms["rrn"] {
		t.Errorf("expected rrr and rrn forms, got %v", forms)
	}
}

func TestBRSuffixesAreDistinctMnemonics(t *testing.T) {
	want := []string{"br", "brn", "brz", "brp", "brnz", "brzp", "brnp", "brnzp"}
	for _, name := range want {
		pats := isa.PatternsFor(name)
		if len(pats) != 1 {
			t.Fatalf("%s: expected exactly one pattern, got %d", name, len(pats))
		}
		if got := pats[0].OperandString(); got != "s" {
			t.Errorf("%s: operand string %q, want %q", name, got, "s")
		}
	}
}

func TestTrapAliasesAreFullyFixed(t *testing.T) {
	for _, name := range []string{"getc", "out", "puts", "in", "putsp", "halt"} {
		pats := isa.PatternsFor(name)
		if len(pats) != 1 {
			t.Fatalf("%s: expected one pattern, got %d", name, len(pats))
		}
		if got := pats[0].OperandString(); got != "" {
			t.Errorf("%s: expected a fully-fixed (zero-operand) encoding, got %q", name, got)
		}
	}
}

func TestIsPseudoNameRequiresLeadingDot(t *testing.T) {
	if isa.IsPseudoName("orig") {
		t.Error("a pseudo-op name without a leading dot should not match")
	}
	if !isa.IsPseudoName(".ORIG") {
		t.Error("expected case-insensitive match for .ORIG")
	}
}

func TestFormatHex(t *testing.T) {
	if got := isa.FormatHex(0x3000); got != "x3000" {
		t.Errorf("got %q, want %q", got, "x3000")
	}
}
