package tools

import (
	"strings"
	"testing"

	"github.com/lc3tools/lc3asm/mode"
)

func TestLint_UndefinedLabel(t *testing.T) {
	source := ".orig x3000\n\tbr undefined_label\n.end"

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	foundError := false
	for _, issue := range issues {
		if issue.Code == "UNDEF_LABEL" && strings.Contains(issue.Message, "undefined_label") {
			foundError = true
			if issue.Level != LintError {
				t.Errorf("expected error level, got %v", issue.Level)
			}
		}
	}
	if !foundError {
		t.Error("expected undefined label error")
	}
}

func TestLint_DuplicateLabel(t *testing.T) {
	source := ".orig x3000\nloop add r0,r0,#1\nloop add r0,r0,#1\n.end"

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	foundIssue := false
	for _, issue := range issues {
		if strings.Contains(issue.Message, "already defined") {
			foundIssue = true
		}
	}
	if !foundIssue {
		t.Error("expected duplicate label diagnostic")
	}
}

func TestLint_UnusedLabel(t *testing.T) {
	source := ".orig x3000\nstart halt\nunused add r0,r0,#1\n.end"

	options := DefaultLintOptions()
	options.CheckUnused = true

	linter := NewLinter(options)
	issues := linter.Lint(source, "test.asm")

	foundWarning := false
	for _, issue := range issues {
		if issue.Code == "UNUSED_LABEL" && strings.Contains(issue.Message, "unused") {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Error("expected unused label warning")
	}
}

func TestLint_ValidProgram(t *testing.T) {
	source := ".orig x3000\nstart add r0,r0,#1\nbrnzp start\nhalt\n.end"

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	for _, issue := range issues {
		if issue.Level == LintError {
			t.Errorf("unexpected error in valid program: %v", issue.Message)
		}
	}
}

func TestLint_SuggestionForTypo(t *testing.T) {
	source := ".orig x3000\nloop add r0,r0,#1\nbrnzp looop\n.end"

	options := DefaultLintOptions()
	options.SuggestFixes = true

	linter := NewLinter(options)
	issues := linter.Lint(source, "test.asm")

	foundSuggestion := false
	for _, issue := range issues {
		if issue.Code == "UNDEF_LABEL" && strings.Contains(issue.Message, `did you mean "loop"`) {
			foundSuggestion = true
		}
	}
	if !foundSuggestion {
		t.Error("expected suggestion for typo'd label reference")
	}
}

func TestLint_NoIssues(t *testing.T) {
	source := ".orig x3000\nhalt\n.end"

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	for _, issue := range issues {
		if issue.Level == LintError {
			t.Errorf("unexpected error: %v", issue.Message)
		}
	}
}

func TestLint_OutOfRegion(t *testing.T) {
	source := ".orig x3000\nhalt\n.end\nadd r0,r0,#1"

	options := DefaultLintOptions()
	options.CheckRegion = true

	linter := NewLinter(options)
	issues := linter.Lint(source, "test.asm")

	found := false
	for _, issue := range issues {
		if issue.Code == "OUT_OF_REGION" || issue.Code == "PASS_ERROR" || issue.Code == "PASS_WARNING" {
			found = true
		}
	}
	if !found {
		t.Error("expected a region-placement diagnostic for the trailing statement")
	}
}

func TestLint_MultipleIssues(t *testing.T) {
	source := ".orig x3000\nloop add r0,r0,#1\nbrnzp undefined\nloop add r0,r0,#1\n.end"

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	if len(issues) < 2 {
		t.Errorf("expected multiple issues, got %d", len(issues))
	}
	for i := 1; i < len(issues); i++ {
		if issues[i].Row < issues[i-1].Row {
			t.Error("issues not sorted by row")
		}
	}
}

func TestLint_LiberalModeStillWarnsUnused(t *testing.T) {
	source := ".orig x3000\nunused add r0,r0,#1\nstart halt\n.end"

	options := DefaultLintOptions()
	options.Mode = mode.Liberal
	options.CheckUnused = true

	linter := NewLinter(options)
	issues := linter.Lint(source, "test.asm")

	foundWarning := false
	for _, issue := range issues {
		if issue.Code == "UNUSED_LABEL" {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Error("expected unused label warning in liberal mode")
	}
}

func TestLint_RegisterOperandNotTreatedAsLabel(t *testing.T) {
	source := ".orig x3000\njmp r0\n.end"

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	for _, issue := range issues {
		if issue.Code == "UNDEF_LABEL" {
			t.Errorf("should not report undefined label for a register operand: %v", issue.Message)
		}
	}
}

func TestLint_FillWithValidLabel(t *testing.T) {
	source := ".orig x3000\nstart halt\ndata .fill start\n.end"

	linter := NewLinter(DefaultLintOptions())
	issues := linter.Lint(source, "test.asm")

	for _, issue := range issues {
		if issue.Code == "UNDEF_LABEL" {
			t.Errorf("should not report undefined label for a valid .fill reference: %v", issue.Message)
		}
	}
}
