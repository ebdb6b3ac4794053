// Package mode defines the strict/liberal assembly mode shared by the
// passes that need it (pcassign, symtab, encoder).
//
// The original lc3tools toggles this at compile time via an
// "_LIBERAL_ASM" preprocessor define. Design note §9 requires it become a
// runtime configuration value threaded explicitly through the pipeline
// instead of a global or a build tag, so it lives here as a plain value
// type rather than a package-level variable.
package mode

// Mode selects whether certain anomalies (truncation, label shadowing,
// missing .end, stray lines after .end) are reported as WARNING (Liberal)
// or ERROR (Strict).
type Mode int

const (
	Strict Mode = iota
	Liberal
)

func (m Mode) String() string {
	if m == Liberal {
		return "liberal"
	}
	return "strict"
}
