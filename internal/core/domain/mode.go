package domain

import "fmt"

// Mode selects exactly one baseline lifecycle behavior per invocation.
// Modeled as a closed variant set instead of independent flags so the
// "exactly one mode" invariant holds structurally.
type Mode string

const (
	// ModeRegression compares the current result to the stored baseline.
	// Read-only with respect to the store.
	ModeRegression Mode = "regression"
	// ModeUpdateBaseline overwrites the stored baseline wholesale.
	ModeUpdateBaseline Mode = "update-baseline"
	// ModeRebase writes a side-by-side inspection artifact and never fails
	// the sample.
	ModeRebase Mode = "rebase"
)

// ParseMode validates mode selection before any extraction or I/O happens.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeRegression, ModeUpdateBaseline, ModeRebase:
		return Mode(s), nil
	case "":
		return ModeRegression, nil
	default:
		return "", WrapError(ErrConfiguration, "parse mode",
			fmt.Errorf("unknown mode %q, want %s, %s or %s", s, ModeRegression, ModeUpdateBaseline, ModeRebase))
	}
}
