// Package detector selects the watch-mode renderer for the current terminal.
package detector

import (
	"os"

	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// OutputMode represents the rendering mode for watch sessions.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTUI forces the interactive TUI renderer.
	ModeTUI
	// ModeLinear forces the line-based renderer.
	ModeLinear
)

func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// IsCI reports whether the CI environment variable requests CI behavior.
func IsCI(getenv func(string) string) bool {
	ci := getenv("CI")
	return ci == "true" || ci == "1"
}

// Detect returns the mode for out: linear when out is not a terminal or when
// running in CI, the TUI otherwise.
func Detect(out *os.File, getenv func(string) string) OutputMode {
	if out == nil || !term.IsTerminal(int(out.Fd())) || IsCI(getenv) {
		return ModeLinear
	}
	return ModeTUI
}

// DetectEnvironment inspects stdout and the process environment.
func DetectEnvironment() OutputMode {
	return Detect(os.Stdout, os.Getenv)
}

// ParseMode parses the --output-mode flag. "ci" is accepted as an alias for linear.
func ParseMode(flag string) (OutputMode, error) {
	switch flag {
	case "auto", "":
		return ModeAuto, nil
	case "tui":
		return ModeTUI, nil
	case "linear", "ci":
		return ModeLinear, nil
	default:
		return ModeAuto, zerr.With(zerr.Wrap(domain.ErrInvalidOutputMode, "cannot parse output mode"), "output_mode", flag)
	}
}

// ResolveMode applies a user override to the detected mode.
func ResolveMode(detected, override OutputMode) OutputMode {
	if override == ModeAuto {
		return detected
	}
	return override
}
