// Package output creates termenv outputs with the color rules shared by every
// terminal writer in mesha.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile returns the color profile for a writer. NO_COLOR always wins. CI
// logs get plain ANSI, interactive terminals are probed.
func Profile(ci bool) termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	if ci {
		return termenv.ANSI
	}
	return termenv.EnvColorProfile()
}

// New returns an output for w using the interactive profile. A nil writer means stderr.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return build(w, Profile(false), opts)
}

// NewCI returns an output for w using the CI profile. A nil writer means stderr.
func NewCI(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return build(w, Profile(true), opts)
}

func build(w io.Writer, p termenv.Profile, opts []termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	opts = append(opts, termenv.WithProfile(p), termenv.WithTTY(true))
	return termenv.NewOutput(w, opts...)
}
