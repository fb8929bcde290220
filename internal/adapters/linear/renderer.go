// Package linear provides a synchronous, line-oriented watch renderer for CI
// environments and pipes.
package linear

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/mesha/internal/core/domain"
	"go.trai.ch/mesha/internal/ui/output"
	"go.trai.ch/mesha/internal/ui/report"
)

// Renderer implements ports.Renderer for non-interactive environments.
// Reports go to stdout, change notices and errors to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output
	text   *report.Text

	mu      sync.Mutex
	stopped bool
	done    chan struct{}
	once    sync.Once
}

// NewRenderer creates a Renderer. Nil writers default to the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	out := output.NewCI(stderr)
	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: out,
		text:   report.NewTextWithProfile(stdout, out.Profile),
		done:   make(chan struct{}),
	}
}

// Start is a no-op; the renderer prints synchronously.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop makes every later callback a no-op and releases Wait.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	r.stopped = true
	r.mu.Unlock()
	r.once.Do(func() { close(r.done) })
	return nil
}

// Wait blocks until Stop is called.
func (r *Renderer) Wait() error {
	<-r.done
	return nil
}

// OnChanges prints one line summarizing the changes that triggered a round.
func (r *Renderer) OnChanges(events []domain.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || len(events) == 0 {
		return
	}

	parts := make([]string, 0, len(events))
	for _, ev := range events {
		parts = append(parts, ev.Object.Short()+" "+ev.Kind.String())
	}
	prefix := r.output.String("[watch]").Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s %d change(s): %s\n", prefix, len(events), strings.Join(parts, ", "))
}

// OnReport prints the report of a completed round.
func (r *Renderer) OnReport(rep domain.Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return
	}

	if err := r.text.Report(&rep); err != nil {
		_, _ = fmt.Fprintf(r.stderr, "cannot write report: %v\n", err)
	}
}

// OnError prints a failed round.
func (r *Renderer) OnError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped || err == nil {
		return
	}

	symbol := r.output.String("✗").Foreground(termenv.ANSIRed).String()
	_, _ = fmt.Fprintf(r.stderr, "%s Round failed: %v\n", symbol, err)
}
