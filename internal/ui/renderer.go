// Package ui renders human-facing terminal output: spinners, colored
// status lines, and the generation summary printed after a run. It never
// touches the structured reporter (internal/diag) — that collaborator
// exists precisely so warnings survive even when nobody is watching a
// terminal.
package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Renderer handles terminal output with colors and spinners
type Renderer struct {
	mu          sync.Mutex
	spinning    bool
	spinnerDone chan struct{}
}

// NewRenderer creates a new Renderer instance
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Colors
var (
	green   = color.New(color.FgGreen).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	cyan    = color.New(color.FgCyan).SprintFunc()
	dim     = color.New(color.Faint).SprintFunc()
	bold    = color.New(color.Bold).SprintFunc()
)

// Spinner frames
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// StartSpinner starts an animated spinner with a message
func (r *Renderer) StartSpinner(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.spinning {
		return
	}

	r.spinning = true
	r.spinnerDone = make(chan struct{})

	msg := fmt.Sprintf(format, args...)

	go func() {
		frame := 0
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for {
			select {
			case <-r.spinnerDone:
				return
			case <-ticker.C:
				r.mu.Lock()
				fmt.Fprintf(os.Stderr, "\r%s %s", cyan(spinnerFrames[frame]), msg)
				r.mu.Unlock()
				frame = (frame + 1) % len(spinnerFrames)
			}
		}
	}()
}

// StopSpinner stops the spinner and clears its line; success is not
// rendered
func (r *Renderer) StopSpinner(success bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.spinning {
		return
	}

	close(r.spinnerDone)
	r.spinning = false

	// Clear the spinner line
	fmt.Fprint(os.Stderr, "\r\033[K")
}

// Success prints a success message
func (r *Renderer) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", green("✓"), msg)
}

// Error prints an error message
func (r *Renderer) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", red("✗"), msg)
}

// Warning prints a warning message
func (r *Renderer) Warning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s\n", yellow("!"), msg)
}

// Info prints an info message
func (r *Renderer) Info(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "  %s\n", msg)
}

// Dim prints dimmed/secondary text
func (r *Renderer) Dim(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "  %s\n", dim(msg))
}

// ProjectSummary is one project's worth of generation output, rendered
// by RenderGenerationSummary.
type ProjectSummary struct {
	Name          string
	ContainerPath string
	TargetCount   int
	SchemeCount   int
}

// RenderGenerationSummary prints the per-project outcome of a generation
// run: every project container written, followed by any recoverable
// warnings the reporter collaborator collected along the way (spec.md §7
// — warnings never fail the run, but the user still needs to see them).
func (r *Renderer) RenderGenerationSummary(projects []ProjectSummary, warnings []string) {
	if len(projects) == 0 {
		r.Info("No projects generated")
		return
	}

	fmt.Fprintf(os.Stderr, "\n%s\n", bold("Generated"))
	for _, p := range projects {
		fmt.Fprintf(os.Stderr, "  %s %s %s\n",
			green("✓"),
			p.Name,
			dim(fmt.Sprintf("(%d targets, %d schemes)", p.TargetCount, p.SchemeCount)),
		)
		fmt.Fprintf(os.Stderr, "    %s\n", dim(p.ContainerPath))
	}

	if len(warnings) > 0 {
		fmt.Fprintf(os.Stderr, "\n%s\n", bold(strings.ToUpper("warnings")))
		for _, w := range warnings {
			r.Warning("%s", w)
		}
	}
	fmt.Fprintln(os.Stderr)
}
