// Package linear renders build progress as plain chronological lines, suited to CI logs.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/folio-site/folio/internal/ui/output"
	"github.com/folio-site/folio/internal/ui/style"
	"github.com/muesli/termenv"
)

// Renderer implements ports.Renderer with one line per event, prefixed by the unit name.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu      sync.Mutex
	units   map[string]*unitState
	buffers map[string]*bytes.Buffer
}

type unitState struct {
	name      string
	startTime time.Time
}

// NewRenderer creates a Renderer. Nil writers default to the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout:  stdout,
		stderr:  stderr,
		output:  output.NewWithProfile(stderr, output.ColorProfileANSI),
		units:   make(map[string]*unitState),
		buffers: make(map[string]*bytes.Buffer),
	}
}

// Start is a no-op; the renderer is synchronous.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes partial output of units that never completed.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID := range r.buffers {
		r.flushBufferLocked(spanID)
	}
	return nil
}

// Wait is a no-op; the renderer is synchronous.
func (r *Renderer) Wait() error {
	return nil
}

// OnPlanEmit prints how many images are about to be processed.
func (r *Renderer) OnPlanEmit(images []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "%s Processing %d image(s)\n",
		r.colored(style.Arrow, style.Accent), len(images))
}

// OnUnitStart registers a unit and prints its start line.
func (r *Renderer) OnUnitStart(spanID, _ /* parentID */, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.units[spanID] = &unitState{name: name, startTime: startTime}
	r.buffers[spanID] = new(bytes.Buffer)

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
}

// OnUnitLog prints complete lines of unit output; a trailing partial line is held back.
func (r *Renderer) OnUnitLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	unit, ok := r.units[spanID]
	if !ok {
		return
	}

	buf := r.buffers[spanID]
	buf.Write(data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			if len(line) > 0 {
				rest := new(bytes.Buffer)
				rest.Write(line)
				r.buffers[spanID] = rest
			}
			break
		}
		r.printLineLocked(unit.name, line)
	}
}

// OnUnitComplete flushes remaining output and prints the outcome with the elapsed time.
func (r *Renderer) OnUnitComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	unit, ok := r.units[spanID]
	if !ok {
		return
	}

	r.flushBufferLocked(spanID)

	elapsed := endTime.Sub(unit.startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s]", unit.name)
	if err != nil {
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n",
			prefix, r.colored(style.Cross, style.Red), elapsed, err)
	} else {
		_, _ = fmt.Fprintf(r.stderr, "%s %s Completed in %v\n",
			prefix, r.colored(style.Check, style.Green), elapsed)
	}

	delete(r.units, spanID)
	delete(r.buffers, spanID)
}

func (r *Renderer) colored(glyph string, c lipgloss.Color) string {
	return r.output.String(glyph).Foreground(r.output.Color(string(c))).String()
}

// flushBufferLocked must be called with r.mu held.
func (r *Renderer) flushBufferLocked(spanID string) {
	unit, ok := r.units[spanID]
	if !ok {
		return
	}
	buf := r.buffers[spanID]
	if buf.Len() > 0 {
		r.printLineLocked(unit.name, buf.Bytes())
		buf.Reset()
	}
}

// printLineLocked must be called with r.mu held.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", name, line)
}
