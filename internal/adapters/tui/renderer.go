package tui

import (
	"context"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/folio-site/folio/internal/core/ports"
	"go.trai.ch/zerr"
)

// ErrQuit is returned by Wait when the user closed the view before the build finished.
var ErrQuit = zerr.New("build view closed by user")

// Renderer wraps the Bubble Tea model as a ports.Renderer.
type Renderer struct {
	program *tea.Program
	model   *Model
	errCh   chan error
	stopped atomic.Bool
}

var _ ports.Renderer = (*Renderer)(nil)

// NewRenderer creates a new TUI renderer.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the program in a background goroutine.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.errCh <- err
	}()
	return nil
}

// Stop signals the program to quit.
func (r *Renderer) Stop() error {
	r.stopped.Store(true)
	r.program.Quit()
	return nil
}

// Wait blocks until the program has terminated.
func (r *Renderer) Wait() error {
	err := <-r.errCh
	if err == nil && !r.stopped.Load() {
		return ErrQuit
	}
	return err
}

// OnPlanEmit forwards the image list to the model.
func (r *Renderer) OnPlanEmit(images []string) {
	r.program.Send(PlanMsg{Images: images})
}

// OnUnitStart forwards unit start events to the model.
func (r *Renderer) OnUnitStart(spanID, parentID, name string, startTime time.Time) {
	r.program.Send(UnitStartMsg{
		SpanID:    spanID,
		ParentID:  parentID,
		Name:      name,
		StartTime: startTime,
	})
}

// OnUnitLog forwards unit output to the model.
func (r *Renderer) OnUnitLog(spanID string, data []byte) {
	r.program.Send(UnitLogMsg{SpanID: spanID, Data: data})
}

// OnUnitComplete forwards unit completion events to the model.
func (r *Renderer) OnUnitComplete(spanID string, endTime time.Time, err error) {
	r.program.Send(UnitCompleteMsg{SpanID: spanID, EndTime: endTime, Err: err})
}
