package editor

import (
	"context"
	"errors"
)

// Run drives the editor until the Quit action, a failed event read, or
// cancellation of ctx. Each iteration clamps, renders a full frame and only
// then blocks for the next event, so the terminal never shows the cursor on
// an invalid cell. Returns nil on Quit.
//
// Cancellation is observed between iterations; a frame is never abandoned
// half drawn.
func (e *Editor) Run(ctx context.Context) error {
	e.log.Info("editing %s (%d lines, %dx%d)", e.buf.Name(), e.buf.LineCount(), e.width, e.height)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		e.Clamp()
		e.Render()

		err := e.HandleEvent(e.backend.PollEvent())
		if errors.Is(err, ErrQuit) {
			e.log.Info("quit")
			return nil
		}
		if err != nil {
			e.log.Error("event loop: %v", err)
			return err
		}
	}
}
